package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/gaurav-prasanna/paperimport/core"
	"github.com/gaurav-prasanna/paperimport/core/registry"
)

var resolveCmd = &cobra.Command{
	Use:   "resolve <url>",
	Short: "Print the site that handles a URL",
	Long: `Resolve prints the name of the site parser that would import the URL, or
"unsupported" and exits with status 1. Nothing is fetched.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return resolve(cmd.OutOrStdout(), newRegistry(), args[0])
	},
}

var sitesCmd = &cobra.Command{
	Use:   "sites",
	Short: "List supported sites and their URL patterns",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		listSites(cmd.OutOrStdout(), newRegistry())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(resolveCmd)
	rootCmd.AddCommand(sitesCmd)
}

func resolve(out io.Writer, reg *registry.Registry, url string) error {
	parser, ok := reg.Resolve(url)
	if !ok {
		fmt.Fprintln(out, "unsupported")
		return fmt.Errorf("%w: %s", core.ErrUnsupportedSite, url)
	}
	fmt.Fprintln(out, parser.Name())
	return nil
}

func listSites(out io.Writer, reg *registry.Registry) {
	for _, p := range reg.Parsers() {
		fmt.Fprintf(out, "%-15s %s\n", p.Name(), p.Pattern())
	}
}
