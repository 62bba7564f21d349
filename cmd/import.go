// Import command.
// This is the main command: resolve → extract → render → write, once per URL.

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/gaurav-prasanna/paperimport/config"
	"github.com/gaurav-prasanna/paperimport/core"
	"github.com/gaurav-prasanna/paperimport/core/output"
	"github.com/gaurav-prasanna/paperimport/core/registry"
	"github.com/gaurav-prasanna/paperimport/core/render"
	"github.com/gaurav-prasanna/paperimport/intake"
)

var (
	flagStdout bool
	flagInput  string
)

var importCmd = &cobra.Command{
	Use:   "import <url>...",
	Short: "Import papers into notes",
	Long: `Import fetches each paper's landing page, extracts its metadata and writes
a note named after the paper title into the paper folder. Existing notes are
never overwritten. Duplicate URLs for the same paper are imported once.

Examples:
  paperimport import https://arxiv.org/abs/1706.03762
  paperimport import https://arxiv.org/pdf/1706.03762.pdf --format json --paper_folder ./papers
  paperimport import --input reading-list.txt --format frontmatter
  paperimport import https://openreview.net/forum?id=AbCdEfGh12 --stdout`,
	RunE: runImport,
}

func init() {
	rootCmd.AddCommand(importCmd)

	importCmd.Flags().String("format", render.FormatTemplate, fmt.Sprintf("Output format: %v", render.Formats))
	importCmd.Flags().String("paper_folder", "", "Folder for written notes (default: current directory)")
	importCmd.Flags().BoolVar(&flagStdout, "stdout", false, "Print notes instead of writing files")
	importCmd.Flags().StringVar(&flagInput, "input", "", "File with one URL per line (- for stdin)")

	_ = viper.BindPFlag(config.KeyFormat, importCmd.Flags().Lookup("format"))
	_ = viper.BindPFlag(config.KeyPaperFolder, importCmd.Flags().Lookup("paper_folder"))
}

func runImport(cmd *cobra.Command, args []string) error {
	urls := args
	if flagInput != "" {
		listed, err := readInput(cmd.InOrStdin(), flagInput)
		if err != nil {
			return err
		}
		urls = append(urls, listed...)
	}
	if len(urls) == 0 {
		return fmt.Errorf("no URLs given")
	}

	renderer, err := render.New(cfg.Format, cfg.Template)
	if err != nil {
		return err
	}

	var writer *output.Writer
	if !flagStdout {
		writer, err = output.New(cfg.PaperFolder)
		if err != nil {
			return fmt.Errorf("initializing paper folder: %w", err)
		}
	}

	imp := &importer{
		registry: newRegistry(),
		renderer: renderer,
		writer:   writer,
		out:      cmd.OutOrStdout(),
		now:      time.Now,
	}
	return imp.run(cmd.Context(), urls)
}

func readInput(stdin io.Reader, name string) ([]string, error) {
	if name == "-" {
		return intake.ReadList(stdin)
	}
	f, err := os.Open(name)
	if err != nil {
		return nil, fmt.Errorf("opening URL list: %w", err)
	}
	defer f.Close()
	return intake.ReadList(f)
}

// importer runs the per-URL pipeline. A nil writer prints notes to out.
type importer struct {
	registry *registry.Registry
	renderer core.Renderer
	writer   *output.Writer
	out      io.Writer
	now      func() time.Time
}

// run imports every URL in order. Failures are logged and counted; the
// returned error reports how many URLs failed.
func (imp *importer) run(ctx context.Context, urls []string) error {
	queue := intake.NewQueue(imp.registry.Canonical)
	var invalid int
	for _, u := range urls {
		if !intake.IsHTTPURL(u) {
			log.Warn().Str("url", u).Msg("not an http(s) URL")
			invalid++
			continue
		}
		if !queue.Add(u) {
			log.Debug().Str("url", u).Msg("duplicate paper, skipping")
		}
	}

	total := queue.Len() + invalid
	failed := invalid
	for i := 1; queue.HasNext(); i++ {
		u := queue.Next()
		log.Info().Msgf("[%d/%d] Importing %s", i, queue.Len(), u)

		if err := imp.importOne(ctx, u); err != nil {
			failed++
			switch {
			case errors.Is(err, core.ErrUnsupportedSite):
				log.Warn().Str("url", u).Msg("unsupported site")
			case errors.Is(err, core.ErrExtractionFailed):
				log.Warn().Err(err).Msg("could not extract paper metadata")
			default:
				log.Warn().Err(err).Str("url", u).Msg("import failed")
			}
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d/%d imports failed", failed, total)
	}
	return nil
}

func (imp *importer) importOne(ctx context.Context, u string) error {
	result, err := imp.registry.Import(ctx, u)
	if err != nil {
		return err
	}
	// The caller may have given up while the page was in flight.
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := imp.renderer.Render(result, imp.now())
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}

	if imp.writer == nil {
		if _, err := imp.out.Write(data); err != nil {
			return err
		}
		if len(data) > 0 && data[len(data)-1] != '\n' {
			_, err = io.WriteString(imp.out, "\n")
		}
		return err
	}

	path, err := imp.writer.WriteNote(result.Title, data, imp.renderer.Extension())
	if errors.Is(err, output.ErrNoteExists) {
		log.Info().Str("path", path).Msg("note already exists, left untouched")
		return nil
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(imp.out, "✓ Written: %s\n", path)
	return nil
}
