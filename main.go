package main

import "github.com/gaurav-prasanna/paperimport/cmd"

func main() {
	cmd.Execute()
}
