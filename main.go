package main

import (
	"fmt"
	"os"

	"modui/cmd"

	"github.com/alecthomas/kong"
)

func main() {
	var cli cmd.CLI
	ctx := kong.Parse(&cli,
		kong.Name("modui"),
		kong.Description("Mod manager for the GIMI model importer"),
		kong.UsageOnError(),
	)

	if err := ctx.Run(&cli); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
