package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "pelcheck",
	Short: "Run the Pel semantic analyzer against a fixed demo program",
	Long: `pelcheck is a demo binary for the Pel semantic analyzer.

It is not a build driver: it reads no files and takes no source text on
the command line. It builds a small translation unit in Go code, runs it
through internal/semantic, and prints the resulting diagnostics through
internal/renderer — enough to exercise both packages end to end.`,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func exitWithError(msg string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+msg+"\n", args...)
	os.Exit(1)
}
