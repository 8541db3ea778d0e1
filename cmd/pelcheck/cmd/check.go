package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yonihemi/trill/cmd/pelcheck/demo"
	"github.com/yonihemi/trill/internal/renderer"
	"github.com/yonihemi/trill/internal/semantic"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Analyze the built-in demo program and print its diagnostics",
	Run: func(cmd *cobra.Command, args []string) {
		tu := demo.TranslationUnit()
		a := semantic.NewAnalyzer()
		sink := a.Analyze(tu)

		r := renderer.New("demo.pel", demo.Source())
		if out := r.All(sink); out != "" {
			fmt.Println(out)
		}

		if sink.HasErrors() {
			exitWithError("analysis failed with %d error(s)", len(sink.Errors()))
		}
		fmt.Println("no errors")
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}
