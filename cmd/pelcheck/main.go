// Command pelcheck is a small demo binary exercising the Pel semantic
// analyzer against a fixed, in-code translation unit (see demo/demo.go).
package main

import (
	"fmt"
	"os"

	"github.com/yonihemi/trill/cmd/pelcheck/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
