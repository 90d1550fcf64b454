package main

import (
	"fmt"
	"os"

	"github.com/arthur-debert/archup/cmd/archup"
	"github.com/arthur-debert/archup/pkg/style"
)

func main() {
	rootCmd := archup.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, style.RenderError(err))
		os.Exit(1)
	}
}
