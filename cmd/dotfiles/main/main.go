package main

import (
	"fmt"
	"os"

	"github.com/arthur-debert/dotfiles/cmd/dotfiles"
	"github.com/arthur-debert/dotfiles/pkg/ui/output/styles"
)

func main() {
	rootCmd := dotfiles.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		errorStyle := styles.GetStyle("Error")
		fmt.Fprintln(os.Stderr, errorStyle.Render(fmt.Sprintf("Error: %v", err)))
		os.Exit(1)
	}
}
