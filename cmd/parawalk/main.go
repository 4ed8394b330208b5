package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "0.1.0"

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "parawalk",
	Short: "Walk a directory tree with parallel reads and ordered output",
	Long: `parawalk walks a directory tree, reading directories across a pool
of goroutines while guaranteeing the output is observed in the same
order a plain sequential depth-first walk would produce it.`,
}

func init() {
	rootCmd.Version = version
	rootCmd.AddCommand(walkCmd)
	rootCmd.AddCommand(tuiCmd)
}
