package main

import (
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "damast",
	Short: "Simulate forging pattern welded steel",
	Long: `damast simulates the forging of layered steel billets into Damascus
style patterns: stack two steels, forge the stack to a bar, then twist,
split, compress and drill it. Results export as STL/OBJ meshes, section
images and JSON operation logs.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the command tree, printing any failure before exiting
// nonzero.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		color.Red("damast: %v", err)
		os.Exit(1)
	}
}
