package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/soypat/damast"
	"github.com/soypat/damast/helpers/steel"
)

var steelsCmd = &cobra.Command{
	Use:   "steels",
	Short: "List the steels the recipe format understands",
	RunE: func(cmd *cobra.Command, args []string) error {
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "NAME\tMODULUS GPa\tYIELD MPa\tETCH")
		for _, m := range steel.All() {
			fmt.Fprintf(w, "%s\t%.0f\t%.0f\t%s\n", m.Name, m.Modulus, m.Yield, etchShade(m))
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(steelsCmd)
}

// etchShade classifies a steel by how its etch color reads in a
// finished blade.
func etchShade(m damast.Material) string {
	luma := (int(m.Etch.R) + int(m.Etch.G) + int(m.Etch.B)) / 3
	if luma >= 128 {
		return "bright"
	}
	return "dark"
}
