package main

import (
	"github.com/spf13/cobra"

	"github.com/phroun/sheaf"
)

var cmdMv = &cobra.Command{
	Use:   "mv [file] [old] [new]",
	Short: "Rename a section, keeping its content and position",
	Run:   runMv,
	Args:  cobra.ExactArgs(3),
}

func init() {
	cmdMain.AddCommand(cmdMv)
}

func runMv(_ *cobra.Command, args []string) {
	err := sheaf.Update(args[0], func(s *sheaf.Sheaf) error {
		return s.Rename(args[1], args[2])
	})
	checkf(err, "mv %s %s", args[1], args[2])
}
