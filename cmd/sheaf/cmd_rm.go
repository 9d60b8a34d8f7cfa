package main

import (
	"github.com/spf13/cobra"

	"github.com/phroun/sheaf"
)

var cmdRm = &cobra.Command{
	Use:   "rm [file] [section]...",
	Short: "Delete sections",
	Run:   runRm,
	Args:  cobra.MinimumNArgs(2),
}

func init() {
	cmdMain.AddCommand(cmdRm)
}

func runRm(_ *cobra.Command, args []string) {
	err := sheaf.Update(args[0], func(s *sheaf.Sheaf) error {
		for _, name := range args[1:] {
			if err := s.Delete(name); err != nil {
				return err
			}
		}
		return nil
	})
	checkf(err, "rm %s", args[0])
}
