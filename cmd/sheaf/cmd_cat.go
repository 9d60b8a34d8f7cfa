package main

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/phroun/sheaf"
)

var cmdCat = &cobra.Command{
	Use:   "cat [file] [section]...",
	Short: "Print section content on stdout",
	Run:   runCat,
	Args:  cobra.MinimumNArgs(2),
}

func init() {
	cmdMain.AddCommand(cmdCat)
}

func runCat(_ *cobra.Command, args []string) {
	err := sheaf.View(args[0], func(s *sheaf.Sheaf) error {
		for _, name := range args[1:] {
			sec, err := s.Get(name)
			if err != nil {
				return err
			}
			if _, err := io.Copy(os.Stdout, sec); err != nil {
				return err
			}
		}
		return nil
	})
	checkf(err, "cat %s", args[0])
}
