package main

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/phroun/sheaf"
)

var cmdSet = &cobra.Command{
	Use:   "set [file] [section]",
	Short: "Create or replace a section's content",
	Long:  "Create or replace a section's content from stdin, or from a file given with --input.",
	Run:   runSet,
	Args:  cobra.ExactArgs(2),
}

var flagSet = struct {
	Input string
}{}

func init() {
	cmdMain.AddCommand(cmdSet)

	cmdSet.Flags().StringVarP(&flagSet.Input, "input", "i", "", "Read content from this file instead of stdin")
}

func runSet(_ *cobra.Command, args []string) {
	var src io.Reader = os.Stdin
	if flagSet.Input != "" {
		f, err := os.Open(flagSet.Input)
		checkf(err, "set %s", args[1])
		defer f.Close()
		src = f
	}

	err := sheaf.Update(args[0], func(s *sheaf.Sheaf) error {
		return s.Set(args[1], src)
	})
	checkf(err, "set %s", args[1])
}
