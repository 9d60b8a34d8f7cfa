package main

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/phroun/sheaf"
)

var cmdCheck = &cobra.Command{
	Use:   "check [file]",
	Short: "Verify that a file parses and report its totals",
	Run:   runCheck,
	Args:  cobra.ExactArgs(1),
}

func init() {
	cmdMain.AddCommand(cmdCheck)
}

var okColor = color.New(color.FgGreen)

func runCheck(_ *cobra.Command, args []string) {
	err := sheaf.View(args[0], func(s *sheaf.Sheaf) error {
		st := s.Stats()
		okColor.Printf("%s: ok\n", args[0])
		fmt.Printf("  sections:   %s\n", humanize.Comma(int64(st.Sections)))
		fmt.Printf("  content:    %s\n", humanize.Bytes(uint64(st.ContentBytes)))
		fmt.Printf("  serialized: %s\n", humanize.Bytes(uint64(st.SerializedBytes)))
		return nil
	})
	checkf(err, "check %s", args[0])
}
