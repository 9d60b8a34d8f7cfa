package main

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/phroun/sheaf"
)

var cmdLs = &cobra.Command{
	Use:   "ls [file]",
	Short: "List sections in order",
	Run:   runLs,
	Args:  cobra.ExactArgs(1),
}

var flagLs = struct {
	Long bool
}{}

func init() {
	cmdMain.AddCommand(cmdLs)

	cmdLs.Flags().BoolVarP(&flagLs.Long, "long", "l", false, "Show section sizes and line counts")
}

var sectionColor = color.New(color.FgCyan)

func runLs(_ *cobra.Command, args []string) {
	err := sheaf.View(args[0], func(s *sheaf.Sheaf) error {
		if !flagLs.Long {
			for _, name := range s.Names() {
				sectionColor.Println(name)
			}
			return nil
		}
		for _, st := range s.SectionStats() {
			fmt.Printf("%10s %8s lines  %s\n",
				humanize.Bytes(uint64(st.Bytes)),
				humanize.Comma(st.Lines),
				sectionColor.Sprint(st.Name))
		}
		return nil
	})
	checkf(err, "ls %s", args[0])
}
