package main

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/phroun/sheaf"
)

var cmdGrep = &cobra.Command{
	Use:   "grep [file] [pattern]",
	Short: "Search every section with a regular expression",
	Run:   runGrep,
	Args:  cobra.ExactArgs(2),
}

var flagGrep = struct {
	IgnoreCase bool
}{}

func init() {
	cmdMain.AddCommand(cmdGrep)

	cmdGrep.Flags().BoolVarP(&flagGrep.IgnoreCase, "ignore-case", "i", false, "Case-insensitive matching")
}

var matchColor = color.New(color.FgRed, color.Bold)

func runGrep(_ *cobra.Command, args []string) {
	pattern := args[1]
	if flagGrep.IgnoreCase {
		pattern = "(?i)" + pattern
	}
	re, err := regexp.Compile(pattern)
	checkf(err, "grep %q", args[1])

	highlight := func(m string) string { return matchColor.Sprint(m) }

	matched := false
	err = sheaf.View(args[0], func(s *sheaf.Sheaf) error {
		for _, name := range s.Names() {
			sec, err := s.Get(name)
			if err != nil {
				return err
			}
			num := 0
			lines := sec.Lines()
			for lines.Next() {
				num++
				line := strings.TrimRight(lines.Text(), "\r\n")
				if !re.MatchString(line) {
					continue
				}
				matched = true
				fmt.Printf("%s:%d:%s\n", sectionColor.Sprint(name), num, re.ReplaceAllStringFunc(line, highlight))
			}
			if err := lines.Err(); err != nil {
				return err
			}
		}
		return nil
	})
	checkf(err, "grep %s", args[0])

	// Like grep, exit 1 when nothing matched
	if !matched {
		os.Exit(1)
	}
}
