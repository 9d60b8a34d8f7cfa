package main

import (
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var cmdMain = &cobra.Command{
	Use:   "sheaf",
	Short: "Inspect and edit section-oriented text files",
	Run:   printUsageAndExit1,
}

var flagMain struct {
	NoColor bool
}

func init() {
	cmdMain.PersistentFlags().BoolVar(&flagMain.NoColor, "no-color", false, "Disable colored output")

	cmdMain.PersistentPreRun = func(*cobra.Command, []string) {
		if flagMain.NoColor {
			color.NoColor = true
		}
	}
}

func main() {
	cmdMain.Execute()
}

func printUsageAndExit1(cmd *cobra.Command, args []string) {
	_ = cmd.Usage()
	os.Exit(1)
}

var errColor = color.New(color.FgRed)

func fatalf(format string, args ...interface{}) {
	errColor.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}

func check(err error) {
	if err != nil {
		fatalf("%v", err)
	}
}

func checkf(err error, format string, otherArgs ...interface{}) {
	if err != nil {
		fatalf(format+": %v", append(otherArgs, err)...)
	}
}
