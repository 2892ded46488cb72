package commands

import (
	"flag"
	"fmt"
)

const VERSION = "v0.1.0"

var VersionCmd = Version{}

// Version prints the anki-sheets release, e.g. for bug reports.
type Version struct {
}

func (cmd *Version) Name() string {
	return "version"
}

func (cmd *Version) Description() string {
	return "Prints the anki-sheets version"
}

func (cmd *Version) Usage() string {
	return ""
}

func (cmd *Version) Help() {
	fmt.Println()
	fmt.Printf("  Usage: %s version\n", APP)
	fmt.Println()
	fmt.Printf("  Prints the %s release as v<major>.<minor>.<patch>, e.g. %s\n", APP, VERSION)
	fmt.Println()
}

func (cmd *Version) FlagSet() *flag.FlagSet {
	return flag.NewFlagSet("version", flag.ExitOnError)
}

func (cmd *Version) Execute(args ...any) error {
	fmt.Println(VERSION)

	return nil
}
