package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	uhppoted "github.com/uhppoted/uhppoted-lib/command"

	"github.com/anki-tools/anki-sheets/commands"
)

var cli = []uhppoted.Command{
	&commands.VersionCmd,
	&commands.AuthoriseCmd,
	&commands.ExportCmd,
	&commands.GetCmd,
	&commands.PutCmd,
}

var options = commands.Options{
	Debug:   false,
	LogFile: "",
}

var help = uhppoted.NewHelp(commands.APP, cli, nil)

func main() {
	flag.BoolVar(&options.Debug, "debug", options.Debug, "Enable debugging information")
	flag.StringVar(&options.LogFile, "log-file", options.LogFile, "Copies the log output to a (rotated) log file e.g. ./output/app.log")
	flag.Parse()

	cmd, err := uhppoted.Parse(cli, nil, help)
	if err != nil {
		fmt.Printf("\nError parsing command line: %v\n\n", err)
		os.Exit(1)
	}

	if cmd == nil {
		help.Execute()
		os.Exit(1)
	}

	if err := run(cmd); err != nil {
		os.Exit(1)
	}
}

// run executes the command with the log output copied to the --log-file (if any), closing the
// log file before returning.
func run(cmd uhppoted.Command) error {
	if options.LogFile != "" {
		logfile := commands.SetLogFile(options.LogFile)
		defer logfile.Close()
	}

	if err := cmd.Execute(&options); err != nil {
		log.Printf("%-5s %v", "ERROR", err)
		return err
	}

	return nil
}
