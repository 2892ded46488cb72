package commands

import (
	"io"
	"log"
	"os"

	"gopkg.in/natefinch/lumberjack.v2"
)

type logfile struct {
	*lumberjack.Logger
	writer io.Writer
}

// SetLogFile copies the log output to a size-rotated log file. Closing the returned log file
// restores the original log output.
func SetLogFile(file string) io.Closer {
	f := logfile{
		Logger: &lumberjack.Logger{
			Filename:   file,
			MaxSize:    10,
			MaxBackups: 3,
			MaxAge:     90,
		},
		writer: log.Writer(),
	}

	log.SetOutput(io.MultiWriter(os.Stderr, f.Logger))

	return &f
}

func (f *logfile) Close() error {
	log.SetOutput(f.writer)

	return f.Logger.Close()
}
