package logging

import (
	"io"
	"log"
	"os"

	"github.com/covalenthq/lumberjack"
)

// Setup sends the standard logger to stdout and, when file is set, to a
// rotating log file. The returned closer flushes the file.
func Setup(file string) io.Closer {
	log.SetFlags(log.LstdFlags | log.LUTC)
	if file == "" {
		log.SetOutput(os.Stdout)
		return nopCloser{}
	}

	rotating := &lumberjack.Logger{
		Filename:   file,
		MaxSize:    100,
		MaxBackups: 7,
		MaxAge:     30,
		Compress:   true,
	}
	log.SetOutput(io.MultiWriter(os.Stdout, rotating))
	return rotating
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
