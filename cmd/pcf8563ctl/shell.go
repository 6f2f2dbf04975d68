package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/google/shlex"
	"github.com/peterh/liner"

	"github.com/ajanata/tinygo-drivers/pcf8563"
)

const prompt = "pcf8563> "

// runLine tokenizes and executes one line of shell input.
func runLine(dev *pcf8563.Device, w io.Writer, line string) error {
	args, err := shlex.Split(line)
	if err != nil {
		return fmt.Errorf("could not parse %q: %w", line, err)
	}
	return execute(dev, w, args)
}

// shell runs an interactive prompt until quit, EOF or Ctrl-C. Command errors are reported and do not end the
// session.
func shell(dev *pcf8563.Device, w io.Writer, log *slog.Logger) error {
	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)

	for {
		input, err := line.Prompt(prompt)
		switch {
		case errors.Is(err, liner.ErrPromptAborted), errors.Is(err, io.EOF):
			return nil
		case err != nil:
			return fmt.Errorf("could not read command: %w", err)
		}
		line.AppendHistory(input)

		err = runLine(dev, w, input)
		switch {
		case errors.Is(err, errQuit):
			return nil
		case err != nil:
			log.Error("command failed", slog.String("cmd", input), slog.Any("err", err))
		}
	}
}
