// Package console writes the tool's progress messages. Lines go through a
// timestamp-less log.Logger and are colored by their role: dim for echoed
// commands, yellow for notices, green for success and red for errors.
package console

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/gookit/color"
)

var (
	dim     = color.Style{color.OpFuzzy}
	notice  = color.Style{color.FgYellow}
	success = color.Style{color.FgGreen}
	section = color.Style{color.FgGreen, color.OpBold}
	header  = color.Style{color.FgBlue, color.OpBold}
	failure = color.Style{color.FgRed}
	fatal   = color.Style{color.FgRed, color.OpBold}
)

// Console is a colored logger. The zero value is not usable, see New.
type Console struct {
	log *log.Logger
}

// Stderr logs to os.Stderr.
var Stderr = New(os.Stderr)

// New returns a Console that writes to w.
func New(w io.Writer) *Console {
	return &Console{log: log.New(w, "", 0)}
}

// SetColor turns coloring on or off for every Console.
func SetColor(enabled bool) {
	color.Enable = enabled
}

// Printf logs a plain line.
func (c *Console) Printf(format string, args ...interface{}) {
	c.log.Print(fmt.Sprintf(format, args...))
}

// Dimf logs a de-emphasized line, used for echoing commands.
func (c *Console) Dimf(format string, args ...interface{}) {
	c.log.Print(dim.Sprintf(format, args...))
}

// Noticef logs a yellow line.
func (c *Console) Noticef(format string, args ...interface{}) {
	c.log.Print(notice.Sprintf(format, args...))
}

// Successf logs a green line.
func (c *Console) Successf(format string, args ...interface{}) {
	c.log.Print(success.Sprintf(format, args...))
}

// Headerf logs a bold blue line that announces a tool run.
func (c *Console) Headerf(format string, args ...interface{}) {
	c.log.Print(header.Sprintf(format, args...))
}

// Sectionf logs a bold green line preceded by a blank one.
func (c *Console) Sectionf(format string, args ...interface{}) {
	c.log.Print("\n" + section.Sprintf(format, args...))
}

// Failf logs a red line.
func (c *Console) Failf(format string, args ...interface{}) {
	c.log.Print(failure.Sprintf(format, args...))
}

// Errorf logs a bold red line.
func (c *Console) Errorf(format string, args ...interface{}) {
	c.log.Print(fatal.Sprintf(format, args...))
}
