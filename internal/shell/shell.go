// Package shell emits the command stream consumed by the eval wrapper.
//
// The tool is run as `eval "$(awslaunch ...)"`: everything written to stdout
// is executed by the calling shell, so stdout carries nothing but commands
// and every human-facing message goes to stderr.
package shell

import (
	"fmt"
	"io"
	"os"

	"github.com/alessio/shellescape"
)

// CommandEnd terminates every emitted command so eval runs them in sequence.
const CommandEnd = ";"

// Emitter writes shell commands to the command stream and human messages to
// the message stream.
type Emitter struct {
	Commands io.Writer
	Messages io.Writer
}

// New returns an emitter for the conventional stream pair: stdout for
// commands, stderr for messages.
func New() *Emitter {
	return &Emitter{Commands: os.Stdout, Messages: os.Stderr}
}

// Command emits one shell command terminated by CommandEnd.
func (e *Emitter) Command(command string) {
	fmt.Fprint(e.Commands, command+CommandEnd)
}

// Export emits an export assignment. The value is quoted so tokens and URLs
// pass through the shell untouched.
func (e *Emitter) Export(name, value string) {
	e.Command("export " + name + "=" + shellescape.Quote(value))
}

// Echo emits an echo command that prints s on the consuming shell's
// terminal.
func (e *Emitter) Echo(s string) {
	e.Command("echo " + shellescape.Quote(s))
}

// Msgf writes one line to the message stream.
func (e *Emitter) Msgf(format string, args ...any) {
	fmt.Fprintf(e.Messages, format+"\n", args...)
}

// Finish ends the command stream with a newline so the shell receives one
// complete line.
func (e *Emitter) Finish() {
	fmt.Fprintln(e.Commands)
}
