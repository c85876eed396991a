// Package dialer bridges outgoing calls to the platform by running an
// external command, by default an adb CALL intent. The command is a
// template: every occurrence of {number} is replaced with the cleaned
// number before execution.
package dialer

import (
	"errors"
	"fmt"
	"strings"

	"callscope/internal/util"
)

// NumberPlaceholder is substituted with the cleaned phone number.
const NumberPlaceholder = "{number}"

// DefaultCommand dials through adb on a connected device.
func DefaultCommand() []string {
	return []string{
		"adb", "shell", "am", "start",
		"-a", "android.intent.action.CALL",
		"-d", "tel:" + NumberPlaceholder,
	}
}

// ExecDialer places calls by spawning a command.
type ExecDialer struct {
	argv  []string
	start func(argv []string) error
}

// NewExecDialer creates a dialer for the given argv template; an empty
// template falls back to DefaultCommand.
func NewExecDialer(argv []string) *ExecDialer {
	if len(argv) == 0 {
		argv = DefaultCommand()
	}
	return &ExecDialer{argv: argv, start: startProcess}
}

// CleanNumber strips everything but digits and a leading plus, the same
// cleanup the dial pad applies before handing a number to the platform.
func CleanNumber(raw string) string {
	var b strings.Builder
	for i := 0; i < len(raw); i++ {
		c := raw[i]
		if c >= '0' && c <= '9' {
			b.WriteByte(c)
		} else if c == '+' && b.Len() == 0 {
			b.WriteByte(c)
		}
	}
	return b.String()
}

// PlaceCall hands the number to the platform and returns without waiting
// for the call to connect. There is no result channel: a nil error means
// the dial command was spawned, nothing more.
func (d *ExecDialer) PlaceCall(number string) error {
	cleaned := CleanNumber(number)
	if cleaned == "" || cleaned == "+" {
		return errors.New("dialer: no phone number to call")
	}

	argv := d.buildArgs(cleaned)
	util.LogInfof("Placing call to %s via %s", cleaned, argv[0])
	if err := d.start(argv); err != nil {
		return fmt.Errorf("dialer: failed to start dial command: %w", err)
	}
	return nil
}

// buildArgs substitutes the cleaned number into the command template.
func (d *ExecDialer) buildArgs(number string) []string {
	argv := make([]string, len(d.argv))
	for i, arg := range d.argv {
		argv[i] = strings.ReplaceAll(arg, NumberPlaceholder, number)
	}
	return argv
}
