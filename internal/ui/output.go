package ui

import (
	"fmt"
	"io"
	"os"
)

var (
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
)

// SetOutput redirects the helpers below. Nil keeps the current writer.
func SetOutput(out, errOut io.Writer) {
	if out != nil {
		stdout = out
	}
	if errOut != nil {
		stderr = errOut
	}
}

func OK(msg string) {
	t := Current()
	fmt.Fprintln(stdout, t.Success.Render(t.SymOK+" "+msg))
}

func Fail(msg string) {
	t := Current()
	fmt.Fprintln(stderr, t.Error.Render(t.SymFail+" "+msg))
}

func Warn(msg string) {
	fmt.Fprintln(stderr, Current().Pending.Render("! "+msg))
}

func Note(msg string) {
	fmt.Fprintln(stdout, Current().Muted.Render(msg))
}

func Print(s string) {
	fmt.Fprintln(stdout, s)
}
