// Command trampcalc evaluates the Ackermann function and Fibonacci numbers
// over arbitrary-precision integers, from the command line, an interactive
// dashboard or an HTTP API.
package main

import (
	"context"
	"os"

	"github.com/agbru/trampcalc/internal/app"
	apperrors "github.com/agbru/trampcalc/internal/errors"
)

func main() {
	if app.HasVersionFlag(os.Args[1:]) {
		app.PrintVersion(os.Stdout)
		return
	}

	application, err := app.New(os.Args, os.Stderr)
	if err != nil {
		if app.IsHelpError(err) {
			os.Exit(apperrors.ExitSuccess)
		}
		os.Exit(apperrors.ExitCode(err))
	}

	os.Exit(application.Run(context.Background(), os.Stdout))
}
