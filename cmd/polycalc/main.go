// Command polycalc is an exact single-variable polynomial calculator. It
// evaluates one operation from the command line, runs batch files, serves
// an HTTP API or starts an interactive session.
package main

import (
	"context"
	"io"
	"os"

	"github.com/agbru/polycalc/internal/app"
	apperrors "github.com/agbru/polycalc/internal/errors"
)

func main() {
	os.Exit(run(os.Args, os.Stdout, os.Stderr))
}

func run(args []string, out, errOut io.Writer) int {
	if len(args) > 1 && app.HasVersionFlag(args[1:]) {
		app.PrintVersion(out)
		return apperrors.ExitSuccess
	}

	application, err := app.New(args, errOut)
	if err != nil {
		if app.IsHelpError(err) {
			return apperrors.ExitSuccess
		}
		// The flag set and the validator have already reported the error.
		return apperrors.ExitErrorConfig
	}
	return application.Run(context.Background(), out)
}
