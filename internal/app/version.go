package app

import (
	"fmt"
	"io"
	"runtime"
	"slices"
)

// Set at build time with -ldflags "-X github.com/agbru/trampcalc/internal/app.Version=...".
var (
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"
)

// HasVersionFlag reports whether args request the version, so main can
// answer before any validation.
func HasVersionFlag(args []string) bool {
	return slices.ContainsFunc(args, func(a string) bool {
		return a == "-version" || a == "--version" || a == "-V"
	})
}

func PrintVersion(out io.Writer) {
	fmt.Fprintf(out, "trampcalc %s (commit %s, built %s, %s %s/%s)\n",
		Version, Commit, BuildDate, runtime.Version(), runtime.GOOS, runtime.GOARCH)
}
