// Package app wires the polycalc command: it parses the configuration,
// dispatches to the selected mode and manages the run's lifecycle and
// version information.
package app

import (
	"fmt"
	"io"
	"runtime"
)

// Build-time variables set via -ldflags:
//
//	go build -ldflags="-X github.com/agbru/polycalc/internal/app.Version=v1.2.3 -X github.com/agbru/polycalc/internal/app.Commit=abc123 -X github.com/agbru/polycalc/internal/app.BuildDate=2026-01-01T00:00:00Z" ./cmd/polycalc
var (
	// Version is the semantic version of the application (e.g., "v1.0.0").
	Version = "dev"
	// Commit is the short Git commit hash (e.g., "abc123").
	Commit = "unknown"
	// BuildDate is the ISO 8601 timestamp of the build.
	BuildDate = "unknown"
)

// HasVersionFlag reports whether args contain a version flag. It is checked
// before flag parsing so that -version works next to any other flag or
// operand, e.g. "polycalc -server -version".
func HasVersionFlag(args []string) bool {
	for _, arg := range args {
		if arg == "--version" || arg == "-version" || arg == "-V" {
			return true
		}
	}
	return false
}

// PrintVersion writes the version, commit, build date, Go version and
// platform to out.
func PrintVersion(out io.Writer) {
	info := GetVersionInfo()
	fmt.Fprintf(out, "polycalc %s\n", info.Version)
	fmt.Fprintf(out, "  Commit:     %s\n", info.Commit)
	fmt.Fprintf(out, "  Built:      %s\n", info.BuildDate)
	fmt.Fprintf(out, "  Go version: %s\n", info.GoVersion)
	fmt.Fprintf(out, "  OS/Arch:    %s/%s\n", info.OS, info.Arch)
}

// VersionData is the version information in JSON-friendly form.
type VersionData struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	BuildDate string `json:"build_date"`
	GoVersion string `json:"go_version"`
	OS        string `json:"os"`
	Arch      string `json:"arch"`
}

// GetVersionInfo returns the current version information.
func GetVersionInfo() VersionData {
	return VersionData{
		Version:   Version,
		Commit:    Commit,
		BuildDate: BuildDate,
		GoVersion: runtime.Version(),
		OS:        runtime.GOOS,
		Arch:      runtime.GOARCH,
	}
}
