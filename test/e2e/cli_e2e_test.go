package e2e

import (
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

// TestCLI_E2E builds the binary and checks its output and exit codes.
func TestCLI_E2E(t *testing.T) {
	if testing.Short() {
		t.Skip("builds the binary")
	}

	binName := "trampcalc"
	if runtime.GOOS == "windows" {
		binName += ".exe"
	}
	binPath := filepath.Join(t.TempDir(), binName)

	// go test runs from test/e2e; build from the module root.
	build := exec.Command("go", "build", "-o", binPath, "./cmd/trampcalc")
	build.Dir = "../.."
	build.Stdout = os.Stdout
	build.Stderr = os.Stderr
	if err := build.Run(); err != nil {
		t.Fatalf("building trampcalc: %v", err)
	}

	tests := []struct {
		name     string
		args     []string
		wantOut  string // case-insensitive substring
		wantCode int
	}{
		{"ackermann", []string{"-m", "2", "-n", "3", "-c"}, "A(2, 3) = 9", 0},
		{"ackermann short form", []string{"-f", "ack", "-m", "3", "-n", "3", "-algo", "iterative", "-c"}, "A(3, 3) = 61", 0},
		{"A(4, 0)", []string{"-m", "4", "-n", "0", "-c"}, "A(4, 0) = 13", 0},
		{"fibonacci", []string{"-f", "fib", "-n", "10", "-c"}, "F(10) = 55", 0},
		{"fibonacci comparison", []string{"-f", "fib", "-n", "1000", "-algo", "all", "-c"}, "F(1000)", 0},
		{"F(0)", []string{"-f", "fib", "-n", "0", "-c"}, "F(0) = 0", 0},
		{"last digits", []string{"-f", "fib", "-n", "100", "-last-digits", "5"}, "15075", 0},
		{"quiet", []string{"-m", "3", "-n", "3", "-q"}, "61", 0},
		{"help", []string{"--help"}, "usage", 0},
		{"version", []string{"--version"}, "trampcalc", 0},
		{"timeout", []string{"-m", "3", "-n", "25", "-algo", "iterative", "-max-steps", "0", "-timeout", "5ms"}, "", 2},
		{"step budget", []string{"-m", "3", "-n", "8", "-algo", "iterative", "-max-steps", "1000"}, "", 4},
		{"out of range m", []string{"-m", "9", "-n", "1"}, "m", 4},
		{"unknown algorithm", []string{"-algo", "matrix"}, "unknown", 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := exec.Command(binPath, tt.args...)
			cmd.Env = append(os.Environ(), "NO_COLOR=1")
			output, err := cmd.CombinedOutput()
			outStr := string(output)

			code := 0
			var exitErr *exec.ExitError
			if errors.As(err, &exitErr) {
				code = exitErr.ExitCode()
			} else if err != nil {
				t.Fatalf("running trampcalc: %v", err)
			}
			if code != tt.wantCode {
				t.Errorf("exit code = %d, want %d\noutput:\n%s", code, tt.wantCode, outStr)
			}
			if tt.wantOut != "" && !strings.Contains(strings.ToLower(outStr), strings.ToLower(tt.wantOut)) {
				t.Errorf("output missing %q:\n%s", tt.wantOut, outStr)
			}
		})
	}
}
