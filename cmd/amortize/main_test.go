package main

import (
	"errors"
	"os"
	"os/exec"
	"strings"
	"testing"
)

const childArgsEnv = "AMORTIZE_TEST_ARGS"

// runMain runs main in a child test process with the given arguments and
// returns its stdout and exit code.
func runMain(t *testing.T, args ...string) (string, int) {
	t.Helper()
	cmd := exec.Command(os.Args[0], "-test.run=^TestMainProcess$")
	cmd.Env = append(os.Environ(), childArgsEnv+"="+strings.Join(args, "\x1f"))
	out, err := cmd.Output()
	if err == nil {
		return string(out), 0
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return string(out), exitErr.ExitCode()
	}
	t.Fatalf("failed to run child process: %v", err)
	return "", -1
}

// TestMainProcess is the entry point of the child process started by runMain.
func TestMainProcess(t *testing.T) {
	raw, ok := os.LookupEnv(childArgsEnv)
	if !ok {
		t.Skip("only runs as a child process")
	}
	os.Args = append([]string{"amortize"}, strings.Split(raw, "\x1f")...)
	main()
}

func TestMainExitCodes(t *testing.T) {
	tests := []struct {
		name         string
		args         []string
		expectedCode int
		expectedOut  string
	}{
		{
			name:         "Missing config file",
			args:         []string{"-config", "does-not-exist.yaml"},
			expectedCode: 1,
			expectedOut:  "failed to load configuration at does-not-exist.yaml",
		},
		{
			name:         "Invalid log level",
			args:         []string{"-config", "../../test/test_loan.yaml", "-log-level", "verbose"},
			expectedCode: 1,
			expectedOut:  "failed to initialize logger",
		},
		{
			name:         "Invalid view",
			args:         []string{"-config", "../../test/test_loan.yaml", "-view", "quarterly"},
			expectedCode: 1,
		},
		{
			name:         "CSV output",
			args:         []string{"-config", "../../test/test_loan.yaml", "-output-format", "csv"},
			expectedCode: 0,
			expectedOut:  "Payment #,Date,Payment Amount,Principal,Interest,Remaining Balance",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, code := runMain(t, tt.args...)
			if code != tt.expectedCode {
				t.Fatalf("exit code = %d, expected %d; output:\n%s", code, tt.expectedCode, out)
			}
			if tt.expectedOut != "" && !strings.Contains(out, tt.expectedOut) {
				t.Errorf("output should contain %q, got:\n%s", tt.expectedOut, out)
			}
		})
	}
}
