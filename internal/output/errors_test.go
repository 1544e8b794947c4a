package output

import (
	"bytes"
	"strings"
	"testing"
)

func TestCLIError_Error(t *testing.T) {
	err := &CLIError{Summary: "access denied", ExitCode: ExitDenied}
	if err.Error() != "access denied" {
		t.Errorf("got %q", err.Error())
	}
}

func TestFormatError_AllParts(t *testing.T) {
	errOut := new(bytes.Buffer)
	p := NewPrinterWithWriters(new(bytes.Buffer), errOut, false)

	p.FormatError(&CLIError{
		Summary:    "please log in to access /orders",
		Detail:     "no session found",
		Suggestion: "megastation login",
		ExitCode:   ExitAuth,
	})

	out := errOut.String()
	for _, want := range []string{"please log in to access /orders", "Cause: no session found", "Suggestion: megastation login"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestFormatError_SummaryOnly(t *testing.T) {
	errOut := new(bytes.Buffer)
	p := NewPrinterWithWriters(new(bytes.Buffer), errOut, false)

	p.FormatError(&CLIError{Summary: "boom", ExitCode: ExitGeneral})

	out := errOut.String()
	if strings.Contains(out, "Cause:") || strings.Contains(out, "Suggestion:") {
		t.Errorf("empty parts should be omitted:\n%s", out)
	}
}

func TestExitCodes_Distinct(t *testing.T) {
	codes := []int{ExitSuccess, ExitGeneral, ExitUsageError, ExitNetwork, ExitAuth, ExitDenied}
	seen := make(map[int]bool)
	for _, code := range codes {
		if seen[code] {
			t.Fatalf("exit code %d reused", code)
		}
		seen[code] = true
	}
}
