package output

import (
	"bytes"
	"strings"
	"testing"
)

func TestPrintHints_KnownCommand(t *testing.T) {
	out := new(bytes.Buffer)
	p := NewPrinterWithWriters(out, new(bytes.Buffer), false)

	p.PrintHints("checkout")

	if !strings.Contains(out.String(), "See also: megastation orders") {
		t.Errorf("unexpected output: %q", out.String())
	}
}

func TestPrintHints_UnknownCommand(t *testing.T) {
	out := new(bytes.Buffer)
	p := NewPrinterWithWriters(out, new(bytes.Buffer), false)

	p.PrintHints("nonexistent")

	if out.Len() != 0 {
		t.Errorf("expected no output, got %q", out.String())
	}
}

func TestPrintHints_Quiet(t *testing.T) {
	out := new(bytes.Buffer)
	p := NewPrinterWithWriters(out, new(bytes.Buffer), false)
	p.SetQuiet(true)

	p.PrintHints("checkout")

	if out.Len() != 0 {
		t.Errorf("quiet mode should suppress hints, got %q", out.String())
	}
}

func TestCommandHints_ReferenceRealCommands(t *testing.T) {
	// Every hint must start with a word a user can actually type.
	known := map[string]bool{
		"login": true, "logout": true, "whoami": true, "register": true,
		"catalog": true, "categories": true, "product": true,
		"cart": true, "checkout": true, "orders": true,
		"invoices": true, "stock": true, "users": true,
	}

	for command, hints := range CommandHints {
		for _, hint := range hints {
			first := strings.Fields(hint)[0]
			if !known[first] {
				t.Errorf("hint for %q references unknown command %q", command, first)
			}
		}
	}
}
