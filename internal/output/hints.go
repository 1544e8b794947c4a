package output

import (
	"fmt"
	"strings"
)

// CommandHints maps command names to related commands users might want to run next
var CommandHints = map[string][]string{
	"login":    {"catalog", "cart", "whoami"},
	"logout":   {"login"},
	"register": {"catalog", "whoami"},
	"catalog":  {"product <id>", "cart add <id>"},
	"product":  {"cart add <id>"},
	"cart":     {"checkout", "catalog"},
	"checkout": {"orders"},
	"orders":   {"orders show <id>"},
	"invoices": {"invoices show <id>", "stock"},
	"stock":    {"stock low", "invoices"},
}

// PrintHints prints "See also" hints for a command. No-op in quiet mode or if command has no hints.
func (p *Printer) PrintHints(command string) {
	if p.quiet {
		return
	}
	hints, ok := CommandHints[command]
	if !ok || len(hints) == 0 {
		return
	}

	cmds := make([]string, len(hints))
	for i, h := range hints {
		cmds[i] = "megastation " + h
	}
	fmt.Fprintf(p.out, "\nSee also: %s\n", strings.Join(cmds, ", "))
}
