package cli

import (
	"os"

	"golang.org/x/term"
)

// isInteractive reports whether a human is at the terminal: stdin
// and stdout are terminals and neither XSDLEAF_NON_INTERACTIVE=1 nor
// CI is set
func isInteractive() bool {
	if os.Getenv("XSDLEAF_NON_INTERACTIVE") == "1" || os.Getenv("CI") != "" {
		return false
	}
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}
