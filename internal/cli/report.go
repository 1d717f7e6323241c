package cli

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/andaru/xsdleaf/xsderr"
)

var (
	yellow = color.New(color.FgYellow).SprintFunc()
	green  = color.New(color.FgGreen).SprintFunc()
)

func successMark() string { return green("✓") }

func printWarnings(w io.Writer, warnings []*xsderr.Error) {
	for _, e := range warnings {
		fmt.Fprintln(w, yellow("warning: ")+describe(e))
	}
}

// describe renders a warning for people, without the severity prefix
func describe(e *xsderr.Error) string {
	s := e.Kind.String()
	if e.Path != "" {
		s += " at " + e.Path
	}
	if e.Type != "" {
		s += " (type " + e.Type + ")"
	}
	if e.Message != "" {
		s += ": " + e.Message
	}
	return s
}
