package report

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/pterm/pterm"
)

var (
	errorStyleBG = pterm.NewStyle(pterm.BgRed, pterm.FgWhite)
	errorColorFG = pterm.FgRed
	warnStyleBG  = pterm.NewStyle(pterm.BgYellow, pterm.FgBlack)
	warnColorFG  = pterm.FgYellow
	infoColorFG  = pterm.FgLightGreen
	okColorFG    = pterm.FgLightGreen
)

// display prints one diagnostic according to the reporter's configured
// format.
func (r *Reporter) display(ce *CompileError, isError bool) {
	if r.Format == FormatJSON {
		displayJSON(ce, isError)
		return
	}

	displayBanner(ce, isError)
	fmt.Println(Plain(ce.Fragments))

	if ce.Span != nil {
		displaySpan(ce.Span)
	}
}

func displayBanner(ce *CompileError, isError bool) {
	fmt.Print("\n-- ")
	if isError {
		errorStyleBG.Print(ce.ErrKind.String())
	} else {
		warnStyleBG.Print(ce.ErrKind.String())
	}

	if ce.Span != nil && ce.Span.ModuleName != "" {
		fmt.Print(" ")
		infoColorFG.Println("in " + ce.Span.ModuleName)
	} else {
		fmt.Println()
	}
}

// displaySpan prints the line/column range of the offending construct.  The
// core pipeline does not itself own source text (lexing/parsing is out of
// scope here), so this only prints the coordinates, not a rendered source
// excerpt.
func displaySpan(s *Span) {
	if s.StartLine == s.EndLine {
		fmt.Printf("   at line %d, col %d-%d\n", s.StartLine, s.StartCol, s.EndCol)
	} else {
		fmt.Printf("   at line %d col %d - line %d col %d\n", s.StartLine, s.StartCol, s.EndLine, s.EndCol)
	}
}

type jsonSpan struct {
	Module              string `json:"module,omitempty"`
	StartLine, StartCol int
	EndLine, EndCol     int
}

type jsonDiagnostic struct {
	Kind    string    `json:"kind"`
	Message string    `json:"message"`
	IsError bool      `json:"is_error"`
	Span    *jsonSpan `json:"span,omitempty"`
}

func displayJSON(ce *CompileError, isError bool) {
	d := jsonDiagnostic{
		Kind:    ce.ErrKind.String(),
		Message: Plain(ce.Fragments),
		IsError: isError,
	}

	if ce.Span != nil {
		d.Span = &jsonSpan{
			Module:    ce.Span.ModuleName,
			StartLine: ce.Span.StartLine,
			StartCol:  ce.Span.StartCol,
			EndLine:   ce.Span.EndLine,
			EndCol:    ce.Span.EndCol,
		}
	}

	enc := json.NewEncoder(os.Stdout)
	_ = enc.Encode(d)
}

// displayFinished prints the closing summary line for a compile run.
func displayFinished(errorCount, warningCount int) {
	fmt.Print("\n")

	if errorCount == 0 {
		okColorFG.Print("done ")
	} else {
		errorColorFG.Print("failed ")
	}

	fmt.Print("(")
	colorCount(errorCount, errorColorFG, "error", "errors")
	fmt.Print(", ")
	colorCount(warningCount, warnColorFG, "warning", "warnings")
	fmt.Println(")")
}

func colorCount(n int, color pterm.Color, singular, plural string) {
	if n == 0 {
		okColorFG.Print(0)
	} else {
		color.Print(n)
	}

	fmt.Print(" ")
	if n == 1 {
		fmt.Print(singular)
	} else {
		fmt.Print(plural)
	}
}

// PrintFatal prints a standalone fatal message (CLI misuse, missing module
// config) outside of any reporter context.
func PrintFatal(tag, msg string) {
	errorStyleBG.Print(tag)
	errorColorFG.Println(" " + msg)
}

// PrintInfo prints a standalone informational banner, eg for `version`.
func PrintInfo(tag, msg string) {
	pterm.NewStyle(pterm.BgLightGreen, pterm.FgBlack).Print(tag)
	infoColorFG.Println(" " + msg)
}
