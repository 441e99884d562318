package report

// FragmentKind distinguishes the styled pieces that make up a diagnostic
// message.  Splitting a message into fragments lets the text renderer
// colorize code snippets differently from prose and lets the JSON renderer
// emit a structured message instead of a single opaque string.
type FragmentKind int

const (
	FragText FragmentKind = iota
	FragCode
	FragSpan
)

// Fragment is one piece of a diagnostic message.
type Fragment struct {
	Kind FragmentKind
	Text string

	// Span is set only when Kind == FragSpan; it lets a message point at a
	// secondary location distinct from the error's primary Span.
	Span *Span
}

// Text builds a plain-prose fragment.
func Text(s string) Fragment { return Fragment{Kind: FragText, Text: s} }

// Code builds a fragment that should be rendered as inline code (an
// identifier, a type representation, an operator).
func Code(s string) Fragment { return Fragment{Kind: FragCode, Text: s} }

// AtSpan builds a fragment referencing a secondary span.
func AtSpan(s *Span) Fragment { return Fragment{Kind: FragSpan, Span: s} }

// Plain renders a fragment list as unstyled text, used by the JSON
// renderer and by Error() implementations.
func Plain(frags []Fragment) string {
	out := ""
	for _, f := range frags {
		switch f.Kind {
		case FragCode:
			out += "`" + f.Text + "`"
		default:
			out += f.Text
		}
	}
	return out
}
