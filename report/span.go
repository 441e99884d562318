package report

// Span represents a range of source text.  Spans are inclusive on both
// sides: the starting position is the first character of the span and the
// ending position is the last character of the span.  Lines and columns are
// one-indexed to match the conventions of editors and the entry-point
// diagnostics the CLI prints.
type Span struct {
	ModuleName string

	StartLine, StartCol int
	EndLine, EndCol     int
}

// Over returns a new span which spans over and between the two given spans.
func Over(start, end *Span) *Span {
	return &Span{
		ModuleName: start.ModuleName,
		StartLine:  start.StartLine,
		StartCol:   start.StartCol,
		EndLine:    end.EndLine,
		EndCol:     end.EndCol,
	}
}
