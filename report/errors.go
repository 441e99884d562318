package report

import "fmt"

// Kind enumerates the error taxonomy for the compiler's diagnostics.
type Kind int

const (
	KindParse Kind = iota
	KindDeclaration
	KindType
	KindLinearity
	KindInstance
	KindCli
	KindInternal
)

func (k Kind) String() string {
	switch k {
	case KindParse:
		return "ParseError"
	case KindDeclaration:
		return "DeclarationError"
	case KindType:
		return "TypeError"
	case KindLinearity:
		return "LinearityError"
	case KindInstance:
		return "InstanceError"
	case KindCli:
		return "CliError"
	default:
		return "InternalError"
	}
}

// CompileError is a fully formed, reportable diagnostic.  It is the type
// every stage of the pipeline ultimately produces; it satisfies the `error`
// interface so it composes naturally with ordinary Go error handling.
type CompileError struct {
	ErrKind   Kind
	Fragments []Fragment
	Span      *Span
}

func (ce *CompileError) Error() string {
	return ce.ErrKind.String() + ": " + Plain(ce.Fragments)
}

// New builds a CompileError from a kind, a span (nilable), and a printf-style
// message which is wrapped as a single text fragment.
func New(kind Kind, span *Span, format string, args ...interface{}) *CompileError {
	return &CompileError{
		ErrKind:   kind,
		Fragments: []Fragment{Text(fmt.Sprintf(format, args...))},
		Span:      span,
	}
}

// Newf builds a CompileError from an explicit fragment list, used when a
// message mixes prose and `Code` fragments (eg. naming a mismatched type).
func Newf(kind Kind, span *Span, frags ...Fragment) *CompileError {
	return &CompileError{ErrKind: kind, Fragments: frags, Span: span}
}

// -----------------------------------------------------------------------------

// LocalError is a compile error raised from deep within a stage's recursive
// walk, where only the local call site knows the message but the enclosing
// stage owns the span-adornment and reporting.  It is always thrown with
// `panic` and caught by `CatchErrors`: a lightweight stand-in for
// exception-style error propagation.
type LocalError struct {
	ErrKind Kind
	Message string
}

func (le *LocalError) Error() string { return le.Message }

// Raise panics with a LocalError; it is called from deep within checker
// logic where unwinding back to the owning stage via an explicit error
// return would require threading an error value through every recursive
// call. The nearest deferred CatchErrors converts it into a reported,
// span-adorned CompileError.
func Raise(kind Kind, format string, args ...interface{}) {
	panic(&LocalError{ErrKind: kind, Message: fmt.Sprintf(format, args...)})
}

// CatchErrors recovers a panicked LocalError (or a plain Go error) raised
// during the walk of a single declaration/statement/expression, reports it
// against the given span, and swallows the panic so the pipeline can
// continue to the next declaration within the same stage. It must always be
// deferred. Any other panic value is re-raised: it indicates an invariant
// violation the compiler believes it cannot safely recover from (InternalError
// territory), not a condition CatchErrors owns.
func CatchErrors(rep *Reporter, span *Span) {
	if x := recover(); x != nil {
		switch v := x.(type) {
		case *LocalError:
			rep.Report(&CompileError{ErrKind: v.ErrKind, Fragments: []Fragment{Text(v.Message)}, Span: span})
		case error:
			rep.Report(New(KindInternal, span, "%s", v.Error()))
		default:
			panic(x)
		}
	}
}
