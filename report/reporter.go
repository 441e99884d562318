package report

// Enumeration of log levels, ordered from quietest to most verbose.
const (
	LogLevelSilent = iota
	LogLevelError
	LogLevelWarning
	LogLevelVerbose
)

// Format selects how diagnostics are rendered: plain text or JSON.
type Format int

const (
	FormatText Format = iota
	FormatJSON
)

// Reporter accumulates diagnostics for one compile invocation.  The core
// pipeline is single-threaded and non-suspending, so there is no mutex:
// only one goroutine is ever live during analysis.
type Reporter struct {
	LogLevel int
	Format   Format

	errors   []*CompileError
	warnings []*CompileError
}

// NewReporter creates a reporter at the given log level and output format.
func NewReporter(level int, format Format) *Reporter {
	return &Reporter{LogLevel: level, Format: format}
}

// Report records an error-level diagnostic and displays it immediately in
// verbose/warning/error modes, rather than batching errors to the end.
func (r *Reporter) Report(ce *CompileError) {
	r.errors = append(r.errors, ce)

	if r.LogLevel > LogLevelSilent {
		r.display(ce, true)
	}
}

// Warn records a warning-level diagnostic.  Warnings are held until
// Finish() so they print after all of a stage's errors.
func (r *Reporter) Warn(ce *CompileError) {
	r.warnings = append(r.warnings, ce)
}

// ErrorCount returns the number of errors reported so far.
func (r *Reporter) ErrorCount() int { return len(r.errors) }

// ShouldProceed reports whether the pipeline has accumulated any errors
// that should halt the current stage.
func (r *Reporter) ShouldProceed() bool { return len(r.errors) == 0 }

// Errors returns the accumulated errors in report order.
func (r *Reporter) Errors() []*CompileError { return r.errors }

// Finish flushes queued warnings and prints the closing summary line.
func (r *Reporter) Finish() {
	if r.LogLevel >= LogLevelWarning {
		for _, w := range r.warnings {
			r.display(w, false)
		}
	}

	if r.LogLevel == LogLevelVerbose {
		displayFinished(len(r.errors), len(r.warnings))
	}
}
