// Package tracing times units of work.
//
// Spans are intentionally simple: they carry an operation name and a set of
// key/value baggage items, and report their duration when finished.
package tracing

// Tracer starts spans.
type Tracer interface {
	StartSpan(operationName string) Span
}

// Span is a single timed operation.
type Span interface {
	SetBaggageItem(key string, value any)
	Finish()
}

var (
	_ Tracer = NopTracer{}
	_ Span   = nopSpan{}
)

// NopTracer discards all spans.
type NopTracer struct{}

//nolint:ireturn
func (NopTracer) StartSpan(string) Span {
	return nopSpan{}
}

type nopSpan struct{}

func (nopSpan) SetBaggageItem(string, any) {}

func (nopSpan) Finish() {}
