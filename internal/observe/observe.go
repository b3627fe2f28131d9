package observe

import (
	"context"
	"io"

	"github.com/felixgeelhaar/bolt/v3"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("toxicmates")

// Observer bundles logging, tracing and metrics for the network.
type Observer struct {
	log     *bolt.Logger
	metrics *Metrics
}

// New creates an Observer with console output.
// If verbose is false, only warnings and errors are shown.
func New(out io.Writer, verbose bool) *Observer {
	return newObserver(bolt.New(bolt.NewConsoleHandler(out)), verbose)
}

// NewJSON creates an Observer with JSON output.
// If verbose is false, only warnings and errors are shown.
func NewJSON(out io.Writer, verbose bool) *Observer {
	return newObserver(bolt.New(bolt.NewJSONHandler(out)), verbose)
}

// Discard returns an Observer that writes nothing. Metrics are still kept.
func Discard() *Observer {
	return New(io.Discard, false)
}

func newObserver(l *bolt.Logger, verbose bool) *Observer {
	if !verbose {
		l.SetLevel(bolt.WARN)
	}
	return &Observer{
		log:     l,
		metrics: NewMetrics(),
	}
}

// Log returns the underlying logger
func (o *Observer) Log() *bolt.Logger {
	return o.log
}

func (o *Observer) Metrics() *Metrics {
	return o.metrics
}

// StartSpan starts an OTel span tagged with the member it concerns.
func (o *Observer) StartSpan(ctx context.Context, name, member string) (context.Context, trace.Span) {
	return tracer.Start(ctx, name, trace.WithAttributes(attribute.String("member", member)))
}

// Close flushes buffered output. Console and JSON handlers write through, so
// there is nothing to flush yet.
func (o *Observer) Close() error {
	return nil
}
