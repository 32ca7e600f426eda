// Package command implements the editor command that wraps a class attribute
// in a helper call: host preconditions, planning, one atomic edit, and
// user-facing error surfacing.
package command

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	"github.com/Sumatoshi-tech/classwrap/pkg/document"
	"github.com/Sumatoshi-tech/classwrap/pkg/langid"
	"github.com/Sumatoshi-tech/classwrap/pkg/observability"
	"github.com/Sumatoshi-tech/classwrap/pkg/rewrite"
)

// CommandID is the stable identifier hosts register the command under.
const CommandID = "extension.clsx-custom"

// Title is the human-readable command name.
const Title = "Wrap class in helper call"

const (
	spanName = "classwrap.command"
	opName   = "rewrite"
)

// Host precondition errors.
var (
	ErrNoActiveEditor         = errors.New("must have an active editor open")
	ErrUnsupportedContentType = errors.New("must be jsx or tsx to use clsx-custom")
)

// Error is an invocation failure as shown to the user.
type Error struct {
	Cause error
}

// Error renders the message with the generic "Error:" label.
func (e *Error) Error() string {
	return "Error: " + e.Cause.Error()
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Kind returns a stable short name for err, used as a metric label.
func Kind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrNoActiveEditor):
		return "no_active_editor"
	case errors.Is(err, ErrUnsupportedContentType):
		return "unsupported_content_type"
	case errors.Is(err, rewrite.ErrNotFound):
		return "not_found"
	case errors.Is(err, rewrite.ErrOutOfScope):
		return "out_of_scope"
	case errors.Is(err, rewrite.ErrParse):
		return "parse_error"
	case errors.Is(err, rewrite.ErrNoInsertionPoint):
		return "no_insertion_point"
	default:
		return "edit_failed"
	}
}

// Deps holds injectable collaborators. Zero-value fields use defaults.
type Deps struct {
	// Logger receives surfaced errors and applied rewrites. Nil uses slog.Default.
	Logger *slog.Logger

	// Metrics records one request per invocation. Nil disables metrics.
	Metrics *observability.REDMetrics

	// Tracer creates one span per invocation. Nil disables tracing.
	Tracer trace.Tracer

	// Languages lists the accepted content types. Nil uses langid.DefaultSupported.
	Languages []string
}

// Command rewrites the class attribute under the caret of a host document.
type Command struct {
	rewriter  *rewrite.Rewriter
	logger    *slog.Logger
	metrics   *observability.REDMetrics
	tracer    trace.Tracer
	languages []string
}

// New creates a command that plans with rw.
func New(rw *rewrite.Rewriter, deps Deps) *Command {
	cmd := &Command{
		rewriter:  rw,
		logger:    deps.Logger,
		metrics:   deps.Metrics,
		tracer:    deps.Tracer,
		languages: deps.Languages,
	}

	if cmd.logger == nil {
		cmd.logger = slog.Default()
	}

	if cmd.tracer == nil {
		cmd.tracer = nooptrace.NewTracerProvider().Tracer("")
	}

	return cmd
}

// ID returns CommandID.
func (c *Command) ID() string {
	return CommandID
}

// Rewriter returns the rewriter the command plans with.
func (c *Command) Rewriter() *rewrite.Rewriter {
	return c.rewriter
}

// Prepare checks the host preconditions and plans the rewrite without
// touching the host buffer. A nil host, or a BufferHost without a buffer,
// means no editor is open.
func (c *Command) Prepare(host Host) (*rewrite.Result, error) {
	if host == nil {
		return nil, ErrNoActiveEditor
	}

	if bh, ok := host.(*BufferHost); ok && (bh == nil || bh.Buffer == nil) {
		return nil, ErrNoActiveEditor
	}

	lang := host.LanguageID()
	if !langid.Supported(lang, c.languages) {
		return nil, fmt.Errorf("%w: content type %q", ErrUnsupportedContentType, lang)
	}

	caret := document.Position{Line: host.CaretLine(), Column: host.CaretColumn()}

	return c.rewriter.PlanLine(host.CurrentLine(), caret, hostDocument{host: host})
}

// Execute prepares the rewrite and submits it to the host as one transaction.
// On any error the host has not been asked to edit anything.
func (c *Command) Execute(ctx context.Context, host Host) (*rewrite.Result, error) {
	res, err := c.Prepare(host)
	if err != nil {
		return nil, err
	}

	err = host.ApplyEdit(ctx, res.Transaction())
	if err != nil {
		return nil, fmt.Errorf("apply edit: %w", err)
	}

	return res, nil
}

// Run is Execute wrapped with tracing, metrics and logging. Failures come
// back as *Error so hosts can show them verbatim.
func (c *Command) Run(ctx context.Context, host Host) (*rewrite.Result, error) {
	ctx, span := c.tracer.Start(ctx, spanName,
		trace.WithAttributes(attribute.String("command.id", CommandID)),
	)
	defer span.End()

	start := time.Now()

	if c.metrics != nil {
		defer c.metrics.TrackInflight(ctx, opName)()
	}

	res, err := c.Execute(ctx, host)
	if err != nil {
		kind := Kind(err)
		surfaced := &Error{Cause: err}

		span.RecordError(err)
		span.SetStatus(codes.Error, kind)
		c.logger.ErrorContext(ctx, surfaced.Error(), slog.String("kind", kind))
		c.record(ctx, observability.StatusError, kind, start)

		return nil, surfaced
	}

	span.SetAttributes(
		attribute.Int("rewrite.line", res.Line),
		attribute.Bool("rewrite.import_added", res.Import != nil),
	)
	c.logger.DebugContext(ctx, "class attribute rewritten",
		slog.String("class_name", res.ClassName),
		slog.Int("line", res.Line),
		slog.Bool("import_added", res.Import != nil),
	)
	c.record(ctx, observability.StatusOK, "", start)

	return res, nil
}

func (c *Command) record(ctx context.Context, status, kind string, start time.Time) {
	if c.metrics == nil {
		return
	}

	c.metrics.RecordRequest(ctx, opName, status, kind, time.Since(start))
}
