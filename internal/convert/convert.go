package convert

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"asslrc/internal/ass"
	"asslrc/internal/karaoke"
	"asslrc/internal/logging"
	"asslrc/internal/textutil"
	"asslrc/internal/timecode"
)

// Options controls document conversion.
type Options struct {
	Policy           karaoke.RemainderPolicy
	Workers          int
	IncludeComments  bool
	NormalizeUnicode bool
	Logger           *slog.Logger
}

// DefaultOptions returns the classic settings: truncating remainder policy
// with Comment events included, on a single worker.
func DefaultOptions() Options {
	return Options{
		Policy:          karaoke.PolicyTruncate,
		Workers:         1,
		IncludeComments: true,
	}
}

// Converter converts ASS documents into LRC lines.
type Converter struct {
	opts   Options
	logger *slog.Logger
}

// New builds a Converter. A nil logger discards output.
func New(opts Options) *Converter {
	if opts.Workers < 1 {
		opts.Workers = 1
	}
	return &Converter{
		opts:   opts,
		logger: logging.NewComponentLogger(opts.Logger, "convert"),
	}
}

// Convert converts a document with DefaultOptions and returns the output
// lines in source order.
func Convert(document string) []string {
	result, err := New(DefaultOptions()).Document(context.Background(), document)
	if err != nil {
		return nil
	}
	return result.Output()
}

// LineResult is one converted karaoke event.
type LineResult struct {
	Number int
	Event  ass.Dialogue
	Line   *karaoke.Line
	Output string
}

// Diagnostic ties a recoverable problem to its 1-based source line.
type Diagnostic struct {
	Line int
	Err  error
}

func (d Diagnostic) Error() string {
	return fmt.Sprintf("line %d: %v", d.Line, d.Err)
}

func (d Diagnostic) Unwrap() error {
	return d.Err
}

// Result holds everything produced for one document.
type Result struct {
	Lines       []LineResult
	Diagnostics []Diagnostic
	SourceLines int
	Skipped     int
}

// Output returns the serialized LRC lines.
func (r *Result) Output() []string {
	if r == nil {
		return nil
	}
	out := make([]string, 0, len(r.Lines))
	for _, line := range r.Lines {
		out = append(out, line.Output)
	}
	return out
}

// Text joins the output lines, each terminated by a newline.
func (r *Result) Text() string {
	var b strings.Builder
	for _, line := range r.Output() {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	return b.String()
}

type lineOutcome struct {
	result  *LineResult
	diags   []Diagnostic
	skipped bool
}

// Document converts every karaoke event in document. It only fails when ctx
// is cancelled.
func (c *Converter) Document(ctx context.Context, document string) (*Result, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	logger := logging.WithContext(ctx, c.logger)
	lines := textutil.SplitLines(document)
	outcomes := make([]lineOutcome, len(lines))

	if err := c.run(ctx, lines, outcomes); err != nil {
		return nil, err
	}

	result := &Result{SourceLines: len(lines)}
	for _, outcome := range outcomes {
		if outcome.skipped {
			result.Skipped++
		}
		result.Diagnostics = append(result.Diagnostics, outcome.diags...)
		if outcome.result != nil {
			result.Lines = append(result.Lines, *outcome.result)
		}
	}
	for _, diag := range result.Diagnostics {
		logging.WarnWithContext(logger, "karaoke line problem", "convert_diagnostic",
			logging.Int(logging.FieldLine, diag.Line),
			logging.Error(diag.Err),
			logging.String(logging.FieldErrorHint, hintFor(diag.Err)),
			logging.String(logging.FieldImpact, impactFor(diag.Err)),
		)
	}
	logger.Debug("document converted",
		logging.Int("source_lines", result.SourceLines),
		logging.Int("converted_lines", len(result.Lines)),
		logging.Int("skipped_lines", result.Skipped),
		logging.Int("diagnostics", len(result.Diagnostics)),
	)
	return result, nil
}

func (c *Converter) run(ctx context.Context, lines []string, outcomes []lineOutcome) error {
	workers := c.opts.Workers
	if workers > len(lines) {
		workers = len(lines)
	}
	if workers <= 1 {
		for i, line := range lines {
			if err := ctx.Err(); err != nil {
				return err
			}
			outcomes[i] = c.convertLine(i+1, line)
		}
		return nil
	}

	indexes := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range indexes {
				outcomes[i] = c.convertLine(i+1, lines[i])
			}
		}()
	}
feed:
	for i := range lines {
		select {
		case <-ctx.Done():
			break feed
		case indexes <- i:
		}
	}
	close(indexes)
	wg.Wait()
	return ctx.Err()
}

func (c *Converter) convertLine(number int, raw string) lineOutcome {
	event, err := ass.ParseDialogue(raw)
	if err != nil {
		if errors.Is(err, ass.ErrUnmatchedLine) {
			return lineOutcome{skipped: true}
		}
		return lineOutcome{skipped: true, diags: []Diagnostic{{Line: number, Err: err}}}
	}
	if event.Kind == ass.EventComment && !c.opts.IncludeComments {
		return lineOutcome{skipped: true}
	}
	text := event.Text
	if c.opts.NormalizeUnicode {
		text = textutil.NormalizeLyric(text)
	}
	if text == "" {
		return lineOutcome{skipped: true}
	}

	line, karaokeDiags := karaoke.Convert(text, event.Start, c.opts.Policy)
	outcome := lineOutcome{
		result: &LineResult{
			Number: number,
			Event:  event,
			Line:   line,
			Output: karaoke.Render(line),
		},
	}
	for _, d := range karaokeDiags {
		outcome.diags = append(outcome.diags, Diagnostic{Line: number, Err: d})
	}
	return outcome
}

func hintFor(err error) string {
	switch {
	case errors.Is(err, timecode.ErrMalformedTimestamp):
		return "event times must look like H:MM:SS.CC"
	case errors.Is(err, karaoke.ErrDanglingContinuation):
		return "a #|< continuation must follow a base|<reading tag"
	case errors.Is(err, karaoke.ErrInvalidDuration):
		return "karaoke durations are centiseconds and must fit an integer"
	default:
		return "check the source line"
	}
}

func impactFor(err error) string {
	if errors.Is(err, timecode.ErrMalformedTimestamp) {
		return "line skipped"
	}
	return "tag dropped; rest of line converted"
}
