package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"

	"asslrc/internal/convert"
	"asslrc/internal/karaoke"
	"asslrc/internal/timecode"
)

const previewWidth = 48

type inspectDocument struct {
	Source      string              `json:"source" yaml:"source"`
	Policy      string              `json:"remainder_policy" yaml:"remainder_policy"`
	SourceLines int                 `json:"source_lines" yaml:"source_lines"`
	Skipped     int                 `json:"skipped_lines" yaml:"skipped_lines"`
	Lines       []inspectLine       `json:"lines" yaml:"lines"`
	Diagnostics []inspectDiagnostic `json:"diagnostics,omitempty" yaml:"diagnostics,omitempty"`
}

type inspectLine struct {
	Line   int           `json:"line" yaml:"line"`
	Event  string        `json:"event" yaml:"event"`
	Style  string        `json:"style,omitempty" yaml:"style,omitempty"`
	Start  string        `json:"start" yaml:"start"`
	End    string        `json:"end" yaml:"end"`
	Chars  int           `json:"chars" yaml:"chars"`
	Groups int           `json:"groups" yaml:"groups"`
	Items  []inspectItem `json:"items" yaml:"items"`
	Output string        `json:"output" yaml:"output"`
}

type inspectItem struct {
	Kind     string           `json:"kind" yaml:"kind"`
	Text     string           `json:"text,omitempty" yaml:"text,omitempty"`
	Time     string           `json:"time,omitempty" yaml:"time,omitempty"`
	Base     string           `json:"base,omitempty" yaml:"base,omitempty"`
	Readings []inspectReading `json:"readings,omitempty" yaml:"readings,omitempty"`
}

type inspectReading struct {
	Text string `json:"text" yaml:"text"`
	Time string `json:"time" yaml:"time"`
	Head bool   `json:"head,omitempty" yaml:"head,omitempty"`
}

type inspectDiagnostic struct {
	Line  int    `json:"line" yaml:"line"`
	Error string `json:"error" yaml:"error"`
}

func newInspectCommand(ctx *commandContext) *cobra.Command {
	var format string
	var policy string

	cmd := &cobra.Command{
		Use:   "inspect <file.ass|->",
		Short: "Show the karaoke timeline of each converted line",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			doc, err := inspectInput(cmd.InOrStdin(), args[0])
			if err != nil {
				return err
			}
			opts, err := converterOptions(cfg, logger)
			if err != nil {
				return err
			}
			if err := applyConvertOverrides(&opts, convertFlags{policy: policy}); err != nil {
				return err
			}

			result, err := convert.New(opts).Document(ctx.runContext(cmd), doc.text)
			if err != nil {
				return err
			}
			view := buildInspectDocument(doc.label, opts.Policy, result)

			switch strings.ToLower(strings.TrimSpace(format)) {
			case "", "table":
				return writeInspectTable(cmd.OutOrStdout(), view)
			case "json":
				return writeJSON(cmd, view)
			case "yaml", "yml":
				return writeYAML(cmd, view)
			default:
				return fmt.Errorf("unsupported output format %q (want table, json or yaml)", format)
			}
		},
	}

	cmd.Flags().StringVarP(&format, "output", "o", "table", "Output format: table, json or yaml")
	cmd.Flags().StringVar(&policy, "policy", "", "Remainder policy override (truncate or carry)")
	return cmd
}

func inspectInput(stdin io.Reader, arg string) (document, error) {
	if arg == stdoutTarget {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return document{}, fmt.Errorf("read stdin: %w", err)
		}
		return document{label: stdinLabel, text: string(data)}, nil
	}
	return readDocument(arg)
}

func buildInspectDocument(source string, policy karaoke.RemainderPolicy, result *convert.Result) inspectDocument {
	view := inspectDocument{
		Source:      source,
		Policy:      policy.String(),
		SourceLines: result.SourceLines,
		Skipped:     result.Skipped,
		Lines:       make([]inspectLine, 0, len(result.Lines)),
	}
	for _, lr := range result.Lines {
		view.Lines = append(view.Lines, inspectLine{
			Line:   lr.Number,
			Event:  string(lr.Event.Kind),
			Style:  lr.Event.Style,
			Start:  timecode.FormatSource(lr.Line.Start),
			End:    timecode.FormatSource(lr.Line.End),
			Chars:  lr.Line.CharCount(),
			Groups: lr.Line.GroupCount(),
			Items:  inspectItems(lr.Line),
			Output: lr.Output,
		})
	}
	for _, diag := range result.Diagnostics {
		view.Diagnostics = append(view.Diagnostics, inspectDiagnostic{Line: diag.Line, Error: diag.Err.Error()})
	}
	return view
}

func inspectItems(line *karaoke.Line) []inspectItem {
	items := make([]inspectItem, 0, len(line.Items))
	for _, item := range line.Items {
		switch v := item.(type) {
		case *karaoke.Element:
			items = append(items, inspectItem{Kind: "plain", Text: v.Text, Time: v.Time.Format()})
		case *karaoke.KanjiGroup:
			group := inspectItem{Kind: "kanji", Base: v.Base}
			for _, reading := range v.Readings {
				group.Readings = append(group.Readings, inspectReading{
					Text: reading.Text,
					Time: reading.Time.Format(),
					Head: reading.Kind == karaoke.KindFuriganaHead,
				})
			}
			items = append(items, group)
		}
	}
	return items
}

func writeInspectTable(out io.Writer, view inspectDocument) error {
	headers := []string{"Line", "Event", "Start", "End", "Chars", "Groups", "Output"}
	rows := make([][]string, 0, len(view.Lines))
	for _, line := range view.Lines {
		rows = append(rows, []string{
			strconv.Itoa(line.Line),
			line.Event,
			line.Start,
			line.End,
			strconv.Itoa(line.Chars),
			strconv.Itoa(line.Groups),
			text.Snip(line.Output, previewWidth, "…"),
		})
	}
	aligns := []columnAlignment{alignRight, alignLeft, alignLeft, alignLeft, alignRight, alignRight, alignLeft}

	fmt.Fprintf(out, "%s: %d karaoke lines, %d skipped of %d (policy %s)\n",
		view.Source, len(view.Lines), view.Skipped, view.SourceLines, view.Policy)
	if len(rows) > 0 {
		fmt.Fprintln(out, renderTable(headers, rows, aligns))
	}
	for _, diag := range view.Diagnostics {
		fmt.Fprintf(out, "line %d: %s\n", diag.Line, diag.Error)
	}
	return nil
}
