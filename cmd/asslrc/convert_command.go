package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"asslrc/internal/clipboard"
	"asslrc/internal/config"
	"asslrc/internal/convert"
	"asslrc/internal/fileutil"
	"asslrc/internal/history"
	"asslrc/internal/karaoke"
	"asslrc/internal/logging"
	"asslrc/internal/textutil"
)

const (
	inputExtension = ".ass"
	stdoutTarget   = "-"
	stdinLabel     = "<stdin>"
	clipboardLabel = "<clipboard>"
	stdoutLabel    = "<stdout>"
)

var errNotASS = errors.New("input must have a .ass extension")

type convertFlags struct {
	output        string
	stdin         bool
	fromClipboard bool
	toClipboard   bool
	policy        string
	workers       int
	noComments    bool
	normalize     bool
}

// document is one input to convert.
type document struct {
	label string
	path  string
	text  string
}

func newConvertCommand(ctx *commandContext) *cobra.Command {
	var flags convertFlags

	cmd := &cobra.Command{
		Use:   "convert [file.ass...]",
		Short: "Convert ASS karaoke files to LRC",
		Long: "Convert every karaoke Dialogue/Comment event of the given .ass files.\n" +
			"Each output is written next to its input with the configured extension\n" +
			"(default .lrc). Use --stdin or --from-clipboard to convert text without a file.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(cmd, ctx, flags, args)
		},
	}

	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "Output path for a single input (\"-\" for stdout)")
	cmd.Flags().BoolVar(&flags.stdin, "stdin", false, "Read the ASS document from standard input")
	cmd.Flags().BoolVar(&flags.fromClipboard, "from-clipboard", false, "Read the ASS document from the clipboard")
	cmd.Flags().BoolVar(&flags.toClipboard, "clipboard", false, "Copy the converted LRC text to the clipboard")
	cmd.Flags().StringVar(&flags.policy, "policy", "", "Remainder policy override (truncate or carry)")
	cmd.Flags().IntVarP(&flags.workers, "workers", "j", 0, "Worker count override")
	cmd.Flags().BoolVar(&flags.noComments, "no-comments", false, "Skip Comment events")
	cmd.Flags().BoolVar(&flags.normalize, "normalize", false, "Compose decomposed kana (NFC) before converting")
	cmd.MarkFlagsMutuallyExclusive("stdin", "from-clipboard")

	return cmd
}

func runConvert(cmd *cobra.Command, cmdCtx *commandContext, flags convertFlags, args []string) error {
	cfg, err := cmdCtx.ensureConfig()
	if err != nil {
		return err
	}
	logger, err := cmdCtx.ensureLogger()
	if err != nil {
		return err
	}

	docs, err := collectDocuments(cmd.InOrStdin(), flags, args)
	if err != nil {
		return err
	}
	if flags.output != "" && len(docs) > 1 {
		return errors.New("--output requires exactly one input")
	}

	opts, err := converterOptions(cfg, logger)
	if err != nil {
		return err
	}
	if err := applyConvertOverrides(&opts, flags); err != nil {
		return err
	}
	converter := convert.New(opts)

	var store *history.Store
	if cfg.History.Enabled {
		store, err = cmdCtx.openHistory()
		if err != nil {
			logging.WarnWithContext(logger, "history unavailable", "history_open_failed",
				logging.Error(err),
				logging.String(logging.FieldErrorHint, "check paths.history_db or disable [history]"),
				logging.String(logging.FieldImpact, "conversion not recorded"),
			)
		} else {
			defer store.Close()
		}
	}

	ctx := cmdCtx.runContext(cmd)
	colorize := shouldColorize(cmd.ErrOrStderr())
	var clip strings.Builder

	for _, doc := range docs {
		docCtx := logging.WithSource(ctx, doc.label)
		result, err := converter.Document(docCtx, doc.text)
		if err != nil {
			return err
		}

		dest := outputTarget(cfg, flags, doc)
		text := result.Text()
		if dest == stdoutTarget {
			if _, err := io.WriteString(cmd.OutOrStdout(), text); err != nil {
				return fmt.Errorf("write output: %w", err)
			}
		} else if err := fileutil.WriteFileAtomic(docCtx, dest, []byte(text), 0o644); err != nil {
			return fmt.Errorf("%s: %w", doc.label, err)
		}
		if flags.toClipboard {
			clip.WriteString(text)
		}

		recordHistory(docCtx, store, logger, cmdCtx.runID, doc, dest, opts.Policy, result)
		logging.WithContext(docCtx, logger).Info("document converted",
			logging.String("output", dest),
			logging.Int("converted_lines", len(result.Lines)),
			logging.Int("skipped_lines", result.Skipped),
			logging.Int("diagnostics", len(result.Diagnostics)),
		)
		fmt.Fprintln(cmd.ErrOrStderr(), renderConversionSummary(doc.label, dest, result, colorize))
	}

	if flags.toClipboard {
		if err := clipboard.WriteAll(clip.String()); err != nil {
			return fmt.Errorf("copy to clipboard: %w", err)
		}
		fmt.Fprintln(cmd.ErrOrStderr(), renderStatusLine("Clipboard", statusOK, "output copied", colorize))
	}
	return nil
}

func collectDocuments(stdin io.Reader, flags convertFlags, args []string) ([]document, error) {
	switch {
	case flags.stdin:
		if len(args) > 0 {
			return nil, errors.New("--stdin does not take file arguments")
		}
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return []document{{label: stdinLabel, text: string(data)}}, nil
	case flags.fromClipboard:
		if len(args) > 0 {
			return nil, errors.New("--from-clipboard does not take file arguments")
		}
		text, err := clipboard.ReadAll()
		if err != nil {
			return nil, err
		}
		return []document{{label: clipboardLabel, text: text}}, nil
	}

	if len(args) == 0 {
		return nil, errors.New("no input files (pass .ass paths, --stdin or --from-clipboard)")
	}
	docs := make([]document, 0, len(args))
	for _, arg := range args {
		doc, err := readDocument(arg)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

func readDocument(path string) (document, error) {
	if !textutil.HasExtension(path, inputExtension) {
		return document{}, fmt.Errorf("%s: %w", path, errNotASS)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return document{}, fmt.Errorf("resolve %s: %w", path, err)
	}
	data, err := os.ReadFile(abs)
	if err != nil {
		return document{}, fmt.Errorf("read input: %w", err)
	}
	return document{label: path, path: abs, text: string(data)}, nil
}

func applyConvertOverrides(opts *convert.Options, flags convertFlags) error {
	if strings.TrimSpace(flags.policy) != "" {
		policy, err := karaoke.ParseRemainderPolicy(flags.policy)
		if err != nil {
			return err
		}
		opts.Policy = policy
	}
	if flags.workers < 0 {
		return fmt.Errorf("--workers must be positive, got %d", flags.workers)
	}
	if flags.workers > 0 {
		opts.Workers = flags.workers
	}
	if flags.noComments {
		opts.IncludeComments = false
	}
	if flags.normalize {
		opts.NormalizeUnicode = true
	}
	return nil
}

// outputTarget returns the destination path, or stdoutTarget.
func outputTarget(cfg *config.Config, flags convertFlags, doc document) string {
	if out := strings.TrimSpace(flags.output); out != "" {
		return out
	}
	if doc.path == "" {
		return stdoutTarget
	}
	return textutil.ReplaceExtension(doc.path, cfg.Convert.OutputExtension)
}

func recordHistory(ctx context.Context, store *history.Store, logger *slog.Logger, runID string, doc document, dest string, policy karaoke.RemainderPolicy, result *convert.Result) {
	if store == nil {
		return
	}
	source := doc.path
	if source == "" {
		source = doc.label
	}
	if dest == stdoutTarget {
		dest = stdoutLabel
	}
	_, err := store.Record(ctx, history.Entry{
		RunID:           runID,
		SourcePath:      source,
		OutputPath:      dest,
		RemainderPolicy: policy.String(),
		SourceLines:     result.SourceLines,
		ConvertedLines:  len(result.Lines),
		SkippedLines:    result.Skipped,
		Diagnostics:     len(result.Diagnostics),
	})
	if err != nil {
		logging.WarnWithContext(logging.WithContext(ctx, logger), "history record failed", "history_record_failed",
			logging.Error(err),
			logging.String(logging.FieldImpact, "conversion not recorded"),
		)
	}
}

func renderConversionSummary(label, dest string, result *convert.Result, colorize bool) string {
	kind := statusOK
	if len(result.Diagnostics) > 0 {
		kind = statusWarn
	}
	if len(result.Lines) == 0 {
		kind = statusWarn
	}
	if dest == stdoutTarget {
		dest = stdoutLabel
	}
	message := fmt.Sprintf("%d lines -> %s (%d skipped, %d warnings)",
		len(result.Lines), dest, result.Skipped, len(result.Diagnostics))
	return renderStatusLine(filepath.Base(label), kind, message, colorize)
}
