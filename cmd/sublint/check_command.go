package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"sublint/internal/lint"
	"sublint/internal/logging"
	"sublint/internal/report"
	"sublint/internal/services"
)

// errFindings makes --strict runs exit non-zero without printing twice.
var errFindings = errors.New("warnings reported")

type checkOptions struct {
	video     string
	full      bool
	format    string
	summary   bool
	strict    bool
	focus     string
	selection []int
}

func newCheckCommand(ctx *commandContext) *cobra.Command {
	var opts checkOptions

	cmd := &cobra.Command{
		Use:   "check <subtitles>",
		Short: "Run quality checks on a subtitle file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := report.ParseFormat(opts.format)
			if err != nil {
				return err
			}
			if strings.TrimSpace(opts.focus) != "" {
				return runFocus(cmd, ctx, args[0], opts)
			}
			return runCheck(cmd, ctx, args[0], format, opts)
		},
	}

	cmd.Flags().StringVar(&opts.video, "video", "", "Video file for scene boundary and resolution checks")
	cmd.Flags().BoolVar(&opts.full, "full", false, "Also run expensive checks (timing, grammar)")
	cmd.Flags().StringVar(&opts.format, "format", "text", "Output format: text or json")
	cmd.Flags().BoolVar(&opts.summary, "summary", false, "Print a per-check summary table")
	cmd.Flags().BoolVar(&opts.strict, "strict", false, "Exit non-zero when any warning is reported")
	cmd.Flags().StringVar(&opts.focus, "focus", "", "Select the next or prev event with warnings")
	cmd.Flags().IntSliceVar(&opts.selection, "select", nil, "Currently selected event numbers (1-based) for --focus")
	return cmd
}

func runCheck(cmd *cobra.Command, ctx *commandContext, path string, format report.Format, opts checkOptions) error {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return err
	}
	logger, err := ctx.ensureLogger()
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}

	runID := uuid.NewString()
	runCtx := services.WithRunID(cmd.Context(), runID)
	logger = logging.WithContext(runCtx, logger)

	out := cmd.OutOrStdout()
	var (
		collector *report.Collector
		sink      lint.Sink
	)
	if format == report.FormatJSON {
		collector = &report.Collector{}
		sink = collector
	} else {
		sink = report.NewTextSink(out, colorFor(out))
	}

	s, err := openSession(runCtx, cfg, logger, sink, sessionOptions{subtitles: path, video: opts.video, full: opts.full})
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := s.Close(); closeErr != nil {
			logger.Warn("failed to close session", logging.Error(closeErr))
		}
	}()

	runner := lint.NewRunner(s.entries, logger)
	var summary lint.Summary
	if collector != nil {
		for v := range runner.Violations(runCtx, s.lc) {
			collector.Add(v)
		}
		summary = lint.Tally(collector.Violations())
		if err := report.WriteJSON(out, collector.Document(path, opts.video, runID)); err != nil {
			return fmt.Errorf("write report: %w", err)
		}
	} else {
		summary = runner.Run(runCtx, s.lc)
		if opts.summary {
			fmt.Fprintln(out, report.SummaryTable(s.entryNames(), summary))
		}
	}
	if err := runCtx.Err(); err != nil {
		return err
	}

	logger.Info("lint run finished",
		logging.String(logging.FieldDocument, path),
		logging.Int("warnings", summary.Warnings),
		logging.Int("info", summary.Info),
	)
	if opts.strict && summary.Warnings > 0 {
		return fmt.Errorf("%w: %d", errFindings, summary.Warnings)
	}
	return nil
}

func runFocus(cmd *cobra.Command, ctx *commandContext, path string, opts checkOptions) error {
	dir, err := lint.ParseDirection(opts.focus)
	if err != nil {
		return err
	}
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return err
	}
	logger, err := ctx.ensureLogger()
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	runCtx := services.WithRunID(cmd.Context(), uuid.NewString())

	out := cmd.OutOrStdout()
	s, err := openSession(runCtx, cfg, logger, report.NewTextSink(out, colorFor(out)), sessionOptions{subtitles: path, video: opts.video, full: opts.full})
	if err != nil {
		return err
	}
	defer s.Close()

	doc := s.document()
	doc.Selection = doc.Selection[:0]
	for _, number := range opts.selection {
		if number < 1 || number > len(doc.Events) {
			return fmt.Errorf("selected event #%d out of range (1-%d)", number, len(doc.Events))
		}
		doc.Selection = append(doc.Selection, number-1)
	}

	index, ok := lint.NewNavigator(s.entries, logger).Focus(runCtx, s.lc, dir)
	if !ok {
		fmt.Fprintln(out, "No events with warnings")
		return nil
	}
	fmt.Fprintf(out, "Selected #%d\n", index+1)
	return nil
}

func colorFor(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && report.ColorEnabled(f)
}
