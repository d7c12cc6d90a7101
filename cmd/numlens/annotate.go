package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"runtime"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"numlens/internal/annotate"
	"numlens/internal/cache"
	"numlens/internal/config"
	"numlens/internal/highlight"
	"numlens/internal/observ"
	"numlens/internal/report"
	"numlens/internal/trace"
	"numlens/internal/ui"
	"numlens/internal/watch"
)

var annotateCmd = &cobra.Command{
	Use:   "annotate [flags] report...",
	Short: "Render source with compiler annotations",
	Long: `Annotate renders each report's source with the compiler annotations for
every line. Intermediates named with --ir are interleaved under the lines
they were lowered from (--inline) or printed as separate sections
(--separate).`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAnnotate,
}

func init() {
	annotateCmd.Flags().StringArray("ir", nil, "intermediate to include (repeatable)")
	annotateCmd.Flags().Bool("inline", false, "interleave intermediates under their source lines")
	annotateCmd.Flags().Bool("separate", false, "print intermediates in their own sections")
	annotateCmd.Flags().Bool("highlight", false, "highlight Python and LLVM IR (needs colour output)")
	annotateCmd.Flags().Int("jobs", runtime.GOMAXPROCS(0), "number of reports rendered in parallel")
	annotateCmd.Flags().Bool("watch", false, "re-render reports when they change")
	annotateCmd.Flags().Bool("cache", false, "reuse rendered reports from the disk cache")
	annotateCmd.MarkFlagsMutuallyExclusive("inline", "separate")
}

// annotateOptions is the resolved configuration of one annotate run.
type annotateOptions struct {
	intermediates []string
	inline        bool
	highlight     bool
	color         bool
	style         string
	jobs          int
	timings       bool
	cache         *cache.DiskCache
	highlighter   *highlight.Highlighter
}

// cacheOptions lists everything besides the report bytes that changes the output.
func (o annotateOptions) cacheOptions() []string {
	return []string{
		strings.Join(o.intermediates, ","),
		strconv.FormatBool(o.inline),
		strconv.FormatBool(o.highlight),
		strconv.FormatBool(o.color),
		o.style,
	}
}

func runAnnotate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	opts, err := annotateOptionsFrom(cmd, cfg)
	if err != nil {
		return err
	}
	watchMode, err := cmd.Flags().GetBool("watch")
	if err != nil {
		return fmt.Errorf("failed to get watch flag: %w", err)
	}

	ctx := cmd.Context()
	out, errOut := cmd.OutOrStdout(), cmd.ErrOrStderr()
	if err := annotateAll(ctx, out, errOut, args, opts); err != nil {
		return err
	}
	if !watchMode {
		return nil
	}

	w, err := watch.New(args, watch.DefaultDebounce)
	if err != nil {
		return fmt.Errorf("failed to watch reports: %w", err)
	}
	defer w.Close()
	fmt.Fprintf(cmd.ErrOrStderr(), "watching %d report(s), press Ctrl-C to stop\n", len(args))
	return w.Run(ctx, func(changed []string) error {
		if err := annotateAll(ctx, out, errOut, changed, opts); err != nil {
			// A report caught mid-write fails to decode; the next write retries.
			fmt.Fprintf(cmd.ErrOrStderr(), "error: %v\n", err)
		}
		return nil
	})
}

func annotateOptionsFrom(cmd *cobra.Command, cfg config.Config) (annotateOptions, error) {
	opts := annotateOptions{
		intermediates: cfg.Annotate.Intermediates,
		inline:        cfg.Annotate.Inline,
		highlight:     cfg.Annotate.Highlight,
		style:         cfg.Highlight.Style,
	}
	flags := cmd.Flags()

	if flags.Changed("ir") {
		irs, err := flags.GetStringArray("ir")
		if err != nil {
			return opts, fmt.Errorf("failed to get ir flag: %w", err)
		}
		opts.intermediates = irs
	}
	if flags.Changed("inline") {
		inline, err := flags.GetBool("inline")
		if err != nil {
			return opts, fmt.Errorf("failed to get inline flag: %w", err)
		}
		opts.inline = inline
	}
	if flags.Changed("separate") {
		separate, err := flags.GetBool("separate")
		if err != nil {
			return opts, fmt.Errorf("failed to get separate flag: %w", err)
		}
		opts.inline = !separate
	}
	if flags.Changed("highlight") {
		hl, err := flags.GetBool("highlight")
		if err != nil {
			return opts, fmt.Errorf("failed to get highlight flag: %w", err)
		}
		opts.highlight = hl
	}

	jobs, err := flags.GetInt("jobs")
	if err != nil {
		return opts, fmt.Errorf("failed to get jobs flag: %w", err)
	}
	opts.jobs = max(jobs, 1)

	if opts.timings, err = cmd.Root().PersistentFlags().GetBool("timings"); err != nil {
		return opts, fmt.Errorf("failed to get timings flag: %w", err)
	}

	useColor, err := colorEnabled(cmd, os.Stdout)
	if err != nil {
		return opts, err
	}
	opts.color = useColor
	if opts.highlight && !opts.color {
		trace.Point(trace.FromContext(cmd.Context()), trace.ScopeCommand, "highlight", "skipped: colour output is off")
		opts.highlight = false
	}
	if opts.highlight {
		opts.highlighter = highlight.Probe(highlight.Options{
			Style:   opts.style,
			Tracer:  trace.FromContext(cmd.Context()),
			Warning: cmd.ErrOrStderr(),
		})
	}

	useCache := cfg.Cache.Enabled
	if flags.Changed("cache") {
		if useCache, err = flags.GetBool("cache"); err != nil {
			return opts, fmt.Errorf("failed to get cache flag: %w", err)
		}
	}
	if useCache {
		dc, err := cache.Open(cfg.Cache.Dir)
		if err != nil {
			return opts, fmt.Errorf("failed to open cache: %w", err)
		}
		opts.cache = dc
	}
	return opts, nil
}

// annotateAll renders paths concurrently and writes them in argument order.
// Timings, when enabled, follow on errOut in the same order.
func annotateAll(ctx context.Context, out, errOut io.Writer, paths []string, opts annotateOptions) error {
	rendered := make([]string, len(paths))
	timers := make([]*observ.Timer, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.jobs)
	for i, path := range paths {
		if opts.timings {
			timers[i] = observ.NewTimer()
		}
		g.Go(func() error {
			text, err := renderReport(gctx, path, opts, timers[i])
			if err != nil {
				return err
			}
			rendered[i] = text
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for i, text := range rendered {
		if len(paths) > 1 {
			if i > 0 {
				fmt.Fprintln(out)
			}
			fmt.Fprintf(out, "==> %s <==\n", paths[i])
		}
		if _, err := io.WriteString(out, text); err != nil {
			return err
		}
	}
	for i, tm := range timers {
		if tm != nil {
			fmt.Fprint(errOut, tm.Summary(paths[i]))
		}
	}
	return nil
}

// renderReport decodes and renders one report. tm may be nil.
func renderReport(ctx context.Context, path string, opts annotateOptions, tm *observ.Timer) (string, error) {
	tracer := trace.FromContext(ctx)
	span := trace.Begin(tracer, trace.ScopeStage, "annotate", trace.CurrentSpan(ctx))
	defer span.End(path)
	ctx = trace.WithSpan(ctx, span)

	var r *report.Report
	err := tm.Time("decode", func() (err error) {
		r, err = report.Open(ctx, path)
		return err
	})
	if err != nil {
		return "", err
	}

	var key cache.Digest
	if opts.cache != nil {
		key = cache.Key(r.Raw, opts.cacheOptions()...)
		idx := tm.Begin("cache")
		entry, ok, err := opts.cache.Get(key)
		note := "miss"
		if ok {
			note = "hit"
		}
		tm.End(idx, note)
		switch {
		case err != nil:
			trace.Warn(tracer, "cache", fmt.Sprintf("%s: %v", path, err))
		case ok:
			span.WithExtra("cache", "hit")
			return entry.Output, nil
		}
		span.WithExtra("cache", "miss")
	}

	p := r.Program()
	if opts.highlighter != nil {
		err := tm.Time("highlight", func() (err error) {
			p, err = opts.highlighter.HighlightProgram(p)
			return err
		})
		if err != nil {
			return "", fmt.Errorf("%s: %w", path, err)
		}
	}

	var buf bytes.Buffer
	err = tm.Time("render", func() error {
		rw := ui.NewReportWriter(&buf, opts.color)
		return annotate.RenderText(rw, p, annotate.TextOptions{Intermediates: opts.intermediates, Inline: opts.inline})
	})
	if err != nil {
		return "", fmt.Errorf("%s: %w", path, err)
	}

	if opts.cache != nil {
		if err := opts.cache.Put(key, &cache.Entry{Source: path, Output: buf.String()}); err != nil {
			trace.Warn(tracer, "cache", fmt.Sprintf("%s: %v", path, err))
		}
	}
	return buf.String(), nil
}
