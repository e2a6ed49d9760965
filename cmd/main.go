package main

import (
	"CrashScan/internal"
	"CrashScan/internal/ai"
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/schollz/progressbar/v3"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:      "crashscan",
		Usage:     "Extract FATAL EXCEPTION incidents with trailing context from log files",
		ArgsUsage: "<logfile-or-dir> [...]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "pattern",
				Usage: "Case-insensitive regex marking an incident line",
				Value: internal.DefaultPattern,
			},
			&cli.IntFlag{
				Name:    "context",
				Aliases: []string{"A"},
				Usage:   "Lines of trailing context captured per incident",
				Value:   internal.DefaultContextLines,
			},
			&cli.BoolFlag{
				Name:  "no-ripgrep",
				Usage: "Skip the rg fast path and always scan in process",
			},
			&cli.IntFlag{
				Name:  "depth",
				Usage: "Max directory depth when expanding directory arguments (0 - unlimited)",
				Value: 0,
			},
			&cli.DurationFlag{
				Name:  "timeout",
				Usage: "Global timeout for the scan (e.g. 10m, 1h)",
			},
			&cli.StringFlag{
				Name:  "output",
				Usage: "Write the report to this file instead of stdout",
			},
			&cli.BoolFlag{
				Name:  "no-progress",
				Usage: "Disable the progress bar",
			},
			&cli.BoolFlag{
				Name:  "ai",
				Usage: "Summarize found crashes with Claude after the scan",
			},
			&cli.StringFlag{
				Name:  "ai-model",
				Usage: "AI model: haiku, sonnet or opus",
				Value: "sonnet",
			},
			&cli.StringFlag{
				Name:  "ai-token",
				Usage: "Anthropic API token (falls back to ANTHROPIC_API_KEY)",
			},
			&cli.DurationFlag{
				Name:  "ai-timeout",
				Usage: "Timeout for the AI request",
			},
			&cli.StringFlag{
				Name:  "logfile",
				Usage: "Write logs into file instead of stdout",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "Log level: debug, info, warn, error",
				Value: "info",
			},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		logrus.Fatal(err)
	}
}

func run(c *cli.Context) error {
	internal.InitLogger(c.String("logfile"), c.String("log-level"))
	logrus.Info("crashscan started")

	// ctx with timeout + OS signals
	base := context.Background()
	var cancel context.CancelFunc
	if t := c.Duration("timeout"); t > 0 {
		base, cancel = context.WithTimeout(base, t)
	} else {
		base, cancel = context.WithCancel(base)
	}
	defer cancel()

	ctx, stop := signal.NotifyContext(base, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if c.Args().Len() == 0 {
		return cli.Exit("No log files provided", 1)
	}
	files, err := internal.CollectLogFiles(ctx, c.Args().Slice(), c.Int("depth"))
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}
	if len(files) == 0 {
		return cli.Exit("No log files found under the given paths", 1)
	}

	opts := internal.ScanOptions{
		Paths:        files,
		Pattern:      c.String("pattern"),
		ContextLines: c.Int("context"),
		NoRipgrep:    c.Bool("no-ripgrep"),
	}
	if err := opts.Validate(); err != nil {
		return cli.Exit(err.Error(), 1)
	}

	var stats internal.AppStats
	stats.Start()

	var bar *progressbar.ProgressBar
	if !c.Bool("no-progress") {
		bar = progressbar.NewOptions(len(files),
			progressbar.OptionSetDescription("scanning"),
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionShowCount(),
			progressbar.OptionClearOnFinish(),
		)
	}
	sink := func(ev internal.ProgressEvent) {
		switch ev.Kind {
		case internal.ProgressFileStarted:
			stats.FilesStarted.Add(1)
			logrus.WithFields(logrus.Fields{
				"file":  ev.Path,
				"index": fmt.Sprintf("%d/%d", ev.FileIndex, ev.TotalFiles),
				"bytes": ev.SizeBytes,
			}).Debug("scanning file")
			if bar != nil {
				bar.Describe(filepath.Base(ev.Path))
			}
		case internal.ProgressFileFinished:
			// the bar tracks completed files, not started ones
			if bar != nil {
				_ = bar.Add(1)
			}
		}
	}

	report, err := internal.NewScanner().Scan(ctx, opts, sink)
	if bar != nil {
		_ = bar.Finish()
	}
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			logrus.Warnf("Scan cancelled after %d of %d file(s)", stats.FilesStarted.Load(), len(files))
			return cli.Exit("cancelled", 130)
		}
		logrus.WithError(err).Error("Scan failed")
		return cli.Exit(err.Error(), 1)
	}

	if skipErr := report.SkippedError(); skipErr != nil {
		logrus.WithError(skipErr).Warn("Some files were skipped")
	}

	text := internal.RenderText(report)
	if out := c.String("output"); out != "" {
		if err := os.WriteFile(out, []byte(text), 0644); err != nil {
			return cli.Exit(fmt.Sprintf("write report: %v", err), 1)
		}
		logrus.Infof("Report written to %s", out)
	} else {
		fmt.Print(text)
	}

	if c.Bool("ai") && report.TotalBlocks() > 0 {
		summarize(ctx, c, text)
	}

	fmt.Printf(
		"\n======= Scan finished in %s =======\nFiles scanned: %d\nFiles skipped: %d\nCrashes found: %d\n",
		stats.Elapsed(), report.FilesScanned(), report.FilesSkipped(), report.TotalBlocks(),
	)
	return nil
}

// summarize is best-effort: AI trouble never fails a finished scan.
func summarize(ctx context.Context, c *cli.Context, reportText string) {
	client, err := ai.NewClient(c.String("ai-model"), c.String("ai-token"), c.Duration("ai-timeout"))
	if err != nil {
		logrus.WithError(err).Error("AI summarization unavailable")
		return
	}
	summary, err := client.Summarize(ctx, reportText)
	if err != nil {
		logrus.WithError(err).Error("AI summarization failed")
		return
	}
	fmt.Printf("\n======= AI Analysis =======\n%s\n", summary)
}
