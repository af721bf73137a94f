// Command marquee runs an interactive scrolling-text console.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/term"

	"github.com/dkoosis/marquee/internal/config"
	"github.com/dkoosis/marquee/internal/logging"
	"github.com/dkoosis/marquee/internal/metrics"
	"github.com/dkoosis/marquee/internal/render"
	"github.com/dkoosis/marquee/internal/version"
	"github.com/dkoosis/marquee/pkg/marquee"
)

const goodbye = "Marquee Console shutting down... Thank you for using our system!"

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// run executes the command line and returns the exit code, so tests can
// drive it without os.Exit.
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	root := newRootCmd(stdin, stdout)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	if err := root.Execute(); err != nil {
		_, _ = fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// console runs one session until exit, end of input or a signal.
func console(ctx context.Context, cfg *config.ResolvedConfig, stdin io.Reader, stdout io.Writer) error {
	logger, closeLog, err := logging.Open(cfg.LogFile, cfg.Debug)
	if err != nil {
		return err
	}
	defer func() { _ = closeLog() }()

	logger.Debug("config resolved",
		"text_source", cfg.TextSource,
		"speed_source", cfg.SpeedSource,
		"width_source", cfg.WidthSource,
		"plain_source", cfg.PlainSource,
		"no_color_source", cfg.NoColorSource)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts := render.Options{FixedWidth: cfg.Width, NoColor: cfg.NoColor, Version: version.Version}
	var (
		renderer render.Renderer
		input    io.Reader
	)
	if cfg.Plain || !isTerminal(stdin) || !isTerminal(stdout) {
		renderer = render.NewLine(stdout, opts)
		input = stdin
	} else {
		renderer = render.NewTUI(stdin, stdout, opts)
	}

	rec := metrics.NewRecorder()
	session := marquee.NewSession(marquee.SessionConfig{
		Config:   cfg.Marquee,
		Width:    renderer.Width,
		Input:    input,
		Logger:   logger,
		Observer: rec,
	})
	session.Start(ctx)

	renderErr := renderer.Run(ctx, session)
	session.Stop()
	session.Wait()
	readErr := session.ReaderErr()
	if readErr != nil {
		logger.Warn("input closed with error", "error", readErr)
	}

	_, _ = fmt.Fprintln(stdout, goodbye)
	if report, err := rec.Report(); err == nil {
		_, _ = fmt.Fprintln(stdout, report.Summary())
	}

	var metricsErr error
	if cfg.MetricsFile != "" {
		metricsErr = rec.WriteFile(cfg.MetricsFile)
	}
	return errors.Join(renderErr, readErr, metricsErr)
}

func isTerminal(v any) bool {
	f, ok := v.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
