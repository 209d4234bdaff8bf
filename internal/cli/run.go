package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/aretw0/stepwise"
	"github.com/aretw0/stepwise/internal/presentation/tui"
	"github.com/aretw0/stepwise/pkg/domain"
	"github.com/aretw0/stepwise/pkg/manifest"
	"github.com/aretw0/stepwise/pkg/observability"
	"github.com/aretw0/stepwise/pkg/ports"
	"github.com/aretw0/stepwise/pkg/prompter"
	"github.com/prometheus/client_golang/prometheus"
)

// ErrCancelled is returned when the user leaves the flow before it finishes.
var ErrCancelled = errors.New("cancelled")

// RunOptions contains all the configuration for the Run command.
type RunOptions struct {
	Path        string   // Manifest file or directory of question documents
	JSON        bool     // Prompts as NDJSON on stdin/stdout
	Debug       bool
	LogFormat   string
	Set         []string // key=value answers that are never asked
	Suggest     []string // key=value answers offered as the pre-selected choice
	Output      string   // yaml or json
	MetricsAddr string
	NoBanner    bool

	// Stdin and Stdout replace the process streams; when set, answers are read line by line.
	Stdin  io.Reader
	Stdout io.Writer
}

// Execute runs the wizard described by the manifest and writes the answers to Stdout.
func Execute(ctx context.Context, opts RunOptions) error {
	logger := createLogger(opts.Debug, opts.LogFormat)
	out := opts.Stdout
	if out == nil {
		out = os.Stdout
	}

	def, err := LoadManifest(ctx, opts.Path)
	if err != nil {
		return err
	}
	initial, err := manifest.ParseAssignments(def, opts.Set)
	if err != nil {
		return err
	}
	implicit, err := manifest.ParseAssignments(def, opts.Suggest)
	if err != nil {
		return err
	}

	term := newTerminal(opts, out)
	defer term.Close()

	if !opts.JSON && !opts.NoBanner {
		tui.PrintBanner(out, stepwise.Version)
		if def.Title != "" {
			printSystemMessage(out, "%s", def.Title)
		}
	}

	f, err := manifest.Build(def, term)
	if err != nil {
		return err
	}

	hooks := domain.LifecycleHooks{}
	if opts.Debug {
		hooks = hooks.Merge(observability.LogHooks(logger))
	}
	if opts.MetricsAddr != "" {
		reg := prometheus.NewRegistry()
		metrics, err := observability.NewMetrics(reg)
		if err != nil {
			return fmt.Errorf("failed to register metrics: %w", err)
		}
		hooks = hooks.Merge(metrics.Hooks())
		stop := serveMetrics(opts.MetricsAddr, reg, logger)
		defer stop()
	}

	w := stepwise.New[manifest.Answers](f,
		stepwise.WithInitialState(initial),
		stepwise.WithImplicitState(implicit),
		stepwise.WithExitPrompter[manifest.Answers](func(manifest.Answers) ports.Prompter[bool] {
			return prompter.ExitConfirm(term)
		}),
		stepwise.WithLogger[manifest.Answers](logger),
		stepwise.WithLifecycleHooks[manifest.Answers](hooks),
	)

	answers, err := w.Run(ctx)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, prompter.ErrInterrupted) {
			if !opts.JSON {
				printSystemMessage(out, "%s", cancelMessage(ctx))
			}
			return ErrCancelled
		}
		return err
	}
	if answers == nil {
		if !opts.JSON {
			printSystemMessage(out, "Cancelled.")
		}
		return ErrCancelled
	}

	format := opts.Output
	if format == "" && opts.JSON {
		format = OutputJSON
	}
	if !opts.JSON {
		fmt.Fprintln(out)
	}
	return WriteAnswers(out, *answers, format)
}

// cancelMessage names what stopped the run. SignalContext reports the OS signal, if any.
func cancelMessage(ctx context.Context) string {
	sc, ok := ctx.(interface{ Signal() os.Signal })
	if !ok {
		return "Cancelled."
	}
	switch sig := sc.Signal(); {
	case sig == os.Interrupt:
		return "Interrupted."
	case sig != nil:
		return "Terminated."
	}
	return "Cancelled."
}

func newTerminal(opts RunOptions, out io.Writer) *prompter.Terminal {
	in := opts.Stdin
	if in == nil {
		in = os.Stdin
	}

	switch {
	case opts.JSON:
		// Human-readable headers go to stderr; stdout carries only JSON.
		return prompter.NewTerminal(
			prompter.WithReader(prompter.NewJSONReader(in, out)),
			prompter.WithOutput(os.Stderr),
			prompter.WithPickers(false),
		)
	case opts.Stdin != nil:
		return prompter.NewTerminal(
			prompter.WithReader(prompter.NewLineReader(in, out)),
			prompter.WithOutput(out),
			prompter.WithPickers(false),
		)
	default:
		return prompter.NewTerminal(
			prompter.WithOutput(out),
			prompter.WithRenderer(tui.NewRenderer(80)),
		)
	}
}
