package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/dshills/rangesel/internal/config"
	"github.com/dshills/rangesel/internal/logging"
	"github.com/dshills/rangesel/internal/script"
	"github.com/dshills/rangesel/internal/watcher"
)

// runner replays scripts and prints their outcome.
type runner struct {
	cfg    config.Config
	logger *logging.Logger
	out    io.Writer
}

// replay loads and runs the script at path. The final state is printed even
// when a step fails.
func (r *runner) replay(ctx context.Context, path string) error {
	doc, err := script.Load(path)
	if err != nil {
		return err
	}

	log := r.logger.WithField("script", path)
	result, runErr := script.Run(ctx, doc, log,
		script.WithContinueOnError(!r.cfg.Script.StopOnError),
		script.WithMaxHistory(r.cfg.History.MaxEntries),
	)
	var stepErr *script.StepError
	if runErr != nil && !errors.As(runErr, &stepErr) {
		return fmt.Errorf("%s: %w", path, runErr)
	}

	printResult(r.out, path, result)
	if stepErr != nil {
		return fmt.Errorf("%s: %w", path, stepErr)
	}
	if n := len(result.Failed); n > 0 {
		log.Warn("%d of %d steps failed", n, len(doc.Steps))
	}
	return nil
}

func printResult(w io.Writer, path string, result script.Result) {
	state := result.State
	ranges := state.Ranges()
	text := state.SelectedText()

	fmt.Fprintf(w, "%s\n", path)
	fmt.Fprintf(w, "  ranges:  %s\n", ranges)
	fmt.Fprintf(w, "  focused: %d\n", ranges.FocusedRangeIndex())
	for i, rng := range ranges.Ranges() {
		fmt.Fprintf(w, "  [%d] %s %q\n", i, rng, text[i])
	}
	fmt.Fprintf(w, "  history: %d entries\n", state.History().Len())
}

// shouldReplay reports whether a debounced change leaves a script to replay.
// Coalesced events may carry a remove followed by a re-create.
func shouldReplay(ev watcher.Event) bool {
	if ev.Op.Has(watcher.OpCreate) || ev.Op.Has(watcher.OpWrite) {
		return true
	}
	_, err := os.Stat(ev.Path)
	return err == nil
}
