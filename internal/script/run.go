package script

import (
	"context"
	"fmt"
	"slices"

	"github.com/dshills/rangesel/internal/engine"
	"github.com/dshills/rangesel/internal/engine/selection"
	"github.com/dshills/rangesel/internal/logging"
)

// StepResult is the outcome of one step.
type StepResult struct {
	Index  int
	Op     string
	Ranges selection.RangeList
	Err    error
}

// Result is the outcome of a replay.
type Result struct {
	// State is the state after the last applied step.
	State engine.State
	// Trace holds one entry per step that was attempted.
	Trace []StepResult
	// Failed holds the step errors that did not stop the replay.
	Failed []*StepError
}

type runOptions struct {
	continueOnError bool
	maxHistory      int
}

// Option configures Run.
type Option func(*runOptions)

// WithContinueOnError records failing steps and carries on with the next
// one instead of stopping.
func WithContinueOnError(enable bool) Option {
	return func(o *runOptions) {
		o.continueOnError = enable
	}
}

// WithMaxHistory sets the history limit of the replayed state.
func WithMaxHistory(maxEntries int) Option {
	return func(o *runOptions) {
		o.maxHistory = maxEntries
	}
}

// Run replays doc. It stops at the first failing step, returning the partial
// result and a *StepError, unless WithContinueOnError is set.
// ctx is checked before each step.
func Run(ctx context.Context, doc Document, logger *logging.Logger, opts ...Option) (Result, error) {
	var o runOptions
	for _, opt := range opts {
		opt(&o)
	}
	log := logger.WithComponent("script")

	ranges, err := doc.rangeList()
	if err != nil {
		return Result{}, fmt.Errorf("initial ranges: %w", err)
	}
	state := engine.New(
		engine.WithText(doc.Text),
		engine.WithRangeList(ranges),
		engine.WithMaxHistory(o.maxHistory),
	)
	log.Debug("start %s with %d steps", state.Ranges(), len(doc.Steps))

	result := Result{State: state, Trace: make([]StepResult, 0, len(doc.Steps))}
	for i, step := range doc.Steps {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		next, err := apply(result.State, step)
		if err != nil {
			serr := &StepError{Index: i, Op: step.Op, Err: err}
			result.Trace = append(result.Trace, StepResult{Index: i, Op: step.Op, Ranges: result.State.Ranges(), Err: serr})
			if !o.continueOnError {
				return result, serr
			}
			log.Warn("%v", serr)
			result.Failed = append(result.Failed, serr)
			continue
		}

		result.State = next
		result.Trace = append(result.Trace, StepResult{Index: i, Op: step.Op, Ranges: next.Ranges()})
		log.Debug("step %d %s: %s", i, step.Op, next.Ranges())
	}

	return result, nil
}

// apply runs one step against s.
func apply(s engine.State, step Step) (engine.State, error) {
	switch step.Op {
	case "add":
		r, err := stepRange(step)
		if err != nil {
			return s, err
		}
		return s.SetRanges(s.Ranges().AddRange(r)), nil

	case "remove_at":
		index, err := stepIndex(step)
		if err != nil {
			return s, err
		}
		return s.UpdateRanges(func(l selection.RangeList) (selection.RangeList, error) {
			return l.RemoveRangeAtIndex(index)
		})

	case "remove":
		r, err := stepRange(step)
		if err != nil {
			return s, err
		}
		return s.UpdateRanges(func(l selection.RangeList) (selection.RangeList, error) {
			return l.RemoveRange(r)
		})

	case "focus":
		index, err := stepIndex(step)
		if err != nil {
			return s, err
		}
		return s.UpdateRanges(func(l selection.RangeList) (selection.RangeList, error) {
			return l.SetFocusedRangeIndex(index)
		})

	case "set":
		ranges, err := buildRanges(step.Ranges)
		if err != nil {
			return s, err
		}
		return s.UpdateRanges(func(l selection.RangeList) (selection.RangeList, error) {
			return l.SetRanges(ranges)
		})

	case "move_focus", "move_anchor":
		if step.Delta == nil {
			return s, fmt.Errorf("%s requires delta: %w", step.Op, ErrMissingField)
		}
		delta := *step.Delta
		move := selection.Range.MoveFocusOffset
		if step.Op == "move_anchor" {
			move = selection.Range.MoveAnchorOffset
		}
		return s.SetRanges(s.Ranges().UpdateFocusedRange(func(r selection.Range) selection.Range {
			return move(r, delta)
		})), nil

	case "flip":
		return s.SetRanges(s.Ranges().UpdateFocusedRange(selection.Range.Flip)), nil

	case "collapse":
		collapse, err := collapseFunc(step.To)
		if err != nil {
			return s, err
		}
		return s.SetRanges(s.Ranges().UpdateFocusedRange(collapse)), nil

	case "collapse_all":
		return s.SetRanges(s.Ranges().CollapseAll()), nil

	case "normalize":
		return s.SetRanges(s.Ranges().Normalize()), nil

	case "reset":
		return s.SetRanges(s.Ranges().Reset()), nil

	case "set_text":
		if step.Text == nil {
			return s, fmt.Errorf("set_text requires text: %w", ErrMissingField)
		}
		return s.SetText(*step.Text), nil

	case "commit":
		return s.Commit(), nil

	case "expect":
		return s, expect(s.Ranges(), step)

	default:
		return s, fmt.Errorf("%q: %w", step.Op, ErrUnknownOp)
	}
}

func stepRange(step Step) (selection.Range, error) {
	return RangeSpec{Anchor: step.Anchor, Focus: step.Focus}.Range()
}

func stepIndex(step Step) (int, error) {
	if step.Index == nil {
		return 0, fmt.Errorf("%s requires index: %w", step.Op, ErrMissingField)
	}
	return *step.Index, nil
}

func collapseFunc(to string) (func(selection.Range) selection.Range, error) {
	switch to {
	case "focus", "":
		return selection.Range.CollapseFocus, nil
	case "anchor":
		return selection.Range.CollapseAnchor, nil
	case "backwards":
		return selection.Range.CollapseBackwards, nil
	case "forwards":
		return selection.Range.CollapseForwards, nil
	default:
		return nil, fmt.Errorf("collapse to %q, want anchor, focus, backwards or forwards: %w",
			to, selection.ErrInvalidArgument)
	}
}

// expect compares l with the ranges and focused index named by step.
func expect(l selection.RangeList, step Step) error {
	if step.Ranges != nil {
		want, err := buildRanges(step.Ranges)
		if err != nil {
			return err
		}
		if !slices.EqualFunc(want, l.Ranges(), selection.Range.Equal) {
			return fmt.Errorf("got %s, want ranges %v: %w", l, want, ErrExpectationFailed)
		}
	}
	if step.Index != nil && *step.Index != l.FocusedRangeIndex() {
		return fmt.Errorf("got focused index %d, want %d: %w", l.FocusedRangeIndex(), *step.Index, ErrExpectationFailed)
	}
	return nil
}
