package script

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dshills/rangesel/internal/engine/selection"
	"github.com/dshills/rangesel/internal/logging"
	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func mustParse(t *testing.T, src string) Document {
	t.Helper()
	doc, err := Parse([]byte(src))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	return doc
}

func TestRun_Example(t *testing.T) {
	doc := mustParse(t, `
text: "hello brave new world"
ranges:
  - {anchor: 0, focus: 5}
focus: 0
steps:
  - {op: add, anchor: 6, focus: 11}
  - {op: move_focus, delta: 3}
  - {op: collapse, to: forwards}
  - {op: expect, ranges: [{anchor: 0, focus: 5}, {anchor: 14, focus: 14}], index: 1}
`)

	result, err := Run(context.Background(), doc, nil)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	want := selection.MustRangeList(
		selection.WithRanges(selection.NewRange(0, 5), selection.NewCollapsedRange(14)),
		selection.WithFocusedRangeIndex(1),
	)
	if diff := cmp.Diff(want, result.State.Ranges()); diff != "" {
		t.Errorf("ranges mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"hello", ""}, result.State.SelectedText()); diff != "" {
		t.Errorf("SelectedText() mismatch (-want +got):\n%s", diff)
	}
	if len(result.Trace) != 4 {
		t.Errorf("len(Trace) = %d, want 4", len(result.Trace))
	}
}

func TestRun_AllOps(t *testing.T) {
	doc := mustParse(t, `
text: "0123456789abcdefghij"
ranges:
  - {anchor: 2, focus: 4}
  - {anchor: 10, focus: 8}
steps:
  - {op: add, anchor: 15, focus: 17}
  - {op: focus, index: 1}
  - {op: flip}
  - {op: move_anchor, delta: -4}
  - {op: expect, ranges: [{anchor: 2, focus: 10}, {anchor: 15, focus: 17}], index: 0}
  - {op: move_focus, delta: 30}
  - {op: expect, ranges: [{anchor: 2, focus: 20}], index: 0}
  - op: set
    ranges:
      - {anchor: 0, focus: 1}
      - {anchor: 5, focus: 3}
      - {anchor: 12, focus: 12}
  - {op: remove_at, index: 0}
  - {op: remove, anchor: 12, focus: 12}
  - {op: add, anchor: 6, focus: 6}
  - {op: expect, ranges: [{anchor: 5, focus: 3}, {anchor: 6, focus: 6}], index: 1}
  - {op: focus, index: 0}
  - {op: collapse, to: forwards}
  - {op: collapse_all}
  - {op: normalize}
  - {op: expect, ranges: [{anchor: 5, focus: 5}, {anchor: 6, focus: 6}], index: 0}
  - {op: commit}
  - {op: set_text, text: "abc"}
  - {op: expect, ranges: [{anchor: 3, focus: 3}], index: 0}
  - {op: reset}
`)

	result, err := Run(context.Background(), doc, nil)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	want := selection.MustRangeList(selection.WithRanges(selection.NewCollapsedRange(3)))
	if diff := cmp.Diff(want, result.State.Ranges()); diff != "" {
		t.Errorf("ranges mismatch (-want +got):\n%s", diff)
	}
	if result.State.Text() != "abc" {
		t.Errorf("Text() = %q, want abc", result.State.Text())
	}

	h := result.State.History()
	if h.Len() != 1 {
		t.Fatalf("History().Len() = %d, want 1", h.Len())
	}
	entry, _ := h.Latest()
	if entry.Text != "0123456789abcdefghij" {
		t.Errorf("committed text = %q", entry.Text)
	}
}

func TestRun_StopsAtFirstError(t *testing.T) {
	doc := mustParse(t, `
ranges: [{anchor: 1, focus: 4}]
text: "abcdef"
steps:
  - {op: flip}
  - {op: remove_at, index: 5}
  - {op: flip}
`)

	result, err := Run(context.Background(), doc, nil)

	var serr *StepError
	if !errors.As(err, &serr) {
		t.Fatalf("Run() error = %v, want *StepError", err)
	}
	if serr.Index != 1 || serr.Op != "remove_at" {
		t.Errorf("StepError = %+v", serr)
	}
	if !errors.Is(err, selection.ErrIndexOutOfRange) {
		t.Errorf("error %v does not wrap ErrIndexOutOfRange", err)
	}
	if len(result.Trace) != 2 {
		t.Errorf("len(Trace) = %d, want 2", len(result.Trace))
	}
	if got := result.State.Ranges().FocusedRange(); !got.Equal(selection.NewRange(4, 1)) {
		t.Errorf("state after failure = %v, want Range(4←1)", got)
	}
}

func TestRun_ContinueOnError(t *testing.T) {
	doc := mustParse(t, `
ranges: [{anchor: 1, focus: 4}]
text: "abcdef"
steps:
  - {op: flip}
  - {op: remove_at, index: 5}
  - {op: flip}
`)
	core, logs := observer.New(zapcore.WarnLevel)

	result, err := Run(context.Background(), doc, logging.NewWithCore(core), WithContinueOnError(true))
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(result.Failed) != 1 || result.Failed[0].Index != 1 {
		t.Errorf("Failed = %v", result.Failed)
	}
	if len(result.Trace) != 3 || result.Trace[1].Err == nil {
		t.Errorf("Trace = %+v", result.Trace)
	}
	if got := result.State.Ranges().FocusedRange(); !got.Equal(selection.NewRange(1, 4)) {
		t.Errorf("final range = %v, want Range(1→4)", got)
	}

	entries := logs.All()
	if len(entries) != 1 || !strings.Contains(entries[0].Message, "step 1 (remove_at)") {
		t.Errorf("warn log = %+v", entries)
	}
	if entries[0].ContextMap()["component"] != "script" {
		t.Errorf("component = %v", entries[0].ContextMap()["component"])
	}
}

func TestRun_StepErrors(t *testing.T) {
	tests := []struct {
		name    string
		step    string
		wantErr error
	}{
		{"nan anchor", "{op: add, anchor: .nan, focus: 1}", selection.ErrInvalidArgument},
		{"nan focus", "{op: add, anchor: 1, focus: .nan}", selection.ErrInvalidArgument},
		{"string offset", "{op: add, anchor: three, focus: 1}", selection.ErrInvalidArgument},
		{"bool offset", "{op: remove, anchor: true, focus: 1}", selection.ErrInvalidArgument},
		{"fractional offset", "{op: add, anchor: 2.5, focus: 1}", selection.ErrInvalidArgument},
		{"infinite offset", "{op: add, anchor: .inf, focus: 1}", selection.ErrInvalidArgument},
		{"huge float offset", "{op: add, anchor: 1e300, focus: 1}", selection.ErrInvalidArgument},
		{"huge unsigned offset", "{op: add, anchor: 1, focus: 18446744073709551615}", selection.ErrInvalidArgument},
		{"bad set range", "{op: set, ranges: [{anchor: .nan}]}", selection.ErrInvalidArgument},
		{"empty set", "{op: set, ranges: []}", selection.ErrInvalidArgument},
		{"remove only range", "{op: remove_at, index: 0}", selection.ErrInvalidArgument},
		{"remove missing", "{op: remove, anchor: 3, focus: 4}", selection.ErrNotFound},
		{"focus out of range", "{op: focus, index: -1}", selection.ErrIndexOutOfRange},
		{"collapse sideways", "{op: collapse, to: sideways}", selection.ErrInvalidArgument},
		{"unknown op", "{op: twirl}", ErrUnknownOp},
		{"remove_at without index", "{op: remove_at}", ErrMissingField},
		{"focus without index", "{op: focus}", ErrMissingField},
		{"move without delta", "{op: move_focus}", ErrMissingField},
		{"set_text without text", "{op: set_text}", ErrMissingField},
		{"expect mismatch", "{op: expect, ranges: [{anchor: 1, focus: 1}]}", ErrExpectationFailed},
		{"expect focus", "{op: expect, index: 1}", ErrExpectationFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := mustParse(t, "text: abcdef\nsteps:\n  - "+tt.step+"\n")
			_, err := Run(context.Background(), doc, nil)

			var serr *StepError
			if !errors.As(err, &serr) {
				t.Fatalf("Run() error = %v, want *StepError", err)
			}
			if serr.Index != 0 {
				t.Errorf("Index = %d, want 0", serr.Index)
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Run() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestRun_WholeFloatOffset(t *testing.T) {
	doc := mustParse(t, "text: abcdef\nsteps:\n  - {op: add, anchor: 3.0, focus: 5}\n")
	result, err := Run(context.Background(), doc, nil)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if got := result.State.Ranges().FocusedRange(); !got.Equal(selection.NewRange(3, 5)) {
		t.Errorf("FocusedRange() = %v, want Range(3→5)", got)
	}
}

func TestRun_InitialRanges(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		wantErr error
	}{
		{"focus out of range", "ranges: [{anchor: 0, focus: 1}]\nfocus: 3\n", selection.ErrIndexOutOfRange},
		{"focus without ranges", "focus: 1\n", selection.ErrIndexOutOfRange},
		{"nan offset", "ranges: [{anchor: .nan, focus: 1}]\n", selection.ErrInvalidArgument},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Run(context.Background(), mustParse(t, tt.src), nil)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Run() error = %v, want %v", err, tt.wantErr)
			}
			var serr *StepError
			if errors.As(err, &serr) {
				t.Errorf("initial range errors should not be step errors: %v", err)
			}
		})
	}
}

func TestRun_InitialRangesClampedToText(t *testing.T) {
	doc := mustParse(t, "text: abc\nranges: [{anchor: 1, focus: 10}]\n")
	result, err := Run(context.Background(), doc, nil)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if got := result.State.Ranges().FocusedRange(); !got.Equal(selection.NewRange(1, 3)) {
		t.Errorf("FocusedRange() = %v, want Range(1→3)", got)
	}
}

func TestRun_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	doc := mustParse(t, "steps:\n  - {op: flip}\n")
	result, err := Run(ctx, doc, nil)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Run() error = %v, want context.Canceled", err)
	}
	if len(result.Trace) != 0 {
		t.Errorf("len(Trace) = %d, want 0", len(result.Trace))
	}
}

func TestRun_MaxHistory(t *testing.T) {
	doc := mustParse(t, "steps:\n  - {op: commit}\n  - {op: commit}\n  - {op: commit}\n")
	result, err := Run(context.Background(), doc, nil, WithMaxHistory(2))
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if got := result.State.History().Len(); got != 2 {
		t.Errorf("History().Len() = %d, want 2", got)
	}
}

func TestParse(t *testing.T) {
	doc, err := Parse(nil)
	if err != nil {
		t.Fatalf("Parse(nil) error = %v", err)
	}
	if len(doc.Steps) != 0 || doc.Text != "" {
		t.Errorf("Parse(nil) = %+v", doc)
	}

	if _, err := Parse([]byte("stpes: []\n")); err == nil {
		t.Error("expected error for unknown field")
	}
	if _, err := Parse([]byte("steps: {op: flip}\n")); err == nil {
		t.Error("expected error for steps that are not a list")
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "script.yaml")
	if err := os.WriteFile(path, []byte("text: hi\nsteps:\n  - {op: commit}\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	doc, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if doc.Text != "hi" || len(doc.Steps) != 1 || doc.Steps[0].Op != "commit" {
		t.Errorf("Load() = %+v", doc)
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Load(missing) error = %v, want os.ErrNotExist", err)
	}
}

func TestStepError(t *testing.T) {
	err := &StepError{Index: 2, Op: "flip", Err: ErrUnknownOp}
	if got := err.Error(); got != "step 2 (flip): unknown op" {
		t.Errorf("Error() = %q", got)
	}
	if !errors.Is(err, ErrUnknownOp) {
		t.Error("StepError should unwrap to its cause")
	}
}
