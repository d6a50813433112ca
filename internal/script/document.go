package script

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/dshills/rangesel/internal/engine/selection"
	"gopkg.in/yaml.v3"
)

// Document is a decoded script.
type Document struct {
	Text   string      `yaml:"text"`
	Ranges []RangeSpec `yaml:"ranges"`
	Focus  int         `yaml:"focus"`
	Steps  []Step      `yaml:"steps"`
}

// RangeSpec is a range as written in a script. Offsets are validated when
// the range is built.
type RangeSpec struct {
	Anchor any `yaml:"anchor"`
	Focus  any `yaml:"focus"`
}

// Range builds the selection range described by s.
func (s RangeSpec) Range() (selection.Range, error) {
	return selection.RangeFrom(selection.RangeArgs{AnchorOffset: s.Anchor, FocusOffset: s.Focus})
}

// Step is one edit in a script. Which fields are used depends on Op.
type Step struct {
	Op     string      `yaml:"op"`
	Anchor any         `yaml:"anchor"`
	Focus  any         `yaml:"focus"`
	Index  *int        `yaml:"index"`
	Delta  *int        `yaml:"delta"`
	To     string      `yaml:"to"`
	Text   *string     `yaml:"text"`
	Ranges []RangeSpec `yaml:"ranges"`
}

// Load reads and parses the script at path.
func Load(path string) (Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Document{}, fmt.Errorf("reading script %s: %w", path, err)
	}
	doc, err := Parse(data)
	if err != nil {
		return Document{}, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// Parse decodes a script. Unknown fields are rejected.
// An empty document is a script with no steps.
func Parse(data []byte) (Document, error) {
	var doc Document
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return Document{}, fmt.Errorf("parsing script: %w", err)
	}
	return doc, nil
}

// rangeList builds the initial selection. The ranges are kept as written.
func (d Document) rangeList() (selection.RangeList, error) {
	if len(d.Ranges) == 0 {
		if d.Focus != 0 {
			return selection.NewRangeList(selection.WithFocusedRangeIndex(d.Focus))
		}
		return selection.RangeList{}, nil
	}
	ranges, err := buildRanges(d.Ranges)
	if err != nil {
		return selection.RangeList{}, err
	}
	return selection.NewRangeList(
		selection.WithRanges(ranges...),
		selection.WithFocusedRangeIndex(d.Focus),
	)
}

func buildRanges(specs []RangeSpec) ([]selection.Range, error) {
	ranges := make([]selection.Range, len(specs))
	for i, spec := range specs {
		r, err := spec.Range()
		if err != nil {
			return nil, fmt.Errorf("range %d: %w", i, err)
		}
		ranges[i] = r
	}
	return ranges, nil
}
