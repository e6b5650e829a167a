// Package mlprep prepares standardized tables for model training.
package mlprep

import (
	"fmt"
	"io"

	"datastd/internal/dataset"
)

// DefaultOutcomeColumn is the label column separated out as the
// prediction target when the caller does not name one.
const DefaultOutcomeColumn = "Outcome"

// SplitFeaturesTarget splits a table into features (every column except
// the outcome column) and the outcome column's values in row order.
// A nil table passes through as (nil, nil, nil). The outcome column must
// exist; its absence propagates the column-lookup failure.
func SplitFeaturesTarget(t *dataset.Table, outcomeColumn string) (*dataset.Table, []string, error) {
	if t == nil {
		return nil, nil, nil
	}
	if outcomeColumn == "" {
		outcomeColumn = DefaultOutcomeColumn
	}

	target, err := t.Column(outcomeColumn)
	if err != nil {
		return nil, nil, err
	}

	features := t.Copy()
	features.Drop(outcomeColumn)
	return features, target, nil
}

// PreviewSplit writes the features table and target values to w.
// Nothing is written when show is false or either side is absent.
func PreviewSplit(w io.Writer, features *dataset.Table, target []string, show bool) {
	if !show || features == nil || target == nil {
		return
	}
	fmt.Fprintf(w, "Features:\n%s\n", features)
	fmt.Fprintf(w, "Target:\n")
	for i, v := range target {
		fmt.Fprintf(w, "%d\t%s\n", i, v)
	}
}
