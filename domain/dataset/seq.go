package dataset

import (
	"iter"
	"sync/atomic"

	"inflammation/domain/core"
)

// TableSeq is a lazy sequence of tables, one per source file. Sequences
// produced by data sources are single-pass.
type TableSeq = iter.Seq2[*Table, error]

// Tables adapts in-memory tables to a TableSeq.
func Tables(tables ...*Table) TableSeq {
	return func(yield func(*Table, error) bool) {
		for _, t := range tables {
			if !yield(t, nil) {
				return
			}
		}
	}
}

// Once guards seq so that it can only be ranged over once. A second
// iteration yields ErrSequenceConsumed and stops.
func Once(seq TableSeq) TableSeq {
	var used atomic.Bool
	return func(yield func(*Table, error) bool) {
		if used.Swap(true) {
			yield(nil, core.ErrSequenceConsumed)
			return
		}
		seq(yield)
	}
}

// Collect drains seq into a slice, stopping at the first error.
func Collect(seq TableSeq) ([]*Table, error) {
	var tables []*Table
	for t, err := range seq {
		if err != nil {
			return nil, err
		}
		tables = append(tables, t)
	}
	return tables, nil
}
