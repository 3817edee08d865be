package header

import (
	"fmt"
	"sort"

	"github.com/cram-go/cramplan/errs"
	"github.com/cram-go/cramplan/record"
)

// SubstitutionMatrix ranks, for each reference base, the other four bases
// by descending empirical substitution frequency (ties broken ascending
// by base letter). A substitution code is a base's rank within its
// reference row.
type SubstitutionMatrix struct {
	ranking [5][4]record.Base
}

// Rank returns the four non-self bases for ref, in rank order.
func (m *SubstitutionMatrix) Rank(ref record.Base) ([4]record.Base, error) {
	idx := record.BaseIndex(ref)
	if idx < 0 {
		return [4]record.Base{}, fmt.Errorf("substitution matrix: %w: %q", errs.ErrInvalidSubstitutionBase, ref)
	}

	return m.ranking[idx], nil
}

// Code returns read's rank under ref's row, the substitution code that
// back-annotation stamps onto a read feature.
func (m *SubstitutionMatrix) Code(ref, read record.Base) (int8, error) {
	ranking, err := m.Rank(ref)
	if err != nil {
		return 0, err
	}

	for i, b := range ranking {
		if b == read {
			return int8(i), nil
		}
	}

	return 0, fmt.Errorf("substitution matrix: %w: read base %q not distinct from reference %q", errs.ErrInvalidSubstitutionBase, read, ref)
}

// BuildSubstitutionMatrix derives the substitution matrix from the
// empirical (reference_base, read_base) frequencies observed across every
// substitution read feature in records. Reference bases with no observed
// data still receive a total, deterministic ranking via the ascending
// tie-break.
func BuildSubstitutionMatrix(records []*record.Record) (*SubstitutionMatrix, error) {
	var freq [5][5]int

	for _, rec := range records {
		for _, rf := range rec.ReadFeatures {
			if rf.Op != record.FeatureSubstitution {
				continue
			}

			refIdx := record.BaseIndex(rf.ReferenceBase)
			readIdx := record.BaseIndex(rf.ReadBase)
			if refIdx < 0 || readIdx < 0 {
				return nil, fmt.Errorf("substitution matrix: %w: ref=%q read=%q", errs.ErrInvalidSubstitutionBase, rf.ReferenceBase, rf.ReadBase)
			}

			freq[refIdx][readIdx]++
		}
	}

	var m SubstitutionMatrix

	for refIdx := range record.Bases {
		others := make([]record.Base, 0, 4)
		for readIdx, b := range record.Bases {
			if readIdx == refIdx {
				continue
			}
			others = append(others, b)
		}

		sort.Slice(others, func(a, b int) bool {
			fa := freq[refIdx][record.BaseIndex(others[a])]
			fb := freq[refIdx][record.BaseIndex(others[b])]
			if fa != fb {
				return fa > fb
			}

			return others[a] < others[b]
		})

		copy(m.ranking[refIdx][:], others)
	}

	return &m, nil
}

// BackAnnotate assigns a substitution code to every substitution read
// feature that still carries the sentinel code, using m's ranking. Once
// assigned, a feature's code is never revisited, so back-annotation is
// idempotent across repeated calls on the same records.
func BackAnnotate(records []*record.Record, m *SubstitutionMatrix) error {
	for _, rec := range records {
		for i := range rec.ReadFeatures {
			rf := &rec.ReadFeatures[i]
			if rf.Op != record.FeatureSubstitution || rf.Code != record.CodeSentinel {
				continue
			}

			code, err := m.Code(rf.ReferenceBase, rf.ReadBase)
			if err != nil {
				return err
			}

			rf.Code = code
		}
	}

	return nil
}
