package compress

import (
	"fmt"

	"github.com/cram-go/cramplan/errs"
	"github.com/cram-go/cramplan/format"
	"github.com/cram-go/cramplan/internal/options"
)

// Planner runs the compressor probe over a caller-configured candidate set
// and tie-break order instead of the package-level default probeOrder. A
// caller that wants to restrict the probe to a subset of compressors (say,
// to skip gzip entirely for a series known to be incompressible by it)
// builds one with WithCandidates; the zero value is not usable, construct
// through NewPlanner.
type Planner struct {
	candidates []format.Compressor
}

// NewPlanner creates a Planner configured by opts. With no options it
// probes the same three candidates, in the same tie-break order, as the
// package-level BestExternal.
func NewPlanner(opts ...options.Option[*Planner]) (*Planner, error) {
	p := &Planner{candidates: probeOrder}
	if err := options.Apply(p, opts...); err != nil {
		return nil, fmt.Errorf("compress: configuring planner: %w", err)
	}

	if len(p.candidates) == 0 {
		return nil, fmt.Errorf("compress: %w: planner has no candidates", errs.ErrCompressorProbeFailed)
	}

	return p, nil
}

// WithCandidates restricts the planner to candidates, probed in the given
// order; ties favor whichever candidate appears first.
func WithCandidates(candidates ...format.Compressor) options.Option[*Planner] {
	return options.NoError(func(p *Planner) {
		p.candidates = candidates
	})
}

// BestExternal runs p's candidates over buf and returns the smallest
// result, breaking ties by p's candidate order.
func (p *Planner) BestExternal(buf []byte) (format.Compressor, []byte, error) {
	if len(buf) == 0 {
		return 0, nil, fmt.Errorf("compress: %w: empty buffer", errs.ErrCompressorProbeFailed)
	}

	var (
		bestComp format.Compressor
		bestOut  []byte
	)

	for _, comp := range p.candidates {
		codec, err := GetCodec(comp)
		if err != nil {
			return 0, nil, err
		}

		out, err := codec.Compress(buf)
		if err != nil {
			return 0, nil, fmt.Errorf("compress: %w: probing %s: %w", errs.ErrCompressorProbeFailed, comp, err)
		}

		if bestOut == nil || len(out) < len(bestOut) {
			bestComp, bestOut = comp, out
		}
	}

	return bestComp, bestOut, nil
}
