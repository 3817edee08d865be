package compress

import (
	"fmt"

	"github.com/cram-go/cramplan/errs"
	"github.com/cram-go/cramplan/format"
)

// probeOrder lists every candidate compressor in tie-break order: when two
// candidates compress a buffer to the same size, the one appearing first
// here wins. It is ordered by ascending decoder complexity, so a tie
// always favors the cheapest decoder to run.
var probeOrder = []format.Compressor{
	format.CompressorRANSOrder0,
	format.CompressorRANSOrder1,
	format.CompressorGzip,
}

// BestExternal runs every candidate compressor over buf and returns the
// one producing the smallest output, breaking ties per probeOrder. An
// empty buf is not probed; callers should special-case it upstream.
func BestExternal(buf []byte) (format.Compressor, []byte, error) {
	if len(buf) == 0 {
		return 0, nil, fmt.Errorf("compress: %w: empty buffer", errs.ErrCompressorProbeFailed)
	}

	var (
		bestComp format.Compressor
		bestOut  []byte
	)

	for _, comp := range probeOrder {
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

// FindUnusedByte scans buf and returns the smallest byte value that does
// not occur in it, or -1 if all 256 values are present. It backs the
// byte-array-stop family's delimiter selection, which needs a value
// guaranteed not to collide with any element already in the series.
func FindUnusedByte(buf []byte) int {
	var seen [256]bool
	for _, b := range buf {
		seen[b] = true
	}

	for v := 0; v < 256; v++ {
		if !seen[v] {
			return v
		}
	}

	return -1
}
