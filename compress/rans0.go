package compress

import (
	"errors"
	"fmt"

	"github.com/klauspost/compress/fse"
)

// frame modes shared by both rANS-family compressors: a context whose
// entropy coder reports the input incompressible falls back to storing
// the bytes verbatim rather than failing the whole buffer.
const (
	ransModeRaw byte = 0
	ransModeFSE byte = 1
)

// RANSOrder0Compressor models symbols independently of their context — an
// order-0 entropy coder. It is backed by github.com/klauspost/compress/fse,
// a table-ANS (tANS) implementation: tANS and range-ANS (rANS) are both
// members of the asymmetric-numeral-system family and make the same
// compression-ratio/decoder-complexity trade-off.
type RANSOrder0Compressor struct{}

var _ Codec = RANSOrder0Compressor{}

// NewRANSOrder0Compressor creates a new order-0 entropy compressor.
func NewRANSOrder0Compressor() RANSOrder0Compressor {
	return RANSOrder0Compressor{}
}

// Compress entropy-codes data independently of byte context.
func (c RANSOrder0Compressor) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	return compressFSEFramed(data)
}

// Decompress reverses Compress.
func (c RANSOrder0Compressor) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	return decompressFSEFramed(data)
}

// compressFSEFramed runs a single fse pass over data and prefixes the
// result with a one-byte mode tag so Decompress knows whether the payload
// is fse-coded or was stored raw because fse reported it incompressible.
func compressFSEFramed(data []byte) ([]byte, error) {
	var scratch fse.Scratch

	compressed, err := fse.Compress(data, &scratch)
	switch {
	case err == nil:
		out := make([]byte, 1+len(compressed))
		out[0] = ransModeFSE
		copy(out[1:], compressed)

		return out, nil
	case isFSEIncompressible(err):
		out := make([]byte, 1+len(data))
		out[0] = ransModeRaw
		copy(out[1:], data)

		return out, nil
	default:
		return nil, fmt.Errorf("rans order-0: %w", err)
	}
}

func decompressFSEFramed(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	mode, payload := data[0], data[1:]
	switch mode {
	case ransModeRaw:
		out := make([]byte, len(payload))
		copy(out, payload)

		return out, nil
	case ransModeFSE:
		var scratch fse.Scratch

		out, err := fse.Decompress(payload, &scratch)
		if err != nil {
			return nil, fmt.Errorf("rans order-0: %w", err)
		}

		return out, nil
	default:
		return nil, fmt.Errorf("rans order-0: unknown frame mode %d", mode)
	}
}

// isFSEIncompressible reports whether err is one of the documented
// fse conditions under which the input should be stored raw instead of
// entropy-coded: fully incompressible, a single repeated byte, or too
// large for a single table.
func isFSEIncompressible(err error) bool {
	return errors.Is(err, fse.ErrIncompressible) ||
		errors.Is(err, fse.ErrUseRLE) ||
		errors.Is(err, fse.ErrTooBig)
}
