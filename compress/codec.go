// Package compress implements the fixed set of candidate external
// byte-compressors and the probe that picks the smallest result among
// them.
//
// The compressed bytes these codecs produce are consumed opaquely by the
// downstream slice encoder; this package's only externally meaningful
// output is the format.Compressor value BestExternal picks.
package compress

import (
	"fmt"

	"github.com/cram-go/cramplan/format"
)

// Compressor compresses a byte buffer and returns the compressed result.
type Compressor interface {
	// Compress compresses data and returns the compressed result.
	//
	// Memory management:
	//   - Returned slice is newly allocated and owned by the caller
	//   - Input slice is not modified
	Compress(data []byte) ([]byte, error)
}

// Decompressor reverses a Compressor.
type Decompressor interface {
	// Decompress decompresses data and returns the original input.
	//
	// Error conditions:
	//   - Returns an error if data is corrupted or was produced by a
	//     different algorithm.
	Decompress(data []byte) ([]byte, error)
}

// Codec combines both directions. Every candidate the probe considers
// implements Codec so round-tripping can be exercised in tests even
// though the planner itself never decompresses.
type Codec interface {
	Compressor
	Decompressor
}

// builtinCodecs maps each format.Compressor the planner can choose to its
// concrete implementation.
var builtinCodecs = map[format.Compressor]Codec{
	format.CompressorGzip:       NewGzipCompressor(),
	format.CompressorRANSOrder0: NewRANSOrder0Compressor(),
	format.CompressorRANSOrder1: NewRANSOrder1Compressor(),
}

// GetCodec retrieves the built-in Codec for the given compressor choice,
// e.g. to decompress a block the planner previously chose a compressor
// for.
func GetCodec(c format.Compressor) (Codec, error) {
	codec, ok := builtinCodecs[c]
	if !ok {
		return nil, fmt.Errorf("unsupported compressor: %s", c)
	}

	return codec, nil
}
