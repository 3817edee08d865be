package compress

import (
	"encoding/binary"
	"fmt"
)

// ransStartContext is the context assigned to the first byte of a buffer,
// which has no preceding byte. It is kept separate from the 256 byte-value
// contexts so a buffer that happens to start with 0x00 is not folded into
// the same model as bytes that actually follow a 0x00.
const ransStartContext = 256
const ransNumContexts = 257

// RANSOrder1Compressor models each symbol conditioned on the byte that
// precedes it: an order-1 entropy coder. It partitions the input into up
// to 257 per-context streams (256 byte values plus one for the first
// symbol, which has no predecessor) and entropy-codes each stream
// independently with the same fse backend RANSOrder0Compressor uses. A
// context whose stream fse reports incompressible is stored raw rather
// than failing the whole buffer.
type RANSOrder1Compressor struct{}

var _ Codec = RANSOrder1Compressor{}

// NewRANSOrder1Compressor creates a new order-1 entropy compressor.
func NewRANSOrder1Compressor() RANSOrder1Compressor {
	return RANSOrder1Compressor{}
}

// Compress splits data into per-preceding-byte streams and entropy-codes
// each one independently.
func (c RANSOrder1Compressor) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	buckets := splitByContext(data)

	header := make([]byte, 0, 16)
	header = binary.AppendUvarint(header, uint64(len(data)))

	present := make([]int, 0, ransNumContexts)
	for ctx, bucket := range buckets {
		if len(bucket) > 0 {
			present = append(present, ctx)
		}
	}
	header = binary.AppendUvarint(header, uint64(len(present)))

	out := header
	for _, ctx := range present {
		frame, err := compressFSEFramed(buckets[ctx])
		if err != nil {
			return nil, fmt.Errorf("rans order-1: context %d: %w", ctx, err)
		}

		out = binary.AppendUvarint(out, uint64(ctx))
		out = binary.AppendUvarint(out, uint64(len(frame)))
		out = append(out, frame...)
	}

	return out, nil
}

// Decompress reverses Compress.
func (c RANSOrder1Compressor) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	originalLen, n := binary.Uvarint(data)
	if n <= 0 {
		return nil, fmt.Errorf("rans order-1: malformed length header")
	}
	data = data[n:]

	numPresent, n := binary.Uvarint(data)
	if n <= 0 {
		return nil, fmt.Errorf("rans order-1: malformed context count")
	}
	data = data[n:]

	streams := make(map[int][]byte, numPresent)
	for i := uint64(0); i < numPresent; i++ {
		ctx, n := binary.Uvarint(data)
		if n <= 0 {
			return nil, fmt.Errorf("rans order-1: malformed context id")
		}
		data = data[n:]

		frameLen, n := binary.Uvarint(data)
		if n <= 0 {
			return nil, fmt.Errorf("rans order-1: malformed frame length")
		}
		data = data[n:]

		if uint64(len(data)) < frameLen {
			return nil, fmt.Errorf("rans order-1: truncated frame for context %d", ctx)
		}
		frame := data[:frameLen]
		data = data[frameLen:]

		stream, err := decompressFSEFramed(frame)
		if err != nil {
			return nil, fmt.Errorf("rans order-1: context %d: %w", ctx, err)
		}
		streams[int(ctx)] = stream
	}

	out := make([]byte, originalLen)
	cursor := make(map[int]int, len(streams))
	ctx := ransStartContext
	for i := uint64(0); i < originalLen; i++ {
		stream := streams[ctx]
		pos := cursor[ctx]
		if pos >= len(stream) {
			return nil, fmt.Errorf("rans order-1: exhausted stream for context %d", ctx)
		}

		b := stream[pos]
		cursor[ctx] = pos + 1
		out[i] = b
		ctx = int(b)
	}

	return out, nil
}

// splitByContext groups each byte of data into the bucket named by the
// byte preceding it, preserving relative order within a bucket. The first
// byte has no predecessor and goes to ransStartContext.
func splitByContext(data []byte) [ransNumContexts][]byte {
	var counts [ransNumContexts]int
	ctx := ransStartContext
	for _, b := range data {
		counts[ctx]++
		ctx = int(b)
	}

	var buckets [ransNumContexts][]byte
	for i, n := range counts {
		if n > 0 {
			buckets[i] = make([]byte, 0, n)
		}
	}

	ctx = ransStartContext
	for _, b := range data {
		buckets[ctx] = append(buckets[ctx], b)
		ctx = int(b)
	}

	return buckets
}
