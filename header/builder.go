package header

import (
	"fmt"

	"github.com/cram-go/cramplan/format"
	"github.com/cram-go/cramplan/internal/options"
	"github.com/cram-go/cramplan/internal/pool"
	"github.com/cram-go/cramplan/record"
)

// CompressionHeader is the fully assembled planner output: the fixed
// data-series encodings, the per-tag-id encodings, the external-block-id
// to compressor map every external block resolves through, the tag-id
// dictionary, the substitution matrix, and whether alignment positions
// are delta-encoded.
type CompressionHeader struct {
	SeriesEncodings  map[format.Series]format.Encoding
	TagEncodings     map[record.TagKey]format.Encoding
	BlockCompressors map[int]format.Compressor

	Dictionary *Dictionary
	Matrix     *SubstitutionMatrix

	PositionsAreDeltas bool
}

// Builder assembles a CompressionHeader from a batch of records. Its zero
// value is ready to use; WithTagCodecCache and WithScratchBuffer let a
// caller thread in cross-batch state explicitly instead of relying on
// hidden package state.
type Builder struct {
	cache   TagCodecCache
	scratch *pool.ByteBuffer
}

// NewBuilder creates a Builder configured by opts.
func NewBuilder(opts ...options.Option[*Builder]) (*Builder, error) {
	b := &Builder{}
	if err := options.Apply(b, opts...); err != nil {
		return nil, fmt.Errorf("header: configuring builder: %w", err)
	}

	return b, nil
}

// WithTagCodecCache threads an explicit, caller-owned TagCodecCache
// through the builder so tag-id encoding decisions are memoized across
// Build calls. Without this option every Build starts with a cold cache.
func WithTagCodecCache(cache TagCodecCache) options.Option[*Builder] {
	return options.NoError(func(b *Builder) {
		b.cache = cache
	})
}

// WithScratchBuffer threads an explicit, caller-owned scratch buffer
// through the builder for tag-value concatenation. Without this option
// Build borrows one from the default pool for the duration of the call.
func WithScratchBuffer(buf *pool.ByteBuffer) options.Option[*Builder] {
	return options.NoError(func(b *Builder) {
		b.scratch = buf
	})
}

// Build runs the five-step assembly: install the fixed data-series
// encodings, build the tag-id dictionary, choose an encoding per distinct
// tag id, build and back-annotate the substitution matrix, and return the
// finished header. records are mutated in place: their tags are sorted,
// TagIDsIndex is set, and substitution codes are back-filled.
func (b *Builder) Build(records []*record.Record, coordinateSorted bool) (*CompressionHeader, error) {
	scratch := b.scratch
	if scratch == nil {
		scratch = pool.GetScratchBuffer()
		defer pool.PutScratchBuffer(scratch)
	}

	header := &CompressionHeader{
		SeriesEncodings:    make(map[format.Series]format.Encoding, len(format.FixedSeriesEncodings)),
		TagEncodings:       make(map[record.TagKey]format.Encoding),
		BlockCompressors:   make(map[int]format.Compressor),
		PositionsAreDeltas: coordinateSorted,
	}

	for series, enc := range format.FixedSeriesEncodings {
		header.SeriesEncodings[series] = enc
		header.BlockCompressors[enc.BlockID] = enc.Compressor
	}

	header.Dictionary = BuildDictionary(records)

	valuesByTag := make(map[record.TagKey][]record.TagValue)
	for _, rec := range records {
		for _, tag := range rec.Tags {
			valuesByTag[tag.Key] = append(valuesByTag[tag.Key], tag.Value)
		}
	}

	for tagID, values := range valuesByTag {
		enc, err := ChooseEncoding(tagID, values, b.cache, scratch)
		if err != nil {
			return nil, fmt.Errorf("header: choosing encoding for tag %c%c: %w", letter0(tagID), letter1(tagID), err)
		}

		header.TagEncodings[tagID] = enc
		header.BlockCompressors[enc.BlockID] = enc.Compressor
	}

	matrix, err := BuildSubstitutionMatrix(records)
	if err != nil {
		return nil, fmt.Errorf("header: building substitution matrix: %w", err)
	}

	if err := BackAnnotate(records, matrix); err != nil {
		return nil, fmt.Errorf("header: back-annotating substitutions: %w", err)
	}

	header.Matrix = matrix

	return header, nil
}
