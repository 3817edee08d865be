// Package cram provides a compression-header planner for CRAM-style
// alignment batches.
//
// Given a batch of already-parsed alignment records, the planner decides
// how each data series and each auxiliary tag is encoded, which external
// byte-compressor backs each external block, builds a deterministic
// tag-id dictionary, and derives a substitution matrix used to
// back-annotate substitution read features with their codes.
//
// # Basic usage
//
//	builder, _ := cram.NewBuilder()
//	h, err := builder.Build(records, coordinateSorted)
//	if err != nil {
//	    // handle malformed input
//	}
//	// records have been mutated in place: TagIDsIndex and substitution
//	// codes are filled in, and h is the assembled header.
//
// # Package structure
//
// This package provides a convenient top-level wrapper around the header
// package. For advanced usage — an explicit, cross-batch
// header.TagCodecCache, or a caller-owned scratch buffer — use the header
// package directly.
package cram

import (
	"github.com/cram-go/cramplan/header"
	"github.com/cram-go/cramplan/internal/options"
	"github.com/cram-go/cramplan/record"
)

// Builder assembles a CompressionHeader from a batch of records. It is a
// thin alias over header.Builder; see that package for the cache and
// scratch-buffer options.
type Builder = header.Builder

// CompressionHeader is the planner's output. It is a thin alias over
// header.CompressionHeader.
type CompressionHeader = header.CompressionHeader

// NewBuilder creates a Builder configured by opts. See header.WithTagCodecCache
// and header.WithScratchBuffer for the available options.
func NewBuilder(opts ...options.Option[*header.Builder]) (*Builder, error) {
	return header.NewBuilder(opts...)
}

// Build is a convenience wrapper that constructs a default Builder and
// runs it once. Callers that need to share a TagCodecCache or scratch
// buffer across multiple batches should construct a Builder with
// NewBuilder instead.
func Build(records []*record.Record, coordinateSorted bool) (*CompressionHeader, error) {
	b, err := NewBuilder()
	if err != nil {
		return nil, err
	}

	return b.Build(records, coordinateSorted)
}
