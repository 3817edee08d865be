// Package record defines the input data model the compression-header
// planner operates on: alignment records with their tags and read
// features, mutated in place by the planner.
package record

import "github.com/cram-go/cramplan/errs"

// Base is a reference or read base restricted to {A,C,G,T,N}.
type Base byte

const (
	BaseA Base = 'A'
	BaseC Base = 'C'
	BaseG Base = 'G'
	BaseT Base = 'T'
	BaseN Base = 'N'
)

// Bases lists the five valid bases; a base's position here is its index
// into the substitution frequency table. This is not ASCII order (N sorts
// before T); the substitution matrix breaks ties by comparing base bytes.
var Bases = [5]Base{BaseA, BaseC, BaseG, BaseT, BaseN}

// ParseBase validates b as one of {A,C,G,T,N}.
func ParseBase(b byte) (Base, error) {
	switch Base(b) {
	case BaseA, BaseC, BaseG, BaseT, BaseN:
		return Base(b), nil
	default:
		return 0, errs.ErrInvalidSubstitutionBase
	}
}

// IsACGTN reports whether b is one of {A,C,G,T,N}.
func IsACGTN(b byte) bool {
	_, err := ParseBase(b)
	return err == nil
}

// BaseIndex returns b's position in Bases, or -1 if b is not one of
// {A,C,G,T,N}.
func BaseIndex(b Base) int {
	for i, v := range Bases {
		if v == b {
			return i
		}
	}

	return -1
}

// FeatureOp identifies a read feature's operator, per the CRAM
// read-features encoding. Only FeatureSubstitution is inspected by the
// planner; the rest are named for completeness since real CRAM readers
// populate them.
type FeatureOp byte

const (
	FeatureSubstitution   FeatureOp = 'X'
	FeatureInsertion      FeatureOp = 'I'
	FeatureSoftClip       FeatureOp = 'S'
	FeatureHardClip       FeatureOp = 'H'
	FeatureDeletion       FeatureOp = 'D'
	FeatureRefSkip        FeatureOp = 'N'
	FeaturePadding        FeatureOp = 'P'
	FeatureInsertBase     FeatureOp = 'i'
	FeatureQualityScore   FeatureOp = 'Q'
	FeatureBaseQualities  FeatureOp = 'B'
)

// CodeSentinel is the "not yet assigned" value for ReadFeature.Code.
const CodeSentinel int8 = -1

// ReadFeature is one entry in a record's read-feature list. Only
// substitution features carry Position/ReadBase/ReferenceBase/Code; the
// others carry whatever their operator needs, which is out of scope for
// the planner and therefore not modeled here.
type ReadFeature struct {
	Op FeatureOp

	Position      int32
	ReadBase      Base
	ReferenceBase Base

	// Code is the substitution code, one of {0,1,2,3}, or CodeSentinel
	// before back-annotation.
	Code int8
}

// Equal compares two read features over (Op, Position, ReadBase,
// ReferenceBase). Code is a derived, mutable annotation and is
// deliberately excluded, so a substitution compares equal before and
// after back-annotation.
func (f ReadFeature) Equal(other ReadFeature) bool {
	return f.Op == other.Op &&
		f.Position == other.Position &&
		f.ReadBase == other.ReadBase &&
		f.ReferenceBase == other.ReferenceBase
}

// TagKey packs a tag's two-letter ASCII name and one-letter ASCII type
// into a 24-bit integer: (byte0<<16)|(byte1<<8)|type.
type TagKey uint32

// NewTagKey packs a tag key from its two name bytes and type byte.
func NewTagKey(b0, b1, typ byte) TagKey {
	return TagKey(uint32(b0)<<16 | uint32(b1)<<8 | uint32(typ))
}

// Letters returns the tag's two-letter ASCII name.
func (k TagKey) Letters() (byte, byte) {
	return byte(k >> 16), byte(k >> 8)
}

// Type returns the tag's one-letter ASCII type character.
func (k TagKey) Type() byte {
	return byte(k)
}

// Bytes serializes the tag key as its three big-endian bytes, the form
// the tag-id dictionary builder concatenates when grouping records by
// their sorted tag-key sequence.
func (k TagKey) Bytes() [3]byte {
	b0, b1 := k.Letters()
	return [3]byte{b0, b1, k.Type()}
}

// TagValue exposes a tag's raw bytes and the byte-size the per-tag
// encoding chooser reasons about.
type TagValue interface {
	// Bytes returns the tag value's raw, un-concatenated bytes.
	Bytes() []byte
	// ByteSize returns the logical size used by the per-tag encoding
	// chooser: string-length+1 for Z, 1+4+elements*width for B, or the
	// fixed scalar width otherwise.
	ByteSize() int
	// Subtype returns the array element type character for B tags, or 0
	// for every other type.
	Subtype() byte
}

// RawTagValue is the straightforward TagValue implementation over an
// already-sized byte slice; the seam a real tag-value parser (out of
// scope here) plugs into.
type RawTagValue struct {
	Raw     []byte
	Size    int
	SubType byte
}

var _ TagValue = RawTagValue{}

func (v RawTagValue) Bytes() []byte { return v.Raw }
func (v RawTagValue) ByteSize() int { return v.Size }
func (v RawTagValue) Subtype() byte { return v.SubType }

// Tag is one (key, value) entry in a record's tag list.
type Tag struct {
	Key   TagKey
	Value TagValue
}

// Record is one alignment record, mutated in place by the planner:
// Build sorts Tags, assigns TagIDsIndex, and back-fills ReadFeatures'
// substitution codes.
type Record struct {
	Tags         []Tag
	ReadFeatures []ReadFeature

	// TagIDsIndex is the row of the tag-id dictionary this record's
	// sorted tag-key sequence resolves to; meaningless until Build runs.
	TagIDsIndex int
}
