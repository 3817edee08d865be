package header

import (
	"fmt"

	"github.com/cram-go/cramplan/compress"
	"github.com/cram-go/cramplan/errs"
	"github.com/cram-go/cramplan/format"
	"github.com/cram-go/cramplan/internal/pool"
	"github.com/cram-go/cramplan/record"
)

// TagCodecCache memoizes the encoding chosen for a tag id across
// Builder.Build calls. It is a plain map the caller owns and may share
// across calls or not; nothing in this package keeps its own hidden copy.
type TagCodecCache map[record.TagKey]format.Encoding

// fixedScalarWidth returns the byte width of a 1/2/4-byte scalar tag type,
// and false for every other type character.
func fixedScalarWidth(typ byte) (int, bool) {
	switch typ {
	case 'A', 'c', 'C':
		return 1, true
	case 's', 'S':
		return 2, true
	case 'i', 'I', 'f':
		return 4, true
	default:
		return 0, false
	}
}

// ChooseEncoding returns the encoding for tagID, consulting and updating
// cache if non-nil. values must be every occurrence of tagID across the
// batch, in the order encountered. scratch is reset and reused to
// concatenate the tag's raw value bytes ahead of the compressor probe.
func ChooseEncoding(tagID record.TagKey, values []record.TagValue, cache TagCodecCache, scratch *pool.ByteBuffer) (format.Encoding, error) {
	if cache != nil {
		if enc, ok := cache[tagID]; ok {
			return enc, nil
		}
	}

	enc, err := chooseEncoding(tagID, values, scratch)
	if err != nil {
		return format.Encoding{}, err
	}

	if cache != nil {
		cache[tagID] = enc
	}

	return enc, nil
}

func chooseEncoding(tagID record.TagKey, values []record.TagValue, scratch *pool.ByteBuffer) (format.Encoding, error) {
	typ := tagID.Type()
	blockID := int(tagID)

	if width, ok := fixedScalarWidth(typ); ok {
		data := concatValues(values, scratch)

		comp, _, err := compress.BestExternal(data)
		if err != nil {
			return format.Encoding{}, fmt.Errorf("tag %c%c: %w", letter0(tagID), letter1(tagID), err)
		}

		return fixedLengthEncoding(width, blockID, comp), nil
	}

	switch typ {
	case 'Z', 'B':
		return chooseVariableEncoding(tagID, values, scratch)
	default:
		return format.Encoding{}, fmt.Errorf("tag %c%c: %w: %q", letter0(tagID), letter1(tagID), errs.ErrUnknownTagType, typ)
	}
}

func chooseVariableEncoding(tagID record.TagKey, values []record.TagValue, scratch *pool.ByteBuffer) (format.Encoding, error) {
	typ := tagID.Type()
	blockID := int(tagID)

	minSize, maxSize := sizeRange(values)
	data := concatValues(values, scratch)

	comp, _, err := compress.BestExternal(data)
	if err != nil {
		return format.Encoding{}, fmt.Errorf("tag %c%c: %w", letter0(tagID), letter1(tagID), err)
	}

	if minSize == maxSize {
		return fixedLengthEncoding(minSize, blockID, comp), nil
	}

	if typ == 'Z' {
		return format.ByteArrayStop('\t', blockID, comp), nil
	}

	// typ == 'B' with variable sizes.
	if minSize > 100 {
		if unused := compress.FindUnusedByte(data); unused >= 0 {
			return format.ByteArrayStop(byte(unused), blockID, comp), nil
		}
	}

	lengthEnc := format.ExternalInteger(blockID, comp)
	valuesEnc := format.ExternalByte(blockID, comp)

	return format.Encoding{
		Family:         format.FamilyByteArrayLen,
		BlockID:        blockID,
		LengthEncoding: &lengthEnc,
		ValuesEncoding: &valuesEnc,
		Compressor:     comp,
	}, nil
}

// fixedLengthEncoding builds the byte-array-len encoding used for scalar
// tag types and for Z/B tags whose values are all the same size: a
// 1-symbol canonical-Huffman length encoding (every value has the same
// length, so the "code" is trivial) paired with an external-byte values
// encoding.
func fixedLengthEncoding(width, blockID int, comp format.Compressor) format.Encoding {
	lengthEnc := format.Encoding{
		Family:  format.FamilyCanonicalHuffman,
		Symbols: []int32{int32(width)},
		Lengths: []int32{1},
	}
	valuesEnc := format.ExternalByte(blockID, comp)

	return format.Encoding{
		Family:         format.FamilyByteArrayLen,
		BlockID:        blockID,
		LengthEncoding: &lengthEnc,
		ValuesEncoding: &valuesEnc,
		Compressor:     comp,
	}
}

// concatValues resets scratch and concatenates every value's raw bytes
// into it, returning the resulting buffer. The returned slice aliases
// scratch's backing array and is only valid until the next reset.
func concatValues(values []record.TagValue, scratch *pool.ByteBuffer) []byte {
	scratch.Reset()
	for _, v := range values {
		scratch.MustWrite(v.Bytes())
	}

	return scratch.Bytes()
}

// sizeRange returns the minimum and maximum ByteSize across values.
func sizeRange(values []record.TagValue) (min, max int) {
	if len(values) == 0 {
		return 0, 0
	}

	min, max = values[0].ByteSize(), values[0].ByteSize()
	for _, v := range values[1:] {
		if s := v.ByteSize(); s < min {
			min = s
		} else if s > max {
			max = s
		}
	}

	return min, max
}

func letter0(k record.TagKey) byte { b0, _ := k.Letters(); return b0 }
func letter1(k record.TagKey) byte { _, b1 := k.Letters(); return b1 }
