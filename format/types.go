// Package format defines the enums and the fixed data-series encoding
// table that the compression-header planner assembles into a
// CompressionHeader. It plays the same role here that mebo's format
// package plays for blob encodings: a small, dependency-free set of types
// shared by every other package.
package format

// Compressor identifies which external byte-compressor backs an external
// block.
type Compressor uint8

const (
	CompressorGzip       Compressor = 0x1
	CompressorRANSOrder0 Compressor = 0x2
	CompressorRANSOrder1 Compressor = 0x3
)

func (c Compressor) String() string {
	switch c {
	case CompressorGzip:
		return "gzip"
	case CompressorRANSOrder0:
		return "rans-order0"
	case CompressorRANSOrder1:
		return "rans-order1"
	default:
		return "unknown"
	}
}

// EncodingFamily identifies the encoder family used for a data series or
// tag.
type EncodingFamily uint8

const (
	FamilyExternalByte     EncodingFamily = 0x1
	FamilyExternalInteger  EncodingFamily = 0x2
	FamilyByteArrayStop    EncodingFamily = 0x3
	FamilyByteArrayLen     EncodingFamily = 0x4
	FamilyCanonicalHuffman EncodingFamily = 0x5
)

func (f EncodingFamily) String() string {
	switch f {
	case FamilyExternalByte:
		return "external-byte"
	case FamilyExternalInteger:
		return "external-integer"
	case FamilyByteArrayStop:
		return "byte-array-stop"
	case FamilyByteArrayLen:
		return "byte-array-len"
	case FamilyCanonicalHuffman:
		return "canonical-huffman-integer"
	default:
		return "unknown"
	}
}

// Series identifies one of the fixed CRAM data series this planner assigns
// encodings to.
type Series uint8

const (
	SeriesAlignmentPositionOffset Series = iota + 1
	SeriesBase
	SeriesBitFlags
	SeriesBaseSubstitutionCode
	SeriesCompressionBitFlags
	SeriesDeletionLength
	SeriesFeatureCode
	SeriesReadFeatureCount
	SeriesFeaturePosition
	SeriesHardClip
	SeriesMateBitFlags
	SeriesMappingQuality
	SeriesRecordsToNextFragment
	SeriesNextFragmentAlignmentStart
	SeriesPadding
	SeriesRefSkip
	SeriesTagCount
	SeriesTagIDList
	SeriesTagNameAndType
	SeriesInsertion
	SeriesReadName
	SeriesSoftClip
	SeriesNextFragmentReferenceSeqID
	SeriesQualityScore
	SeriesReadGroup
	SeriesReadLength
	SeriesInsertSize
	SeriesRefID
)

// Encoding is the (family, params, compressor) triple the planner assigns
// to a data series or a tag id.
type Encoding struct {
	Family EncodingFamily

	// Delimiter and BlockID back FamilyByteArrayStop and the scalar
	// external families.
	Delimiter byte
	BlockID   int

	// LengthEncoding and ValuesEncoding back FamilyByteArrayLen.
	LengthEncoding *Encoding
	ValuesEncoding *Encoding

	// Symbols and Lengths back FamilyCanonicalHuffman.
	Symbols []int32
	Lengths []int32

	Compressor Compressor
}

// ExternalByte returns a fixed external-byte encoding backed by comp.
func ExternalByte(blockID int, comp Compressor) Encoding {
	return Encoding{Family: FamilyExternalByte, BlockID: blockID, Compressor: comp}
}

// ExternalInteger returns a fixed external-integer encoding backed by comp.
func ExternalInteger(blockID int, comp Compressor) Encoding {
	return Encoding{Family: FamilyExternalInteger, BlockID: blockID, Compressor: comp}
}

// ByteArrayStop returns a byte-array-stop encoding with the given
// delimiter and external block id.
func ByteArrayStop(delimiter byte, blockID int, comp Compressor) Encoding {
	return Encoding{Family: FamilyByteArrayStop, Delimiter: delimiter, BlockID: blockID, Compressor: comp}
}

// FixedSeriesEncodings is the fixed data-series to encoding mapping every
// header assembles from. The external block id for each series is the
// Series value itself, which is stable and distinct from any tag-id block
// id space (tag ids are always >= 256 once packed per the 3-byte tag key
// contract).
var FixedSeriesEncodings = map[Series]Encoding{
	SeriesAlignmentPositionOffset:    ExternalInteger(int(SeriesAlignmentPositionOffset), CompressorRANSOrder0),
	SeriesBase:                       ExternalByte(int(SeriesBase), CompressorRANSOrder1),
	SeriesBitFlags:                   ExternalInteger(int(SeriesBitFlags), CompressorRANSOrder1),
	SeriesBaseSubstitutionCode:       ExternalByte(int(SeriesBaseSubstitutionCode), CompressorGzip),
	SeriesCompressionBitFlags:        ExternalInteger(int(SeriesCompressionBitFlags), CompressorRANSOrder1),
	SeriesDeletionLength:             ExternalInteger(int(SeriesDeletionLength), CompressorGzip),
	SeriesFeatureCode:                ExternalByte(int(SeriesFeatureCode), CompressorGzip),
	SeriesReadFeatureCount:           ExternalInteger(int(SeriesReadFeatureCount), CompressorGzip),
	SeriesFeaturePosition:            ExternalInteger(int(SeriesFeaturePosition), CompressorGzip),
	SeriesHardClip:                   ExternalInteger(int(SeriesHardClip), CompressorGzip),
	SeriesMateBitFlags:               ExternalByte(int(SeriesMateBitFlags), CompressorGzip),
	SeriesMappingQuality:             ExternalByte(int(SeriesMappingQuality), CompressorGzip),
	SeriesRecordsToNextFragment:      ExternalInteger(int(SeriesRecordsToNextFragment), CompressorGzip),
	SeriesNextFragmentAlignmentStart: ExternalInteger(int(SeriesNextFragmentAlignmentStart), CompressorGzip),
	SeriesPadding:                    ExternalInteger(int(SeriesPadding), CompressorGzip),
	SeriesRefSkip:                    ExternalInteger(int(SeriesRefSkip), CompressorGzip),
	SeriesTagCount:                   ExternalInteger(int(SeriesTagCount), CompressorGzip),
	SeriesTagIDList:                  ExternalInteger(int(SeriesTagIDList), CompressorGzip),
	SeriesTagNameAndType:             ExternalInteger(int(SeriesTagNameAndType), CompressorGzip),
	SeriesInsertion:                  ByteArrayStop('\t', int(SeriesInsertion), CompressorGzip),
	SeriesReadName:                   ByteArrayStop('\t', int(SeriesReadName), CompressorGzip),
	SeriesSoftClip:                   ByteArrayStop('\t', int(SeriesSoftClip), CompressorGzip),
	SeriesNextFragmentReferenceSeqID: ExternalInteger(int(SeriesNextFragmentReferenceSeqID), CompressorRANSOrder1),
	SeriesQualityScore:               ExternalByte(int(SeriesQualityScore), CompressorRANSOrder1),
	SeriesReadGroup:                  ExternalInteger(int(SeriesReadGroup), CompressorRANSOrder1),
	SeriesReadLength:                 ExternalInteger(int(SeriesReadLength), CompressorRANSOrder1),
	SeriesInsertSize:                 ExternalInteger(int(SeriesInsertSize), CompressorRANSOrder1),
	SeriesRefID:                      ExternalInteger(int(SeriesRefID), CompressorRANSOrder0),
}
