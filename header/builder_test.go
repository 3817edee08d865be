package header

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cram-go/cramplan/format"
	"github.com/cram-go/cramplan/record"
)

func TestBuilder_Build_EmptyBatch(t *testing.T) {
	b, err := NewBuilder()
	require.NoError(t, err)

	h, err := b.Build(nil, true)
	require.NoError(t, err)

	assert.True(t, h.PositionsAreDeltas)
	assert.Equal(t, 1, h.Dictionary.RowCount())
	assert.Empty(t, h.TagEncodings)
	assert.Equal(t, len(format.FixedSeriesEncodings), len(h.SeriesEncodings))
}

func TestBuilder_Build_MutatesRecordsAndAssignsEncodings(t *testing.T) {
	nm := tag('N', 'M', 'i', record.RawTagValue{Raw: []byte{1, 2, 3, 4}, Size: 4})
	md := tag('M', 'D', 'Z', rawValue("5M"))

	records := []*record.Record{
		{
			Tags: []record.Tag{nm, md},
			ReadFeatures: []record.ReadFeature{
				{Op: record.FeatureSubstitution, Position: 7, ReferenceBase: record.BaseA, ReadBase: record.BaseC, Code: record.CodeSentinel},
			},
		},
	}

	b, err := NewBuilder()
	require.NoError(t, err)

	h, err := b.Build(records, false)
	require.NoError(t, err)

	assert.NotEqual(t, 0, records[0].TagIDsIndex)
	assert.NotEqual(t, record.CodeSentinel, records[0].ReadFeatures[0].Code)
	assert.Contains(t, h.TagEncodings, nm.Key)
	assert.Contains(t, h.TagEncodings, md.Key)
	assert.Contains(t, h.BlockCompressors, h.TagEncodings[nm.Key].BlockID)
}

func TestBuilder_Build_IdempotentAcrossRepeatedCalls(t *testing.T) {
	makeRecords := func() []*record.Record {
		return []*record.Record{
			{
				Tags: []record.Tag{tag('N', 'M', 'i', record.RawTagValue{Raw: []byte{1, 2, 3, 4}, Size: 4})},
				ReadFeatures: []record.ReadFeature{
					{Op: record.FeatureSubstitution, Position: 1, ReferenceBase: record.BaseG, ReadBase: record.BaseT, Code: record.CodeSentinel},
				},
			},
		}
	}

	b, err := NewBuilder()
	require.NoError(t, err)

	r1 := makeRecords()
	h1, err := b.Build(r1, true)
	require.NoError(t, err)

	r2 := makeRecords()
	h2, err := b.Build(r2, true)
	require.NoError(t, err)

	assert.Equal(t, h1.Dictionary.Rows, h2.Dictionary.Rows)
	assert.Equal(t, r1[0].TagIDsIndex, r2[0].TagIDsIndex)
	assert.Equal(t, r1[0].ReadFeatures[0].Code, r2[0].ReadFeatures[0].Code)
}

func TestBuilder_Build_SharesCacheAcrossCalls(t *testing.T) {
	cache := make(TagCodecCache)
	b, err := NewBuilder(WithTagCodecCache(cache))
	require.NoError(t, err)

	nmTag := tag('N', 'M', 'i', record.RawTagValue{Raw: []byte{1, 2, 3, 4}, Size: 4})

	_, err = b.Build([]*record.Record{{Tags: []record.Tag{nmTag}}}, false)
	require.NoError(t, err)

	assert.Contains(t, cache, nmTag.Key)
}
