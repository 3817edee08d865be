package cram

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cram-go/cramplan/record"
)

func TestBuild_EmptyBatch(t *testing.T) {
	h, err := Build(nil, true)
	require.NoError(t, err)

	assert.True(t, h.PositionsAreDeltas)
	assert.Equal(t, 1, h.Dictionary.RowCount())
}

func TestBuild_MutatesRecords(t *testing.T) {
	records := []*record.Record{
		{
			Tags: []record.Tag{
				{Key: record.NewTagKey('N', 'M', 'i'), Value: record.RawTagValue{Raw: []byte{1, 2, 3, 4}, Size: 4}},
			},
			ReadFeatures: []record.ReadFeature{
				{Op: record.FeatureSubstitution, Position: 3, ReferenceBase: record.BaseA, ReadBase: record.BaseG, Code: record.CodeSentinel},
			},
		},
	}

	h, err := Build(records, true)
	require.NoError(t, err)

	assert.NotEqual(t, record.CodeSentinel, records[0].ReadFeatures[0].Code)
	assert.Contains(t, h.TagEncodings, records[0].Tags[0].Key)
}
