package compress

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRANSOrder1Compressor_RoundTrip(t *testing.T) {
	c := NewRANSOrder1Compressor()
	data := []byte(strings.Repeat("ACGTACGTACGTNNNNACGT", 500))

	compressed, err := c.Compress(data)
	require.NoError(t, err)

	decompressed, err := c.Decompress(compressed)
	require.NoError(t, err)
	assert.Equal(t, data, decompressed)
}

func TestRANSOrder1Compressor_SingleByte(t *testing.T) {
	c := NewRANSOrder1Compressor()
	data := []byte{'A'}

	compressed, err := c.Compress(data)
	require.NoError(t, err)

	decompressed, err := c.Decompress(compressed)
	require.NoError(t, err)
	assert.Equal(t, data, decompressed)
}

func TestRANSOrder1Compressor_Empty(t *testing.T) {
	c := NewRANSOrder1Compressor()

	compressed, err := c.Compress(nil)
	require.NoError(t, err)
	assert.Nil(t, compressed)

	decompressed, err := c.Decompress(nil)
	require.NoError(t, err)
	assert.Nil(t, decompressed)
}

func TestSplitByContext_PreservesOrderPerBucket(t *testing.T) {
	data := []byte("ABABAB")
	buckets := splitByContext(data)

	assert.Equal(t, []byte{'B', 'B', 'B'}, buckets['A'])
	assert.Equal(t, []byte{'A', 'A'}, buckets['B'])
	assert.Equal(t, []byte{'A'}, buckets[ransStartContext])
}
