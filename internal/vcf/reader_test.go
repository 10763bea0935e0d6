package vcf

import (
	"bytes"
	"os"
	"testing"

	"github.com/biogo/hts/bgzf"
	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readSample(t *testing.T) []byte {
	t.Helper()
	data, err := os.ReadFile(findTestFile(t, "sample.vcf"))
	require.NoError(t, err)
	return data
}

func TestLoadReader_Plain(t *testing.T) {
	f, err := LoadReader(bytes.NewReader(readSample(t)))
	require.NoError(t, err)
	assert.Equal(t, 6, f.Records().Len())
}

func TestLoadReader_Gzip(t *testing.T) {
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	_, err := zw.Write(readSample(t))
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	f, err := LoadReader(&buf)
	require.NoError(t, err)
	assert.Equal(t, 6, f.Records().Len())
}

func TestLoadReader_BGZF(t *testing.T) {
	var buf bytes.Buffer
	bw := bgzf.NewWriter(&buf, 1)
	_, err := bw.Write(readSample(t))
	require.NoError(t, err)
	require.NoError(t, bw.Close())

	assert.True(t, isBGZF(buf.Bytes()[:14]))

	f, err := LoadReader(&buf)
	require.NoError(t, err)
	assert.Equal(t, 6, f.Records().Len())
	assert.ElementsMatch(t, []string{"1", "2", "X"}, f.ListChromosomes())
}

func TestReadLines_NoTrailingNewline(t *testing.T) {
	lines, err := ReadLines(bytes.NewBufferString("a\nb"))
	require.NoError(t, err)
	assert.Equal(t, []string{"a\n", "b"}, lines)
}

func TestReadLines_Tiny(t *testing.T) {
	lines, err := ReadLines(bytes.NewBufferString("x"))
	require.NoError(t, err)
	assert.Equal(t, []string{"x"}, lines)
}

func TestOpen_Missing(t *testing.T) {
	_, err := Open("testdata/does-not-exist.vcf")
	assert.ErrorIs(t, err, os.ErrNotExist)
}
