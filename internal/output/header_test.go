package output

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/inodb/vcfkit/internal/vcf"
)

func TestWriteHeaderYAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteHeaderYAML(&buf, loadSample(t).Header()))

	var doc headerDoc
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &doc))

	assert.Equal(t, "VCFv4.2", doc.FileFormat)
	assert.Empty(t, doc.Source)
	require.Len(t, doc.Contigs, 2)
	assert.Equal(t, 1, doc.Contigs[0].ID, "contigs sorted by ID")
	require.NotNil(t, doc.Contigs[0].Species)
	assert.Equal(t, "Homo sapiens", *doc.Contigs[0].Species)
	assert.Nil(t, doc.Contigs[1].Species)
	require.Len(t, doc.Info, 1)
	assert.Equal(t, "Total Depth", doc.Info[0].Description)
	assert.Empty(t, doc.Info[0].Other)
	assert.Empty(t, doc.Format)

	assert.NotContains(t, buf.String(), "\nformat:")
}

func TestWriteHeaderYAML_OtherAttributes(t *testing.T) {
	f, err := vcf.Load([]string{
		`##INFO=<ID=DB,Number=0,Type=Flag,Description="dbSNP membership",Source="dbsnp",Version="138">`,
		"##FILTER=<ID=q10,Description=Quality below 10, low>",
		"#CHROM\tPOS\tID\tREF\tALT\tQUAL\tFILTER\tINFO",
	})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteHeaderYAML(&buf, f.Header()))

	var doc headerDoc
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &doc))
	require.Len(t, doc.Info, 1)
	assert.Equal(t, "Flag", doc.Info[0].Type)
	assert.Equal(t, []string{`Source="dbsnp"`, `Version="138"`}, doc.Info[0].Other)
	require.Len(t, doc.Filter, 1)
	assert.Equal(t, "Quality below 10", doc.Filter[0].Description)
	assert.Equal(t, []string{" low"}, doc.Filter[0].Other)
}
