package vcf

import (
	"errors"
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func syntheticLines(n int) []string {
	lines := []string{"##fileformat=VCFv4.2", columnHeader}
	for i := 0; i < n; i++ {
		chrom := fmt.Sprint(i%3 + 1)
		if i%7 == 0 {
			chrom = "Y"
		}
		lines = append(lines, fmt.Sprintf("%s\t%d\tid%d\tA\tG\t30\tPASS\t.", chrom, i+1, i))
	}
	return lines
}

func TestParallelMatchesSequential(t *testing.T) {
	lines := syntheticLines(3*chunkSize + 17)

	seq, err := Load(lines)
	require.NoError(t, err)
	par, err := Load(lines, WithWorkers(4))
	require.NoError(t, err)

	require.Equal(t, seq.Records().Len(), par.Records().Len())
	assert.Equal(t, ids(seq.Records()), ids(par.Records()))
	assert.Equal(t, seq.Warnings(), par.Warnings())
}

func TestParallelReportsFirstError(t *testing.T) {
	lines := syntheticLines(2 * chunkSize)
	badEarly := 2 + 10
	badLate := 2 + chunkSize + 10
	lines[badEarly] = "1\t2"
	lines[badLate] = "1\t2"

	_, err := Load(lines, WithWorkers(8))
	var se *StructuralError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, badEarly+1, se.Line)
}

func TestParallelReportsFirstErrorAcrossChunks(t *testing.T) {
	lines := syntheticLines(6 * chunkSize)
	bad := 2 + 3
	lines[bad] = "1\t2"
	// Every later chunk is malformed too; only the first error may surface.
	for seq := 1; seq < 6; seq++ {
		lines[2+seq*chunkSize] = "1\t2"
	}

	for i := 0; i < 5; i++ {
		_, err := Load(lines, WithWorkers(2))
		var se *StructuralError
		require.True(t, errors.As(err, &se))
		assert.Equal(t, bad+1, se.Line)
	}
}

func TestLowerFailed(t *testing.T) {
	var failed atomic.Int64
	failed.Store(10)

	lowerFailed(&failed, 7)
	lowerFailed(&failed, 9)
	assert.Equal(t, int64(7), failed.Load())
	lowerFailed(&failed, 2)
	assert.Equal(t, int64(2), failed.Load())
}
