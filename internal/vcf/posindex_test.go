package vcf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func anyChrom(string, NullInt) bool { return true }

func TestBuildPositionIndex_Empty(t *testing.T) {
	ix := buildPositionIndex(nil)
	assert.Empty(t, ix.lookup(anyChrom, 0, 100))
}

func TestPositionIndex_Boundaries(t *testing.T) {
	f, err := Load([]string{columnHeader, "1\t100\ta\tA\tG\t.\tPASS\t.", "1\t200\tb\tA\tG\t.\tPASS\t."})
	require.NoError(t, err)
	ix := buildPositionIndex(f.Records().rows)

	assert.Equal(t, []int{0}, ix.lookup(anyChrom, 100, 100), "start boundary inclusive")
	assert.Equal(t, []int{0, 1}, ix.lookup(anyChrom, 100, 200), "end boundary inclusive")
	assert.Empty(t, ix.lookup(anyChrom, 101, 199))
	assert.Empty(t, ix.lookup(anyChrom, 201, 300), "after last")
	assert.Empty(t, ix.lookup(anyChrom, 0, 99), "before first")
}

func TestPositionIndex_FileOrder(t *testing.T) {
	// Unsorted input: results come back in file order, not position order.
	f, err := Load([]string{
		columnHeader,
		"1\t300\ta\tA\tG\t.\tPASS\t.",
		"2\t150\tb\tA\tG\t.\tPASS\t.",
		"1\t100\tc\tA\tG\t.\tPASS\t.",
		"01\t200\td\tA\tG\t.\tPASS\t.",
		"1\tNA\te\tA\tG\t.\tPASS\t.",
	})
	require.NoError(t, err)

	got, err := f.GetByPositionRange("1", 0, 1000)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "c", "d"}, ids(got))

	got, err = f.GetByPositionRange("01", 150, 250)
	require.NoError(t, err)
	assert.Equal(t, []string{"d"}, ids(got))
}

func TestPositionIndex_DerivedTable(t *testing.T) {
	f := loadSample(t)
	pass, err := f.FilterByFilterStatus(FilterPass)
	require.NoError(t, err)

	got, err := pass.GetByPositionRange("1", 10000, 20000)
	require.NoError(t, err)
	assert.Equal(t, []string{"rs1", "micro1"}, ids(got))
}
