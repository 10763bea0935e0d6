package vcf

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ids returns the ID column, or nil for an empty table.
func ids(t *Table) []string {
	if t.Len() == 0 {
		return nil
	}
	col, _ := t.Column(ColID)
	return col
}

func TestListChromosomes(t *testing.T) {
	f := loadSample(t)
	assert.ElementsMatch(t, []string{"1", "2", "X"}, f.ListChromosomes())
}

func TestFilterByChromosomes(t *testing.T) {
	f := loadSample(t)

	tests := []struct {
		name   string
		chroms []string
		want   []string
	}{
		{"single", []string{"2"}, []string{"rs3", "micro2"}},
		{"set", []string{"1", "X"}, []string{"rs1", "micro1", "rs2", "rs4"}},
		{"zero padded", []string{"02"}, []string{"rs3", "micro2"}},
		{"absent", []string{"MT"}, nil},
		{"empty set", nil, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(f.FilterByChromosomes(tt.chroms...)))
		})
	}
}

func TestFilterSnps(t *testing.T) {
	f := loadSample(t)
	snps := f.FilterSnps()
	assert.Equal(t, []string{"rs1", "rs2", "micro2", "rs4"}, ids(snps))

	// SNPs plus multi-base REF rows reconstruct the table.
	rest := f.Records().where(func(r Row) bool { return len(r.Ref()) >= 2 })
	assert.Equal(t, f.Records().Len(), snps.Len()+rest.Len())
	assert.ElementsMatch(t, ids(f.Records()), append(ids(snps), ids(rest)...))
}

func TestFilterMicrosatellites(t *testing.T) {
	f := loadSample(t)
	assert.Equal(t, []string{"micro1", "micro2"}, ids(f.FilterMicrosatellites()))
}

func TestFilterByFilterStatus(t *testing.T) {
	f := loadSample(t)

	pass, err := f.FilterByFilterStatus(FilterPass)
	require.NoError(t, err)
	fail, err := f.FilterByFilterStatus(FilterFail)
	require.NoError(t, err)

	assert.Equal(t, []string{"rs1", "micro1", "rs3", "rs4"}, ids(pass))
	assert.Equal(t, []string{"rs2", "micro2"}, ids(fail))
	assert.Equal(t, f.Records().Len(), pass.Len()+fail.Len())
	for _, id := range ids(pass) {
		assert.NotContains(t, ids(fail), id)
	}

	_, err = f.FilterByFilterStatus("passed")
	var qe *QueryInputError
	require.True(t, errors.As(err, &qe))
}

func TestParseFilterMode(t *testing.T) {
	m, err := ParseFilterMode("pass")
	require.NoError(t, err)
	assert.Equal(t, FilterPass, m)

	m, err = ParseFilterMode(" FAIL ")
	require.NoError(t, err)
	assert.Equal(t, FilterFail, m)

	_, err = ParseFilterMode("maybe")
	var qe *QueryInputError
	assert.True(t, errors.As(err, &qe))
}

func TestFilterByQuality(t *testing.T) {
	f := loadSample(t)
	assert.Equal(t, []string{"rs1", "rs3", "rs4"}, ids(f.FilterByQuality(50)))
	assert.Equal(t, 5, f.FilterByQuality(0).Len(), "missing QUAL never matches")
}

func TestGetByPosition(t *testing.T) {
	f := loadSample(t)

	tests := []struct {
		name  string
		chrom string
		q     PositionQuery
		want  []string
	}{
		{"exact", "1", Single{Pos: 10000}, []string{"rs1"}},
		{"exact miss", "1", Single{Pos: 10001}, nil},
		{"other chromosome", "2", Single{Pos: 10000}, nil},
		{"range inclusive", "1", Range{Start: 10000, End: 20000}, []string{"rs1", "micro1", "rs2"}},
		{"range reversed", "1", Range{Start: 20000, End: 10000}, []string{"rs1", "micro1", "rs2"}},
		{"non-numeric chromosome", "X", Single{Pos: 300}, []string{"rs4"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := f.GetByPosition(tt.chrom, tt.q)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ids(got))
		})
	}
}

func TestGetByPositionRange_OrderIndependent(t *testing.T) {
	f := loadSample(t)
	bounds := [][2]int64{{0, 100000}, {10500, 10500}, {5000, 7000}, {-1, 3}}

	for _, chrom := range []string{"1", "2", "X"} {
		for _, b := range bounds {
			ab, err := f.GetByPositionRange(chrom, b[0], b[1])
			require.NoError(t, err)
			ba, err := f.GetByPositionRange(chrom, b[1], b[0])
			require.NoError(t, err)
			assert.Equal(t, ids(ab), ids(ba))
		}
	}
}

func TestGetByPosition_InputErrors(t *testing.T) {
	f := loadSample(t)
	var qe *QueryInputError

	_, err := f.GetByPosition("", Single{Pos: 1})
	assert.True(t, errors.As(err, &qe))

	_, err = f.GetByPosition("1", nil)
	assert.True(t, errors.As(err, &qe))

	_, err = ParsePosition("10k")
	assert.True(t, errors.As(err, &qe))

	pos, err := ParsePosition(" 10000 ")
	require.NoError(t, err)
	assert.Equal(t, int64(10000), pos)
}

func TestQueriesDoNotMutate(t *testing.T) {
	f := loadSample(t)
	before := ids(f.Records())

	pass, err := f.FilterByFilterStatus(FilterPass)
	require.NoError(t, err)
	_ = pass.FilterSnps().FilterByChromosomes("1")
	_ = f.FilterMicrosatellites()

	assert.Equal(t, before, ids(f.Records()))
}

func TestPartitionByChromosome(t *testing.T) {
	f := loadSample(t)
	parts := f.Records().PartitionByChromosome()

	require.Len(t, parts, 3)
	assert.Equal(t, []string{"rs1", "micro1", "rs2"}, ids(parts["1"]))
	assert.Equal(t, []string{"rs3", "micro2"}, ids(parts["2"]))
	assert.Equal(t, []string{"rs4"}, ids(parts["X"]))
}
