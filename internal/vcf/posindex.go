package vcf

import (
	"sort"
	"sync"
)

// positionIndex provides O(log n + k) POS range lookups per chromosome using
// sorted slices. Built once per table on first use and never modified.
type positionIndex struct {
	chroms []chromEntries
}

type chromEntries struct {
	name    string
	chrom   NullInt
	entries []posEntry // sorted by pos, then row
}

type posEntry struct {
	pos int64
	row int
}

// buildPositionIndex groups rows by raw CHROM. Rows with a null POS are left
// out since no position query can match them.
func buildPositionIndex(rows []Row) *positionIndex {
	slot := make(map[string]int)
	ix := &positionIndex{}
	for i, r := range rows {
		if !r.pos.Valid {
			continue
		}
		name := r.ChromName()
		j, ok := slot[name]
		if !ok {
			j = len(ix.chroms)
			slot[name] = j
			ix.chroms = append(ix.chroms, chromEntries{name: name, chrom: r.chrom})
		}
		ix.chroms[j].entries = append(ix.chroms[j].entries, posEntry{pos: r.pos.Int64, row: i})
	}

	for _, c := range ix.chroms {
		sort.SliceStable(c.entries, func(a, b int) bool {
			return c.entries[a].pos < c.entries[b].pos
		})
	}
	return ix
}

// lookup returns the indices, in ascending order, of rows on a matching
// chromosome with lo <= POS <= hi.
func (ix *positionIndex) lookup(match func(name string, chrom NullInt) bool, lo, hi int64) []int {
	var result []int
	for _, c := range ix.chroms {
		if !match(c.name, c.chrom) {
			continue
		}
		// First entry with pos >= lo; scan until pos > hi.
		i := sort.Search(len(c.entries), func(k int) bool {
			return c.entries[k].pos >= lo
		})
		for ; i < len(c.entries) && c.entries[i].pos <= hi; i++ {
			result = append(result, c.entries[i].row)
		}
	}
	sort.Ints(result)
	return result
}

// lazyIndex builds a table's position index on first use.
type lazyIndex struct {
	once sync.Once
	ix   *positionIndex
}

func (l *lazyIndex) get(rows []Row) *positionIndex {
	l.once.Do(func() { l.ix = buildPositionIndex(rows) })
	return l.ix
}
