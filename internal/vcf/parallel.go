package vcf

import (
	"sync/atomic"

	"golang.org/x/sync/errgroup"
)

// chunkSize is the number of data lines handed to a worker at once.
const chunkSize = 4096

// chunkResult holds the outcome of one sequence-numbered chunk.
type chunkResult struct {
	rows     []Row
	warnings []CoercionWarning
	err      error
}

// parseRowsParallel parses data lines in chunks on a bounded pool of workers
// and reassembles them in file order. A failed chunk cancels every chunk
// after it; chunks before it still run, so the error with the lowest line
// number is returned, as in a sequential pass.
func parseRowsParallel(s *Schema, lines []numberedLine, workers int) ([]Row, []CoercionWarning, error) {
	nChunks := (len(lines) + chunkSize - 1) / chunkSize
	results := make([]chunkResult, nChunks)

	var failed atomic.Int64
	failed.Store(int64(nChunks))

	var g errgroup.Group
	g.SetLimit(workers)
	for seq := 0; seq < nChunks; seq++ {
		if int64(seq) > failed.Load() {
			break
		}
		chunk := lines[seq*chunkSize : min((seq+1)*chunkSize, len(lines))]
		g.Go(func() error {
			if int64(seq) > failed.Load() {
				return nil
			}
			rows, warnings, err := parseRows(s, chunk)
			results[seq] = chunkResult{rows: rows, warnings: warnings, err: err}
			if err != nil {
				lowerFailed(&failed, int64(seq))
			}
			return err
		})
	}
	// The ordered scan below picks the error; Wait's is whichever finished first.
	_ = g.Wait()

	rows := make([]Row, 0, len(lines))
	var warnings []CoercionWarning
	for _, r := range results {
		if r.err != nil {
			return nil, nil, r.err
		}
		rows = append(rows, r.rows...)
		warnings = append(warnings, r.warnings...)
	}
	return rows, warnings, nil
}

// lowerFailed records seq as the failed chunk if it precedes the current one.
func lowerFailed(failed *atomic.Int64, seq int64) {
	for {
		cur := failed.Load()
		if seq >= cur || failed.CompareAndSwap(cur, seq) {
			return
		}
	}
}
