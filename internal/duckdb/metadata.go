package duckdb

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// FileFingerprint holds stat-based identity for a file.
type FileFingerprint struct {
	Path    string
	Size    int64
	ModTime time.Time
}

// StatFile creates a FileFingerprint from an on-disk file. The path is made
// absolute so the same file indexed from different directories matches.
func StatFile(path string) (FileFingerprint, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return FileFingerprint{}, err
	}
	info, err := os.Stat(abs)
	if err != nil {
		return FileFingerprint{}, err
	}
	return FileFingerprint{
		Path:    abs,
		Size:    info.Size(),
		ModTime: info.ModTime(),
	}, nil
}

// IsIndexed reports whether fp was indexed and has not changed since.
func (s *Store) IsIndexed(fp FileFingerprint) (bool, error) {
	var (
		size    int64
		modTime time.Time
	)
	err := s.db.QueryRow(`SELECT size, mod_time FROM sources WHERE path=?`, fp.Path).Scan(&size, &modTime)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("query source: %w", err)
	}
	return size == fp.Size && modTime.Equal(fp.ModTime.UTC().Truncate(time.Microsecond)), nil
}

// recordSource stores the fingerprint of a freshly indexed file.
func (s *Store) recordSource(fp FileFingerprint, records int) error {
	if _, err := s.db.Exec(`DELETE FROM sources WHERE path=?`, fp.Path); err != nil {
		return fmt.Errorf("delete source: %w", err)
	}
	_, err := s.db.Exec(`INSERT INTO sources VALUES (?, ?, ?, ?)`,
		fp.Path, fp.Size, fp.ModTime.UTC().Truncate(time.Microsecond), int64(records))
	if err != nil {
		return fmt.Errorf("insert source: %w", err)
	}
	return nil
}

// Sources returns the fingerprints of every indexed file.
func (s *Store) Sources() ([]FileFingerprint, error) {
	rows, err := s.db.Query(`SELECT path, size, mod_time FROM sources ORDER BY path`)
	if err != nil {
		return nil, fmt.Errorf("query sources: %w", err)
	}
	defer rows.Close()

	var out []FileFingerprint
	for rows.Next() {
		var fp FileFingerprint
		if err := rows.Scan(&fp.Path, &fp.Size, &fp.ModTime); err != nil {
			return nil, fmt.Errorf("scan source: %w", err)
		}
		out = append(out, fp)
	}
	return out, rows.Err()
}
