package vcf

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/biogo/hts/bgzf"
	"github.com/klauspost/compress/gzip"
)

// Open reads and parses a VCF file. Plain, gzip and BGZF (.vcf.gz) inputs
// are detected from their magic bytes. Use "-" to read stdin.
func Open(path string, opts ...Option) (*File, error) {
	if path == "-" {
		return LoadReader(os.Stdin, opts...)
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open vcf file: %w", err)
	}
	defer file.Close()

	return LoadReader(file, opts...)
}

// LoadReader reads r to the end and parses it with Load.
func LoadReader(r io.Reader, opts ...Option) (*File, error) {
	lines, err := ReadLines(r)
	if err != nil {
		return nil, err
	}
	return Load(lines, opts...)
}

// ReadLines decompresses r if needed and returns its lines without
// terminators. The whole input is held in memory.
func ReadLines(r io.Reader) ([]string, error) {
	dr, closer, err := decompress(r)
	if err != nil {
		return nil, err
	}
	if closer != nil {
		defer closer.Close()
	}

	reader := bufio.NewReader(dr)
	var lines []string
	for {
		line, err := reader.ReadString('\n')
		if len(line) > 0 {
			lines = append(lines, line)
		}
		if err != nil {
			if err == io.EOF {
				return lines, nil
			}
			return nil, fmt.Errorf("read vcf line %d: %w", len(lines)+1, err)
		}
	}
}

// decompress sniffs the gzip magic number (0x1f, 0x8b) and, for BGZF, the
// "BC" extra subfield.
func decompress(r io.Reader) (io.Reader, io.Closer, error) {
	br := bufio.NewReader(r)
	magic, _ := br.Peek(14)
	if len(magic) < 2 || magic[0] != 0x1f || magic[1] != 0x8b {
		return br, nil, nil
	}

	if isBGZF(magic) {
		bg, err := bgzf.NewReader(br, 1)
		if err != nil {
			return nil, nil, fmt.Errorf("create bgzf reader: %w", err)
		}
		return bg, bg, nil
	}

	gz, err := gzip.NewReader(br)
	if err != nil {
		return nil, nil, fmt.Errorf("create gzip reader: %w", err)
	}
	return gz, gz, nil
}

func isBGZF(magic []byte) bool {
	const flagExtra = 0x04
	return len(magic) >= 14 && magic[3]&flagExtra != 0 && magic[12] == 'B' && magic[13] == 'C'
}
