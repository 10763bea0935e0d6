package main

import (
	"github.com/inodb/vcfkit/internal/vcf"
)

// queryOptions holds the filters of the query command. Every filter that is
// set narrows the result.
type queryOptions struct {
	chroms     []string
	pos        string
	start, end string
	status     string
	snps       bool
	micro      bool
	minQual    float64
	minQualSet bool
}

// positionQuery turns the position flags into a PositionQuery, or nil when
// none were given.
func (o queryOptions) positionQuery() (vcf.PositionQuery, error) {
	switch {
	case o.pos != "" && (o.start != "" || o.end != ""):
		return nil, &usageError{msg: "--pos cannot be combined with --start/--end"}
	case o.pos != "":
		p, err := vcf.ParsePosition(o.pos)
		if err != nil {
			return nil, err
		}
		return vcf.Single{Pos: p}, nil
	case o.start != "" || o.end != "":
		if o.start == "" || o.end == "" {
			return nil, &usageError{msg: "--start and --end must be given together"}
		}
		s, err := vcf.ParsePosition(o.start)
		if err != nil {
			return nil, err
		}
		e, err := vcf.ParsePosition(o.end)
		if err != nil {
			return nil, err
		}
		return vcf.Range{Start: s, End: e}, nil
	}
	return nil, nil
}

// applyQuery runs the selected filters over f in a fixed order.
func applyQuery(f *vcf.File, o queryOptions) (*vcf.Table, error) {
	pq, err := o.positionQuery()
	if err != nil {
		return nil, err
	}

	t := f.Records()
	if pq != nil {
		if len(o.chroms) != 1 {
			return nil, &usageError{msg: "position filters need exactly one --chrom"}
		}
		if t, err = t.GetByPosition(o.chroms[0], pq); err != nil {
			return nil, err
		}
	} else if len(o.chroms) > 0 {
		t = t.FilterByChromosomes(o.chroms...)
	}

	if o.status != "" {
		mode, err := vcf.ParseFilterMode(o.status)
		if err != nil {
			return nil, err
		}
		if t, err = t.FilterByFilterStatus(mode); err != nil {
			return nil, err
		}
	}
	if o.snps {
		t = t.FilterSnps()
	}
	if o.micro {
		t = t.FilterMicrosatellites()
	}
	if o.minQualSet {
		t = t.FilterByQuality(o.minQual)
	}
	return t, nil
}
