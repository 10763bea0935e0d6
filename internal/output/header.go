package output

import (
	"io"

	"gopkg.in/yaml.v3"

	"github.com/inodb/vcfkit/internal/vcf"
)

type headerDoc struct {
	FileFormat string           `yaml:"fileformat,omitempty"`
	FileDate   string           `yaml:"fileDate,omitempty"`
	Source     string           `yaml:"source,omitempty"`
	Reference  string           `yaml:"reference,omitempty"`
	Phasing    string           `yaml:"phasing,omitempty"`
	Contigs    []contigDoc      `yaml:"contigs,omitempty"`
	Info       []declarationDoc `yaml:"info,omitempty"`
	Filter     []declarationDoc `yaml:"filter,omitempty"`
	Format     []declarationDoc `yaml:"format,omitempty"`
}

type contigDoc struct {
	ID       int     `yaml:"id"`
	Species  *string `yaml:"species,omitempty"`
	Length   *uint64 `yaml:"length,omitempty"`
	Assembly *string `yaml:"assembly,omitempty"`
	Taxonomy *string `yaml:"taxonomy,omitempty"`
}

type declarationDoc struct {
	ID          string `yaml:"id"`
	Number      string `yaml:"number,omitempty"`
	Type        string `yaml:"type,omitempty"`
	Description string `yaml:"description,omitempty"`
	// Other holds the remaining sub-attributes verbatim, e.g. Source="dbSNP".
	Other []string `yaml:"other,omitempty"`
}

// WriteHeaderYAML renders header metadata as YAML. Declarations are sorted
// by ID and contigs by numeric ID.
func WriteHeaderYAML(w io.Writer, h *vcf.Header) error {
	doc := headerDoc{}
	doc.FileFormat, _ = h.FileFormat()
	doc.FileDate, _ = h.FileDate()
	doc.Source, _ = h.Source()
	doc.Reference, _ = h.Reference()
	doc.Phasing, _ = h.Phasing()

	for _, id := range h.ContigIDs() {
		c, _ := h.Contig(id)
		doc.Contigs = append(doc.Contigs, contigDoc{
			ID: c.ID, Species: c.Species, Length: c.Length, Assembly: c.Assembly, Taxonomy: c.Taxonomy,
		})
	}

	doc.Info = declarations(h.InfoIDs(), h.Info)
	doc.Filter = declarations(h.FilterIDs(), h.Filter)
	doc.Format = declarations(h.FormatIDs(), h.Format)

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return err
	}
	return enc.Close()
}

func declarations(ids []string, lookup func(string) (vcf.Declaration, bool)) []declarationDoc {
	out := make([]declarationDoc, 0, len(ids))
	for _, id := range ids {
		d, _ := lookup(id)
		dd := declarationDoc{ID: d.ID, Number: d.Number, Type: d.Type, Description: d.Description}
		for _, a := range d.Attributes {
			switch a.Name {
			case "Number", "Type", "Description":
			default:
				dd.Other = append(dd.Other, a.Raw)
			}
		}
		out = append(out, dd)
	}
	return out
}
