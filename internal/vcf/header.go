package vcf

import (
	"maps"
	"slices"
	"strconv"
	"strings"
	"unicode"
)

// Scalar meta-line keywords.
const (
	KeyFileFormat = "fileformat"
	KeyFileDate   = "fileDate"
	KeySource     = "source"
	KeyReference  = "reference"
	KeyPhasing    = "phasing"
)

// Structured meta-line keywords.
const (
	KeyContig = "contig"
	KeyInfo   = "INFO"
	KeyFilter = "FILTER"
	KeyFormat = "FORMAT"
)

// Declaration is an INFO, FILTER or FORMAT meta-line.
type Declaration struct {
	ID          string
	Number      string
	Type        string
	Description string
	// Attributes holds every sub-attribute after ID, in file order.
	Attributes []Attribute
	// Raw holds the same sub-attributes verbatim.
	Raw []string
}

// Attribute returns the value of the named sub-attribute. Entries without
// a name are never matched.
func (d Declaration) Attribute(name string) (string, bool) {
	if name == "" {
		return "", false
	}
	for _, a := range d.Attributes {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// Contig is a ##contig declaration. Optional fields are nil when absent.
type Contig struct {
	ID       int
	Name     string
	Species  *string
	Length   *uint64
	Assembly *string
	Taxonomy *string
}

// Header holds the meta-information of a VCF file. Accessors return
// copies, so callers cannot change a loaded header.
type Header struct {
	scalars map[string]string
	info    map[string]Declaration
	filter  map[string]Declaration
	format  map[string]Declaration
	contigs map[int]Contig
}

func newHeader() *Header {
	return &Header{
		scalars: make(map[string]string),
		info:    make(map[string]Declaration),
		filter:  make(map[string]Declaration),
		format:  make(map[string]Declaration),
		contigs: make(map[int]Contig),
	}
}

func (d Declaration) clone() Declaration {
	d.Attributes = slices.Clone(d.Attributes)
	d.Raw = slices.Clone(d.Raw)
	return d
}

func (c Contig) clone() Contig {
	c.Species = clonePtr(c.Species)
	c.Length = clonePtr(c.Length)
	c.Assembly = clonePtr(c.Assembly)
	c.Taxonomy = clonePtr(c.Taxonomy)
	return c
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func lookupDeclaration(m map[string]Declaration, id string) (Declaration, bool) {
	d, ok := m[id]
	if !ok {
		return Declaration{}, false
	}
	return d.clone(), true
}

// Info returns the ##INFO declaration with the given ID.
func (h *Header) Info(id string) (Declaration, bool) { return lookupDeclaration(h.info, id) }

// Filter returns the ##FILTER declaration with the given ID.
func (h *Header) Filter(id string) (Declaration, bool) { return lookupDeclaration(h.filter, id) }

// Format returns the ##FORMAT declaration with the given ID.
func (h *Header) Format(id string) (Declaration, bool) { return lookupDeclaration(h.format, id) }

// InfoIDs returns the declared INFO IDs in sorted order.
func (h *Header) InfoIDs() []string { return slices.Sorted(maps.Keys(h.info)) }

// FilterIDs returns the declared FILTER IDs in sorted order.
func (h *Header) FilterIDs() []string { return slices.Sorted(maps.Keys(h.filter)) }

// FormatIDs returns the declared FORMAT IDs in sorted order.
func (h *Header) FormatIDs() []string { return slices.Sorted(maps.Keys(h.format)) }

// Contig returns the ##contig declaration with the given numeric ID.
func (h *Header) Contig(id int) (Contig, bool) {
	c, ok := h.contigs[id]
	if !ok {
		return Contig{}, false
	}
	return c.clone(), true
}

// ContigIDs returns the declared contig IDs in ascending order.
func (h *Header) ContigIDs() []int { return slices.Sorted(maps.Keys(h.contigs)) }

// Scalar returns the value of a scalar meta-line such as fileformat.
func (h *Header) Scalar(keyword string) (string, bool) {
	v, ok := h.scalars[keyword]
	return v, ok
}

// FileFormat returns the ##fileformat value.
func (h *Header) FileFormat() (string, bool) { return h.Scalar(KeyFileFormat) }

// FileDate returns the ##fileDate value.
func (h *Header) FileDate() (string, bool) { return h.Scalar(KeyFileDate) }

// Source returns the ##source value.
func (h *Header) Source() (string, bool) { return h.Scalar(KeySource) }

// Reference returns the ##reference value.
func (h *Header) Reference() (string, bool) { return h.Scalar(KeyReference) }

// Phasing returns the ##phasing value.
func (h *Header) Phasing() (string, bool) { return h.Scalar(KeyPhasing) }

// numberedLine is an input line with its 1-based position in the input.
type numberedLine struct {
	no   int
	text string
}

// parseHeader builds a Header from meta-lines (## marker still present).
// Unknown keywords are ignored.
func parseHeader(lines []numberedLine) (*Header, error) {
	h := newHeader()
	for _, l := range lines {
		if err := h.parseMetaLine(l); err != nil {
			return nil, err
		}
	}
	return h, nil
}

func (h *Header) parseMetaLine(l numberedLine) error {
	keyword, payload, ok := splitMetaLine(strings.TrimPrefix(l.text, "##"))
	if !ok {
		return nil
	}

	switch keyword {
	case KeyFileFormat, KeyFileDate, KeySource, KeyReference, KeyPhasing:
		h.scalars[keyword] = strings.TrimRightFunc(payload, unicode.IsSpace)
	case KeyContig:
		c, err := parseContig(payload)
		if err != nil {
			return structuralf(l.no, "contig: %v", err)
		}
		h.contigs[c.ID] = c
	case KeyInfo, KeyFilter, KeyFormat:
		d, err := parseDeclaration(payload)
		if err != nil {
			return structuralf(l.no, "%s: %v", keyword, err)
		}
		switch keyword {
		case KeyInfo:
			h.info[d.ID] = d
		case KeyFilter:
			h.filter[d.ID] = d
		default:
			h.format[d.ID] = d
		}
	}
	return nil
}

// leadingID returns the ID attribute, which must come first, and the rest.
func leadingID(payload string) (string, []Attribute, error) {
	attrs, err := parseAttributes(payload)
	if err != nil {
		return "", nil, err
	}
	if len(attrs) == 0 || attrs[0].Name != "ID" {
		return "", nil, errMissingID
	}
	if attrs[0].Value == "" {
		return "", nil, errEmptyID
	}
	return attrs[0].Value, attrs[1:], nil
}

func parseDeclaration(payload string) (Declaration, error) {
	id, rest, err := leadingID(payload)
	if err != nil {
		return Declaration{}, err
	}
	d := Declaration{ID: id, Attributes: rest, Raw: make([]string, len(rest))}
	for i, a := range rest {
		d.Raw[i] = a.Raw
		switch a.Name {
		case "Number":
			d.Number = a.Value
		case "Type":
			d.Type = a.Value
		case "Description":
			d.Description = a.Value
		}
	}
	return d, nil
}

func parseContig(payload string) (Contig, error) {
	id, rest, err := leadingID(payload)
	if err != nil {
		return Contig{}, err
	}
	n, err := strconv.Atoi(id)
	if err != nil {
		return Contig{}, &attrError{name: "ID", value: id, want: "an integer"}
	}
	c := Contig{ID: n, Name: id}
	for _, a := range rest {
		v := a.Value
		switch a.Name {
		case "species":
			c.Species = &v
		case "assembly":
			c.Assembly = &v
		case "taxonomy":
			c.Taxonomy = &v
		case "length":
			length, err := strconv.ParseUint(v, 10, 64)
			if err != nil {
				return Contig{}, &attrError{name: "length", value: v, want: "an unsigned integer"}
			}
			c.Length = &length
		}
	}
	return c, nil
}
