package vcf

import "sort"

// KeyDescription documents a commonly used INFO or FORMAT key.
type KeyDescription struct {
	Key         string
	Category    string // KeyInfo or KeyFormat
	Description string
}

var commonInfoKeys = map[string]string{
	"AA":        "ancestral allele",
	"AC":        "allele count in genotypes, for each ALT allele, in the same order as listed",
	"AD":        "Total read depth for each allele",
	"ADF":       "Read depth for each allele on the forward strand",
	"ADR":       "Read depth for each allele on the reverse strand",
	"AF":        "allele frequency for each ALT allele in the same order as listed: use this when estimated from primary data, not called genotypes",
	"AN":        "total number of alleles in called genotypes",
	"BQ":        "RMS base quality at this position",
	"CIGAR":     "cigar string describing how to align an alternate allele to the reference allele",
	"DB":        "dbSNP membership",
	"DP":        "combined depth across samples, e.g. DP=154",
	"END":       "end position of the variant described in this record (esp. for CNVs)",
	"H2":        "membership in hapmap2",
	"H3":        "HapMap3 membership",
	"MQ":        "RMS mapping quality, e.g. MQ=52",
	"MQ0":       "Number of MAPQ == 0 reads covering this record",
	"NS":        "Number of samples with data",
	"SB":        "strand bias at this position",
	"SOMATIC":   "indicates that the record is a somatic mutation, for cancer genomics",
	"VALIDATED": "validated by follow-up experiment",
	"1000G":     "1000 Genomes membership",
}

var commonFormatKeys = map[string]string{
	"AD":  "Read depth for each allele",
	"ADF": "Read depth for each allele on the forward strand",
	"ADR": "Read depth for each allele on the reverse strand",
	"DP":  "Read depth",
	"EC":  "Expected alternate allele counts",
	"FT":  "Filter indicating if this genotype was 'called'",
	"GL":  "Genotype likelihoods",
	"GP":  "Genotype posterior probabilities",
	"GQ":  "Conditional genotype quality",
	"GT":  "Genotype",
	"HQ":  "Haplotype quality",
	"MQ":  "RMS mapping quality",
	"PL":  "Phred-scaled genotype likelihoods rounded to the closest integer",
	"PQ":  "Phasing quality",
	"PS":  "Phase set",
}

// LookupKeyDescription returns the documentation for a well-known key.
// INFO keys take precedence over FORMAT keys of the same name.
func LookupKeyDescription(key string) (KeyDescription, bool) {
	if d, ok := commonInfoKeys[key]; ok {
		return KeyDescription{Key: key, Category: KeyInfo, Description: d}, true
	}
	if d, ok := commonFormatKeys[key]; ok {
		return KeyDescription{Key: key, Category: KeyFormat, Description: d}, true
	}
	return KeyDescription{}, false
}

// WellKnownKeys lists every entry of the reference table, INFO first, each
// category sorted by key.
func WellKnownKeys() []KeyDescription {
	out := make([]KeyDescription, 0, len(commonInfoKeys)+len(commonFormatKeys))
	out = appendSorted(out, KeyInfo, commonInfoKeys)
	return appendSorted(out, KeyFormat, commonFormatKeys)
}

func appendSorted(out []KeyDescription, category string, m map[string]string) []KeyDescription {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		out = append(out, KeyDescription{Key: k, Category: category, Description: m[k]})
	}
	return out
}
