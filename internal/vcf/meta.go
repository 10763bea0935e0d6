package vcf

import (
	"fmt"
	"strings"
	"unicode"
)

// Attribute is one comma-separated entry of a structured meta-line such as
// ##INFO=<ID=DP,Number=1,Type=Integer,Description="Total Depth">.
// Entries that are not NAME=VALUE keep an empty Name.
type Attribute struct {
	Name  string
	Value string // unquoted
	Raw   string // verbatim text between separators
}

// splitMetaLine splits a meta-line with its ## marker already removed into
// the keyword before the first '=' and the payload after it.
func splitMetaLine(line string) (keyword, payload string, ok bool) {
	i := strings.IndexByte(line, '=')
	if i < 0 {
		return "", "", false
	}
	return line[:i], line[i+1:], true
}

// parseAttributes tokenizes the angle-bracket body of a structured payload.
// Commas inside double-quoted values do not separate attributes.
func parseAttributes(payload string) ([]Attribute, error) {
	lt := strings.IndexByte(payload, '<')
	if lt < 0 {
		return nil, fmt.Errorf("missing opening '<' in %q", payload)
	}
	body := strings.TrimRightFunc(payload[lt+1:], unicode.IsSpace)
	if !strings.HasSuffix(body, ">") {
		return nil, fmt.Errorf("missing closing '>' in %q", payload)
	}
	body = body[:len(body)-1]
	if strings.TrimSpace(body) == "" {
		return nil, nil
	}

	var (
		attrs   []Attribute
		start   int
		inQuote bool
	)
	for i := 0; i < len(body); i++ {
		switch body[i] {
		case '\\':
			if inQuote {
				i++
			}
		case '"':
			inQuote = !inQuote
		case ',':
			if inQuote {
				continue
			}
			attrs = append(attrs, parseAttribute(body[start:i]))
			start = i + 1
		}
	}
	if inQuote {
		return nil, fmt.Errorf("unterminated quoted value in %q", payload)
	}
	return append(attrs, parseAttribute(body[start:])), nil
}

func parseAttribute(raw string) Attribute {
	name, value, ok := strings.Cut(raw, "=")
	if !ok {
		return Attribute{Value: unquote(strings.TrimSpace(raw)), Raw: raw}
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return Attribute{Value: unquote(value), Raw: raw}
	}
	return Attribute{Name: name, Value: unquote(value), Raw: raw}
}

func unquote(s string) string {
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return s
	}
	s = s[1 : len(s)-1]
	if !strings.Contains(s, `\`) {
		return s
	}
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+1 < len(s) {
			i++
		}
		b.WriteByte(s[i])
	}
	return b.String()
}
