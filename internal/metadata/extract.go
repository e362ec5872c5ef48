package metadata

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	fm "github.com/adrg/frontmatter"
)

// HeadLimit bounds how much of a document the extractor scans. Metadata sits
// in the opening sections; scanning whole converted books is wasted work.
const HeadLimit = 64 * 1024

var (
	fileNameUSPDRe = regexp.MustCompile(uspdExpr)
	cidValueRe     = regexp.MustCompile(`(?i)^[0-9a-f]{32}$`)
)

// Extract scans text for every known field and returns the values that
// matched. A parseable frontmatter header is decoded as YAML and its keys win
// over body patterns; the pattern scan then covers only the bytes after the
// header, so generated header lines never feed back into extraction. Missing
// fields are absent from the Record; extraction itself never fails.
func Extract(text string) Record {
	if len(text) > HeadLimit {
		text = text[:HeadLimit]
	}

	header, body := splitHeader(text)

	record := make(Record)
	for _, field := range extractionOrder {
		if value := headerValue(header, field); value != "" {
			record[field] = value
			continue
		}
		for _, fp := range fieldPatterns[field] {
			match := fp.re.FindStringSubmatch(body)
			if match == nil || fp.group >= len(match) {
				continue
			}
			value := strings.TrimSpace(match[fp.group])
			if value == "" {
				continue
			}
			record[field] = value
			break
		}
	}
	return record
}

// splitHeader decodes a leading frontmatter block. Content without one, or
// with YAML the parser rejects, yields a nil header and the full text as the
// body; the regex fallback patterns cover that case.
func splitHeader(text string) (map[string]any, string) {
	var header map[string]any
	rest, err := fm.Parse(strings.NewReader(text), &header)
	if err != nil || len(header) == 0 {
		return nil, text
	}
	return header, string(rest)
}

// headerValue pulls a field from a decoded header. String lists are joined
// with ", "; identifier fields are validated so a stray header value cannot
// mint a malformed record.
func headerValue(header map[string]any, field string) string {
	raw, ok := header[field]
	if !ok || raw == nil {
		return ""
	}
	var value string
	switch v := raw.(type) {
	case string:
		value = strings.TrimSpace(v)
	case []any:
		parts := make([]string, 0, len(v))
		for _, item := range v {
			if part := strings.TrimSpace(fmt.Sprint(item)); part != "" {
				parts = append(parts, part)
			}
		}
		value = strings.Join(parts, ", ")
	default:
		value = strings.TrimSpace(fmt.Sprint(v))
	}
	switch field {
	case FieldUSPD:
		return fileNameUSPDRe.FindString(value)
	case FieldCID:
		if !cidValueRe.MatchString(value) {
			return ""
		}
	}
	return value
}

// ExtractFile reads at most HeadLimit bytes from path and extracts metadata.
// Unopenable input is the one extraction failure that is reported rather
// than absorbed.
func ExtractFile(path string) (Record, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer file.Close()

	head := make([]byte, HeadLimit)
	n, err := io.ReadFull(file, head)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return Extract(string(head[:n])), nil
}

// USPDFromFileName recovers the identifier from a file name such as
// RU.ECO.00005-01_90.fodt, where the part suffix after the underscore is not
// part of the identifier. Returns the empty string when the name carries
// none.
func USPDFromFileName(path string) string {
	base := filepath.Base(path)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return fileNameUSPDRe.FindString(base)
}

// WithUSPDFallback fills the identifier from the file name when body
// extraction produced none.
func WithUSPDFallback(record Record, path string) Record {
	if record == nil {
		record = make(Record)
	}
	if !record.Has(FieldUSPD) {
		if uspd := USPDFromFileName(path); uspd != "" {
			record[FieldUSPD] = uspd
		}
	}
	return record
}
