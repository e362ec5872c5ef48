package frontmatter

import (
	"path/filepath"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// DefaultDocumentType is used when no keyword list matches the title.
const DefaultDocumentType = "Specification"

var documentTypeKeywords = []struct {
	docType  string
	keywords []string
}{
	{"Guide", []string{"guide", "manual", "руководство", "инструкция"}},
	{"Research", []string{"paper", "research", "исследование", "статья"}},
	{"Tutorial", []string{"tutorial", "walkthrough", "практикум", "учебник"}},
}

// Classify maps a document title to a coarse document type by keyword match.
func Classify(title string) string {
	lowered := strings.ToLower(title)
	for _, entry := range documentTypeKeywords {
		for _, keyword := range entry.keywords {
			if strings.Contains(lowered, keyword) {
				return entry.docType
			}
		}
	}
	return DefaultDocumentType
}

var titleCaser = cases.Title(language.Und, cases.NoLower)

// TitleFromFileName derives a display title from a file name: the extension
// is dropped, separators become spaces, runs of whitespace collapse, and the
// first letter of each word is capitalized without lowering the rest.
func TitleFromFileName(path string) string {
	base := filepath.Base(path)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	base = strings.ReplaceAll(base, "_", " ")
	return titleCaser.String(strings.Join(strings.Fields(base), " "))
}
