package frontmatter

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"docmill/internal/metadata"
)

var testParams = Params{
	HostURL:    "https://github.com",
	Repository: "acme/docs",
	Revision:   "abc123",
	SourceRel:  "docs/in/RU.ECO.00005-01_90.fodt",
	Layout:     "doc",
	Sidebar:    true,
	EditLink:   true,
	Now:        time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC),
}

// hasField matches a header line whether the encoder quoted the scalar or
// left it plain.
func hasField(out, key, value string) bool {
	return strings.Contains(out, key+": "+value+"\n") ||
		strings.Contains(out, key+": \""+value+"\"\n") ||
		strings.Contains(out, key+": '"+value+"'\n")
}

func TestComposeAlwaysPresentFields(t *testing.T) {
	out := string(Compose([]byte("body text\n"), metadata.Record{}, testParams))

	for key, value := range map[string]string{
		"title":        "RU.ECO.00005-01 90",
		"layout":       "doc",
		"documentType": "Specification",
		"lastModified": "2026-08-20",
		"source":       "https://github.com/acme/docs/blob/abc123/docs/in/RU.ECO.00005-01_90.fodt",
		"lastUpdated":  "2026-08-20",
		"editLink":     "true",
		"sidebar":      "true",
	} {
		if !hasField(out, key, value) {
			t.Fatalf("missing %s=%q in:\n%s", key, value, out)
		}
	}
	if !strings.HasSuffix(out, "---\nbody text\n") {
		t.Fatalf("body not preserved after header:\n%s", out)
	}
}

func TestComposeOmitsAbsentOptionalFields(t *testing.T) {
	out := string(Compose(nil, metadata.Record{}, testParams))
	for _, key := range []string{"documentUspd:", "componentName:", "CID:", "description:"} {
		if strings.Contains(out, key) {
			t.Fatalf("unexpected optional key %q:\n%s", key, out)
		}
	}
}

func TestComposeIncludesRecordFields(t *testing.T) {
	record := metadata.Record{
		metadata.FieldTitle:         "Руководство оператора",
		metadata.FieldUSPD:          "RU.ECO.00005-01",
		metadata.FieldComponentName: "Планировщик",
		metadata.FieldCID:           "0123456789abcdef0123456789abcdef",
		metadata.FieldDescription:   "Описание: с двоеточием",
	}
	out := string(Compose([]byte("body\n"), record, testParams))

	if !hasField(out, "title", "Руководство оператора") {
		t.Fatalf("in-body title should win:\n%s", out)
	}
	if !hasField(out, "documentType", "Guide") {
		t.Fatalf("keyword classification missed:\n%s", out)
	}
	if !hasField(out, "documentUspd", "RU.ECO.00005-01") {
		t.Fatalf("missing identifier:\n%s", out)
	}
	// Values with colons must round-trip through YAML quoting.
	if !strings.Contains(out, "description: \"Описание: с двоеточием\"\n") &&
		!strings.Contains(out, "description: 'Описание: с двоеточием'\n") {
		t.Fatalf("description not YAML-quoted:\n%s", out)
	}
}

func TestComposeIsIdempotentOnHeaderRegion(t *testing.T) {
	body := "# Заголовок\n\nТекст документа.\nСтрока с --- внутри.\n"
	record := metadata.Record{metadata.FieldUSPD: "RU.ECO.00100-01"}

	first := Compose([]byte(body), record, testParams)
	second := Compose(first, record, testParams)

	if !bytes.Equal(first, second) {
		t.Fatalf("recompose changed output:\n--- first ---\n%s\n--- second ---\n%s", first, second)
	}
	if !bytes.HasSuffix(second, []byte(body)) {
		t.Fatalf("body not byte-preserved:\n%s", second)
	}
	if bytes.Count(second, []byte("title:")) != 1 {
		t.Fatalf("stacked headers:\n%s", second)
	}
}

// Reframing is documented as re-deriving the record from content, so a
// second run over an already-framed artifact must converge instead of
// compounding YAML quoting.
func TestComposeExtractRoundTripConverges(t *testing.T) {
	record := metadata.Record{
		metadata.FieldTitle:       "Руководство: оператор",
		metadata.FieldUSPD:        "RU.ECO.00005-01",
		metadata.FieldCID:         "0123456789abcdef0123456789abcdef",
		metadata.FieldDescription: "Описание: с двоеточием",
	}

	first := Compose([]byte("body\n"), record, testParams)
	rederived := metadata.Extract(string(first))

	if got := rederived.Get(metadata.FieldDescription, ""); got != "Описание: с двоеточием" {
		t.Fatalf("re-derived description drifted: %q", got)
	}
	if got := rederived.Get(metadata.FieldTitle, ""); got != "Руководство: оператор" {
		t.Fatalf("re-derived title drifted: %q", got)
	}

	second := Compose(first, rederived, testParams)
	if !bytes.Equal(first, second) {
		t.Fatalf("reframe changed output:\n--- first ---\n%s\n--- second ---\n%s", first, second)
	}
	if bytes.Contains(second, []byte("'''")) {
		t.Fatalf("quoting compounded:\n%s", second)
	}
}

func TestStripHeaderHandlesUnparseableYAML(t *testing.T) {
	content := []byte("---\ntitle: [broken\n---\nbody line\n")
	if got := string(StripHeader(content)); got != "body line\n" {
		t.Fatalf("expected delimiter-scan strip, got %q", got)
	}
}

func TestStripHeaderLeavesPlainContent(t *testing.T) {
	content := []byte("no header here\n---\nnot a header either\n")
	if got := StripHeader(content); !bytes.Equal(got, content) {
		t.Fatalf("content mangled: %q", got)
	}
}

func TestClassify(t *testing.T) {
	cases := map[string]string{
		"Руководство оператора":      "Guide",
		"Installation Guide":         "Guide",
		"Research paper on caching":  "Research",
		"Практикум по развертыванию": "Tutorial",
		"Формуляр изделия":           "Specification",
	}
	for title, want := range cases {
		if got := Classify(title); got != want {
			t.Fatalf("Classify(%q) = %q, want %q", title, got, want)
		}
	}
}

func TestRenameToCID(t *testing.T) {
	dir := t.TempDir()
	original := filepath.Join(dir, "RU.ECO.00005-01_90_1.md")
	if err := os.WriteFile(original, []byte("doc"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	renamed, err := RenameToCID(original, "0123456789abcdef0123456789abcdef")
	if err != nil {
		t.Fatalf("rename: %v", err)
	}
	if filepath.Base(renamed) != "0123456789abcdef0123456789abcdef.md" {
		t.Fatalf("unexpected target %q", renamed)
	}
	if _, err := os.Stat(original); !os.IsNotExist(err) {
		t.Fatal("original file should be gone")
	}

	if _, err := RenameToCID(renamed, " "); err == nil {
		t.Fatal("expected error for empty identifier")
	}
}

func TestComposeFileRewritesInPlace(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.md")
	if err := os.WriteFile(path, []byte("---\nold: header\n---\nbody\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	if err := ComposeFile(path, metadata.Record{metadata.FieldTitle: "Doc"}, testParams); err != nil {
		t.Fatalf("compose: %v", err)
	}
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if strings.Contains(string(content), "old: header") {
		t.Fatalf("old header survived:\n%s", content)
	}
	if !strings.HasSuffix(string(content), "body\n") {
		t.Fatalf("body lost:\n%s", content)
	}
}
