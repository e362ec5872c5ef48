package metadata

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestExtractPlainTextLayout(t *testing.T) {
	text := strings.Join([]string{
		"# Система управления базами данных",
		"",
		"Компонент: СУБД Квант",
		"Обозначение: RU.ECO.00005-01",
		"CID: 0123456789abcdef0123456789abcdef",
		"Краткое описание: Реляционная СУБД для встраиваемых систем",
		"Версия: 2.4.1",
		"Категория применения: серверные системы",
	}, "\n")

	record := Extract(text)
	want := map[string]string{
		FieldTitle:         "Система управления базами данных",
		FieldComponentName: "СУБД Квант",
		FieldUSPD:          "RU.ECO.00005-01",
		FieldCID:           "0123456789abcdef0123456789abcdef",
		FieldDescription:   "Реляционная СУБД для встраиваемых систем",
		FieldVersion:       "2.4.1",
		FieldUseCategory:   "серверные системы",
	}
	for field, value := range want {
		if record.Get(field, "") != value {
			t.Fatalf("field %s: got %q, want %q", field, record.Get(field, ""), value)
		}
	}
}

func TestExtractRichMarkupLayout(t *testing.T) {
	text := strings.Join([]string{
		"**Компонент**: Модуль шифрования",
		"**RU.ECO.01234-02**",
		"**CID**: ffffffffffffffffffffffffffffffff",
		"**Описание**: Криптографический модуль",
	}, "\n")

	record := Extract(text)
	if record.Get(FieldComponentName, "") != "Модуль шифрования" {
		t.Fatalf("unexpected component name: %q", record.Get(FieldComponentName, ""))
	}
	if record.Get(FieldUSPD, "") != "RU.ECO.01234-02" {
		t.Fatalf("unexpected uspd: %q", record.Get(FieldUSPD, ""))
	}
	if record.Get(FieldCID, "") != "ffffffffffffffffffffffffffffffff" {
		t.Fatalf("unexpected cid: %q", record.Get(FieldCID, ""))
	}
}

func TestExtractFrontmatterLayout(t *testing.T) {
	text := strings.Join([]string{
		"---",
		"title: Руководство оператора",
		"componentName: Планировщик",
		"documentUspd: RU.ECO.00100-01",
		"description: Руководство по эксплуатации",
		"version: 1.0",
		"---",
		"body",
	}, "\n")

	record := Extract(text)
	if record.Get(FieldUSPD, "") != "RU.ECO.00100-01" {
		t.Fatalf("unexpected uspd: %q", record.Get(FieldUSPD, ""))
	}
	if record.Get(FieldComponentName, "") != "Планировщик" {
		t.Fatalf("unexpected component: %q", record.Get(FieldComponentName, ""))
	}
}

func TestExtractUnquotesHeaderScalars(t *testing.T) {
	text := strings.Join([]string{
		"---",
		"title: 'Руководство: оператор'",
		"componentName: Планировщик",
		"CID: 0123456789abcdef0123456789abcdef",
		"documentUspd: 'RU.ECO.00100-01'",
		"description: 'Описание: с двоеточием'",
		"---",
		"body",
	}, "\n")

	record := Extract(text)
	if got := record.Get(FieldDescription, ""); got != "Описание: с двоеточием" {
		t.Fatalf("unexpected description: %q", got)
	}
	if got := record.Get(FieldTitle, ""); got != "Руководство: оператор" {
		t.Fatalf("unexpected title: %q", got)
	}
	if got := record.Get(FieldUSPD, ""); got != "RU.ECO.00100-01" {
		t.Fatalf("unexpected uspd: %q", got)
	}
	if got := record.Get(FieldCID, ""); got != "0123456789abcdef0123456789abcdef" {
		t.Fatalf("unexpected cid: %q", got)
	}
}

func TestExtractIgnoresHeaderProvenanceLines(t *testing.T) {
	text := strings.Join([]string{
		"---",
		"title: Заметки",
		"source: https://github.com/acme/docs/blob/abc/RU.ECO.00777-01_90.fodt",
		"---",
		"A body with no identifier of its own.",
	}, "\n")

	record := Extract(text)
	if record.Has(FieldUSPD) {
		t.Fatalf("source url must not mint an identifier, got %q", record[FieldUSPD])
	}
}

func TestExtractRejectsMalformedHeaderIdentifiers(t *testing.T) {
	text := strings.Join([]string{
		"---",
		"CID: not-a-content-id",
		"documentUspd: bogus",
		"---",
		"body",
	}, "\n")

	record := Extract(text)
	if record.Has(FieldCID) || record.Has(FieldUSPD) {
		t.Fatalf("malformed header identifiers must be dropped, got %v", record)
	}
}

func TestExtractMissingFieldsAreAbsent(t *testing.T) {
	record := Extract("An ordinary paragraph with no metadata at all.")
	if record.Has(FieldUSPD) || record.Has(FieldCID) {
		t.Fatalf("expected no identifiers, got %v", record)
	}
	if got := record.Get(FieldUSPD, ValueAbsent); got != ValueAbsent {
		t.Fatalf("expected sentinel fallback, got %q", got)
	}
}

func TestUSPDFromFileName(t *testing.T) {
	cases := []struct {
		path string
		want string
	}{
		{"RU.ECO.00005-01_90.fodt", "RU.ECO.00005-01"},
		{"docs/in/RU.ECO.12345-02.fodt", "RU.ECO.12345-02"},
		{"notes.fodt", ""},
		{"БН.ECO.00001-01_33.fodt", "БН.ECO.00001-01"},
	}
	for _, tc := range cases {
		if got := USPDFromFileName(tc.path); got != tc.want {
			t.Fatalf("USPDFromFileName(%q) = %q, want %q", tc.path, got, tc.want)
		}
	}
}

func TestWithUSPDFallbackPrefersBody(t *testing.T) {
	record := Record{FieldUSPD: "RU.ECO.99999-01"}
	record = WithUSPDFallback(record, "RU.ECO.00005-01_90.fodt")
	if record[FieldUSPD] != "RU.ECO.99999-01" {
		t.Fatalf("body identifier should win, got %q", record[FieldUSPD])
	}

	record = WithUSPDFallback(Record{}, "RU.ECO.00005-01_90.fodt")
	if record[FieldUSPD] != "RU.ECO.00005-01" {
		t.Fatalf("expected filename fallback, got %q", record[FieldUSPD])
	}
}

func TestExtractFileBoundsRead(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "big.md")
	var sb strings.Builder
	sb.WriteString("Обозначение: RU.ECO.00042-01\n")
	sb.WriteString(strings.Repeat("filler line\n", 20000))
	if err := os.WriteFile(path, []byte(sb.String()), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	record, err := ExtractFile(path)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if record.Get(FieldUSPD, "") != "RU.ECO.00042-01" {
		t.Fatalf("unexpected uspd: %q", record.Get(FieldUSPD, ""))
	}
}

func TestExtractFileReportsUnopenable(t *testing.T) {
	if _, err := ExtractFile(filepath.Join(t.TempDir(), "missing.md")); err == nil {
		t.Fatal("expected error for unopenable file")
	}
}
