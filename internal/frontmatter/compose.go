// Package frontmatter builds the structured header block prepended to
// converted Markdown artifacts and manages identifier-based renames.
package frontmatter

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	fm "github.com/adrg/frontmatter"
	"gopkg.in/yaml.v3"

	"docmill/internal/metadata"
)

// Params carries the provenance and site-rendering inputs for a header.
type Params struct {
	// HostURL is the base URL of the hosting forge, e.g. "https://github.com".
	HostURL string
	// Repository is the owner/name slug of the source repository.
	Repository string
	// Revision is the source revision the artifact was converted from.
	Revision string
	// SourceRel is the source document path relative to the repository root.
	SourceRel string
	// Layout is the site generator layout name.
	Layout string
	// Sidebar and EditLink toggle the corresponding site-rendering flags.
	Sidebar  bool
	EditLink bool
	// Now stamps lastModified/lastUpdated; the zero value means time.Now.
	Now time.Time
}

func (p Params) sourceURL() string {
	host := strings.TrimRight(p.HostURL, "/")
	if host == "" || p.Repository == "" {
		return ""
	}
	url := host + "/" + p.Repository
	if p.Revision != "" && p.SourceRel != "" {
		url += "/blob/" + p.Revision + "/" + filepath.ToSlash(p.SourceRel)
	}
	return url
}

// optionalFields lists record fields emitted only when present, in header
// order.
var optionalFields = []string{
	metadata.FieldUSPD,
	metadata.FieldComponentName,
	metadata.FieldCID,
	metadata.FieldDescription,
	metadata.FieldUseCategory,
	metadata.FieldType,
	metadata.FieldVersion,
	metadata.FieldTags,
	metadata.FieldRegistryID,
	metadata.FieldRegistryURL,
}

// Compose strips any existing header from content and prepends a freshly
// generated one. The body after the old header survives byte-for-byte, so
// composing twice with the same inputs is idempotent on the header region.
func Compose(content []byte, record metadata.Record, params Params) []byte {
	body := StripHeader(content)

	title := record.Get(metadata.FieldTitle, "")
	if title == "" {
		title = TitleFromFileName(params.SourceRel)
	}

	now := params.Now
	if now.IsZero() {
		now = time.Now().UTC()
	}
	stamp := now.Format("2006-01-02")

	var header strings.Builder
	header.WriteString("---\n")
	writeField(&header, "title", title)
	writeField(&header, "layout", params.Layout)
	writeField(&header, "documentType", Classify(title))
	for _, field := range optionalFields {
		if value, ok := record[field]; ok && value != "" {
			writeField(&header, field, value)
		}
	}
	writeField(&header, "lastModified", stamp)
	if url := params.sourceURL(); url != "" {
		writeField(&header, "source", url)
	}
	writeField(&header, "lastUpdated", stamp)
	writeField(&header, "editLink", fmt.Sprintf("%t", params.EditLink))
	writeField(&header, "sidebar", fmt.Sprintf("%t", params.Sidebar))
	header.WriteString("---\n")

	framed := make([]byte, 0, header.Len()+len(body))
	framed = append(framed, header.String()...)
	framed = append(framed, body...)
	return framed
}

// writeField emits one key with a YAML-safe scalar. Booleans are written as
// bare literals; everything else goes through the YAML encoder so values with
// colons or quotes stay parseable.
func writeField(sb *strings.Builder, key, value string) {
	if value == "true" || value == "false" {
		fmt.Fprintf(sb, "%s: %s\n", key, value)
		return
	}
	encoded, err := yaml.Marshal(value)
	if err != nil {
		fmt.Fprintf(sb, "%s: %q\n", key, value)
		return
	}
	fmt.Fprintf(sb, "%s: %s\n", key, strings.TrimRight(string(encoded), "\n"))
}

// StripHeader removes a leading frontmatter block, returning the body
// unchanged. Content without a parseable header is returned as-is; a header
// the YAML parser rejects is still removed by delimiter scanning so a rerun
// never stacks two headers.
func StripHeader(content []byte) []byte {
	var discard map[string]any
	rest, err := fm.Parse(bytes.NewReader(content), &discard)
	if err == nil && len(rest) < len(content) {
		return rest
	}

	if !bytes.HasPrefix(content, []byte("---\n")) && !bytes.HasPrefix(content, []byte("---\r\n")) {
		return content
	}
	lines := bytes.SplitAfter(content, []byte("\n"))
	for i := 1; i < len(lines); i++ {
		trimmed := bytes.TrimRight(lines[i], "\r\n")
		if bytes.Equal(trimmed, []byte("---")) {
			return bytes.Join(lines[i+1:], nil)
		}
	}
	return content
}

// ComposeFile rewrites path in place with a regenerated header.
func ComposeFile(path string, record metadata.Record, params Params) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read artifact: %w", err)
	}
	if err := os.WriteFile(path, Compose(content, record, params), 0o644); err != nil {
		return fmt.Errorf("write artifact: %w", err)
	}
	return nil
}

// RenameToCID renames the artifact to <cid>.md in its directory and returns
// the new path. The original file name is gone afterwards; callers gate this
// on the artifact belonging to a component source tree.
func RenameToCID(artifactPath, cid string) (string, error) {
	cid = strings.TrimSpace(cid)
	if cid == "" {
		return "", fmt.Errorf("rename %s: empty content identifier", artifactPath)
	}
	target := filepath.Join(filepath.Dir(artifactPath), cid+".md")
	if target == artifactPath {
		return artifactPath, nil
	}
	if err := os.Rename(artifactPath, target); err != nil {
		return "", fmt.Errorf("rename artifact: %w", err)
	}
	return target, nil
}
