// Package registry scans converted Markdown trees and produces the sorted
// component registry file.
package registry

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	fm "github.com/adrg/frontmatter"

	"docmill/internal/logging"
	"docmill/internal/metadata"
)

// Header is the fixed two-line preamble of the registry file.
const Header = "# Component document registry\n# Format: USPD : Name : CID : Description\n"

// Entry is one registry row keyed by its identifier.
type Entry struct {
	USPD        string
	Name        string
	CID         string
	Description string
	SourcePath  string
}

// Line renders the entry as a registry row. Missing columns carry the absent
// marker so the column count stays fixed.
func (e Entry) Line() string {
	name := e.Name
	if name == "" {
		name = metadata.ValueAbsent
	}
	cid := e.CID
	if cid == "" {
		cid = metadata.ValueAbsent
	}
	description := e.Description
	if description == "" {
		description = metadata.ValueAbsent
	}
	return fmt.Sprintf("%s : %s : %s : %s", e.USPD, name, cid, description)
}

// artifactHeader is the subset of frontmatter keys the registry consumes.
// Registry extraction reads the header only, never the body.
type artifactHeader struct {
	Title         string `yaml:"title"`
	ComponentName string `yaml:"componentName"`
	DocumentUspd  string `yaml:"documentUspd"`
	CID           string `yaml:"CID"`
	Description   string `yaml:"description"`
}

// Builder assembles registry entries from one or more artifact trees.
type Builder struct {
	logger *slog.Logger
}

func NewBuilder(logger *slog.Logger) *Builder {
	return &Builder{logger: logging.NewComponentLogger(logger, "registry")}
}

// Build walks docsDir, then stagingDir; staging entries override docs entries
// that share an identifier. Artifacts without an identifier are dropped.
// stagingDir may be empty.
func (b *Builder) Build(docsDir, stagingDir string) ([]Entry, error) {
	byUSPD := make(map[string]Entry)
	if err := b.scanTree(docsDir, byUSPD, false); err != nil {
		return nil, err
	}
	if stagingDir != "" {
		if err := b.scanTree(stagingDir, byUSPD, true); err != nil {
			return nil, err
		}
	}

	entries := make([]Entry, 0, len(byUSPD))
	for _, entry := range byUSPD {
		entries = append(entries, entry)
	}
	sort.Slice(entries, func(i, j int) bool {
		return metadata.ParseSortKey(entries[i].USPD).Less(metadata.ParseSortKey(entries[j].USPD))
	})
	return entries, nil
}

func (b *Builder) scanTree(root string, byUSPD map[string]Entry, override bool) error {
	info, err := os.Stat(root)
	if err != nil {
		if os.IsNotExist(err) && override {
			// A missing staging tree just means nothing to override.
			return nil
		}
		return fmt.Errorf("scan %s: %w", root, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("scan %s: not a directory", root)
	}

	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), ".md") {
			return nil
		}

		entry, ok := b.readArtifact(path)
		if !ok {
			return nil
		}
		if existing, present := byUSPD[entry.USPD]; present && existing.SourcePath != path {
			b.logger.Warn("identifier conflict, keeping later entry",
				logging.String("uspd", entry.USPD),
				logging.String("kept", path),
				logging.String("replaced", existing.SourcePath))
		}
		byUSPD[entry.USPD] = entry
		return nil
	})
}

// readArtifact parses an artifact's frontmatter into a registry entry. Files
// with no header, a broken header, or no identifier yield no entry.
func (b *Builder) readArtifact(path string) (Entry, bool) {
	file, err := os.Open(path)
	if err != nil {
		b.logger.Warn("skipping unreadable artifact", logging.String("path", path), logging.Error(err))
		return Entry{}, false
	}
	defer file.Close()

	var header artifactHeader
	if _, err := fm.Parse(file, &header); err != nil {
		b.logger.Warn("skipping artifact with unparseable header", logging.String("path", path), logging.Error(err))
		return Entry{}, false
	}
	uspd := strings.TrimSpace(header.DocumentUspd)
	if uspd == "" {
		return Entry{}, false
	}

	name := strings.TrimSpace(header.ComponentName)
	if name == "" {
		name = strings.TrimSpace(header.Title)
	}
	return Entry{
		USPD:        uspd,
		Name:        name,
		CID:         strings.TrimSpace(header.CID),
		Description: strings.TrimSpace(header.Description),
		SourcePath:  path,
	}, true
}

// Render serializes entries under the fixed header, one LF-terminated line
// per entry.
func Render(entries []Entry) []byte {
	var sb strings.Builder
	sb.WriteString(Header)
	for _, entry := range entries {
		sb.WriteString(entry.Line())
		sb.WriteByte('\n')
	}
	return []byte(sb.String())
}

// WriteFile renders entries to path.
func (b *Builder) WriteFile(path string, entries []Entry) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create registry directory: %w", err)
	}
	if err := os.WriteFile(path, Render(entries), 0o644); err != nil {
		return fmt.Errorf("write registry: %w", err)
	}
	return nil
}
