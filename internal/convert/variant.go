// Package convert runs source documents through the external-tool conversion
// variants and collects per-variant outcomes.
package convert

import (
	"fmt"
	"path/filepath"
	"strings"

	"docmill/internal/markup"
)

// Stage names the intermediate format a variant routes through.
type Stage int

const (
	// StageViaHTML exports hypertext with LibreOffice before markup conversion.
	StageViaHTML Stage = iota
	// StageViaODT exports the word-processor format with LibreOffice first.
	StageViaODT
	// StageViaRawCopy copies the flat source as-is under an .odt name, relying
	// on the markup converter to read it directly.
	StageViaRawCopy
	// StageViaDOC exports legacy word format, falling back to rich text when
	// the DOC export fails.
	StageViaDOC
)

func (s Stage) String() string {
	switch s {
	case StageViaHTML:
		return "via-html"
	case StageViaODT:
		return "via-odt"
	case StageViaRawCopy:
		return "via-raw-copy"
	case StageViaDOC:
		return "via-doc"
	default:
		return fmt.Sprintf("stage(%d)", int(s))
	}
}

// needsSoffice reports whether the stage requires the LibreOffice client.
func (s Stage) needsSoffice() bool {
	return s != StageViaRawCopy
}

// Variant is one independent conversion path: an intermediate stage paired
// with the markup engine that produces the final Markdown. Each variant
// writes its own suffixed output so the results can be compared by hand.
type Variant struct {
	Stage  Stage
	Engine markup.Engine
	Number int
}

// Name identifies the variant in logs.
func (v Variant) Name() string {
	engine := "none"
	if v.Engine != nil {
		engine = v.Engine.Name()
	}
	return fmt.Sprintf("%s/%s", v.Stage, engine)
}

// OutputName returns the suffixed Markdown file name for the source path.
func (v Variant) OutputName(sourcePath string) string {
	base := strings.TrimSuffix(filepath.Base(sourcePath), filepath.Ext(sourcePath))
	return fmt.Sprintf("%s_%d.md", base, v.Number)
}

// DefaultVariants builds the full comparison set: the four classic paths
// through the primary markup converter plus the hypertext path through the
// in-process library. All of them run for every source document.
func DefaultVariants(primary, library markup.Engine) []Variant {
	return []Variant{
		{Stage: StageViaHTML, Engine: primary, Number: 1},
		{Stage: StageViaODT, Engine: primary, Number: 2},
		{Stage: StageViaRawCopy, Engine: primary, Number: 3},
		{Stage: StageViaDOC, Engine: primary, Number: 4},
		{Stage: StageViaHTML, Engine: library, Number: 5},
	}
}
