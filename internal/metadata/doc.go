// Package metadata extracts structured document metadata (USPD identifiers,
// CIDs, component names, descriptions) from converted document text.
//
// Extraction is best effort: each field carries an ordered list of patterns
// covering the textual layouts the converters produce (plain text, rich
// markup, frontmatter), the first match wins, and a field that matches
// nothing is simply absent from the resulting Record. Identifier fields fall
// back to the file name when the body carries none.
package metadata
