// Package soffice wraps headless LibreOffice invocations used to export
// legacy word-processor documents into intermediate formats.
package soffice
