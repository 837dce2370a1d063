package domain

import (
	"path/filepath"
	"strings"
)

// Icon identifies the display icon for a cited source.
type Icon string

const (
	// IconFile is the fallback for unrecognised sources.
	IconFile Icon = "file"
	// IconPDF marks PDF documents.
	IconPDF Icon = "pdf"
	// IconDoc marks word-processor documents.
	IconDoc Icon = "doc"
	// IconSheet marks spreadsheets and CSV exports.
	IconSheet Icon = "sheet"
	// IconText marks plain-text and markdown files.
	IconText Icon = "text"
	// IconWeb marks web page sources.
	IconWeb Icon = "web"
)

// Glyph returns the terminal glyph rendered next to a citation.
func (i Icon) Glyph() string {
	switch i {
	case IconPDF:
		return "📕"
	case IconDoc:
		return "📄"
	case IconSheet:
		return "📊"
	case IconText:
		return "📝"
	case IconWeb:
		return "🌐"
	default:
		return "📁"
	}
}

// ResolveIcon maps a source path to its display icon. Total function:
// any string, including empty, resolves to something renderable.
func ResolveIcon(source string) Icon {
	s := strings.ToLower(strings.TrimSpace(source))
	if strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://") {
		return IconWeb
	}

	switch filepath.Ext(s) {
	case ".pdf":
		return IconPDF
	case ".doc", ".docx":
		return IconDoc
	case ".csv", ".xls", ".xlsx":
		return IconSheet
	case ".txt", ".md":
		return IconText
	default:
		return IconFile
	}
}
