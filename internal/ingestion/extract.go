// Package ingestion reads resume documents from disk and turns them into clean text.
package ingestion

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/ledongthuc/pdf"
)

// Format is a supported document format.
type Format string

// Format constants
const (
	FormatPDF  Format = "pdf"
	FormatHTML Format = "html"
	FormatText Format = "text"
)

// DetectFormat maps a file extension onto a Format.
func DetectFormat(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		return FormatPDF, nil
	case ".html", ".htm":
		return FormatHTML, nil
	case ".txt", ".md", ".markdown", "":
		return FormatText, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// ExtractText reads the document at path, extracts its text according to its format
// and returns the cleaned text with metadata.
func ExtractText(path string) (string, *Metadata, error) {
	format, err := DetectFormat(path)
	if err != nil {
		return "", nil, err
	}

	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return "", nil, fmt.Errorf("file not found: %w", err)
		}
		return "", nil, fmt.Errorf("failed to stat file: %w", err)
	}

	var raw string
	switch format {
	case FormatPDF:
		raw, err = extractPDF(path)
	case FormatHTML:
		raw, err = extractHTMLFile(path)
	default:
		raw, err = extractPlain(path)
	}
	if err != nil {
		return "", nil, &ExtractionError{Path: path, Format: format, Cause: err}
	}

	cleaned := CleanText(raw)
	if cleaned == "" {
		return "", nil, &ExtractionError{Path: path, Format: format, Cause: ErrEmptyDocument}
	}
	return cleaned, NewMetadata(cleaned, path, format), nil
}

func extractPlain(path string) (string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read file: %w", err)
	}
	return string(content), nil
}

func extractPDF(path string) (string, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open pdf: %w", err)
	}
	defer func() { _ = f.Close() }()
	return readPDF(r)
}

func extractPDFBytes(data []byte) (string, error) {
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to open pdf: %w", err)
	}
	return readPDF(r)
}

func readPDF(r *pdf.Reader) (string, error) {
	plain, err := r.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("failed to read pdf text: %w", err)
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, plain); err != nil {
		return "", fmt.Errorf("failed to read pdf text: %w", err)
	}
	return buf.String(), nil
}

func extractHTMLFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to read file: %w", err)
	}
	defer func() { _ = f.Close() }()
	return ExtractHTML(f)
}

// blockSelectors end a line of text when flattening HTML.
const blockSelectors = "p, li, h1, h2, h3, h4, h5, h6, tr, div, section, article, header"

// ExtractHTML flattens an HTML resume into text, one block element per line. List
// items become Markdown bullets and headings become Markdown headings so CleanText
// keeps their structure.
func ExtractHTML(r io.Reader) (string, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}

	doc.Find("script, style, noscript, nav, footer").Remove()
	doc.Find("br").ReplaceWithHtml("\n")
	doc.Find("li").Each(func(_ int, s *goquery.Selection) {
		s.PrependHtml("- ")
	})
	doc.Find("h1, h2, h3").Each(func(_ int, s *goquery.Selection) {
		s.PrependHtml("## ")
	})
	doc.Find(blockSelectors).Each(func(_ int, s *goquery.Selection) {
		s.AppendHtml("\n")
	})

	body := doc.Find("body")
	if body.Length() == 0 {
		return doc.Text(), nil
	}
	return body.Text(), nil
}
