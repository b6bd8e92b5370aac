package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html"
	"log"
	"path/filepath"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
)

const (
	ContentTypePDF   = "application/pdf"
	ContentTypeText  = "text/plain"
	ContentTypeDOCX  = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	ContentTypePNG   = "image/png"
	ContentTypeJPEG  = "image/jpeg"
	ContentTypeWebP  = "image/webp"
	ContentTypeOctet = "application/octet-stream"
)

var (
	ErrUnsupportedContentType = errors.New("unsupported content type")
	ErrEmptyDocument          = errors.New("no text content found in document")
	ErrOCRUnavailable         = errors.New("image text extraction requires a configured generative service")
)

var (
	docxParagraphRe = regexp.MustCompile(`</w:p>|<w:br/>|<w:cr/>`)
	docxTabRe       = regexp.MustCompile(`<w:tab/>`)
	xmlTagRe        = regexp.MustCompile(`<[^>]+>`)
	blankLinesRe    = regexp.MustCompile(`\n{3,}`)
)

// ImageTranscriber turns an image into text. GeminiService satisfies it.
type ImageTranscriber interface {
	ExtractTextFromImage(ctx context.Context, data []byte, mimeType string) (string, error)
}

type ExtractedText struct {
	Text        string
	ContentType string
	PageCount   int
}

type TextExtractor interface {
	Extract(ctx context.Context, data []byte, contentType string) (*ExtractedText, error)
}

type textExtractor struct {
	ocr ImageTranscriber
}

// NewTextExtractor builds an extractor. ocr may be nil, in which case image
// uploads fail with ErrOCRUnavailable.
func NewTextExtractor(ocr ImageTranscriber) TextExtractor {
	return &textExtractor{ocr: ocr}
}

// ContentTypeFromFilename maps a file extension onto a supported content type.
func ContentTypeFromFilename(name string) string {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".pdf":
		return ContentTypePDF
	case ".txt", ".text", ".md":
		return ContentTypeText
	case ".docx":
		return ContentTypeDOCX
	case ".png":
		return ContentTypePNG
	case ".jpg", ".jpeg":
		return ContentTypeJPEG
	case ".webp":
		return ContentTypeWebP
	default:
		return ContentTypeOctet
	}
}

// NormalizeContentType strips parameters such as "; charset=utf-8" and
// canonicalizes aliases.
func NormalizeContentType(contentType string) string {
	ct := strings.ToLower(strings.TrimSpace(contentType))
	if i := strings.Index(ct, ";"); i >= 0 {
		ct = strings.TrimSpace(ct[:i])
	}
	if ct == "image/jpg" {
		return ContentTypeJPEG
	}
	return ct
}

// Extract implements TextExtractor. It never panics; malformed documents are
// reported as errors.
func (t *textExtractor) Extract(ctx context.Context, data []byte, contentType string) (result *ExtractedText, err error) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("❌ Text extraction panicked (%s): %v", contentType, r)
			result = nil
			err = fmt.Errorf("failed to extract text: malformed %s document", contentType)
		}
	}()

	ct := NormalizeContentType(contentType)

	var text string
	pages := 1
	switch ct {
	case ContentTypePDF:
		text, pages, err = extractPDFText(data)
	case ContentTypeText:
		text = extractPlainText(data)
	case ContentTypeDOCX:
		text, err = extractDocxText(data)
	case ContentTypePNG, ContentTypeJPEG, ContentTypeWebP:
		if t.ocr == nil {
			return nil, ErrOCRUnavailable
		}
		text, err = t.ocr.ExtractTextFromImage(ctx, data, ct)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedContentType, contentType)
	}
	if err != nil {
		return nil, err
	}

	text = CleanText(text)
	if text == "" {
		return nil, ErrEmptyDocument
	}

	return &ExtractedText{
		Text:        text,
		ContentType: ct,
		PageCount:   pages,
	}, nil
}

func extractPDFText(data []byte) (string, int, error) {
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", 0, fmt.Errorf("failed to open PDF: %w", err)
	}

	var textBuilder strings.Builder
	totalPage := r.NumPage()

	for pageIndex := 1; pageIndex <= totalPage; pageIndex++ {
		page := r.Page(pageIndex)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			log.Printf("⚠️  Skipping unreadable PDF page %d: %v", pageIndex, err)
			continue
		}

		textBuilder.WriteString(text)
		textBuilder.WriteString("\n\n")
	}

	return textBuilder.String(), totalPage, nil
}

func extractPlainText(data []byte) string {
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))
	if utf8.Valid(data) {
		return string(data)
	}
	return strings.ToValidUTF8(string(data), "�")
}

func extractDocxText(data []byte) (string, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to parse docx: %w", err)
	}
	defer doc.Close()

	return docxXMLToText(doc.Editable().GetContent()), nil
}

// docxXMLToText flattens WordprocessingML into plain text, one paragraph per line.
func docxXMLToText(xml string) string {
	xml = docxParagraphRe.ReplaceAllString(xml, "\n")
	xml = docxTabRe.ReplaceAllString(xml, "\t")
	xml = xmlTagRe.ReplaceAllString(xml, "")
	return html.UnescapeString(xml)
}

// CleanText trims every line, drops trailing whitespace and collapses runs of
// blank lines.
func CleanText(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	text = strings.Join(lines, "\n")
	text = blankLinesRe.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}
