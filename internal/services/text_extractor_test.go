package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTranscriber struct {
	text string
	err  error
	mime string
}

func (f *fakeTranscriber) ExtractTextFromImage(_ context.Context, _ []byte, mimeType string) (string, error) {
	f.mime = mimeType
	return f.text, f.err
}

func TestContentTypeFromFilename(t *testing.T) {
	tests := map[string]string{
		"cv.PDF":        ContentTypePDF,
		"notes.txt":     ContentTypeText,
		"resume.docx":   ContentTypeDOCX,
		"scan.jpeg":     ContentTypeJPEG,
		"scan.jpg":      ContentTypeJPEG,
		"photo.png":     ContentTypePNG,
		"archive.zip":   ContentTypeOctet,
		"no_extension":  ContentTypeOctet,
		"page.webp":     ContentTypeWebP,
		"dir/readme.md": ContentTypeText,
	}

	for name, want := range tests {
		assert.Equal(t, want, ContentTypeFromFilename(name), name)
	}
}

func TestNormalizeContentType(t *testing.T) {
	assert.Equal(t, ContentTypeText, NormalizeContentType("Text/Plain; charset=utf-8"))
	assert.Equal(t, ContentTypeJPEG, NormalizeContentType("image/jpg"))
}

func TestExtract_PlainText(t *testing.T) {
	extractor := NewTextExtractor(nil)

	got, err := extractor.Extract(context.Background(), []byte("\xef\xbb\xbf  Jane Doe  \r\n\r\n\r\n\r\nGo developer\xff "), "text/plain; charset=utf-8")

	require.NoError(t, err)
	assert.Equal(t, "Jane Doe\n\nGo developer�", got.Text)
	assert.Equal(t, ContentTypeText, got.ContentType)
}

func TestExtract_Errors(t *testing.T) {
	extractor := NewTextExtractor(nil)
	ctx := context.Background()

	_, err := extractor.Extract(ctx, []byte("   \n "), ContentTypeText)
	assert.ErrorIs(t, err, ErrEmptyDocument)

	_, err = extractor.Extract(ctx, []byte("data"), "application/zip")
	assert.ErrorIs(t, err, ErrUnsupportedContentType)

	_, err = extractor.Extract(ctx, []byte("data"), ContentTypePNG)
	assert.ErrorIs(t, err, ErrOCRUnavailable)
}

func TestExtract_MalformedDocumentsDoNotPanic(t *testing.T) {
	extractor := NewTextExtractor(nil)

	for _, ct := range []string{ContentTypePDF, ContentTypeDOCX} {
		assert.NotPanics(t, func() {
			_, err := extractor.Extract(context.Background(), []byte("definitely not a document"), ct)
			assert.Error(t, err)
		})
	}
}

func TestExtract_ImageUsesTranscriber(t *testing.T) {
	ocr := &fakeTranscriber{text: "Jane Doe\nSRE"}
	extractor := NewTextExtractor(ocr)

	got, err := extractor.Extract(context.Background(), []byte{0x89, 'P', 'N', 'G'}, "image/jpg")

	require.NoError(t, err)
	assert.Equal(t, "Jane Doe\nSRE", got.Text)
	assert.Equal(t, ContentTypeJPEG, ocr.mime)
}

func TestExtract_ImageTranscriberFailure(t *testing.T) {
	extractor := NewTextExtractor(&fakeTranscriber{err: errors.New("quota exceeded")})

	_, err := extractor.Extract(context.Background(), []byte{1}, ContentTypePNG)

	assert.ErrorContains(t, err, "quota exceeded")
}

func TestDocxXMLToText(t *testing.T) {
	xml := `<w:document><w:body><w:p><w:r><w:t>Jane &amp; Co</w:t></w:r></w:p><w:p><w:r><w:t>Go</w:t><w:tab/><w:t>Rust</w:t></w:r></w:p></w:body></w:document>`

	assert.Equal(t, "Jane & Co\nGo\tRust", CleanText(docxXMLToText(xml)))
}
