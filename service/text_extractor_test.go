package service

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akshaydev2089/payslip-vault/dto"
	"github.com/akshaydev2089/payslip-vault/parser"
)

// makePDF builds a minimal uncompressed PDF with one text line per page.
// An empty string yields a page with a blank content stream. Cross-reference
// offsets are computed from the buffer, so the output is always well formed.
func makePDF(t *testing.T, pageTexts ...string) []byte {
	t.Helper()

	objCount := 3 + 2*len(pageTexts)
	offsets := make([]int, objCount+1)

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")

	writeObj := func(num int, body string) {
		offsets[num] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", num, body)
	}

	var kids []string
	for i := range pageTexts {
		kids = append(kids, fmt.Sprintf("%d 0 R", 4+2*i))
	}

	writeObj(1, "<< /Type /Catalog /Pages 2 0 R >>")
	writeObj(2, fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>",
		strings.Join(kids, " "), len(pageTexts)))
	writeObj(3, "<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica /Encoding /WinAnsiEncoding >>")

	for i, text := range pageTexts {
		pageNum, contentNum := 4+2*i, 5+2*i
		writeObj(pageNum, fmt.Sprintf(
			"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Resources << /Font << /F1 3 0 R >> >> /Contents %d 0 R >>",
			contentNum))

		content := ""
		if text != "" {
			content = fmt.Sprintf("BT /F1 12 Tf 72 720 Td (%s) Tj ET", text)
		}
		writeObj(contentNum, fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(content), content))
	}

	xrefOffset := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", objCount+1)
	buf.WriteString("0000000000 65535 f \n")
	for num := 1; num <= objCount; num++ {
		fmt.Fprintf(&buf, "%010d 00000 n \n", offsets[num])
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", objCount+1, xrefOffset)

	return buf.Bytes()
}

func TestExtractTextJoinsPagesWithSeparators(t *testing.T) {
	pdfData := makePDF(t, "Salary Statement June 2024", "Basic Pay: 30,000")
	enc := &recordingEncryption{decryptOut: pdfData}
	ex := NewTextExtractor(enc, parser.NewRegistry(nil), nil, nil)

	text, err := ex.ExtractText([]byte("ciphertext"))
	require.NoError(t, err)

	assert.Contains(t, text, "Salary Statement June 2024")
	assert.Contains(t, text, "Basic Pay: 30,000")

	sep := strings.Index(text, "--- Page 2 ---")
	require.GreaterOrEqual(t, sep, 0, "pages must be joined with a page separator")
	assert.Less(t, strings.Index(text, "Salary Statement June 2024"), sep)
	assert.Greater(t, strings.Index(text, "Basic Pay: 30,000"), sep)
}

func TestExtractTextSinglePageHasNoSeparator(t *testing.T) {
	pdfData := makePDF(t, "Basic Pay: 30,000")
	enc := &recordingEncryption{decryptOut: pdfData}
	ex := NewTextExtractor(enc, parser.NewRegistry(nil), nil, nil)

	text, err := ex.ExtractText([]byte("ciphertext"))
	require.NoError(t, err)

	assert.Contains(t, text, "Basic Pay: 30,000")
	assert.NotContains(t, text, "--- Page")
}

func TestExtractTextEmptyPageContributesEmptySegment(t *testing.T) {
	pdfData := makePDF(t, "Alpha", "", "Omega")
	enc := &recordingEncryption{decryptOut: pdfData}
	ex := NewTextExtractor(enc, parser.NewRegistry(nil), nil, nil)

	text, err := ex.ExtractText([]byte("ciphertext"))
	require.NoError(t, err)

	sep2 := strings.Index(text, "--- Page 2 ---")
	sep3 := strings.Index(text, "--- Page 3 ---")
	require.GreaterOrEqual(t, sep2, 0)
	require.Greater(t, sep3, sep2)

	// the blank page sits between the two separators as an empty segment
	between := text[sep2+len("--- Page 2 ---") : sep3]
	assert.Empty(t, strings.TrimSpace(between))
	assert.Contains(t, text[sep3:], "Omega")
}

type staticParser struct {
	name string
	data *dto.ParsedPayslipData
}

func (p *staticParser) Name() string { return p.name }

func (p *staticParser) Parse(text string) (*dto.ParsedPayslipData, error) {
	return p.data, nil
}

func TestExtractTextDecryptionFailure(t *testing.T) {
	enc := &recordingEncryption{decryptErr: errors.New("bad key")}
	registry := parser.NewRegistry(nil)
	ex := NewTextExtractor(enc, registry, nil, nil)

	_, err := ex.ExtractText([]byte("ciphertext"))

	var extractionErr *dto.ExtractionError
	require.ErrorAs(t, err, &extractionErr)
	assert.ErrorContains(t, err, "bad key")
}

func TestExtractTextRejectsNonPDFPlaintext(t *testing.T) {
	enc := &recordingEncryption{decryptOut: []byte("decrypted but not a pdf")}
	registry := parser.NewRegistry(nil)
	ex := NewTextExtractor(enc, registry, nil, nil)

	_, err := ex.ExtractText([]byte("ciphertext"))

	assert.ErrorIs(t, err, dto.ErrInvalidPDF)
}

func TestExtractParsedDataPropagatesExtractionError(t *testing.T) {
	enc := &recordingEncryption{decryptErr: errors.New("bad key")}
	registry := parser.NewRegistry(nil, &staticParser{name: "fake"})
	ex := NewTextExtractor(enc, registry, nil, nil)

	_, _, err := ex.ExtractParsedData([]byte("ciphertext"))

	var extractionErr *dto.ExtractionError
	assert.ErrorAs(t, err, &extractionErr)
}

func TestStrategyNames(t *testing.T) {
	registry := parser.NewRegistry(nil,
		&staticParser{name: "pcda"},
		&staticParser{name: "corporate"},
	)
	ex := NewTextExtractor(&recordingEncryption{}, registry, nil, nil)

	assert.Equal(t, []string{"pcda", "corporate"}, ex.StrategyNames())
}
