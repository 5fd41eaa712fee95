package client

import (
	"fmt"

	"github.com/otiai10/gosseract/v2"
)

// TesseractClient runs OCR over page images extracted from scanned
// payslips. It is only consulted when a PDF carries no usable embedded text.
type TesseractClient struct {
	dataPath string
	language string
}

func NewTesseractClient(dataPath string) *TesseractClient {
	return &TesseractClient{
		dataPath: dataPath,
		language: "eng",
	}
}

// ExtractText runs Tesseract over a single page image on disk.
func (tc *TesseractClient) ExtractText(imagePath string) (string, error) {
	client := gosseract.NewClient()
	defer client.Close()

	if tc.dataPath != "" {
		client.SetTessdataPrefix(tc.dataPath)
	}
	if err := client.SetLanguage(tc.language); err != nil {
		return "", fmt.Errorf("failed to set language: %w", err)
	}
	if err := client.SetImage(imagePath); err != nil {
		return "", fmt.Errorf("failed to set image: %w", err)
	}

	text, err := client.Text()
	if err != nil {
		return "", fmt.Errorf("failed to extract text: %w", err)
	}
	return text, nil
}

// ExtractTextAndConfidence additionally reports the mean word-level
// confidence Tesseract assigned to the page.
func (tc *TesseractClient) ExtractTextAndConfidence(imagePath string) (string, float64, error) {
	client := gosseract.NewClient()
	defer client.Close()

	if tc.dataPath != "" {
		client.SetTessdataPrefix(tc.dataPath)
	}
	if err := client.SetLanguage(tc.language); err != nil {
		return "", 0, fmt.Errorf("failed to set language: %w", err)
	}
	if err := client.SetImage(imagePath); err != nil {
		return "", 0, fmt.Errorf("failed to set image: %w", err)
	}

	text, err := client.Text()
	if err != nil {
		return "", 0, fmt.Errorf("failed to extract text: %w", err)
	}

	boxes, err := client.GetBoundingBoxes(gosseract.RIL_WORD)
	if err != nil {
		// Confidence is advisory; text alone is still useful.
		return text, 0, nil
	}

	var total float64
	for _, box := range boxes {
		total += box.Confidence
	}
	avg := 0.0
	if len(boxes) > 0 {
		avg = total / float64(len(boxes))
	}
	return text, avg, nil
}
