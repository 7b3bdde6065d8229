package ingest

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/documind/documind/internal/domain/commonModels"
	"github.com/documind/documind/pkg/logger_i"
)

var logger = logger_i.NewLogger("Document Ingestion")

// ExtractDocument turns a document file into its ordered page texts. The file
// is not retained by the pipeline; callers remove it after extraction.
func ExtractDocument(path string) ([]commonModels.RawPage, commonModels.DocType, error) {
	docType := getDocType(path)
	logger.Debug("Processing document", "path", path, "type", docType)
	if docType == commonModels.ERR {
		return nil, docType, fmt.Errorf("%w: unsupported document type %q", commonModels.ErrExtraction, filepath.Ext(path))
	}

	pages, err := extractText(path, docType)
	if err != nil {
		return nil, docType, fmt.Errorf("%w: %v", commonModels.ErrExtraction, err)
	}

	if !hasExtractableText(pages) {
		return nil, docType, fmt.Errorf("%w: no extractable text in %s", commonModels.ErrExtraction, filepath.Base(path))
	}
	logger.Debug("Processing document", "Number of raw pages: ", len(pages))
	return pages, docType, nil
}

// SupportedDocument reports whether the file extension maps to a known
// extractor.
func SupportedDocument(path string) bool {
	return getDocType(path) != commonModels.ERR
}

func getDocType(docPath string) commonModels.DocType {
	ext := strings.ToLower(filepath.Ext(docPath))
	switch ext {
	case ".pdf":
		return commonModels.PDF
	case ".docx", ".txt", ".rtf":
		return commonModels.DOCX
	default:
		return commonModels.ERR
	}
}

func extractText(path string, contentType commonModels.DocType) ([]commonModels.RawPage, error) {
	switch contentType {
	case commonModels.PDF:
		return extractPDF(path)
	case commonModels.DOCX:
		return extractdocxTxtRtf(path)

	default:
		return nil, fmt.Errorf("unsupported content type: %s", contentType)
	}
}

func hasExtractableText(pages []commonModels.RawPage) bool {
	for _, p := range pages {
		if strings.TrimSpace(p.Content) != "" {
			return true
		}
	}
	return false
}
