package file

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/unidoc/unipdf/v3/extractor"
	"github.com/unidoc/unipdf/v3/model"
	"go.uber.org/zap"

	"github.com/shoplight/shoplight/internal/domain"
)

// Fetcher downloads a remote file to a temporary path, extracts its text
// and removes the temporary file before returning.
type Fetcher struct {
	client *http.Client
	logger *zap.Logger
}

// NewFetcher creates a file fetcher with a bounded request timeout.
func NewFetcher(logger *zap.Logger) *Fetcher {
	return &Fetcher{
		client: &http.Client{Timeout: 60 * time.Second},
		logger: logger,
	}
}

// FetchText downloads src.URL and returns its extracted plain text.
// PDF content goes through a page-by-page text extractor; any other
// type is read as plain text.
func (f *Fetcher) FetchText(ctx context.Context, src domain.FileSource) (string, error) {
	path, err := f.download(ctx, src)
	if err != nil {
		return "", err
	}
	defer os.Remove(path)

	if strings.EqualFold(src.Type, "pdf") {
		return extractPDFText(path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	return string(data), nil
}

func (f *Fetcher) download(ctx context.Context, src domain.FileSource) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src.URL, nil)
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch %s: %w", src.URL, domain.ErrFetchFailed)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetch %s: status %d: %w", src.URL, resp.StatusCode, domain.ErrFetchFailed)
	}

	name := fmt.Sprintf("download_%s.%s", uuid.NewString(), src.Type)
	path := filepath.Join(os.TempDir(), name)

	out, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}

	if _, err := io.Copy(out, resp.Body); err != nil {
		out.Close()
		os.Remove(path)
		return "", fmt.Errorf("write temp file: %w", err)
	}
	if err := out.Close(); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("close temp file: %w", err)
	}

	return path, nil
}

// extractPDFText concatenates page texts, skipping pages that fail extraction.
func extractPDFText(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}

	reader, err := model.NewPdfReader(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("parse pdf: %w", err)
	}

	numPages, err := reader.GetNumPages()
	if err != nil {
		return "", fmt.Errorf("pdf page count: %w", err)
	}

	var sb strings.Builder
	for i := 1; i <= numPages; i++ {
		page, err := reader.GetPage(i)
		if err != nil {
			continue
		}

		ex, err := extractor.New(page)
		if err != nil {
			continue
		}

		text, err := ex.ExtractText()
		if err != nil {
			continue
		}

		sb.WriteString(text)
		sb.WriteString("\n")
	}

	return sb.String(), nil
}
