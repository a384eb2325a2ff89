package corpus

import (
	"context"

	"github.com/shoplight/shoplight/internal/domain"
)

// FileFetcher downloads an uploaded file and extracts its plain text.
type FileFetcher interface {
	FetchText(ctx context.Context, src domain.FileSource) (string, error)
}

// LinkScraper fetches a web page and returns its condensed JSON content.
type LinkScraper interface {
	Scrape(ctx context.Context, url string) (string, error)
}
