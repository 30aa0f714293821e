package mock

import (
	"context"

	amazonapi "github.com/belo-research/amazon-product-api"
)

var _ amazonapi.DocumentFetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of amazonapi.DocumentFetcher.
type Fetcher struct {
	FetchDocumentFn func(ctx context.Context, req amazonapi.PageRequest) (string, error)
	CloseFn         func() error
}

func (f *Fetcher) FetchDocument(ctx context.Context, req amazonapi.PageRequest) (string, error) {
	return f.FetchDocumentFn(ctx, req)
}

func (f *Fetcher) Close() error {
	if f.CloseFn == nil {
		return nil
	}
	return f.CloseFn()
}
