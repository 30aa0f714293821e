package sqlite_test

import (
	"context"
	"sync/atomic"
	"testing"

	amazonapi "github.com/belo-research/amazon-product-api"
	"github.com/belo-research/amazon-product-api/mock"
	"github.com/belo-research/amazon-product-api/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCachingFetcher_FetchDocument(t *testing.T) {
	t.Parallel()

	t.Run("second fetch is served from the cache", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		cache := sqlite.NewDocumentCache(db)

		var fetches atomic.Int32
		inner := &mock.Fetcher{
			FetchDocumentFn: func(_ context.Context, req amazonapi.PageRequest) (string, error) {
				fetches.Add(1)
				return "<html>live</html>", nil
			},
		}

		fetcher := sqlite.NewCachingFetcher(inner, cache, 0)
		ctx := context.Background()
		req := listingsPageRequest(1)

		for i := 0; i < 3; i++ {
			body, err := fetcher.FetchDocument(ctx, req)
			require.NoError(t, err)
			assert.Equal(t, "<html>live</html>", body)
		}
		assert.Equal(t, int32(1), fetches.Load())
	})

	t.Run("inner fetch error propagates", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		cache := sqlite.NewDocumentCache(db)

		inner := &mock.Fetcher{
			FetchDocumentFn: func(_ context.Context, req amazonapi.PageRequest) (string, error) {
				return "", amazonapi.Errorf(amazonapi.EINTERNAL, "connection reset")
			},
		}

		fetcher := sqlite.NewCachingFetcher(inner, cache, 0)
		_, err := fetcher.FetchDocument(context.Background(), listingsPageRequest(1))
		require.Error(t, err)
		assert.Equal(t, amazonapi.EINTERNAL, amazonapi.ErrorCode(err))
	})

	t.Run("close closes the inner fetcher", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		cache := sqlite.NewDocumentCache(db)

		closed := false
		inner := &mock.Fetcher{
			CloseFn: func() error {
				closed = true
				return nil
			},
		}

		fetcher := sqlite.NewCachingFetcher(inner, cache, 0)
		require.NoError(t, fetcher.Close())
		assert.True(t, closed)
	})
}
