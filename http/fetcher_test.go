package http_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	amazonapi "github.com/belo-research/amazon-product-api"
	"github.com/belo-research/amazon-product-api/geo"
	apihttp "github.com/belo-research/amazon-product-api/http"
	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetcher_FetchDocument(t *testing.T) {
	t.Parallel()

	t.Run("returns document body from server", func(t *testing.T) {
		t.Parallel()

		var gotPath atomic.Value
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotPath.Store(r.URL.RequestURI())
			w.Header().Set("Content-Type", "text/html")
			_, _ = w.Write([]byte("<html><body>results</body></html>"))
		}))
		defer server.Close()

		fetcher := apihttp.NewFetcher(geo.NewUSProfile(), apihttp.WithBaseURL(server.URL))
		defer fetcher.Close()

		body, err := fetcher.FetchDocument(context.Background(), amazonapi.PageRequest{
			Kind:    amazonapi.KindListings,
			Keyword: "echo dot",
			Page:    2,
		})
		require.NoError(t, err)
		assert.Equal(t, "<html><body>results</body></html>", body)
		assert.Equal(t, "/s?k=echo+dot&page=2&ref=sr_pg_2", gotPath.Load())
	})

	t.Run("caches repeated page requests", func(t *testing.T) {
		t.Parallel()

		var hits atomic.Int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			hits.Add(1)
			_, _ = w.Write([]byte("cached"))
		}))
		defer server.Close()

		fetcher := apihttp.NewFetcher(geo.NewUSProfile(), apihttp.WithBaseURL(server.URL))
		defer fetcher.Close()

		req := amazonapi.PageRequest{Kind: amazonapi.KindDetail, ASIN: "B08N5WRWNW"}
		for i := 0; i < 3; i++ {
			body, err := fetcher.FetchDocument(context.Background(), req)
			require.NoError(t, err)
			assert.Equal(t, "cached", body)
		}
		assert.Equal(t, int32(1), hits.Load())
	})

	t.Run("non-200 response is an error", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer server.Close()

		fetcher := apihttp.NewFetcher(geo.NewUSProfile(), apihttp.WithBaseURL(server.URL))
		defer fetcher.Close()

		_, err := fetcher.FetchDocument(context.Background(), amazonapi.PageRequest{
			Kind: amazonapi.KindDetail,
			ASIN: "B08N5WRWNW",
		})
		require.Error(t, err)
		assert.Equal(t, amazonapi.EINTERNAL, amazonapi.ErrorCode(err))
	})

	t.Run("respects custom timeout option", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(100 * time.Millisecond)
			_, _ = w.Write([]byte("response"))
		}))
		defer server.Close()

		fetcher := apihttp.NewFetcher(geo.NewUSProfile(),
			apihttp.WithBaseURL(server.URL),
			apihttp.WithTimeout(10*time.Millisecond),
		)
		defer fetcher.Close()

		_, err := fetcher.FetchDocument(context.Background(), amazonapi.PageRequest{
			Kind: amazonapi.KindDetail,
			ASIN: "B08N5WRWNW",
		})
		require.Error(t, err)
	})

	t.Run("respects context cancellation", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(100 * time.Millisecond)
			_, _ = w.Write([]byte("response"))
		}))
		defer server.Close()

		fetcher := apihttp.NewFetcher(geo.NewUSProfile(), apihttp.WithBaseURL(server.URL))
		defer fetcher.Close()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := fetcher.FetchDocument(ctx, amazonapi.PageRequest{
			Kind: amazonapi.KindDetail,
			ASIN: "B08N5WRWNW",
		})
		require.Error(t, err)
	})

	t.Run("sends user agent against the marketplace host", func(t *testing.T) {
		t.Parallel()

		client := &http.Client{}
		httpmock.ActivateNonDefault(client)
		defer httpmock.DeactivateAndReset()

		httpmock.RegisterResponder(http.MethodGet,
			"https://www.amazon.com/product-reviews/B08N5WRWNW/ref=cm_cr_arp_d_viewopt_srt",
			func(req *http.Request) (*http.Response, error) {
				assert.Equal(t, apihttp.DefaultUserAgent, req.Header.Get("User-Agent"))
				assert.Equal(t, "3", req.URL.Query().Get("pageNumber"))
				assert.Equal(t, "avp_only_reviews", req.URL.Query().Get("reviewerType"))
				return httpmock.NewStringResponse(http.StatusOK, "<html>reviews</html>"), nil
			})

		fetcher := apihttp.NewFetcher(geo.NewUSProfile(), apihttp.WithClient(client))
		defer fetcher.Close()

		body, err := fetcher.FetchDocument(context.Background(), amazonapi.PageRequest{
			Kind: amazonapi.KindReviews,
			ASIN: "B08N5WRWNW",
			Reviews: amazonapi.ReviewFilter{
				Page:         3,
				VerifiedOnly: true,
			},
		})
		require.NoError(t, err)
		assert.Equal(t, "<html>reviews</html>", body)
	})
}

func TestPageURL(t *testing.T) {
	t.Parallel()

	base := "https://www.amazon.com"

	tests := []struct {
		name string
		req  amazonapi.PageRequest
		want string
	}{
		{
			name: "listings first page",
			req:  amazonapi.PageRequest{Kind: amazonapi.KindListings, Keyword: "usb cable"},
			want: base + "/s?k=usb+cable",
		},
		{
			name: "listings with category and page",
			req:  amazonapi.PageRequest{Kind: amazonapi.KindListings, Keyword: "dune", Category: "stripbooks", Page: 3},
			want: base + "/s?i=stripbooks&k=dune&page=3&ref=sr_pg_3",
		},
		{
			name: "detail",
			req:  amazonapi.PageRequest{Kind: amazonapi.KindDetail, ASIN: "B08N5WRWNW"},
			want: base + "/dp/B08N5WRWNW?th=1&psc=1",
		},
		{
			name: "reviews with filters",
			req: amazonapi.PageRequest{
				Kind: amazonapi.KindReviews,
				ASIN: "B08N5WRWNW",
				Reviews: amazonapi.ReviewFilter{
					Page:         2,
					SortBy:       "recent",
					FilterByStar: "5_stars",
					FormatType:   "all_formats",
				},
			},
			want: base + "/product-reviews/B08N5WRWNW/ref=cm_cr_arp_d_viewopt_srt?filterByStar=5_stars&formatType=all_formats&ie=UTF8&pageNumber=2&reviewerType=all_reviews&sortBy=recent",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, apihttp.PageURL(base, tt.req))
		})
	}
}
