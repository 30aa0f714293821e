package main_test

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	amazonapi "github.com/belo-research/amazon-product-api"
	main "github.com/belo-research/amazon-product-api/cmd/amazon-product-api"
	"github.com/belo-research/amazon-product-api/collect"
	"github.com/belo-research/amazon-product-api/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testDeps wires an orchestrator backed by the given mocks into a fresh
// Dependencies value with buffered output.
func testDeps(fetcher *mock.Fetcher, engine *mock.Engine) (*main.Dependencies, *bytes.Buffer, *bytes.Buffer) {
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	deps := &main.Dependencies{
		Ctx:          context.Background(),
		Stdout:       stdout,
		Stderr:       stderr,
		Orchestrator: collect.NewOrchestrator(fetcher, engine),
	}
	return deps, stdout, stderr
}

func listingPage(page, count int) *amazonapi.ListingsPage {
	out := &amazonapi.ListingsPage{RawCount: count, TotalItems: 1200}
	for i := 0; i < count; i++ {
		out.Records = append(out.Records, &amazonapi.ListingRecord{
			ASIN: "B00000000" + string(rune('A'+i)),
			Position: amazonapi.Position{
				Page:           page,
				Position:       i,
				GlobalPosition: page*1000 + i,
			},
			Title:   "Echo Dot",
			Reviews: amazonapi.ReviewSummary{Rating: 4.5, TotalReviews: 100},
		})
	}
	return out
}

func TestProductsCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("writes JSON envelope to stdout", func(t *testing.T) {
		t.Parallel()

		fetcher := &mock.Fetcher{
			FetchDocumentFn: func(_ context.Context, req amazonapi.PageRequest) (string, error) {
				assert.Equal(t, amazonapi.KindListings, req.Kind)
				assert.Equal(t, "echo dot", req.Keyword)
				return "<html/>", nil
			},
		}
		engine := &mock.Engine{
			ListingsFn: func(_ string, page int) (*amazonapi.ListingsPage, error) {
				return listingPage(page, 5), nil
			},
		}

		deps, stdout, stderr := testDeps(fetcher, engine)

		cmd := &main.ProductsCmd{Keyword: "echo dot", Number: 5}
		cmd.Format = "json"

		err := cmd.Run(deps)

		require.NoError(t, err)
		assert.Empty(t, stderr.String())

		var out amazonapi.ListingsOutput
		require.NoError(t, json.Unmarshal(stdout.Bytes(), &out))
		assert.Equal(t, 1200, out.TotalItems)
		require.Len(t, out.Result, 5)
		assert.Equal(t, 1, out.Result[0].Position.GlobalPosition)
	})

	t.Run("writes CSV rows", func(t *testing.T) {
		t.Parallel()

		fetcher := &mock.Fetcher{
			FetchDocumentFn: func(_ context.Context, _ amazonapi.PageRequest) (string, error) {
				return "<html/>", nil
			},
		}
		engine := &mock.Engine{
			ListingsFn: func(_ string, page int) (*amazonapi.ListingsPage, error) {
				return listingPage(page, 3), nil
			},
		}

		deps, stdout, stderr := testDeps(fetcher, engine)

		cmd := &main.ProductsCmd{Keyword: "echo dot", Number: 3}
		cmd.Format = "csv"

		err := cmd.Run(deps)

		require.NoError(t, err)
		assert.Empty(t, stderr.String())
		assert.Contains(t, stdout.String(), "asin,title,url")
		assert.Contains(t, stdout.String(), "Echo Dot")
	})

	t.Run("reports invalid request on stderr", func(t *testing.T) {
		t.Parallel()

		deps, stdout, stderr := testDeps(&mock.Fetcher{}, &mock.Engine{})

		cmd := &main.ProductsCmd{Keyword: "", Number: 5}
		cmd.Format = "json"

		err := cmd.Run(deps)

		require.Error(t, err)
		assert.Equal(t, amazonapi.EINVALID, amazonapi.ErrorCode(err))
		assert.Contains(t, stderr.String(), "error:")
		assert.Empty(t, stdout.String())
	})

	t.Run("propagates fetch failures", func(t *testing.T) {
		t.Parallel()

		fetcher := &mock.Fetcher{
			FetchDocumentFn: func(_ context.Context, _ amazonapi.PageRequest) (string, error) {
				return "", amazonapi.Errorf(amazonapi.EINTERNAL, "marketplace returned status 503")
			},
		}

		deps, stdout, stderr := testDeps(fetcher, &mock.Engine{})

		cmd := &main.ProductsCmd{Keyword: "echo dot", Number: 5}
		cmd.Format = "json"

		err := cmd.Run(deps)

		require.Error(t, err)
		assert.Equal(t, amazonapi.EINTERNAL, amazonapi.ErrorCode(err))
		assert.Contains(t, stderr.String(), "error:")
		assert.Empty(t, stdout.String())
	})
}
