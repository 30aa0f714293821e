package mock

import (
	amazonapi "github.com/belo-research/amazon-product-api"
)

var _ amazonapi.ExtractionEngine = (*Engine)(nil)

// Engine is a mock implementation of amazonapi.ExtractionEngine.
type Engine struct {
	ListingsFn func(body string, page int) (*amazonapi.ListingsPage, error)
	ReviewsFn  func(body string, asin string) (*amazonapi.ReviewsPage, error)
	DetailFn   func(body string, asin string) (*amazonapi.DetailRecord, error)
}

func (e *Engine) Listings(body string, page int) (*amazonapi.ListingsPage, error) {
	return e.ListingsFn(body, page)
}

func (e *Engine) Reviews(body string, asin string) (*amazonapi.ReviewsPage, error) {
	return e.ReviewsFn(body, asin)
}

func (e *Engine) Detail(body string, asin string) (*amazonapi.DetailRecord, error) {
	return e.DetailFn(body, asin)
}
