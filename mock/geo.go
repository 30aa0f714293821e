package mock

import (
	amazonapi "github.com/belo-research/amazon-product-api"
)

var _ amazonapi.GeoProfile = (*Geo)(nil)

// Geo is a mock implementation of amazonapi.GeoProfile.
type Geo struct {
	HostFn       func() string
	SymbolFn     func() string
	CurrencyFn   func() string
	PriceFn      func(raw string) float64
	BestSellerFn func(raw string) (amazonapi.RankEntry, bool)
	ReviewDateFn func(raw string) (string, bool)
}

func (g *Geo) Host() string {
	return g.HostFn()
}

func (g *Geo) Symbol() string {
	return g.SymbolFn()
}

func (g *Geo) Currency() string {
	return g.CurrencyFn()
}

func (g *Geo) Price(raw string) float64 {
	return g.PriceFn(raw)
}

func (g *Geo) BestSeller(raw string) (amazonapi.RankEntry, bool) {
	return g.BestSellerFn(raw)
}

func (g *Geo) ReviewDate(raw string) (string, bool) {
	return g.ReviewDateFn(raw)
}
