// Package geo provides marketplace locale profiles: currency, price text,
// bestseller rank text, and review date parsing differ per locale, so the
// extraction engine receives one of these instead of parsing inline.
package geo

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/araddon/dateparse"
	amazonapi "github.com/belo-research/amazon-product-api"
)

// Compile-time interface verification.
var _ amazonapi.GeoProfile = (*USProfile)(nil)

var (
	usPriceRe      = regexp.MustCompile(`\d{1,3}(?:,\d{3})*(?:\.\d{1,2})?`)
	usBestSellerRe = regexp.MustCompile(`#?([\d,]+)\s+in\s+([^(#]+)`)
)

// USProfile is the amazon.com (en-US) locale profile.
type USProfile struct{}

// NewUSProfile returns the en-US profile.
func NewUSProfile() *USProfile {
	return &USProfile{}
}

// Host returns the marketplace host.
func (p *USProfile) Host() string { return "www.amazon.com" }

// Symbol returns the currency symbol.
func (p *USProfile) Symbol() string { return "$" }

// Currency returns the ISO currency code.
func (p *USProfile) Currency() string { return "USD" }

// Price parses the first price found in raw. Ranges like
// "$10.99 - $12.99" yield the lower bound. Unparseable text yields 0.
func (p *USProfile) Price(raw string) float64 {
	m := usPriceRe.FindString(raw)
	if m == "" {
		return 0
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(m, ",", ""), 64)
	if err != nil {
		return 0
	}
	return v
}

// BestSeller parses rank text such as "#1,234 in Kitchen & Dining
// (See Top 100)" into a structured entry.
func (p *USProfile) BestSeller(raw string) (amazonapi.RankEntry, bool) {
	m := usBestSellerRe.FindStringSubmatch(raw)
	if m == nil {
		return amazonapi.RankEntry{}, false
	}
	rank, err := strconv.Atoi(strings.ReplaceAll(m[1], ",", ""))
	if err != nil || rank == 0 {
		return amazonapi.RankEntry{}, false
	}
	category := strings.TrimSpace(m[2])
	if category == "" {
		return amazonapi.RankEntry{}, false
	}
	return amazonapi.RankEntry{Rank: rank, Category: category}, true
}

// ReviewDate normalizes "Reviewed in the United States on June 13, 2020"
// to "2020-06-13". Bare date text is accepted too.
func (p *USProfile) ReviewDate(raw string) (string, bool) {
	text := strings.TrimSpace(raw)
	if text == "" {
		return "", false
	}
	if idx := strings.LastIndex(text, " on "); idx != -1 {
		text = strings.TrimSpace(text[idx+len(" on "):])
	}
	t, err := dateparse.ParseAny(text)
	if err != nil {
		return "", false
	}
	return t.Format("2006-01-02"), true
}
