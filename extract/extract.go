// Package extract converts raw marketplace documents into typed records.
// The source markup drifts constantly, so every field is read through an
// ordered chain of strategies; a strategy that no longer matches simply
// yields to the next one, and a fully exhausted chain leaves the field at
// its default. Extraction degrades, it does not abort.
package extract

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	amazonapi "github.com/belo-research/amazon-product-api"
)

// Compile-time interface verification.
var _ amazonapi.ExtractionEngine = (*Engine)(nil)

// Engine implements amazonapi.ExtractionEngine on top of goquery.
// Geo is required; Converter is optional and only enriches detail
// descriptions with a markdown rendering.
type Engine struct {
	Geo       amazonapi.GeoProfile
	Converter amazonapi.Converter
}

// NewEngine creates an Engine for the given locale profile.
func NewEngine(geo amazonapi.GeoProfile) *Engine {
	return &Engine{Geo: geo}
}

func (e *Engine) host() string {
	return "https://" + e.Geo.Host()
}

func (e *Engine) parse(body string) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return nil, amazonapi.Errorf(amazonapi.EINVALID, "parse document: %v", err)
	}
	return doc, nil
}

var (
	digitsRe     = regexp.MustCompile(`\d+`)
	asinHrefRe   = regexp.MustCompile(`/([A-Z0-9]{10})(?:[/?]|$)`)
	floatLeadRe  = regexp.MustCompile(`^\d+(?:\.\d+)?`)
	spaceRunRe   = regexp.MustCompile(`\s+`)
	starClassRe  = regexp.MustCompile(`a-star-(\d)(?:-(\d))?`)
	totalCountRe = regexp.MustCompile(`"totalResultCount":\s*([\d.]+)`)
)

// cleanText collapses whitespace runs and trims the result.
func cleanText(s string) string {
	return strings.TrimSpace(spaceRunRe.ReplaceAllString(s, " "))
}

// digits extracts the first integer from s, ignoring separators.
func digits(s string) int {
	s = strings.ReplaceAll(s, ",", "")
	m := digitsRe.FindString(s)
	if m == "" {
		return 0
	}
	n, _ := strconv.Atoi(m)
	return n
}

// leadingFloat parses a float from the front of the first field of s,
// e.g. "4.5 out of 5 stars" -> 4.5.
func leadingFloat(s string) float64 {
	s = strings.TrimSpace(s)
	m := floatLeadRe.FindString(s)
	if m == "" {
		return 0
	}
	v, _ := strconv.ParseFloat(m, 64)
	return v
}

// starFromClass reads a rating from a CSS class like "a-star-4-5" -> 4.5.
func starFromClass(class string) float64 {
	m := starClassRe.FindStringSubmatch(class)
	if m == nil {
		return 0
	}
	whole, _ := strconv.Atoi(m[1])
	v := float64(whole)
	if m[2] != "" {
		frac, _ := strconv.Atoi(m[2])
		v += float64(frac) / 10
	}
	return v
}

// asinFromHref pulls a 10-character item identifier out of an href.
func asinFromHref(href string) string {
	m := asinHrefRe.FindStringSubmatch(href)
	if m == nil {
		return ""
	}
	return m[1]
}

// absoluteURL joins a document-relative href with the marketplace host.
func (e *Engine) absoluteURL(href string) string {
	if href == "" {
		return ""
	}
	if strings.HasPrefix(href, "http://") || strings.HasPrefix(href, "https://") {
		return href
	}
	if !strings.HasPrefix(href, "/") {
		href = "/" + href
	}
	return e.host() + href
}

// round2 rounds to two decimal places, matching the price arithmetic of
// the savings fields.
func round2(v float64) float64 {
	return float64(int64(v*100+0.5)) / 100
}

// hiResThumb rewrites a thumbnail URL to its high-resolution form.
func hiResThumb(src string) string {
	base, _, found := strings.Cut(src, "._")
	if !found {
		return src
	}
	return base + "._AC_SY879_.jpg"
}
