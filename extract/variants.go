package extract

import (
	"encoding/json"
	"regexp"
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"
	amazonapi "github.com/belo-research/amazon-product-api"
)

var (
	variationJSONRe = regexp.MustCompile(`jQuery\.parseJSON\('(.+?)'\);`)
	dimToASINRe     = regexp.MustCompile(`"dimensionToA[sS]inMap"\s*:\s*(\{[^{}]*\})`)
	dpURLASINRe     = regexp.MustCompile(`/dp/(\w+)/`)
)

type variationMeta struct {
	ColorToASIN map[string]struct {
		ASIN string `json:"asin"`
	} `json:"colorToAsin"`
	ColorImages map[string][]struct {
		HiRes string `json:"hiRes"`
		Large string `json:"large"`
	} `json:"colorImages"`
}

// extractVariants reads the alternate color/size/style versions of the
// item. Four sources are tried in order: the embedded variation JSON,
// the dimension map JSON, the desktop swatch list, and the mobile
// twister state.
func (e *Engine) extractVariants(doc *goquery.Document, body, current string) []amazonapi.Variant {
	variants, _ := first(
		Strategy[[]amazonapi.Variant]{Name: "variation JSON", Fn: func() ([]amazonapi.Variant, bool) {
			return e.variantsFromJSON(doc, body, current)
		}},
		Strategy[[]amazonapi.Variant]{Name: "dimension map", Fn: func() ([]amazonapi.Variant, bool) {
			return e.variantsFromDimensionMap(body, current)
		}},
		Strategy[[]amazonapi.Variant]{Name: "swatch list", Fn: func() ([]amazonapi.Variant, bool) {
			return e.variantsFromSwatches(doc, current)
		}},
		Strategy[[]amazonapi.Variant]{Name: "mobile twister", Fn: func() ([]amazonapi.Variant, bool) {
			return e.variantsFromMobileState(doc, current)
		}},
	)
	return variants
}

func (e *Engine) variantsFromJSON(doc *goquery.Document, body, current string) ([]amazonapi.Variant, bool) {
	m := variationJSONRe.FindStringSubmatch(body)
	if m == nil {
		return nil, false
	}
	raw := strings.ReplaceAll(m[1], `\'`, `'`)

	var meta variationMeta
	if err := json.Unmarshal([]byte(raw), &meta); err != nil || len(meta.ColorToASIN) == 0 {
		return nil, false
	}

	names := make([]string, 0, len(meta.ColorToASIN))
	for name := range meta.ColorToASIN {
		names = append(names, name)
	}
	sort.Strings(names)

	var out []amazonapi.Variant
	for _, name := range names {
		asin := meta.ColorToASIN[name].ASIN
		v := amazonapi.Variant{
			ASIN:      asin,
			Title:     name,
			URL:       e.variantURL(asin),
			IsCurrent: asin == current,
			Price:     e.swatchPrice(doc, asin),
		}
		for _, img := range meta.ColorImages[name] {
			if img.HiRes != "" {
				v.Images = append(v.Images, img.HiRes)
			} else if img.Large != "" {
				v.Images = append(v.Images, img.Large)
			}
		}
		out = append(out, v)
	}
	return out, len(out) > 0
}

func (e *Engine) variantsFromDimensionMap(body, current string) ([]amazonapi.Variant, bool) {
	m := dimToASINRe.FindStringSubmatch(body)
	if m == nil {
		return nil, false
	}
	var dims map[string]string
	if err := json.Unmarshal([]byte(m[1]), &dims); err != nil || len(dims) == 0 {
		return nil, false
	}

	keys := make([]string, 0, len(dims))
	for k := range dims {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var out []amazonapi.Variant
	for _, k := range keys {
		asin := dims[k]
		out = append(out, amazonapi.Variant{
			ASIN:      asin,
			Title:     k,
			URL:       e.variantURL(asin),
			IsCurrent: asin == current,
		})
	}
	return out, len(out) > 0
}

func (e *Engine) variantsFromSwatches(doc *goquery.Document, current string) ([]amazonapi.Variant, bool) {
	var out []amazonapi.Variant
	doc.Find("#variation_color_name ul li, #variation_style_name ul li, #variation_size_name ul li").Each(
		func(_ int, li *goquery.Selection) {
			asin := li.AttrOr("data-defaultasin", "")
			if asin == "" {
				if m := dpURLASINRe.FindStringSubmatch(li.AttrOr("data-dp-url", "")); m != nil {
					asin = m[1]
				}
			}
			if asin == "" {
				return
			}
			v := amazonapi.Variant{
				ASIN:      asin,
				Title:     cleanText(strings.TrimPrefix(li.AttrOr("title", ""), "Click to select ")),
				URL:       e.variantURL(asin),
				IsCurrent: asin == current || li.HasClass("swatchSelect"),
				Price:     cleanText(li.Find("div.twisterSlotDiv").First().Text()),
			}
			if src, ok := li.Find("img").First().Attr("src"); ok {
				v.Images = append(v.Images, hiResThumb(src))
			}
			out = append(out, v)
		})
	return out, len(out) > 0
}

func (e *Engine) variantsFromMobileState(doc *goquery.Document, current string) ([]amazonapi.Variant, bool) {
	var titles, asins []string
	doc.Find("script[data-a-state]").Each(func(_ int, s *goquery.Selection) {
		state := s.AttrOr("data-a-state", "")
		switch {
		case strings.Contains(state, "dim-val-list"):
			var byDim map[string][]string
			if err := json.Unmarshal([]byte(s.Text()), &byDim); err != nil {
				return
			}
			dims := make([]string, 0, len(byDim))
			for dim := range byDim {
				dims = append(dims, dim)
			}
			sort.Strings(dims)
			for _, dim := range dims {
				titles = append(titles, byDim[dim]...)
			}
		case strings.Contains(state, "dim-to-asin-list"):
			_ = json.Unmarshal([]byte(s.Text()), &asins)
		}
	})
	if len(asins) == 0 {
		return nil, false
	}

	var out []amazonapi.Variant
	for i, asin := range asins {
		v := amazonapi.Variant{
			ASIN:      asin,
			URL:       e.variantURL(asin),
			IsCurrent: asin == current,
		}
		if i < len(titles) {
			v.Title = titles[i]
		}
		out = append(out, v)
	}
	return out, true
}

func (e *Engine) variantURL(asin string) string {
	return e.host() + "/dp/" + asin + "/?th=1&psc=1"
}

func (e *Engine) swatchPrice(doc *goquery.Document, asin string) string {
	return cleanText(doc.Find(`li[data-defaultasin="` + asin + `"] div.twisterSlotDiv`).First().Text())
}
