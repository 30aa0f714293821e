package extract

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	amazonapi "github.com/belo-research/amazon-product-api"
)

var (
	colorImagesRe = regexp.MustCompile(`'colorImages':\s*\{\s*'initial':\s*(.+?)\},\s*\n?\s*'colorToAsin'`)
	imageIDRe     = regexp.MustCompile(`/([\w\-+%]{9,13})\.`)
)

// extractImages fills the image gallery. The gallery JSON blob is the
// richest source; book pages carry a dynamic-image attribute instead,
// and the thumbnail strip is the last resort.
func (e *Engine) extractImages(doc *goquery.Document, body string, rec *amazonapi.DetailRecord) {
	images, _ := first(
		Strategy[[]string]{Name: "gallery JSON", Fn: func() ([]string, bool) {
			return imagesFromGalleryJSON(body)
		}},
		Strategy[[]string]{Name: "dynamic image attribute", Fn: func() ([]string, bool) {
			return imagesFromDynamicAttr(doc)
		}},
		Strategy[[]string]{Name: "thumbnail strip", Fn: func() ([]string, bool) {
			return imagesFromThumbStrip(doc)
		}},
	)
	rec.Images = images
	rec.TotalImages = len(images)
	if len(images) > 0 {
		rec.MainImage = images[0]
	}
}

func imagesFromGalleryJSON(body string) ([]string, bool) {
	m := colorImagesRe.FindStringSubmatch(body)
	if m == nil {
		return nil, false
	}
	var items []struct {
		HiRes string `json:"hiRes"`
		Large string `json:"large"`
	}
	if err := json.Unmarshal([]byte(m[1]), &items); err != nil {
		return nil, false
	}
	var out []string
	for _, item := range items {
		if item.HiRes != "" {
			out = append(out, item.HiRes)
		} else if item.Large != "" {
			out = append(out, item.Large)
		}
	}
	return out, len(out) > 0
}

func imagesFromDynamicAttr(doc *goquery.Document) ([]string, bool) {
	attr := doc.Find("#imgBlkFront, #ebooksImgBlkFront").First().AttrOr("data-a-dynamic-image", "")
	if attr == "" {
		return nil, false
	}
	var sizes map[string][]int
	if err := json.Unmarshal([]byte(attr), &sizes); err != nil {
		return nil, false
	}
	for url := range sizes {
		if m := imageIDRe.FindStringSubmatch(url); m != nil {
			return []string{"https://images-na.ssl-images-amazon.com/images/I/" + m[1] + ".jpg"}, true
		}
	}
	return nil, false
}

func imagesFromThumbStrip(doc *goquery.Document) ([]string, bool) {
	var out []string
	doc.Find(`span[data-action="thumb-action"] img`).Each(func(_ int, img *goquery.Selection) {
		src := img.AttrOr("src", "")
		if src == "" || strings.Contains(src, "x-locale/common") {
			return
		}
		out = append(out, hiResThumb(src))
	})
	return out, len(out) > 0
}
