package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	amazonapi "github.com/belo-research/amazon-product-api"
)

// extractBestsellersRank reads the bestseller rank list. The section
// appears in several page layouts; the chain tries each in order and the
// first layout that yields entries wins.
func (e *Engine) extractBestsellersRank(doc *goquery.Document) []amazonapi.RankEntry {
	entries, _ := first(
		Strategy[[]amazonapi.RankEntry]{Name: "detail bullets list", Fn: func() ([]amazonapi.RankEntry, bool) {
			return e.rankFromBulletList(doc)
		}},
		Strategy[[]amazonapi.RankEntry]{Name: "detail bullets table", Fn: func() ([]amazonapi.RankEntry, bool) {
			return e.rankFromTable(doc, "#productDetails_detailBullets_sections1", "td span span")
		}},
		Strategy[[]amazonapi.RankEntry]{Name: "tech spec table", Fn: func() ([]amazonapi.RankEntry, bool) {
			return e.rankFromTable(doc, "#productDetails_techSpec_section_1", "td span div")
		}},
		Strategy[[]amazonapi.RankEntry]{Name: "sales rank list", Fn: func() ([]amazonapi.RankEntry, bool) {
			return e.rankFromSalesRank(doc)
		}},
		Strategy[[]amazonapi.RankEntry]{Name: "section entry spans", Fn: func() ([]amazonapi.RankEntry, bool) {
			return e.rankFromSectionEntry(doc)
		}},
	)
	return entries
}

func (e *Engine) rankFromBulletList(doc *goquery.Document) ([]amazonapi.RankEntry, bool) {
	var out []amazonapi.RankEntry
	doc.Find("#detailBulletsWrapper_feature_div ul li").EachWithBreak(func(_ int, li *goquery.Selection) bool {
		text := cleanText(li.Text())
		if !strings.Contains(text, "Best Sellers Rank") {
			return true
		}
		links := li.Find("a")
		_, after, _ := strings.Cut(text, ":")
		for i, chunk := range strings.Split(after, "#") {
			entry, ok := e.Geo.BestSeller("#" + chunk)
			if !ok {
				continue
			}
			if href, found := links.Eq(i - 1).Attr("href"); found {
				entry.URL = e.absoluteURL(href)
			}
			out = append(out, entry)
		}
		return false
	})
	return out, len(out) > 0
}

func (e *Engine) rankFromTable(doc *goquery.Document, table, cellSel string) ([]amazonapi.RankEntry, bool) {
	var out []amazonapi.RankEntry
	doc.Find(table+" tr").Each(func(_ int, row *goquery.Selection) {
		if !strings.Contains(row.Find("th").Text(), "Best Sellers Rank") {
			return
		}
		row.Find(cellSel).Each(func(_ int, cell *goquery.Selection) {
			entry, ok := e.Geo.BestSeller(cleanText(cell.Text()))
			if !ok {
				return
			}
			if href, found := cell.Find("a").First().Attr("href"); found {
				entry.URL = e.absoluteURL(href)
			}
			out = append(out, entry)
		})
	})
	return out, len(out) > 0
}

func (e *Engine) rankFromSalesRank(doc *goquery.Document) ([]amazonapi.RankEntry, bool) {
	var out []amazonapi.RankEntry
	sec := doc.Find("#SalesRank")
	if top, ok := e.Geo.BestSeller(cleanText(sec.First().Contents().Not("ul").Text())); ok {
		out = append(out, top)
	}
	sec.Find("ul li").Each(func(_ int, li *goquery.Selection) {
		entry, ok := e.Geo.BestSeller(cleanText(li.Text()))
		if !ok {
			return
		}
		if href, found := li.Find("a").First().Attr("href"); found {
			entry.URL = e.absoluteURL(href)
		}
		out = append(out, entry)
	})
	return out, len(out) > 0
}

func (e *Engine) rankFromSectionEntry(doc *goquery.Document) ([]amazonapi.RankEntry, bool) {
	var out []amazonapi.RankEntry
	doc.Find(".prodDetSectionEntry").EachWithBreak(func(_ int, th *goquery.Selection) bool {
		if !strings.Contains(th.Text(), "Best Sellers Rank") {
			return true
		}
		th.Parent().Find("td span").Each(func(_ int, span *goquery.Selection) {
			entry, ok := e.Geo.BestSeller(cleanText(span.Text()))
			if !ok {
				return
			}
			if href, found := span.Find("a").First().Attr("href"); found {
				entry.URL = e.absoluteURL(href)
			}
			out = append(out, entry)
		})
		return false
	})
	return out, len(out) > 0
}
