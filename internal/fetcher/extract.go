package fetcher

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var (
	yearRe = regexp.MustCompile(`\b(?:19|20)\d{2}\b`)
	kmRe   = regexp.MustCompile(`(\d{1,3}(?:,\d{3})*)\s*(?:ק"מ|קמ|km)`)
)

// extractListing pulls the raw fields out of one listing element. Selectors
// mirror the site's current markup with attribute fallbacks for older
// variants; anything not found is left empty for the normalizer to handle.
func extractListing(sel *goquery.Selection, page int) RawListing {
	raw := RawListing{Page: page}

	raw.ID = listingID(sel)

	if title := sel.Find("h3, h4, [class*='title']").First(); title.Length() > 0 {
		raw.Title = strings.TrimSpace(title.Text())
	} else if a := sel.Find("a").First(); a.Length() > 0 {
		raw.Title = strings.TrimSpace(a.Text())
	}

	if price := sel.Find("[class*='price']").First(); price.Length() > 0 {
		raw.Price = strings.TrimSpace(price.Text())
	} else if text := sel.Text(); strings.Contains(text, "₪") {
		raw.Price = priceFromText(text)
	}

	text := sel.Text()
	raw.Year = yearRe.FindString(text)
	if m := kmRe.FindStringSubmatch(text); m != nil {
		raw.Km = m[1]
	}

	if loc := sel.Find("[class*='location'], [class*='area']").First(); loc.Length() > 0 {
		raw.Location = strings.TrimSpace(loc.Text())
	}

	if href, ok := sel.Find("a[href]").First().Attr("href"); ok {
		raw.Href = href
	}

	return raw
}

func listingID(sel *goquery.Selection) string {
	if id, ok := sel.Attr("data-testid"); ok && id != "" {
		return strings.TrimPrefix(id, "item-")
	}
	if href, ok := sel.Find("a[href]").First().Attr("href"); ok {
		if i := strings.Index(href, "/item/"); i >= 0 {
			id := href[i+len("/item/"):]
			if j := strings.IndexAny(id, "?#"); j >= 0 {
				id = id[:j]
			}
			return id
		}
		if i := strings.Index(href, "itemId="); i >= 0 {
			id := href[i+len("itemId="):]
			if j := strings.IndexAny(id, "&#"); j >= 0 {
				id = id[:j]
			}
			return id
		}
	}
	if id, ok := sel.Attr("data-item-id"); ok {
		return id
	}
	id, _ := sel.Attr("data-id")
	return id
}

// priceFromText finds the shekel amount inside an element's full text when
// no dedicated price element exists.
func priceFromText(text string) string {
	for _, line := range strings.Split(text, "\n") {
		if strings.Contains(line, "₪") {
			return strings.TrimSpace(line)
		}
	}
	return ""
}
