package fetcher

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"yad2watch/internal/model"
)

// ErrMissingID reports a scraped payload without an external id, the one
// field a listing cannot be tracked without. The orchestrator skips the
// single item and continues.
var ErrMissingID = errors.New("listing has no external id")

const siteOrigin = "https://www.yad2.co.il"

// Normalize maps a raw payload into a canonical listing. FirstSeen is left
// zero; it is assigned by the diff step the first time the id is observed.
// Missing optional fields become the unknown sentinel instead of failing.
func Normalize(raw RawListing) (model.Listing, error) {
	if raw.ID == "" {
		return model.Listing{}, fmt.Errorf("payload on page %d (title %q): %w", raw.Page, raw.Title, ErrMissingID)
	}

	l := model.Listing{
		ID:       raw.ID,
		Title:    raw.Title,
		Price:    parseAmount(raw.Price),
		Year:     parseAmount(raw.Year),
		Mileage:  parseAmount(raw.Km),
		Location: raw.Location,
		URL:      absoluteURL(raw.Href),
	}
	return l, nil
}

var digitsRe = regexp.MustCompile(`\d+`)

// parseAmount extracts an integer from scraped text, tolerating currency
// signs, thousands separators, and surrounding words. Text without digits
// maps to the unknown sentinel.
func parseAmount(s string) int {
	digits := digitsRe.FindString(strings.ReplaceAll(s, ",", ""))
	if digits == "" {
		return model.UnknownInt
	}
	n, err := strconv.Atoi(digits)
	if err != nil {
		return model.UnknownInt
	}
	return n
}

func absoluteURL(href string) string {
	if href == "" || strings.Contains(href, "://") {
		return href
	}
	if !strings.HasPrefix(href, "/") {
		href = "/" + href
	}
	return siteOrigin + href
}
