package scrapingbee

import (
	"encoding/json"
	"fmt"
	"reflect"

	"github.com/tidwall/gjson"
)

// ContentKind describes how a scrape response body should be handled.
type ContentKind string

const (
	// ContentHTMLText is HTML or any other textual body, safe to decode as text.
	ContentHTMLText ContentKind = "html_text"
	// ContentBinaryDocument is a PDF, image or other binary body.
	// The bytes are preserved as-is and must never be decoded as text.
	ContentBinaryDocument ContentKind = "binary_document"
	// ContentOther is a body with no usable content-type declaration.
	ContentOther ContentKind = "other"
)

// SearchType selects the Google search vertical.
type SearchType string

const (
	SearchClassic SearchType = "classic"
	SearchNews    SearchType = "news"
	SearchMaps    SearchType = "maps"
	SearchImages  SearchType = "images"
)

func (t SearchType) Valid() bool {
	switch t {
	case SearchClassic, SearchNews, SearchMaps, SearchImages:
		return true
	}
	return false
}

// ScrapeResult is the outcome of a scrape call.
type ScrapeResult struct {
	ContentKind ContentKind `json:"content_kind"`
	StatusCode  int         `json:"status_code"`
	Body        []byte      `json:"body"`
}

// Text returns the body decoded as text. Binary bodies are summarized
// instead of decoded to avoid corrupting PDFs and images.
func (r *ScrapeResult) Text() string {
	if r.ContentKind == ContentBinaryDocument {
		return fmt.Sprintf("binary content: %d bytes", len(r.Body))
	}
	return string(r.Body)
}

// OrganicResult is a single entry from the organic_results array.
type OrganicResult struct {
	Position int    `json:"position,omitempty"`
	Title    string `json:"title"`
	URL      string `json:"url"`
	Snippet  string `json:"description"`
}

// SearchResult is the outcome of a search call. OrganicResults preserves the
// upstream order and count; Raw retains the full response, including the
// news, maps and images arrays that have no typed mapping.
type SearchResult struct {
	OrganicResults []OrganicResult `json:"organic_results"`
	Raw            json.RawMessage `json:"-"`
}

// Count returns the number of entries in the largest result array,
// whichever vertical the query used.
func (r *SearchResult) Count() int {
	count := len(r.OrganicResults)
	for _, key := range []string{"news_results", "maps_results", "images"} {
		if n := len(gjson.GetBytes(r.Raw, key).Array()); n > count {
			count = n
		}
	}
	return count
}

// UsageResult reports account credits and concurrency. Upstream is
// authoritative, the counts are not cross-validated locally.
type UsageResult struct {
	CreditsUsed      int `json:"credits_used"`
	CreditsRemaining int `json:"credits_remaining"`
	ConcurrencyUsed  int `json:"concurrency_used"`
	ConcurrencyLimit int `json:"concurrency_limit"`
}

// stringifyParams flattens caller params into query values. Nested maps and
// lists are sent as JSON strings, the upstream API expects complex options
// like extract_rules and js_scenario in that form. Keys are forwarded
// opaquely, unknown options are the upstream's to reject.
func stringifyParams(params map[string]any) map[string]string {
	out := make(map[string]string, len(params))
	for k, v := range params {
		switch reflect.ValueOf(v).Kind() {
		case reflect.Map, reflect.Slice, reflect.Array:
			bs, _ := json.Marshal(v)
			out[k] = string(bs)
		default:
			out[k] = fmt.Sprint(v)
		}
	}
	return out
}

// screenshotParams force binary handling regardless of the declared
// content type, screenshots come back as images.
var screenshotParams = []string{"screenshot", "screenshot_full_page", "screenshot_selector"}

func isScreenshot(params map[string]any) bool {
	for _, name := range screenshotParams {
		if v, ok := params[name]; ok {
			s := fmt.Sprint(v)
			if s != "" && s != "false" {
				return true
			}
		}
	}
	return false
}
