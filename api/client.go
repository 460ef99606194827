package api

import (
	"context"
	"net/url"
	"strings"

	"github.com/poiesic/readmore/core"
)

// QueryClient issues read-only queries against the wiki API.
// Implementations must be safe for concurrent use.
type QueryClient interface {
	// Get runs a query with the given parameters.
	// A response without a query container is not an error.
	Get(ctx context.Context, params Params) (*Response, error)
}

// Params is a flat query parameter mapping.
type Params map[string]string

// Encode returns the parameters as a URL query string sorted by key.
// Identical mappings always produce identical strings.
func (p Params) Encode() string {
	values := make(url.Values, len(p))
	for k, v := range p {
		values.Set(k, v)
	}
	return values.Encode()
}

// JoinValues joins multi-valued parameter values with the API's "|" separator.
func JoinValues(values []string) string {
	return strings.Join(values, "|")
}

// Response is a decoded query API response.
type Response struct {
	BatchComplete bool      `json:"batchcomplete,omitempty"`
	Query         *Query    `json:"query,omitempty"`
	Error         *APIError `json:"error,omitempty"`
}

// Query is the results container of a Response.
type Query struct {
	Normalized []Normalization `json:"normalized,omitempty"`
	Redirects  []Normalization `json:"redirects,omitempty"`
	Pages      []Page          `json:"pages,omitempty"`
}

// Normalization maps a requested title to the title the API resolved it to.
type Normalization struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// Page is a single page entry in a query response.
type Page struct {
	PageID      int64             `json:"pageid,omitempty"`
	Namespace   int               `json:"ns"`
	Title       string            `json:"title"`
	Missing     bool              `json:"missing,omitempty"`
	Invalid     bool              `json:"invalid,omitempty"`
	Thumbnail   *core.Thumbnail   `json:"thumbnail,omitempty"`
	Description string            `json:"description,omitempty"`
	Extract     string            `json:"extract,omitempty"`
	PageProps   map[string]string `json:"pageprops,omitempty"`
}

// Summary converts the page to a PageSummary.
// The description is taken from whichever description source is present.
func (p *Page) Summary() core.PageSummary {
	summary := core.PageSummary{
		Title:       p.Title,
		PageID:      p.PageID,
		Description: p.Description,
	}
	if summary.Description == "" {
		summary.Description = p.Extract
	}
	if summary.Description == "" && p.PageProps != nil {
		summary.Description = p.PageProps["description"]
	}
	if p.Thumbnail != nil {
		thumb := *p.Thumbnail
		summary.Thumbnail = &thumb
	}
	return summary
}

// APIError is the error object the API returns in place of results.
type APIError struct {
	Code string `json:"code"`
	Info string `json:"info"`
}

func (e *APIError) Error() string {
	return "api error " + e.Code + ": " + e.Info
}
