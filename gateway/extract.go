package gateway

import (
	"github.com/poiesic/readmore/api"
	"github.com/poiesic/readmore/core"
)

// ExtractPages returns the page summaries of a query response.
// A nil response or one without a results container yields an empty,
// non-nil slice. Missing, invalid and untitled pages are skipped.
func ExtractPages(resp *api.Response) []core.PageSummary {
	if resp == nil || resp.Query == nil || len(resp.Query.Pages) == 0 {
		return []core.PageSummary{}
	}

	pages := make([]core.PageSummary, 0, len(resp.Query.Pages))
	for i := range resp.Query.Pages {
		page := &resp.Query.Pages[i]
		if page.Missing || page.Invalid {
			continue
		}
		summary := page.Summary()
		if core.ValidatePageSummary(&summary) != nil {
			continue
		}
		pages = append(pages, summary)
	}
	return pages
}

// orderByTitles puts pages in the order their titles were requested.
// Requested titles are followed through the response's normalization and
// redirect maps. Pages that match no requested title keep their relative
// order at the end.
func orderByTitles(resp *api.Response, pages []core.PageSummary, titles []string) []core.PageSummary {
	if len(pages) < 2 {
		return pages
	}

	resolved := make(map[string]string)
	if resp != nil && resp.Query != nil {
		for _, n := range resp.Query.Normalized {
			resolved[n.From] = n.To
		}
		for _, r := range resp.Query.Redirects {
			resolved[r.From] = r.To
		}
	}

	byTitle := make(map[string]int, len(pages))
	for i, p := range pages {
		if _, seen := byTitle[p.Title]; !seen {
			byTitle[p.Title] = i
		}
	}

	used := make([]bool, len(pages))
	ordered := make([]core.PageSummary, 0, len(pages))
	for _, title := range titles {
		// Normalization then redirect; the hop count is bounded to avoid cycles.
		for hops := 0; hops < 2; hops++ {
			next, ok := resolved[title]
			if !ok {
				break
			}
			title = next
		}
		i, ok := byTitle[title]
		if !ok || used[i] {
			continue
		}
		used[i] = true
		ordered = append(ordered, pages[i])
	}
	for i, p := range pages {
		if !used[i] {
			ordered = append(ordered, p)
		}
	}
	return ordered
}
