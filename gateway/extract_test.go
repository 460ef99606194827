package gateway

import (
	"testing"

	"github.com/poiesic/readmore/api"
	"github.com/poiesic/readmore/core"
	"github.com/stretchr/testify/assert"
)

func TestExtractPages(t *testing.T) {
	t.Run("nil response", func(t *testing.T) {
		pages := ExtractPages(nil)
		assert.NotNil(t, pages)
		assert.Empty(t, pages)
	})

	t.Run("no query container", func(t *testing.T) {
		assert.Empty(t, ExtractPages(&api.Response{BatchComplete: true}))
	})

	t.Run("skips missing invalid and untitled pages", func(t *testing.T) {
		resp := &api.Response{Query: &api.Query{Pages: []api.Page{
			{PageID: 1, Title: "Cat"},
			{Title: "Nonexistent", Missing: true},
			{Title: "Bad<title", Invalid: true},
			{PageID: 4},
			{PageID: 5, Title: "Dog"},
		}}}
		assert.Equal(t, []string{"Cat", "Dog"}, titlesOf(ExtractPages(resp)))
	})

	t.Run("descriptions and thumbnails", func(t *testing.T) {
		thumb := &core.Thumbnail{URL: "https://upload.example/cat.jpg", Width: 160, Height: 100}
		resp := &api.Response{Query: &api.Query{Pages: []api.Page{
			{PageID: 1, Title: "Cat", Description: "Small feline", Thumbnail: thumb},
			{PageID: 2, Title: "Dog", Extract: "The dog is a domesticated canid."},
			{PageID: 3, Title: "Bird", PageProps: map[string]string{"description": "Feathered animal"}},
		}}}

		pages := ExtractPages(resp)
		assert.Equal(t, "Small feline", pages[0].Description)
		assert.Equal(t, thumb.URL, pages[0].Thumbnail.URL)
		assert.Equal(t, "The dog is a domesticated canid.", pages[1].Description)
		assert.Equal(t, "Feathered animal", pages[2].Description)
		assert.Nil(t, pages[2].Thumbnail)
	})
}

func TestOrderByTitles(t *testing.T) {
	pages := func(titles ...string) []core.PageSummary {
		out := make([]core.PageSummary, len(titles))
		for i, title := range titles {
			out[i] = core.PageSummary{Title: title, PageID: int64(i + 1)}
		}
		return out
	}

	t.Run("restores request order", func(t *testing.T) {
		got := orderByTitles(nil, pages("C", "A", "B"), []string{"A", "B", "C"})
		assert.Equal(t, []string{"A", "B", "C"}, titlesOf(got))
	})

	t.Run("unmatched pages go last", func(t *testing.T) {
		got := orderByTitles(nil, pages("X", "B", "A"), []string{"A", "B"})
		assert.Equal(t, []string{"A", "B", "X"}, titlesOf(got))
	})

	t.Run("missing titles are skipped", func(t *testing.T) {
		got := orderByTitles(nil, pages("C", "A"), []string{"A", "B", "C"})
		assert.Equal(t, []string{"A", "C"}, titlesOf(got))
	})

	t.Run("duplicate requested titles", func(t *testing.T) {
		got := orderByTitles(nil, pages("B", "A"), []string{"A", "A", "B"})
		assert.Equal(t, []string{"A", "B"}, titlesOf(got))
	})

	t.Run("redirect cycles terminate", func(t *testing.T) {
		resp := &api.Response{Query: &api.Query{
			Normalized: []api.Normalization{{From: "a", To: "b"}},
			Redirects:  []api.Normalization{{From: "b", To: "a"}},
		}}
		got := orderByTitles(resp, pages("Z", "Y"), []string{"a"})
		assert.Equal(t, []string{"Z", "Y"}, titlesOf(got))
	})
}

func TestGetForCurrentPage_CuratedExtrasAreTrimmed(t *testing.T) {
	client := &testQueryClient{respond: func(params api.Params) (*api.Response, error) {
		return pagesResponse("Unrequested", "Cat"), nil
	}}
	g, err := NewGateway(client, core.GatewayConfig{CurrentPageTitle: "Foo", EditorCuratedPages: []string{"Cat"}})
	assert.NoError(t, err)

	assert.Equal(t, []string{"Cat"}, titlesOf(g.GetForCurrentPage(t.Context(), 3)))
}
