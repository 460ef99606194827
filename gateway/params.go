package gateway

import (
	"strconv"

	"github.com/poiesic/readmore/api"
	"github.com/poiesic/readmore/core"
)

const (
	// Shared and browser cache lifetime of similarity search responses, in seconds.
	searchCacheMaxAge = 86400

	// Query-independent ranking profile for "morelike" queries.
	searchQueryProfile = "classic_noboostlinks"

	// Responses must not depend on the viewer's interface language.
	contentLanguage = "content"
)

// baseParams returns the parameters shared by every related pages query.
func (g *Gateway) baseParams() api.Params {
	params := api.Params{
		"action":        "query",
		"format":        "json",
		"formatversion": "2",
		"origin":        "*",
		"prop":          "pageimages",
		"piprop":        "thumbnail",
		"pithumbsize":   strconv.Itoa(g.thumbnailSize),
	}

	switch g.descriptionSource {
	case core.DescriptionWikidata:
		params["prop"] += "|description"
	case core.DescriptionTextExtracts:
		params["prop"] += "|extracts"
		params["exsentences"] = "1"
		params["exintro"] = "1"
		params["explaintext"] = "1"
	case core.DescriptionPageDescription:
		params["prop"] += "|pageprops"
		params["ppprop"] = "description"
	}

	return params
}

// curatedParams queries the given titles directly. All titles fit in one
// response, so no continuation is requested.
func (g *Gateway) curatedParams(titles []string) api.Params {
	params := g.baseParams()
	params["titles"] = api.JoinValues(titles)
	params["pilimit"] = strconv.Itoa(len(titles))
	params["continue"] = ""
	return params
}

// searchParams builds a "morelike" query for the current page. The request
// is identical for every viewer of the page so shared caches can serve it.
func (g *Gateway) searchParams(limit int) api.Params {
	namespaces := make([]string, len(g.namespaces))
	for i, ns := range g.namespaces {
		namespaces[i] = strconv.Itoa(ns)
	}

	params := g.baseParams()
	params["generator"] = "search"
	params["gsrsearch"] = "morelike:" + g.currentPage
	params["gsrnamespace"] = api.JoinValues(namespaces)
	params["gsrlimit"] = strconv.Itoa(limit)
	params["gsrqiprofile"] = searchQueryProfile
	params["pilimit"] = strconv.Itoa(limit)
	params["uselang"] = contentLanguage
	params["smaxage"] = strconv.Itoa(searchCacheMaxAge)
	params["maxage"] = strconv.Itoa(searchCacheMaxAge)
	return params
}
