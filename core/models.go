package core

import (
	"encoding/binary"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// ID is a deterministic identifier derived from content.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// This ensures that identical content produces identical IDs.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// DescriptionSource selects where page descriptions come from.
type DescriptionSource string

const (
	// DescriptionNone requests no description metadata.
	DescriptionNone DescriptionSource = ""
	// DescriptionWikidata uses the central short description.
	DescriptionWikidata DescriptionSource = "wikidata"
	// DescriptionTextExtracts uses the first sentence of the page intro.
	DescriptionTextExtracts DescriptionSource = "textextracts"
	// DescriptionPageDescription uses the locally stored page description.
	DescriptionPageDescription DescriptionSource = "pagedescription"
)

// DefaultThumbnailSize is the thumbnail width requested from the query API.
const DefaultThumbnailSize = 160

// Thumbnail is a page image rendition.
type Thumbnail struct {
	URL    string `json:"source"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// PageSummary is a single related page as returned by the query API.
type PageSummary struct {
	Title       string     `json:"title"`
	PageID      int64      `json:"pageid"`
	Thumbnail   *Thumbnail `json:"thumbnail,omitempty"`
	Description string     `json:"description,omitempty"`
}

// GatewayConfig describes one page view for the related pages gateway.
type GatewayConfig struct {
	CurrentPageTitle    string
	EditorCuratedPages  []string          // Ordered; may be empty
	UseCirrusSearch     bool              // Similarity search backend is available
	OnlyUseCirrusSearch bool              // Ignore curated pages entirely
	DescriptionSource   DescriptionSource // Optional description metadata
	ContentNamespaces   []int             // Search scope; defaults to namespace 0
	ThumbnailSize       int               // Defaults to DefaultThumbnailSize
}

// CacheEntry is a stored query response.
type CacheEntry struct {
	Key      ID
	StoredAt time.Time
	Body     []byte // Encoded response
}
