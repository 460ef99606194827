package bootstrap

// Insertion says where the panel container goes relative to its anchor.
type Insertion int

const (
	// InsertInto appends the panel as the anchor's last child.
	InsertInto Insertion = iota
	// InsertAfter places the panel as the anchor's next sibling.
	InsertAfter
)

func (i Insertion) String() string {
	switch i {
	case InsertInto:
		return "into"
	case InsertAfter:
		return "after"
	default:
		return "unknown"
	}
}

// Document exposes the page regions the panel can be attached to.
type Document interface {
	// FooterRegion returns the designated footer region, if the page has one.
	FooterRegion() (Element, bool)
	// ContentRegion returns the main content region.
	ContentRegion() Element
}

// Anchor is the element the panel container is attached to.
type Anchor struct {
	Target Element
	Mode   Insertion
}

// Place chooses where the panel container is inserted: into the footer
// region when the page has one, otherwise right after the main content.
func Place(doc Document) Anchor {
	if footer, ok := doc.FooterRegion(); ok && footer != nil {
		return Anchor{Target: footer, Mode: InsertInto}
	}
	return Anchor{Target: doc.ContentRegion(), Mode: InsertAfter}
}
