package domain

import "fmt"

// ContentType identifies one of the provider's catalog sections.
type ContentType string

const (
	ContentTypeLive   ContentType = "LIVE"
	ContentTypeVOD    ContentType = "VOD"
	ContentTypeSeries ContentType = "SERIES"
	ContentTypeRadio  ContentType = "RADIO"
)

// String implements fmt.Stringer for logging and query building.
func (t ContentType) String() string {
	return string(t)
}

// IsValid checks whether the content type is one of the defined constants.
func (t ContentType) IsValid() bool {
	switch t {
	case ContentTypeLive, ContentTypeVOD, ContentTypeSeries, ContentTypeRadio:
		return true
	default:
		return false
	}
}

// ContentTypes returns all content types in tab order.
func ContentTypes() []ContentType {
	return []ContentType{ContentTypeLive, ContentTypeVOD, ContentTypeSeries, ContentTypeRadio}
}

// RawCategory is a category record exactly as the backend returns it.
// The backend may emit several records with the same normalized name;
// deduplication happens client-side (see CategoryAggregate).
type RawCategory struct {
	ID             int         // Backend identifier
	NormalizedName string      // Dedup key, provider-normalized
	OriginalName   string      // Display name as imported
	ContentType    ContentType // Section this category belongs to
	ItemCount      int         // Items in this raw record
}

// CategoryAggregate is the deduplicated, summed view of raw category
// records sharing a (normalizedName, contentType) key. ID and names are
// taken from the first record seen for the key; ItemCount is the sum
// over all records sharing it.
type CategoryAggregate struct {
	ID             int
	NormalizedName string
	OriginalName   string
	ContentType    ContentType
	ItemCount      int
}

// Key returns the aggregation key for a category.
func (c CategoryAggregate) Key() string {
	return c.NormalizedName + "-" + string(c.ContentType)
}

// Group is a subcategory/group record one level below a category or prefix.
type Group struct {
	Name        string // Backend group key
	DisplayName string // Human-readable name
	ItemCount   int
}

// Title returns the name to render for the group.
func (g Group) Title() string {
	if g.DisplayName != "" {
		return g.DisplayName
	}
	return g.Name
}

// Prefix is a top-level node in the prefix browsing scheme.
type Prefix struct {
	Prefix         string
	GroupCount     int
	TotalItemCount int
}

// MediaItem is a playable catalog entry. Items are immutable values
// fetched from the backend and never mutated client-side.
type MediaItem struct {
	ID           int
	StreamID     int
	Name         string
	StreamURL    string
	LogoURL      string
	CategoryID   int
	CategoryName string
	Type         ContentType
}

// Page is one fetched slice of items for a leaf node. Pages for the
// same leaf accumulate in insertion order until the leaf changes.
type Page struct {
	Items      []MediaItem
	PageIndex  int
	TotalItems int
	Last       bool
}

// VodDetail carries the extended metadata for a single VOD entry.
type VodDetail struct {
	ID          int
	Name        string
	StreamURL   string
	LogoURL     string
	Plot        string
	Cast        string
	Director    string
	Genre       string
	ReleaseDate string
	Rating      float64
	Duration    string
	Quality     string
}

// Series carries the extended metadata for a series entry.
type Series struct {
	ID           int
	Name         string
	LogoURL      string
	Plot         string
	Cast         string
	Genre        string
	ReleaseDate  string
	Rating       float64
	Network      string
	EpisodeCount int
}

// Episode is a single episode within a series.
type Episode struct {
	ID            int
	SeriesID      int
	SeasonNumber  int
	EpisodeNumber int
	Title         string
	Plot          string
	Duration      string
	ReleaseDate   string
	StreamURL     string
}

// Code returns the formatted episode code (e.g., "S01E05").
func (e Episode) Code() string {
	return fmt.Sprintf("S%02dE%02d", e.SeasonNumber, e.EpisodeNumber)
}
