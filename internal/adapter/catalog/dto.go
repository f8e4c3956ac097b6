package catalog

import "encoding/json"

// envelope is the standard response wrapper used by every catalog endpoint.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
}

// categoryDTO is a raw category record as returned by the backend.
// Records are not deduplicated server-side.
type categoryDTO struct {
	ID             int    `json:"id"`
	NormalizedName string `json:"normalizedName"`
	OriginalName   string `json:"originalName"`
	ContentType    string `json:"contentType"`
	ItemCount      int    `json:"itemCount"`
}

// groupDTO is a subcategory/group record.
type groupDTO struct {
	GroupName   string `json:"groupName"`
	DisplayName string `json:"displayName"`
	ItemCount   int    `json:"itemCount"`
}

// prefixDTO is a top-level prefix record.
type prefixDTO struct {
	Prefix         string `json:"prefix"`
	GroupCount     int    `json:"groupCount"`
	TotalItemCount int    `json:"totalItemCount"`
}

// mediaItemDTO is a playable item record.
type mediaItemDTO struct {
	ID           int    `json:"id"`
	StreamID     int    `json:"streamId"`
	Name         string `json:"name"`
	Logo         string `json:"logo,omitempty"`
	StreamURL    string `json:"streamUrl"`
	ContentType  string `json:"contentType"`
	CategoryID   int    `json:"categoryId"`
	CategoryName string `json:"categoryName"`
}

// pagedItemsDTO is the Spring-style page wrapper for item listings.
type pagedItemsDTO struct {
	Content       []mediaItemDTO `json:"content"`
	TotalElements int            `json:"totalElements"`
	TotalPages    int            `json:"totalPages"`
	Last          bool           `json:"last"`
}

// vodDetailDTO is the extended VOD metadata record.
type vodDetailDTO struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	StreamURL   string  `json:"streamUrl"`
	Logo        string  `json:"logo,omitempty"`
	Plot        string  `json:"plot,omitempty"`
	Cast        string  `json:"cast,omitempty"`
	Director    string  `json:"director,omitempty"`
	Genre       string  `json:"genre,omitempty"`
	ReleaseDate string  `json:"releaseDate,omitempty"`
	Rating      float64 `json:"rating,omitempty"`
	Duration    string  `json:"duration,omitempty"`
	Quality     string  `json:"quality,omitempty"`
}

// seriesDTO is the extended series metadata record.
type seriesDTO struct {
	ID           int     `json:"id"`
	Name         string  `json:"name"`
	Logo         string  `json:"logo,omitempty"`
	Plot         string  `json:"plot,omitempty"`
	Cast         string  `json:"cast,omitempty"`
	Genre        string  `json:"genre,omitempty"`
	ReleaseDate  string  `json:"releaseDate,omitempty"`
	Rating       float64 `json:"rating,omitempty"`
	Network      string  `json:"network,omitempty"`
	EpisodeCount int     `json:"episodeCount,omitempty"`
}

// episodeDTO is a single episode record.
type episodeDTO struct {
	ID            int    `json:"id"`
	SeriesID      int    `json:"seriesId"`
	SeasonNumber  int    `json:"seasonNumber"`
	EpisodeNumber int    `json:"episodeNumber"`
	Title         string `json:"title"`
	Plot          string `json:"plot,omitempty"`
	Duration      string `json:"duration,omitempty"`
	ReleaseDate   string `json:"releaseDate,omitempty"`
	StreamURL     string `json:"streamUrl"`
}
