package catalog

import "github.com/oweller/ipteav/internal/domain"

// mapCategories converts raw category DTOs to domain records.
func mapCategories(dtos []categoryDTO) []domain.RawCategory {
	out := make([]domain.RawCategory, 0, len(dtos))
	for _, d := range dtos {
		out = append(out, domain.RawCategory{
			ID:             d.ID,
			NormalizedName: d.NormalizedName,
			OriginalName:   d.OriginalName,
			ContentType:    domain.ContentType(d.ContentType),
			ItemCount:      d.ItemCount,
		})
	}
	return out
}

// mapGroups converts group DTOs to domain records.
func mapGroups(dtos []groupDTO) []domain.Group {
	out := make([]domain.Group, 0, len(dtos))
	for _, d := range dtos {
		out = append(out, domain.Group{
			Name:        d.GroupName,
			DisplayName: d.DisplayName,
			ItemCount:   d.ItemCount,
		})
	}
	return out
}

// mapPrefixes converts prefix DTOs to domain records.
func mapPrefixes(dtos []prefixDTO) []domain.Prefix {
	out := make([]domain.Prefix, 0, len(dtos))
	for _, d := range dtos {
		out = append(out, domain.Prefix{
			Prefix:         d.Prefix,
			GroupCount:     d.GroupCount,
			TotalItemCount: d.TotalItemCount,
		})
	}
	return out
}

// mapPage converts a Spring-style page DTO to a domain page.
func mapPage(dto pagedItemsDTO, pageIndex int) domain.Page {
	items := make([]domain.MediaItem, 0, len(dto.Content))
	for _, d := range dto.Content {
		items = append(items, mapMediaItem(d))
	}
	return domain.Page{
		Items:      items,
		PageIndex:  pageIndex,
		TotalItems: dto.TotalElements,
		Last:       dto.Last,
	}
}

func mapMediaItem(d mediaItemDTO) domain.MediaItem {
	return domain.MediaItem{
		ID:           d.ID,
		StreamID:     d.StreamID,
		Name:         d.Name,
		StreamURL:    d.StreamURL,
		LogoURL:      d.Logo,
		CategoryID:   d.CategoryID,
		CategoryName: d.CategoryName,
		Type:         domain.ContentType(d.ContentType),
	}
}

func mapVodDetail(d vodDetailDTO) domain.VodDetail {
	return domain.VodDetail{
		ID:          d.ID,
		Name:        d.Name,
		StreamURL:   d.StreamURL,
		LogoURL:     d.Logo,
		Plot:        d.Plot,
		Cast:        d.Cast,
		Director:    d.Director,
		Genre:       d.Genre,
		ReleaseDate: d.ReleaseDate,
		Rating:      d.Rating,
		Duration:    d.Duration,
		Quality:     d.Quality,
	}
}

func mapSeries(d seriesDTO) domain.Series {
	return domain.Series{
		ID:           d.ID,
		Name:         d.Name,
		LogoURL:      d.Logo,
		Plot:         d.Plot,
		Cast:         d.Cast,
		Genre:        d.Genre,
		ReleaseDate:  d.ReleaseDate,
		Rating:       d.Rating,
		Network:      d.Network,
		EpisodeCount: d.EpisodeCount,
	}
}

func mapEpisodes(dtos []episodeDTO) []domain.Episode {
	out := make([]domain.Episode, 0, len(dtos))
	for _, d := range dtos {
		out = append(out, domain.Episode{
			ID:            d.ID,
			SeriesID:      d.SeriesID,
			SeasonNumber:  d.SeasonNumber,
			EpisodeNumber: d.EpisodeNumber,
			Title:         d.Title,
			Plot:          d.Plot,
			Duration:      d.Duration,
			ReleaseDate:   d.ReleaseDate,
			StreamURL:     d.StreamURL,
		})
	}
	return out
}
