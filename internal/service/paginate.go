package service

import "github.com/Sirpi-57/diya-jewelry-bot/internal/models"

// PageSize is the fixed page size shared by every view type. It is not
// configurable per call.
const PageSize = 5

// TotalPages returns ceil(count / PageSize). Zero rows means zero pages.
func TotalPages(count int) int {
	return (count + PageSize - 1) / PageSize
}

// PageSlice returns the rows for a zero-based page index. A page beyond the
// end yields an empty slice; callers clamp before slicing when a page must
// be shown.
func PageSlice(rows []models.CatalogRow, page int) []models.CatalogRow {
	if page < 0 {
		return nil
	}
	start := page * PageSize
	if start >= len(rows) {
		return nil
	}
	end := start + PageSize
	if end > len(rows) {
		end = len(rows)
	}
	return rows[start:end]
}

// ClampPage bounds a requested page to the last valid page, flooring at 0.
func ClampPage(page, totalPages int) int {
	if totalPages <= 0 {
		return 0
	}
	if page >= totalPages {
		page = totalPages - 1
	}
	if page < 0 {
		page = 0
	}
	return page
}
