package schedule

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/openmat-france/openmat-api/internal/domain"
)

// SortOption selects the ordering of a session listing.
type SortOption string

const (
	SortDateAsc   SortOption = "date-asc"
	SortDateDesc  SortOption = "date-desc"
	SortCityAsc   SortOption = "city-asc"
	SortCityDesc  SortOption = "city-desc"
	SortPriceAsc  SortOption = "price-asc"
	SortPriceDesc SortOption = "price-desc"
)

var nonNumeric = regexp.MustCompile(`[^\d.-]`)

// Sort returns a sorted copy of the sessions. An unknown option returns the
// copy in its original order.
func Sort(sessions []domain.Session, by SortOption) []domain.Session {
	sorted := make([]domain.Session, len(sessions))
	copy(sorted, sessions)

	switch by {
	case SortDateAsc:
		sort.SliceStable(sorted, func(i, j int) bool {
			return firstDate(sorted[i]).Before(firstDate(sorted[j]))
		})
	case SortDateDesc:
		sort.SliceStable(sorted, func(i, j int) bool {
			return firstDate(sorted[j]).Before(firstDate(sorted[i]))
		})
	case SortCityAsc:
		sort.SliceStable(sorted, func(i, j int) bool {
			return strings.ToLower(sorted[i].City) < strings.ToLower(sorted[j].City)
		})
	case SortCityDesc:
		sort.SliceStable(sorted, func(i, j int) bool {
			return strings.ToLower(sorted[j].City) < strings.ToLower(sorted[i].City)
		})
	case SortPriceAsc:
		sort.SliceStable(sorted, func(i, j int) bool {
			return priceValue(sorted[i]) < priceValue(sorted[j])
		})
	case SortPriceDesc:
		sort.SliceStable(sorted, func(i, j int) bool {
			return priceValue(sorted[j]) < priceValue(sorted[i])
		})
	}

	return sorted
}

func firstDate(s domain.Session) time.Time {
	dates := ParseDates(s.Date)
	if len(dates) == 0 {
		return time.Time{}
	}

	parsed, err := time.Parse("2006-01-02", dates[0])
	if err != nil {
		return time.Time{}
	}

	return parsed
}

// priceValue extracts the numeric part of a free-text price, so "15€" sorts
// as 15 and "" (free) as 0.
func priceValue(s domain.Session) float64 {
	cleaned := nonNumeric.ReplaceAllString(s.Price, "")
	value, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0
	}

	return value
}
