package search

import (
	"strings"

	"companypicker/internal/domain"
)

// Filter returns the catalog entries whose name contains query, ignoring
// case. An empty query matches everything.
func Filter(catalog []domain.Company, query string) []domain.Company {
	if query == "" {
		return domain.Clone(catalog)
	}
	q := strings.ToLower(query)
	matches := make([]domain.Company, 0, len(catalog))
	for _, c := range catalog {
		if strings.Contains(strings.ToLower(c.Name), q) {
			matches = append(matches, c)
		}
	}
	return matches
}

// Service filters the catalog for the picker and tracks its cursor
type Service struct {
	state   *State
	catalog []domain.Company
}

// NewService creates a new search service
func NewService() *Service {
	return &Service{
		state: &State{Results: []domain.Company{}},
	}
}

// SetCatalog replaces the searchable catalog and re-runs the current query
func (s *Service) SetCatalog(catalog []domain.Company) {
	s.catalog = domain.Clone(catalog)
	s.performSearch()
}

// SetQuery runs a new search. The cursor returns to the first result.
func (s *Service) SetQuery(query string) {
	if query == s.state.Query && s.state.Results != nil {
		return
	}
	s.state.Query = query
	s.performSearch()
}

// Reset clears the query so that the full catalog is listed
func (s *Service) Reset() {
	s.state.Query = ""
	s.performSearch()
}

// Query returns the current query
func (s *Service) Query() string {
	return s.state.Query
}

// Results returns the current matches
func (s *Service) Results() []domain.Company {
	return s.state.Results
}

// Cursor returns the highlighted result index
func (s *Service) Cursor() int {
	return s.state.Cursor
}

// Current returns the highlighted result
func (s *Service) Current() (domain.Company, bool) {
	if s.state.Cursor < 0 || s.state.Cursor >= len(s.state.Results) {
		return domain.Company{}, false
	}
	return s.state.Results[s.state.Cursor], true
}

// Move shifts the cursor by delta, clamped to the results
func (s *Service) Move(delta int) {
	s.setCursor(s.state.Cursor + delta)
}

// MoveTo places the cursor on index, clamped to the results
func (s *Service) MoveTo(index int) {
	s.setCursor(index)
}

func (s *Service) setCursor(index int) {
	if index >= len(s.state.Results) {
		index = len(s.state.Results) - 1
	}
	if index < 0 {
		index = 0
	}
	s.state.Cursor = index
}

func (s *Service) performSearch() {
	s.state.Results = Filter(s.catalog, s.state.Query)
	s.state.Cursor = 0
}
