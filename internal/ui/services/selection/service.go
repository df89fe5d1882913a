package selection

import (
	"companypicker/internal/domain"
	"companypicker/internal/eventbus"
)

// Service owns the list of selected companies
type Service struct {
	state *State
	bus   eventbus.EventBus
}

// NewService creates a new selection service. bus may be nil.
func NewService(bus eventbus.EventBus) *Service {
	return &Service{
		state: &State{Items: []domain.Company{}},
		bus:   bus,
	}
}

// Replace installs a freshly loaded selection. It is stored verbatim and
// does not count as a change.
func (s *Service) Replace(items []domain.Company) {
	s.state.Items = domain.Clone(items)
}

// Add appends c unless the selection is full or already holds its id
func (s *Service) Add(c domain.Company) bool {
	if s.Full() || s.Contains(c.ID) {
		return false
	}
	s.state.Items = append(s.state.Items, c)
	s.changed()
	return true
}

// Remove drops every entry with the given id
func (s *Service) Remove(id int64) bool {
	kept := make([]domain.Company, 0, len(s.state.Items))
	for _, c := range s.state.Items {
		if c.ID != id {
			kept = append(kept, c)
		}
	}
	if len(kept) == len(s.state.Items) {
		return false
	}
	s.state.Items = kept
	s.changed()
	return true
}

// Items returns a copy of the selection
func (s *Service) Items() []domain.Company {
	return domain.Clone(s.state.Items)
}

// At returns the company at index
func (s *Service) At(index int) (domain.Company, bool) {
	if index < 0 || index >= len(s.state.Items) {
		return domain.Company{}, false
	}
	return s.state.Items[index], true
}

// Len returns the number of selected companies
func (s *Service) Len() int {
	return len(s.state.Items)
}

// Full reports whether no more companies can be added
func (s *Service) Full() bool {
	return len(s.state.Items) >= domain.MaxSelected
}

// Contains reports whether a company with id is selected
func (s *Service) Contains(id int64) bool {
	return domain.IndexOf(s.state.Items, id) >= 0
}

// Revision returns the revision of the latest change
func (s *Service) Revision() uint64 {
	return s.state.Revision
}

func (s *Service) changed() {
	s.state.Revision++
	if s.bus == nil {
		return
	}
	s.bus.Publish(eventbus.SelectionChangedEvent{
		Revision: s.state.Revision,
		Items:    domain.Clone(s.state.Items),
	})
}
