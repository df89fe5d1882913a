package selection

import "companypicker/internal/domain"

// State holds the selected companies in the order they were added
type State struct {
	Items    []domain.Company
	Revision uint64 // bumped on every successful add or remove
}
