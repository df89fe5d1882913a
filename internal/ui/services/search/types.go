package search

import "companypicker/internal/domain"

// State holds the picker's search state
type State struct {
	Query   string
	Results []domain.Company // catalog entries matching Query, in catalog order
	Cursor  int              // highlighted index into Results
}
