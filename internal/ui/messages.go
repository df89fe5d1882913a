package ui

import (
	"companypicker/internal/domain"
	"companypicker/internal/eventbus"
)

// EventMsg wraps a domain event for the UI
type EventMsg struct {
	Event eventbus.DomainEvent
}

// loadedMsg carries the result of the initial catalog and selection fetch
type loadedMsg struct {
	catalog   []domain.Company
	selection []domain.Company
	err       error
}

// logoMsg carries a downloaded logo, or the reason it is unavailable
type logoMsg struct {
	url string
	art string
	err error
}

// helpPagerMsg contains the result of a help pager command
type helpPagerMsg struct {
	err error
}

// pauseRenderingMsg signals to pause Bubble Tea rendering
type pauseRenderingMsg struct{}

// resumeRenderingMsg signals to resume Bubble Tea rendering
type resumeRenderingMsg struct{}
