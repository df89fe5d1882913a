package domain

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventCatalogLoaded       EventType = "CatalogLoaded"
	EventSelectionLoaded     EventType = "SelectionLoaded"
	EventSelectionChanged    EventType = "SelectionChanged"
	EventSelectionSaved      EventType = "SelectionSaved"
	EventSelectionSaveFailed EventType = "SelectionSaveFailed"
	EventSelectionPersisted  EventType = "SelectionPersisted"
	EventError               EventType = "Error"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// CatalogLoadedEvent is emitted when the master catalog has been read
type CatalogLoadedEvent struct {
	Count int
}

func (e CatalogLoadedEvent) Type() EventType { return EventCatalogLoaded }

// SelectionLoadedEvent is emitted when the persisted selection has been read
type SelectionLoadedEvent struct {
	Count int
}

func (e SelectionLoadedEvent) Type() EventType { return EventSelectionLoaded }

// SelectionChangedEvent is emitted after every successful add or remove
type SelectionChangedEvent struct {
	Revision uint64
	Items    []Company // snapshot, safe to keep
}

func (e SelectionChangedEvent) Type() EventType { return EventSelectionChanged }

// SelectionSavedEvent is emitted when a revision has been written to the store
type SelectionSavedEvent struct {
	Revision uint64
}

func (e SelectionSavedEvent) Type() EventType { return EventSelectionSaved }

// SelectionSaveFailedEvent is emitted when writing a revision failed
type SelectionSaveFailedEvent struct {
	Revision uint64
	Err      error
}

func (e SelectionSaveFailedEvent) Type() EventType { return EventSelectionSaveFailed }

// SelectionPersistedEvent is emitted server-side after the selection file was replaced
type SelectionPersistedEvent struct {
	Count int
}

func (e SelectionPersistedEvent) Type() EventType { return EventSelectionPersisted }

// ErrorEvent is emitted when an error occurs
type ErrorEvent struct {
	Message string
	Err     error
}

func (e ErrorEvent) Type() EventType { return EventError }
