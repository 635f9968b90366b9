package domain

import "time"

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventActionDispatched EventType = "ActionDispatched"
	EventSearchRequested  EventType = "SearchRequested"
	EventSearchCompleted  EventType = "SearchCompleted"
	EventSearchFailed     EventType = "SearchFailed"
	EventSearchCanceled   EventType = "SearchCanceled"
	EventConfigLoaded     EventType = "ConfigLoaded"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// ActionDispatchedEvent is emitted for every action the store reduces
type ActionDispatchedEvent struct {
	Action string // action type tag
	Detail string // formatted payload
}

func (e ActionDispatchedEvent) Type() EventType { return EventActionDispatched }

// SearchRequestedEvent is emitted when a repository search goes out
type SearchRequestedEvent struct {
	Query string
}

func (e SearchRequestedEvent) Type() EventType { return EventSearchRequested }

// SearchCompletedEvent is emitted when a repository search returns results
type SearchCompletedEvent struct {
	Query    string
	Count    int
	Duration time.Duration
}

func (e SearchCompletedEvent) Type() EventType { return EventSearchCompleted }

// SearchFailedEvent is emitted when a repository search returns an error
type SearchFailedEvent struct {
	Query string
	Err   error
}

func (e SearchFailedEvent) Type() EventType { return EventSearchFailed }

// SearchCanceledEvent is emitted when a newer search supersedes an in-flight one
type SearchCanceledEvent struct {
	Query string
}

func (e SearchCanceledEvent) Type() EventType { return EventSearchCanceled }

// ConfigLoadedEvent is emitted once configuration has been resolved
type ConfigLoadedEvent struct {
	Source string // config file path, "" when running on defaults
	APIURL string
}

func (e ConfigLoadedEvent) Type() EventType { return EventConfigLoaded }
