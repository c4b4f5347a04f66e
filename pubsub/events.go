package pubsub

import "context"

const (
	// StartedEvent marks the beginning of a unit of work.
	StartedEvent EventType = "started"
	// ProgressEvent carries an intermediate progress update.
	ProgressEvent EventType = "progress"
	// FinishedEvent marks successful completion.
	FinishedEvent EventType = "finished"
	// FailedEvent marks an aborted unit of work.
	FailedEvent EventType = "failed"
)

type (
	// EventType identifies the kind of event.
	EventType string

	// Event is one occurrence delivered to subscribers.
	Event[T any] struct {
		Type    EventType
		Payload T
	}

	// Publisher is the sending side of a broker.
	Publisher[T any] interface {
		Publish(EventType, T)
	}

	// Subscriber is the receiving side of a broker.
	Subscriber[T any] interface {
		Subscribe(context.Context) <-chan Event[T]
	}
)
