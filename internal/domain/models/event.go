package models

const (
	EventTypeCreated = "created"
)

// Event is an outbox record waiting to be published
type Event struct {
	Id      string
	Type    string
	Payload string
}
