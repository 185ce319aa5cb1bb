// Package queue defines message payloads exchanged over the message broker.
package queue

// RegistrationCreatedEvent is published after a registration is stored. It
// carries enough for downstream consumers to send the confirmation email
// without querying the primary database.
type RegistrationCreatedEvent struct {
	RegistrationID string `json:"registration_id"`
	Name           string `json:"name"`
	Email          string `json:"email"`
	TicketType     string `json:"ticket_type"`
	CreatedAt      string `json:"created_at"`
}

// QueueName is the durable queue both publisher and consumer declare.
const QueueName = "registration.created"
