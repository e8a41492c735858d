// Package queue defines message payloads exchanged over the message broker
// together with the publisher and consumer that move them.
package queue

// ContactQueueName is the durable queue carrying ContactReceivedEvent.
const ContactQueueName = "contact.received"

// ContactReceivedEvent is published after a contact form submission is
// stored. It carries enough for a notifier to act without querying the
// database.
type ContactReceivedEvent struct {
	MessageID  uint64 `json:"message_id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Subject    string `json:"subject"`
	Preview    string `json:"preview"`
	ReceivedAt string `json:"received_at"`
}
