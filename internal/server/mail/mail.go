// Package mail sends transactional email for password resets and address
// verification.
package mail

import "context"

// Message is one outbound email.
type Message struct {
	To      string
	Subject string
	Body    string
}

// Sender delivers messages. Implementations must not block past ctx.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}
