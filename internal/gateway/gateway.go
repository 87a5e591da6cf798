// Package gateway abstracts the messaging platform. The bot core talks to
// a Sender and consumes Inbound events; the Telegram adapter is the only
// implementation the daemon wires in, and tests substitute an in-memory
// recorder.
package gateway

import "fmt"

// Sender delivers outbound messages by recipient ID.
type Sender interface {
	Send(recipient int64, text string) error
	// SendPhoto delivers a platform file reference with a caption.
	SendPhoto(recipient int64, caption, photoID string) error
}

// Inbound is one parsed command invocation from the platform.
type Inbound struct {
	Command   string
	Args      []string
	SenderID  int64
	Username  string
	FirstName string
	LastName  string
	// PhotoID is a platform file reference attached to the command
	// message, empty when none.
	PhotoID string
}

// DeliveryError wraps a platform send failure. Delivery is best effort;
// callers log these and keep going.
type DeliveryError struct {
	Recipient int64
	Err       error
}

func (e *DeliveryError) Error() string {
	return fmt.Sprintf("deliver to %d: %v", e.Recipient, e.Err)
}

func (e *DeliveryError) Unwrap() error { return e.Err }
