package notify

import (
	"context"

	"cyber-oasis/internal/models"
)

const (
	EventRegistrationConfirmation = "registration.confirmation"
	EventRegistrationOrganizer    = "registration.organizer"
	EventContactOrganizer         = "contact.organizer"
	EventContactAutoReply         = "contact.autoreply"
)

type Sink interface {
	Name() string

	// Notify delivers (or records) one notification. Callers log the error
	// and carry on; a failed notification never fails a submission.
	Notify(ctx context.Context, event string, n models.Notification) error
}
