package domain

import (
	"time"

	"github.com/google/uuid"
)

// Lead is a prospective customer's query about a package.
// It is persisted to the leads table and best-effort forwarded to the
// spreadsheet webhook; the WhatsApp deep link is derived from it.
type Lead struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone"`
	Message      string    `json:"message"`
	PackageSlug  string    `json:"package_slug,omitempty"`
	PackageTitle string    `json:"package_title,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// Subscription is a newsletter signup. Identity is the email address:
// subscribing twice with the same email is a no-op.
type Subscription struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}
