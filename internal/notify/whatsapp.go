// Package notify holds the outbound lead channels: the WhatsApp deep link
// builder and the spreadsheet webhook client. Both are fire-and-forget from
// the caller's perspective — no retries, no backoff.
package notify

import (
	"net/url"

	"github.com/tripveda/tripveda-api/internal/domain"
)

// WhatsAppLink builds a wa.me deep link that opens a chat with the agency
// number, pre-filled with the lead's details. The message template matches
// the lead popup: greeting, then one labeled line per field, with the
// package title as the destination of interest when present.
func WhatsAppLink(number string, lead domain.Lead) string {
	msg := "Hello,\nName: " + lead.Name +
		"\nPhone: " + lead.Phone
	if lead.PackageTitle != "" {
		msg += "\nDestination: " + lead.PackageTitle
	}
	if lead.Message != "" {
		msg += "\nMessage: " + lead.Message
	}
	return "https://wa.me/" + number + "?text=" + url.QueryEscape(msg)
}
