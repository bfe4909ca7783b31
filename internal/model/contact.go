package model

import "time"

// ContactSubmission is one inquiry sent through the site's contact form.
type ContactSubmission struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Organization string    `json:"organization"`
	Email        string    `json:"email"`
	Phone        *string   `json:"phone"` // nil when the form left it blank
	Interest     string    `json:"interest"`
	Message      string    `json:"message"`
	Confidential bool      `json:"confidential"`
	SubmittedAt  time.Time `json:"submittedAt"`
}

// Clone returns a deep copy so callers cannot mutate stored records.
func (c *ContactSubmission) Clone() *ContactSubmission {
	cp := *c
	if c.Phone != nil {
		p := *c.Phone
		cp.Phone = &p
	}
	return &cp
}

// Interests lists the offering categories shown on the contact form.
// Intake accepts any non-empty interest; this list is only advertised.
var Interests = []string{
	"server",
	"rugged-computing",
	"networking",
	"storage",
	"custom-integration",
	"other",
}
