package model

import "time"

// Operator is a site staff account allowed to read contact submissions.
type Operator struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
}
