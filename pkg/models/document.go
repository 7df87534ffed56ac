package models

import (
	"time"
)

// Document is an uploaded data-room or standalone startup document. The
// generator mines name/description/content for industry keywords.
type Document struct {
	ID          string    `json:"id" db:"id"`
	StartupID   string    `json:"startup_id" db:"startup_id"`
	Source      string    `json:"source" db:"source"` // deal_room or startup
	Name        string    `json:"name" db:"name"`
	Description *string   `json:"description,omitempty" db:"description"`
	Content     *string   `json:"content,omitempty" db:"content"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

// Document sources
const (
	DocumentSourceDealRoom = "deal_room"
	DocumentSourceStartup  = "startup"
)

// CreateDocumentRequest is the request to record a document's text fields
type CreateDocumentRequest struct {
	Source      string  `json:"source,omitempty" validate:"omitempty,oneof=deal_room startup"`
	Name        string  `json:"name" validate:"required"`
	Description *string `json:"description,omitempty"`
	Content     *string `json:"content,omitempty"`
}
