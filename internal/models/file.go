package models

import "time"

// StoredFile describes one object in a user's storage bucket.
type StoredFile struct {
	Name         string    `json:"name"`
	Size         int64     `json:"size"`
	ContentType  string    `json:"content_type,omitempty"`
	LastModified time.Time `json:"last_modified"`
}
