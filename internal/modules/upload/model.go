package upload

import "github.com/google/uuid"

// File is a document or image stored with the hosting provider. Entities
// keep only its URL.
type File struct {
	ID       uuid.UUID `json:"id"`
	Filename string    `json:"filename"`
	URL      string    `json:"url"`
}
