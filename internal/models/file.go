package models

import (
	"time"
)

// File is a leaf container under a folder, holding sections and images.
type File struct {
	ID        string    `json:"id" db:"id"`
	FolderID  string    `json:"folder_id" db:"folder_id"`
	Name      string    `json:"name" db:"name"`
	SubName   string    `json:"sub_name" db:"sub_name"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// Section is an ordered text block belonging to a file. Position is dense
// within a file but not required to start at any particular value.
type Section struct {
	ID        string    `json:"id" db:"id"`
	FileID    string    `json:"file_id" db:"file_id"`
	Position  int       `json:"position" db:"position"`
	Body      string    `json:"body" db:"body"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// Image references an externally hosted media asset. The binary bytes never
// pass through this system; only the host's public id and delivery URL are
// stored.
type Image struct {
	ID        string    `json:"id" db:"id"`
	FileID    string    `json:"file_id" db:"file_id"`
	PublicID  string    `json:"public_id" db:"public_id"`
	URL       string    `json:"url" db:"url"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
