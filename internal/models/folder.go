package models

import (
	"time"
)

// Folder is a tree node inside a project. ParentID is nil only for root
// folders; the parent reference is a lookup key, never an ownership pointer,
// so the tree cannot form cycles of live references.
type Folder struct {
	ID        string    `json:"id" db:"id"`
	ProjectID string    `json:"project_id" db:"project_id"`
	ParentID  *string   `json:"parent_id" db:"parent_id"` // NULL = root level
	Name      string    `json:"name" db:"name"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
