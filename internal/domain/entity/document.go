package entity

import "time"

// Document stores metadata about an uploaded document. The file itself lives
// in object storage; FileURL points at it.
type Document struct {
	ID          int64
	Title       string
	Category    string
	Description string
	FileURL     string
	FileSize    int64 // bytes
	UploadedBy  int64
	CreatedAt   time.Time
}
