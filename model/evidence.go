// model/evidence.go
package model

import (
	"time"
)

type FileType string

const (
	FileImage    FileType = "image"
	FileLog      FileType = "log"
	FileDocument FileType = "document"
	FileData     FileType = "data"
	FileVideo    FileType = "video"
	FileOther    FileType = "other"
)

// EvidenceFile references an uploaded evidence blob. The service only tracks
// metadata; file bytes live in the external blob store and are addressed by
// StorageURL.
type EvidenceFile struct {
	ID           string    `json:"id"`
	AssessmentID string    `json:"assessment_id" binding:"required"`
	FileName     string    `json:"file_name" binding:"required"`
	FileType     FileType  `json:"file_type"`
	FileSize     int64     `json:"file_size"`
	MimeType     string    `json:"mime_type"`
	Description  string    `json:"description,omitempty"`
	UploadedAt   time.Time `json:"uploaded_at"`
	UploadedBy   string    `json:"uploaded_by"`
	StorageURL   string    `json:"storage_url"`
	ThumbnailURL string    `json:"thumbnail_url,omitempty"`
	Checksum     string    `json:"checksum"`
	Tags         []string  `json:"tags"`
}
