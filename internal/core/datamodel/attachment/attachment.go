package attachment

import "time"

// Attachment is the database half of a two-part resource; the other half
// is the stored file named StoredFilename under the upload directory.
// Row and file are created and destroyed together, file first on delete.
type Attachment struct {
	ID               int64     `json:"id" gorm:"primaryKey"`
	TaskID           string    `json:"task_id" gorm:"index:idx_attachments_task;not null"`
	ProjectID        int64     `json:"project_id" gorm:"index:idx_attachments_task;index;not null"`
	StoredFilename   string    `json:"-" gorm:"not null"`
	OriginalFilename string    `json:"original_filename" gorm:"not null"`
	Size             int64     `json:"size"`
	MimeType         string    `json:"mime_type"`
	UploadedBy       string    `json:"uploaded_by"`
	UploadedAt       time.Time `json:"uploaded_at"`
}

func (Attachment) TableName() string {
	return "task_attachments"
}
