package model

import (
	"time"
)

// MedicalImage is the metadata row for an uploaded image. FileName is the
// generated blob name, never user supplied; the bytes live in the blob store.
type MedicalImage struct {
	Base
	ExaminationID  int64     `db:"examination_id" json:"examination_id"`
	FileName       string    `db:"file_name" json:"file_name"`
	FileType       string    `db:"file_type" json:"file_type"`
	UploadDateTime time.Time `db:"upload_datetime" json:"upload_date_time"`

	Examination *Examination `db:"-" json:"examination,omitempty"`
}
