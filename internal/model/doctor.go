package model

// Doctor performs examinations and issues prescriptions. A doctor cannot be
// deleted while any examination or prescription references it.
type Doctor struct {
	Base
	FirstName      string `db:"first_name" json:"first_name"`
	LastName       string `db:"last_name" json:"last_name"`
	Specialization string `db:"specialization" json:"specialization"`

	Examinations  []*Examination  `db:"-" json:"examinations,omitempty"`
	Prescriptions []*Prescription `db:"-" json:"prescriptions,omitempty"`
}

type CreateDoctorRequest struct {
	FirstName      string `json:"first_name" binding:"required"`
	LastName       string `json:"last_name" binding:"required"`
	Specialization string `json:"specialization" binding:"required"`
}

type UpdateDoctorRequest struct {
	FirstName      string `json:"first_name" binding:"required"`
	LastName       string `json:"last_name" binding:"required"`
	Specialization string `json:"specialization" binding:"required"`
	Version        int64  `json:"version"`
}
