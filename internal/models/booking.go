package models

import "time"

type Booking struct {
	ID string `gorm:"primaryKey;size:36" json:"id"`

	PatientID string  `gorm:"size:36;index;not null" json:"patient_id"`
	Patient   Account `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"patient"`

	DoctorID string  `gorm:"size:36;index;not null" json:"doctor_id"`
	Doctor   Account `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"doctor"`

	ScheduledAt time.Time `gorm:"index;not null" json:"scheduled_at"`

	Status string `gorm:"size:20;default:'pending'" json:"status"`

	Reason string `gorm:"type:text" json:"reason"`
	Notes  string `gorm:"type:text" json:"notes"`

	// Version guards against concurrent stale writes; every successful
	// update increments it.
	Version int64 `gorm:"not null;default:1" json:"version"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
