package models

import "time"

// CertificationApplication represents a farmer's GACP certification
// application as stored in the database. Status holds the lifecycle wire
// string and is only ever changed through the workflow engine.
type CertificationApplication struct {
	ID                int64      `json:"id"`
	ApplicationNumber string     `json:"application_number"`
	FarmerID          string     `json:"farmer_id"`
	FarmName          string     `json:"farm_name"`
	Province          string     `json:"province,omitempty"`
	Status            string     `json:"status"`
	ExpiresAt         *time.Time `json:"expires_at,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

// ApplicationDocument is an uploaded supporting document attached to an
// application.
type ApplicationDocument struct {
	ID            int64     `json:"id"`
	ApplicationID int64     `json:"application_id"`
	Type          string    `json:"type"` // farm_license, land_deed, farmer_id, farm_photos
	FileName      string    `json:"file_name"`
	FilePath      string    `json:"file_path,omitempty"`
	Verified      bool      `json:"verified"`
	UploadedAt    time.Time `json:"uploaded_at"`
}
