package models

import "time"

// Visitor is one kiosk check-in. Rows are append-only.
type Visitor struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name" validate:"required"`
	IDNumber     string    `json:"id_number" validate:"required"`
	MobileNumber string    `json:"mobile_number" validate:"required"`
	VisitDate    string    `json:"visit_date"`
	VisitTime    string    `json:"visit_time"`
	Purpose      string    `json:"purpose" validate:"required"`
	Signature    string    `json:"signature"` // base64 data URL from the kiosk pad
	CreatedAt    time.Time `json:"created_at"`
}
