package models

// Student is one roster row. Records are created by import or manual entry
// and are never deleted by the workflow.
type Student struct {
	ID           int64  `json:"id"`
	Name         string `json:"name" validate:"required"`
	Grade        string `json:"grade"`
	ClassName    string `json:"class_name"`
	IDNumber     string `json:"id_number" validate:"required"`
	MobileNumber string `json:"mobile_number"`
}

// StudentFilters narrows roster searches. Empty fields are ignored; the UI
// uses exact values picked from cascading dropdowns, so matching is exact.
type StudentFilters struct {
	Name         string `json:"name"`
	Grade        string `json:"grade"`
	ClassName    string `json:"class_name"`
	IDNumber     string `json:"id_number"`
	MobileNumber string `json:"mobile_number"`
}

// ImportResult reports the outcome of a bulk roster import.
type ImportResult struct {
	Inserted int `json:"inserted"`
	Skipped  int `json:"skipped"`
}
