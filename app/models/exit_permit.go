package models

import "time"

// Exit permit lifecycle: PENDING on creation, EXITED once the guard confirms.
// There is no cancel or reject state.
const (
	ExitStatusPending = "PENDING"
	ExitStatusExited  = "EXITED"
)

// ExitPermit authorizes one early departure for one student. exit_time is
// null exactly while the permit is PENDING.
type ExitPermit struct {
	ID          int64      `json:"id"`
	StudentID   int64      `json:"student_id" validate:"required"`
	Reason      string     `json:"reason" validate:"required"`
	Authorizer  string     `json:"authorizer" validate:"required"`
	Status      string     `json:"status"`
	RequestTime time.Time  `json:"request_time"`
	ExitTime    *time.Time `json:"exit_time,omitempty"`
}

// ExitPermitView is a permit joined with its student, as shown on the guard
// queue and the admin pages.
type ExitPermitView struct {
	ExitPermit
	StudentName string `json:"student_name"`
	Grade       string `json:"grade"`
	ClassName   string `json:"class_name"`
}

// ExitReportRow is one line of the daily exit report. CumulativeCount is the
// student's all-time EXITED total, not the count for the report date.
type ExitReportRow struct {
	ExitPermitView
	IDNumber        string `json:"id_number"`
	CumulativeCount int    `json:"cumulative_count"`
}
