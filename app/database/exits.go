package database

import (
	"database/sql"
	"time"

	"school-gate/app/models"
)

// timeFormat is the DATETIME layout stored in SQLite. Values are written in
// server-local time so date() truncation matches the local calendar day.
const timeFormat = "2006-01-02 15:04:05"

// CreateExitPermit inserts a PENDING permit for an existing student. Nothing
// prevents several pending permits for the same student; the guard clears
// them independently.
func CreateExitPermit(db *sql.DB, studentID int64, reason, authorizer string) (int64, error) {
	var exists bool
	err := db.QueryRow("SELECT EXISTS(SELECT 1 FROM students WHERE id = ?)", studentID).Scan(&exists)
	if err != nil {
		return 0, err
	}
	if !exists {
		return 0, models.ErrNotFound
	}

	query := `INSERT INTO student_exits (student_id, reason, authorizer, status, request_time)
		  VALUES (?, ?, ?, 'PENDING', ?)`
	result, err := db.Exec(query, studentID, reason, authorizer, time.Now().Format(timeFormat))
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}

// GetExitPermits returns permits in the given status joined with their
// students, most recent request first. The guard page polls this.
func GetExitPermits(db *sql.DB, status string) ([]*models.ExitPermitView, error) {
	query := `
		SELECT e.id, e.student_id, e.reason, e.authorizer, e.status, e.request_time, e.exit_time,
		       s.name, s.grade, s.class_name
		FROM student_exits e
		JOIN students s ON s.id = e.student_id
		WHERE e.status = ?
		ORDER BY e.request_time DESC, e.id DESC`

	rows, err := db.Query(query, status)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var permits []*models.ExitPermitView
	for rows.Next() {
		var p models.ExitPermitView
		var exitTime sql.NullTime
		if err := rows.Scan(
			&p.ID, &p.StudentID, &p.Reason, &p.Authorizer, &p.Status, &p.RequestTime, &exitTime,
			&p.StudentName, &p.Grade, &p.ClassName,
		); err != nil {
			return nil, err
		}
		if exitTime.Valid {
			p.ExitTime = &exitTime.Time
		}
		permits = append(permits, &p)
	}
	return permits, rows.Err()
}

// ConfirmExit stamps a pending permit as EXITED. The update is conditioned
// on the current status so two guards racing on the same permit cannot both
// succeed and a second confirm cannot re-stamp exit_time. Zero rows affected
// means the permit is gone or already confirmed.
func ConfirmExit(db *sql.DB, permitID int64) error {
	result, err := db.Exec(
		`UPDATE student_exits SET status = 'EXITED', exit_time = ?
		 WHERE id = ? AND status = 'PENDING'`,
		time.Now().Format(timeFormat), permitID,
	)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return models.ErrNotFound
	}
	return nil
}

// GetExitReport lists the EXITED permits whose exit_time falls on the given
// local calendar day (YYYY-MM-DD), most recent exit first. cumulative_count
// is the student's all-time EXITED total, computed in the same query; the
// value matches counting per student across all dates.
func GetExitReport(db *sql.DB, date string) ([]*models.ExitReportRow, error) {
	query := `
		SELECT e.id, e.student_id, e.reason, e.authorizer, e.status, e.request_time, e.exit_time,
		       s.name, s.grade, s.class_name, s.id_number,
		       (SELECT COUNT(*) FROM student_exits e2
			WHERE e2.student_id = e.student_id AND e2.status = 'EXITED') AS cumulative_count
		FROM student_exits e
		JOIN students s ON s.id = e.student_id
		WHERE e.status = 'EXITED' AND date(e.exit_time) = ?
		ORDER BY e.exit_time DESC, e.id DESC`

	rows, err := db.Query(query, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var report []*models.ExitReportRow
	for rows.Next() {
		var r models.ExitReportRow
		var exitTime sql.NullTime
		if err := rows.Scan(
			&r.ID, &r.StudentID, &r.Reason, &r.Authorizer, &r.Status, &r.RequestTime, &exitTime,
			&r.StudentName, &r.Grade, &r.ClassName, &r.IDNumber, &r.CumulativeCount,
		); err != nil {
			return nil, err
		}
		if exitTime.Valid {
			r.ExitTime = &exitTime.Time
		}
		report = append(report, &r)
	}
	return report, rows.Err()
}
