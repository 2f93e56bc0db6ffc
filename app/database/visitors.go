package database

import (
	"database/sql"
	"time"

	"school-gate/app/models"
)

// CreateVisitor appends one kiosk check-in, stamped with the server-local
// date and time. Rows are never updated or deleted.
func CreateVisitor(db *sql.DB, v *models.Visitor) error {
	now := time.Now()
	v.VisitDate = now.Format("2006-01-02")
	v.VisitTime = now.Format("15:04:05")

	query := `INSERT INTO visitors (name, id_number, mobile_number, visit_date, visit_time, purpose, signature)
		  VALUES (?, ?, ?, ?, ?, ?, ?)`
	result, err := db.Exec(query, v.Name, v.IDNumber, v.MobileNumber, v.VisitDate, v.VisitTime, v.Purpose, v.Signature)
	if err != nil {
		return err
	}
	v.ID, err = result.LastInsertId()
	return err
}

// GetVisitorsByDate lists check-ins for one date (YYYY-MM-DD), newest first.
func GetVisitorsByDate(db *sql.DB, date string) ([]*models.Visitor, error) {
	query := `SELECT id, name, id_number, mobile_number, visit_date, visit_time, purpose, signature, created_at
		  FROM visitors WHERE visit_date = ? ORDER BY id DESC`

	rows, err := db.Query(query, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var visitors []*models.Visitor
	for rows.Next() {
		var v models.Visitor
		var signature sql.NullString
		if err := rows.Scan(
			&v.ID, &v.Name, &v.IDNumber, &v.MobileNumber,
			&v.VisitDate, &v.VisitTime, &v.Purpose, &signature, &v.CreatedAt,
		); err != nil {
			return nil, err
		}
		v.Signature = signature.String
		visitors = append(visitors, &v)
	}
	return visitors, rows.Err()
}
