package database

import (
	"database/sql"

	"school-gate/app/models"
)

func GetAllStudents(db *sql.DB) ([]*models.Student, error) {
	rows, err := db.Query(`SELECT id, name, grade, class_name, id_number, mobile_number
			       FROM students ORDER BY grade, class_name, name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanStudents(rows)
}

func GetStudentByID(db *sql.DB, id int64) (*models.Student, error) {
	student := &models.Student{}
	query := `SELECT id, name, grade, class_name, id_number, mobile_number
		  FROM students WHERE id = ?`

	err := db.QueryRow(query, id).Scan(
		&student.ID, &student.Name, &student.Grade,
		&student.ClassName, &student.IDNumber, &student.MobileNumber,
	)
	if err != nil {
		return nil, err
	}
	return student, nil
}

func CreateStudent(db *sql.DB, s *models.Student) error {
	query := `INSERT INTO students (name, grade, class_name, id_number, mobile_number)
		  VALUES (?, ?, ?, ?, ?)`
	result, err := db.Exec(query, s.Name, s.Grade, s.ClassName, s.IDNumber, s.MobileNumber)
	if err != nil {
		return err
	}
	s.ID, err = result.LastInsertId()
	return err
}

// SearchStudents matches the non-empty filter fields exactly. The admin UI
// drives this with cascading dropdowns, so values are always whole fields.
func SearchStudents(db *sql.DB, f models.StudentFilters) ([]*models.Student, error) {
	query := `SELECT id, name, grade, class_name, id_number, mobile_number
		  FROM students WHERE 1=1`
	var args []interface{}

	if f.Name != "" {
		query += " AND name = ?"
		args = append(args, f.Name)
	}
	if f.Grade != "" {
		query += " AND grade = ?"
		args = append(args, f.Grade)
	}
	if f.ClassName != "" {
		query += " AND class_name = ?"
		args = append(args, f.ClassName)
	}
	if f.IDNumber != "" {
		query += " AND id_number = ?"
		args = append(args, f.IDNumber)
	}
	if f.MobileNumber != "" {
		query += " AND mobile_number = ?"
		args = append(args, f.MobileNumber)
	}
	query += " ORDER BY name"

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanStudents(rows)
}

// ImportStudents bulk-inserts roster rows in one transaction. Rows missing
// name or id_number are skipped, as are duplicates of an existing id_number.
func ImportStudents(db *sql.DB, students []*models.Student) (*models.ImportResult, error) {
	tx, err := db.Begin()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`INSERT OR IGNORE INTO students (name, grade, class_name, id_number, mobile_number)
				 VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return nil, err
	}
	defer stmt.Close()

	result := &models.ImportResult{}
	for _, s := range students {
		if s.Name == "" || s.IDNumber == "" {
			result.Skipped++
			continue
		}
		res, err := stmt.Exec(s.Name, s.Grade, s.ClassName, s.IDNumber, s.MobileNumber)
		if err != nil {
			return nil, err
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return nil, err
		}
		if affected == 0 {
			result.Skipped++
		} else {
			result.Inserted++
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return result, nil
}

func scanStudents(rows *sql.Rows) ([]*models.Student, error) {
	var students []*models.Student
	for rows.Next() {
		var s models.Student
		if err := rows.Scan(&s.ID, &s.Name, &s.Grade, &s.ClassName, &s.IDNumber, &s.MobileNumber); err != nil {
			return nil, err
		}
		students = append(students, &s)
	}
	return students, rows.Err()
}
