package database

import (
	"database/sql"
	"log"

	"golang.org/x/crypto/bcrypt"
)

// RunMigrations creates the schema and seeds default settings. Every
// statement is idempotent so this runs unconditionally at startup.
func RunMigrations(db *sql.DB) error {
	log.Println("Running database migrations...")

	schema := `
	CREATE TABLE IF NOT EXISTS students (
		id            INTEGER PRIMARY KEY AUTOINCREMENT,
		name          TEXT NOT NULL,
		grade         TEXT NOT NULL,
		class_name    TEXT NOT NULL,
		id_number     TEXT NOT NULL UNIQUE,
		mobile_number TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS student_exits (
		id           INTEGER PRIMARY KEY AUTOINCREMENT,
		student_id   INTEGER NOT NULL,
		reason       TEXT NOT NULL,
		authorizer   TEXT NOT NULL,
		status       TEXT NOT NULL DEFAULT 'PENDING',
		request_time DATETIME DEFAULT CURRENT_TIMESTAMP,
		exit_time    DATETIME,
		FOREIGN KEY(student_id) REFERENCES students(id)
	);

	CREATE TABLE IF NOT EXISTS otp_codes (
		mobile_number TEXT PRIMARY KEY,
		code          TEXT NOT NULL,
		expires_at    DATETIME NOT NULL
	);

	CREATE TABLE IF NOT EXISTS visitors (
		id            INTEGER PRIMARY KEY AUTOINCREMENT,
		name          TEXT NOT NULL,
		id_number     TEXT NOT NULL,
		mobile_number TEXT NOT NULL,
		visit_date    TEXT NOT NULL,
		visit_time    TEXT NOT NULL,
		purpose       TEXT NOT NULL,
		signature     TEXT,
		created_at    DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS settings (
		key   TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_exits_status ON student_exits(status);
	CREATE INDEX IF NOT EXISTS idx_exits_student ON student_exits(student_id);
	CREATE INDEX IF NOT EXISTS idx_visitors_date ON visitors(visit_date);
	`
	if _, err := db.Exec(schema); err != nil {
		log.Printf("Failed to create schema: %v", err)
		return err
	}

	if err := seedDefaultSettings(db); err != nil {
		return err
	}

	log.Println("Database migrations completed successfully")
	return nil
}

func seedDefaultSettings(db *sql.DB) error {
	defaults := map[string]string{
		"school_country":     "المملكة العربية السعودية",
		"school_ministry":    "وزارة التعليم",
		"school_directorate": "الإدارة العامة للتعليم بمحافظة جدة",
		"school_name":        "مدرسة الأجاويد الأولى المتوسطة",
		"enable_otp":         "true",
	}

	checkStmt, err := db.Prepare("SELECT value FROM settings WHERE key = ?")
	if err != nil {
		return err
	}
	defer checkStmt.Close()

	insertStmt, err := db.Prepare("INSERT INTO settings (key, value) VALUES (?, ?)")
	if err != nil {
		return err
	}
	defer insertStmt.Close()

	for key, value := range defaults {
		var existing string
		err := checkStmt.QueryRow(key).Scan(&existing)
		if err == sql.ErrNoRows {
			if _, err := insertStmt.Exec(key, value); err != nil {
				return err
			}
			continue
		}
		if err != nil {
			return err
		}
	}

	// The default credential is hashed only when absent; cost 14 is too
	// slow to run on every startup.
	var existing string
	err = checkStmt.QueryRow("admin_password").Scan(&existing)
	if err == sql.ErrNoRows {
		adminHash, err := bcrypt.GenerateFromPassword([]byte("1245"), 14)
		if err != nil {
			return err
		}
		_, err = insertStmt.Exec("admin_password", string(adminHash))
		return err
	}
	return err
}
