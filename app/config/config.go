package config

import (
	"database/sql"
	"log"
	"os"

	"github.com/joho/godotenv"
	_ "github.com/mattn/go-sqlite3"
)

type Config struct {
	DB        *sql.DB
	Port      string
	DBPath    string
	JWTSecret []byte
}

var AppConfig *Config

// Load reads .env (if present) and the environment, opens the SQLite file
// and constructs the global AppConfig. Called once from main before any
// request is served; nothing initializes lazily.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment defaults")
	}

	cfg := &Config{
		Port:      getEnv("PORT", "3000"),
		DBPath:    getEnv("DB_PATH", "school.db"),
		JWTSecret: []byte(getEnv("JWT_SECRET", "school-gate-secret-change-in-prod")),
	}

	db, err := OpenDB(cfg.DBPath)
	if err != nil {
		log.Fatal("Failed to open database: ", err)
	}
	cfg.DB = db

	AppConfig = cfg
	log.Printf("Database opened at %s", cfg.DBPath)
	return cfg
}

// OpenDB opens a SQLite database with WAL journaling and a busy timeout so
// concurrent request handlers queue on the write lock instead of failing.
func OpenDB(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on&_loc=Local")
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		return nil, err
	}
	return db, nil
}

func GetDB() *sql.DB {
	return AppConfig.DB
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}
