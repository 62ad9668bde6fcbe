package database

import (
	"database/sql"
	"fmt"
	"math/rand"
	"os"
	"strings"
	"time"

	_ "github.com/lib/pq"
)

func Connect() (*sql.DB, error) {
	host := getEnv("DB_HOST", "localhost")
	port := getEnv("DB_PORT", "5432")
	user := getEnv("DB_USER", "classmate_user")
	password := getEnv("DB_PASSWORD", "classmate_password")
	dbname := getEnv("DB_NAME", "classmate_ai")
	sslmode := getEnv("DB_SSLMODE", "disable")

	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		host, port, user, password, dbname, sslmode,
	)

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)

	return db, nil
}

func Migrate(db *sql.DB) error {
	query := `
	CREATE TABLE IF NOT EXISTS users (
		id BIGSERIAL PRIMARY KEY,
		email VARCHAR(255) UNIQUE NOT NULL,
		name VARCHAR(255) NOT NULL,
		username VARCHAR(50) UNIQUE NOT NULL,
		password VARCHAR(255) NOT NULL,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
		updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	);

	CREATE INDEX IF NOT EXISTS idx_users_email ON users(email);
	CREATE INDEX IF NOT EXISTS idx_users_username ON users(username);

	CREATE TABLE IF NOT EXISTS problems (
		id             BIGSERIAL PRIMARY KEY,
		subject        VARCHAR(20) NOT NULL CHECK (subject IN ('math', 'physics', 'programming')),
		title          VARCHAR(255) NOT NULL,
		statement      TEXT NOT NULL,
		difficulty     VARCHAR(10) NOT NULL CHECK (difficulty IN ('easy', 'medium', 'hard')),
		rating         INT NOT NULL,
		correct_answer TEXT,
		source         VARCHAR(10) NOT NULL DEFAULT 'manual' CHECK (source IN ('ai', 'manual')),
		created_by     BIGINT REFERENCES users(id) ON DELETE SET NULL,
		created_at     TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	);

	CREATE INDEX IF NOT EXISTS idx_problems_browse ON problems(subject, difficulty, created_at DESC);
	CREATE INDEX IF NOT EXISTS idx_problems_unanswered ON problems(id) WHERE correct_answer IS NULL;

	CREATE TABLE IF NOT EXISTS user_ratings (
		user_id            BIGINT PRIMARY KEY REFERENCES users(id) ON DELETE CASCADE,
		math_rating        INT NOT NULL DEFAULT 1200,
		physics_rating     INT NOT NULL DEFAULT 1200,
		programming_rating INT NOT NULL DEFAULT 1200,
		total_rating       INT NOT NULL DEFAULT 1200,
		streak_days        INT NOT NULL DEFAULT 0 CHECK (streak_days >= 0),
		solved_count       INT NOT NULL DEFAULT 0 CHECK (solved_count >= 0),
		last_solved_at     TIMESTAMP WITH TIME ZONE,
		version            BIGINT NOT NULL DEFAULT 0,
		created_at         TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
		updated_at         TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	);

	CREATE INDEX IF NOT EXISTS idx_ratings_leaderboard ON user_ratings(total_rating DESC);

	CREATE TABLE IF NOT EXISTS problem_attempts (
		id            BIGSERIAL PRIMARY KEY,
		user_id       BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		problem_id    BIGINT NOT NULL REFERENCES problems(id) ON DELETE CASCADE,
		subject       VARCHAR(20) NOT NULL,
		is_correct    BOOLEAN NOT NULL,
		user_answer   TEXT NOT NULL,
		rating_before INT NOT NULL,
		rating_after  INT NOT NULL,
		delta         INT NOT NULL,
		created_at    TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	);

	CREATE INDEX IF NOT EXISTS idx_attempts_user ON problem_attempts(user_id, created_at DESC);
	CREATE INDEX IF NOT EXISTS idx_attempts_user_subject ON problem_attempts(user_id, subject, created_at);
	CREATE INDEX IF NOT EXISTS idx_attempts_hard_solved ON problem_attempts(user_id) WHERE is_correct;

	CREATE TABLE IF NOT EXISTS user_recent_queries (
		id           BIGSERIAL PRIMARY KEY,
		user_id      BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		subject      VARCHAR(20) NOT NULL,
		problem_text TEXT NOT NULL,
		final_answer TEXT,
		created_at   TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	);

	CREATE INDEX IF NOT EXISTS idx_recent_queries_user ON user_recent_queries(user_id, created_at DESC);
	`

	_, err := db.Exec(query)
	if err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	// Idempotent ALTERs for databases created before these columns existed
	alterStatements := []string{
		`ALTER TABLE user_ratings ADD COLUMN IF NOT EXISTS version BIGINT NOT NULL DEFAULT 0`,
		`ALTER TABLE problems ADD COLUMN IF NOT EXISTS source VARCHAR(10) NOT NULL DEFAULT 'manual'`,
		`ALTER TABLE user_recent_queries ADD COLUMN IF NOT EXISTS final_answer TEXT`,
	}
	for _, stmt := range alterStatements {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("alter table failed: %w", err)
		}
	}

	return nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

// generateUsernameBase creates a lowercase alphanumeric base from a user's name.
func generateUsernameBase(name string) string {
	var result []byte
	for _, c := range strings.ToLower(name) {
		if (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9') {
			result = append(result, byte(c))
		}
	}
	if len(result) == 0 {
		return "user"
	}
	if len(result) > 12 {
		result = result[:12]
	}
	return string(result)
}

// rng is a seeded random source for username generation.
var rng = rand.New(rand.NewSource(time.Now().UnixNano()))

// GenerateUsername creates a username from a name by appending random digits.
// Caller should retry on a unique-constraint collision.
func GenerateUsername(name string) string {
	return fmt.Sprintf("%s%04d", generateUsernameBase(name), rng.Intn(10000))
}
