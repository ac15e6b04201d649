package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stellaracademy/academy-be/internal/models"
	"github.com/stellaracademy/academy-be/internal/storage"
)

// Ensure Store satisfies the storage interfaces at compile time.
var _ storage.Store = (*Store)(nil)

const uniqueViolation = "23505"

// Store provides Postgres-backed persistence for users, profiles, and courses.
type Store struct {
	pool *pgxpool.Pool
}

// New creates a Store and runs migrations.
func New(ctx context.Context, databaseURL string) (*Store, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	s := &Store{pool: pool}
	if err := s.migrate(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return s, nil
}

// Close releases database resources.
func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

func (s *Store) migrate(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id TEXT PRIMARY KEY,
			username TEXT NOT NULL,
			email TEXT NOT NULL,
			role TEXT NOT NULL DEFAULT 'student',
			password_hash TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);`,
		`CREATE UNIQUE INDEX IF NOT EXISTS users_email_unique_idx ON users (email);`,
		`CREATE TABLE IF NOT EXISTS profiles (
			user_id TEXT PRIMARY KEY REFERENCES users(id),
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);`,
		`CREATE TABLE IF NOT EXISTS courses (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			instructor TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);`,
		`CREATE TABLE IF NOT EXISTS enrollments (
			user_id TEXT NOT NULL REFERENCES profiles(user_id),
			course_id TEXT NOT NULL REFERENCES courses(id),
			enrolled_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			PRIMARY KEY (user_id, course_id)
		);`,
		`INSERT INTO courses (id, title, description, instructor) VALUES
			('c1a6d9e2-0b6f-4f8e-9d35-5b2f8a3d1e01', 'Introduction to Astronomy', 'Stars, planets, and the tools we use to observe them.', 'Dr. Vega'),
			('c2b7eaf3-1c70-4a9f-8e46-6c3f9b4e2f02', 'Orbital Mechanics', 'Two-body motion, transfer orbits, and mission planning basics.', 'Prof. Oberth'),
			('c3c8fb04-2d81-4b10-9f57-7d4f0c5f3a03', 'Astrophotography', 'Capturing the night sky with consumer hardware.', 'K. Horikawa')
			ON CONFLICT (id) DO NOTHING;`,
	}
	for _, stmt := range stmts {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("apply migrations: %w", err)
		}
	}
	return nil
}

// CreateUser inserts a new identity row. The unique email index turns a
// concurrent duplicate registration into ErrAlreadyExists instead of a
// second row.
func (s *Store) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	const query = `
		INSERT INTO users (id, username, email, role, password_hash)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, username, email, role, password_hash, created_at;
	`
	row := s.pool.QueryRow(ctx, query, user.ID, user.Username, user.Email, user.Role, user.PasswordHash)
	created, err := scanUser(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return models.User{}, storage.ErrAlreadyExists
		}
		return models.User{}, err
	}
	return created, nil
}

// FindByEmail fetches a user by email address.
func (s *Store) FindByEmail(ctx context.Context, email string) (models.User, error) {
	const query = `
		SELECT id, username, email, role, password_hash, created_at
		FROM users
		WHERE email = $1;
	`
	return scanUser(s.pool.QueryRow(ctx, query, email))
}

// CreateEmptyProfile inserts a profile row with no enrollments for the user.
func (s *Store) CreateEmptyProfile(ctx context.Context, userID string) error {
	const query = `INSERT INTO profiles (user_id) VALUES ($1);`
	if _, err := s.pool.Exec(ctx, query, userID); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return storage.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// FindProfileByUser returns the user's profile with username/email joined in
// and enrollments ordered newest first.
func (s *Store) FindProfileByUser(ctx context.Context, userID string) (models.Profile, error) {
	const profileQuery = `
		SELECT p.user_id, u.username, u.email, p.created_at
		FROM profiles p
		JOIN users u ON u.id = p.user_id
		WHERE p.user_id = $1;
	`
	var profile models.Profile
	err := s.pool.QueryRow(ctx, profileQuery, userID).
		Scan(&profile.UserID, &profile.Username, &profile.Email, &profile.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Profile{}, storage.ErrNotFound
		}
		return models.Profile{}, err
	}

	const enrollQuery = `
		SELECT course_id, enrolled_at
		FROM enrollments
		WHERE user_id = $1
		ORDER BY enrolled_at DESC;
	`
	rows, err := s.pool.Query(ctx, enrollQuery, userID)
	if err != nil {
		return models.Profile{}, err
	}
	defer rows.Close()

	profile.EnrolledCourses = []models.Enrollment{}
	for rows.Next() {
		var e models.Enrollment
		if err := rows.Scan(&e.CourseID, &e.EnrolledAt); err != nil {
			return models.Profile{}, err
		}
		profile.EnrolledCourses = append(profile.EnrolledCourses, e)
	}
	if err := rows.Err(); err != nil {
		return models.Profile{}, err
	}
	return profile, nil
}

// AddEnrollment records an enrollment and returns the updated profile.
// A repeated (user, course) pair is ErrAlreadyExists.
func (s *Store) AddEnrollment(ctx context.Context, userID, courseID string) (models.Profile, error) {
	const query = `INSERT INTO enrollments (user_id, course_id) VALUES ($1, $2);`
	if _, err := s.pool.Exec(ctx, query, userID, courseID); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return models.Profile{}, storage.ErrAlreadyExists
		}
		return models.Profile{}, err
	}
	return s.FindProfileByUser(ctx, userID)
}

// ListCourses returns the full catalog, oldest first.
func (s *Store) ListCourses(ctx context.Context) ([]models.Course, error) {
	const query = `
		SELECT id, title, description, instructor, created_at
		FROM courses
		ORDER BY created_at;
	`
	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	courses := []models.Course{}
	for rows.Next() {
		var c models.Course
		if err := rows.Scan(&c.ID, &c.Title, &c.Description, &c.Instructor, &c.CreatedAt); err != nil {
			return nil, err
		}
		courses = append(courses, c)
	}
	return courses, rows.Err()
}

// FindCourse fetches a single course by id.
func (s *Store) FindCourse(ctx context.Context, courseID string) (models.Course, error) {
	const query = `
		SELECT id, title, description, instructor, created_at
		FROM courses
		WHERE id = $1;
	`
	var c models.Course
	err := s.pool.QueryRow(ctx, query, courseID).
		Scan(&c.ID, &c.Title, &c.Description, &c.Instructor, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Course{}, storage.ErrNotFound
		}
		return models.Course{}, err
	}
	return c, nil
}

func scanUser(row pgx.Row) (models.User, error) {
	var user models.User
	if err := row.Scan(&user.ID, &user.Username, &user.Email, &user.Role, &user.PasswordHash, &user.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.User{}, storage.ErrNotFound
		}
		return models.User{}, err
	}
	return user, nil
}
