package storage

import (
	"context"
	"errors"

	"github.com/stellaracademy/academy-be/internal/models"
)

// ErrNotFound indicates a record does not exist.
var ErrNotFound = errors.New("record not found")

// ErrAlreadyExists indicates a uniqueness conflict.
var ErrAlreadyExists = errors.New("record already exists")

// UserStore captures identity persistence needed by the auth service.
type UserStore interface {
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	FindByEmail(ctx context.Context, email string) (models.User, error)
}

// ProfileStore persists per-user profiles and their enrollments.
type ProfileStore interface {
	CreateEmptyProfile(ctx context.Context, userID string) error
	FindProfileByUser(ctx context.Context, userID string) (models.Profile, error)
	AddEnrollment(ctx context.Context, userID, courseID string) (models.Profile, error)
}

// CourseStore reads the course catalog.
type CourseStore interface {
	ListCourses(ctx context.Context) ([]models.Course, error)
	FindCourse(ctx context.Context, courseID string) (models.Course, error)
}

// Store aggregates the per-record interfaces; both the Postgres and the
// in-memory implementations satisfy it.
type Store interface {
	UserStore
	ProfileStore
	CourseStore
}
