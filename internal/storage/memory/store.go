// Package memory provides an in-memory Store used by tests. It mirrors the
// Postgres store's semantics, including the unique-email conflict.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/stellaracademy/academy-be/internal/models"
	"github.com/stellaracademy/academy-be/internal/storage"
)

var _ storage.Store = (*Store)(nil)

// Store keeps all records in maps guarded by a single mutex.
type Store struct {
	mu          sync.Mutex
	users       map[string]models.User    // keyed by id
	profiles    map[string]models.Profile // keyed by user id
	courses     map[string]models.Course  // keyed by id
	courseOrder []string
}

// New returns an empty store.
func New() *Store {
	return &Store{
		users:    make(map[string]models.User),
		profiles: make(map[string]models.Profile),
		courses:  make(map[string]models.Course),
	}
}

// SeedCourse adds a course to the catalog.
func (s *Store) SeedCourse(course models.Course) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if course.CreatedAt.IsZero() {
		course.CreatedAt = time.Now()
	}
	if _, ok := s.courses[course.ID]; !ok {
		s.courseOrder = append(s.courseOrder, course.ID)
	}
	s.courses[course.ID] = course
}

func (s *Store) CreateUser(_ context.Context, user models.User) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.users {
		if existing.Email == user.Email {
			return models.User{}, storage.ErrAlreadyExists
		}
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}
	s.users[user.ID] = user
	return user, nil
}

func (s *Store) FindByEmail(_ context.Context, email string) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, user := range s.users {
		if user.Email == email {
			return user, nil
		}
	}
	return models.User{}, storage.ErrNotFound
}

func (s *Store) CreateEmptyProfile(_ context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.profiles[userID]; ok {
		return storage.ErrAlreadyExists
	}
	s.profiles[userID] = models.Profile{
		UserID:          userID,
		EnrolledCourses: []models.Enrollment{},
		CreatedAt:       time.Now(),
	}
	return nil
}

func (s *Store) FindProfileByUser(_ context.Context, userID string) (models.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.profileLocked(userID)
}

func (s *Store) AddEnrollment(_ context.Context, userID, courseID string) (models.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	profile, ok := s.profiles[userID]
	if !ok {
		return models.Profile{}, storage.ErrNotFound
	}
	for _, e := range profile.EnrolledCourses {
		if e.CourseID == courseID {
			return models.Profile{}, storage.ErrAlreadyExists
		}
	}
	entry := models.Enrollment{CourseID: courseID, EnrolledAt: time.Now()}
	profile.EnrolledCourses = append([]models.Enrollment{entry}, profile.EnrolledCourses...)
	s.profiles[userID] = profile
	return s.profileLocked(userID)
}

func (s *Store) ListCourses(_ context.Context) ([]models.Course, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	courses := make([]models.Course, 0, len(s.courseOrder))
	for _, id := range s.courseOrder {
		courses = append(courses, s.courses[id])
	}
	return courses, nil
}

func (s *Store) FindCourse(_ context.Context, courseID string) (models.Course, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	course, ok := s.courses[courseID]
	if !ok {
		return models.Course{}, storage.ErrNotFound
	}
	return course, nil
}

// UserCount reports how many identity records exist; used by tests.
func (s *Store) UserCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.users)
}

// ProfileCount reports how many profiles exist; used by tests.
func (s *Store) ProfileCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.profiles)
}

func (s *Store) profileLocked(userID string) (models.Profile, error) {
	profile, ok := s.profiles[userID]
	if !ok {
		return models.Profile{}, storage.ErrNotFound
	}
	if user, ok := s.users[userID]; ok {
		profile.Username = user.Username
		profile.Email = user.Email
	}
	enrolled := make([]models.Enrollment, len(profile.EnrolledCourses))
	copy(enrolled, profile.EnrolledCourses)
	profile.EnrolledCourses = enrolled
	return profile, nil
}
