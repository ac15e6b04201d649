package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/stellaracademy/academy-be/internal/http/respond"
	"github.com/stellaracademy/academy-be/internal/middleware"
	"github.com/stellaracademy/academy-be/internal/storage"
)

// UsersHandler serves the caller's profile and enrollment actions. All of its
// routes sit behind the auth guard.
type UsersHandler struct {
	profiles storage.ProfileStore
	courses  storage.CourseStore
}

// NewUsersHandler constructs the handler.
func NewUsersHandler(profiles storage.ProfileStore, courses storage.CourseStore) *UsersHandler {
	return &UsersHandler{profiles: profiles, courses: courses}
}

// Register attaches the guarded profile routes to the mux.
func (h *UsersHandler) Register(mux *http.ServeMux, guard func(http.Handler) http.Handler) {
	mux.Handle("/api/users/me", guard(http.HandlerFunc(h.handleMe)))
	mux.Handle("/api/users/enroll/{course_id}", guard(http.HandlerFunc(h.handleEnroll)))
}

func (h *UsersHandler) handleMe(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		respond.Message(w, http.StatusUnauthorized, "No token, authorization denied")
		return
	}
	profile, err := h.profiles.FindProfileByUser(r.Context(), claims.Subject)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			respond.Message(w, http.StatusBadRequest, "There is no profile for this user")
			return
		}
		log.Printf("fetch profile error: %v", err)
		respond.Message(w, http.StatusInternalServerError, "Server Error")
		return
	}
	respond.JSON(w, http.StatusOK, profile)
}

func (h *UsersHandler) handleEnroll(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		respond.Message(w, http.StatusUnauthorized, "No token, authorization denied")
		return
	}
	courseID := r.PathValue("course_id")

	if _, err := h.courses.FindCourse(r.Context(), courseID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			respond.Message(w, http.StatusNotFound, "Course not found")
			return
		}
		log.Printf("fetch course error: %v", err)
		respond.Message(w, http.StatusInternalServerError, "Server Error")
		return
	}

	profile, err := h.profiles.AddEnrollment(r.Context(), claims.Subject, courseID)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrAlreadyExists):
			respond.Message(w, http.StatusBadRequest, "User already enrolled in this course")
		case errors.Is(err, storage.ErrNotFound):
			respond.Message(w, http.StatusBadRequest, "There is no profile for this user")
		default:
			log.Printf("enroll error: %v", err)
			respond.Message(w, http.StatusInternalServerError, "Server Error")
		}
		return
	}
	respond.JSON(w, http.StatusOK, profile)
}
