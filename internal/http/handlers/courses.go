package handlers

import (
	"log"
	"net/http"

	"github.com/stellaracademy/academy-be/internal/http/respond"
	"github.com/stellaracademy/academy-be/internal/storage"
)

// CoursesHandler serves the public course catalog.
type CoursesHandler struct {
	courses storage.CourseStore
}

// NewCoursesHandler constructs the handler.
func NewCoursesHandler(courses storage.CourseStore) *CoursesHandler {
	return &CoursesHandler{courses: courses}
}

// Register attaches the catalog route to the mux.
func (h *CoursesHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("/api/courses", h.handleList)
}

func (h *CoursesHandler) handleList(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	courses, err := h.courses.ListCourses(r.Context())
	if err != nil {
		log.Printf("list courses error: %v", err)
		respond.Message(w, http.StatusInternalServerError, "Server Error")
		return
	}
	respond.JSON(w, http.StatusOK, courses)
}
