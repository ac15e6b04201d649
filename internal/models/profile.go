package models

import "time"

// Profile holds per-user data beyond credentials. One profile is created,
// empty, alongside each new user.
type Profile struct {
	UserID          string       `json:"user_id"`
	Username        string       `json:"username"`
	Email           string       `json:"email"`
	EnrolledCourses []Enrollment `json:"enrolled_courses"`
	CreatedAt       time.Time    `json:"created_at"`
}

// Enrollment links a profile to a course. Newest enrollments come first.
type Enrollment struct {
	CourseID   string    `json:"course_id"`
	EnrolledAt time.Time `json:"enrolled_at"`
}
