package models

import "time"

// Course is a catalog entry students can enroll in.
type Course struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Instructor  string    `json:"instructor"`
	CreatedAt   time.Time `json:"created_at"`
}
