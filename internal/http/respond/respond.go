// Package respond centralizes the JSON response shapes used across handlers.
package respond

import (
	"encoding/json"
	"log"
	"net/http"
	"sort"

	validation "github.com/go-ozzo/ozzo-validation"
)

// FieldError is one entry of the errors array returned on 400s.
type FieldError struct {
	Msg string `json:"msg"`
}

type errorsBody struct {
	Errors []FieldError `json:"errors"`
}

type messageBody struct {
	Msg string `json:"msg"`
}

// JSON writes a payload as-is with the given status.
func JSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("respond: encode payload failed: %v", err)
	}
}

// Errors writes an {errors:[{msg},...]} body with one entry per message.
func Errors(w http.ResponseWriter, status int, messages ...string) {
	body := errorsBody{Errors: make([]FieldError, 0, len(messages))}
	for _, msg := range messages {
		body.Errors = append(body.Errors, FieldError{Msg: msg})
	}
	JSON(w, status, body)
}

// Message writes a {msg: ...} body.
func Message(w http.ResponseWriter, status int, msg string) {
	JSON(w, status, messageBody{Msg: msg})
}

// ValidationErrors flattens a validation result into the errors array,
// reporting every violated field rule. Field order is made deterministic by
// sorting on field name.
func ValidationErrors(w http.ResponseWriter, err error) {
	var fieldErrs validation.Errors
	if ok := asValidationErrors(err, &fieldErrs); !ok {
		Errors(w, http.StatusBadRequest, err.Error())
		return
	}
	fields := make([]string, 0, len(fieldErrs))
	for field := range fieldErrs {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	messages := make([]string, 0, len(fields))
	for _, field := range fields {
		messages = append(messages, fieldErrs[field].Error())
	}
	Errors(w, http.StatusBadRequest, messages...)
}

func asValidationErrors(err error, target *validation.Errors) bool {
	ve, ok := err.(validation.Errors)
	if !ok {
		return false
	}
	*target = ve
	return true
}
