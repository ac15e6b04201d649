package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/stellaracademy/academy-be/internal/auth"
	"github.com/stellaracademy/academy-be/internal/http/respond"
	"github.com/stellaracademy/academy-be/internal/models/dto"
)

// AuthHandler owns the register/login endpoints.
type AuthHandler struct {
	svc *auth.Service
}

// NewAuthHandler constructs the handler.
func NewAuthHandler(svc *auth.Service) *AuthHandler {
	return &AuthHandler{svc: svc}
}

// Register attaches auth routes to the mux.
func (h *AuthHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("/register", h.handleRegister)
	mux.HandleFunc("/login", h.handleLogin)
}

func (h *AuthHandler) handleRegister(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req dto.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Errors(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}
	if err := req.Validate(); err != nil {
		respond.ValidationErrors(w, err)
		return
	}

	if err := h.svc.Register(r.Context(), req.Username, req.Email, req.Password); err != nil {
		if errors.Is(err, auth.ErrEmailTaken) {
			respond.Errors(w, http.StatusBadRequest, "User already exists")
			return
		}
		log.Printf("register error: %v", err)
		respond.Message(w, http.StatusInternalServerError, "Server error")
		return
	}

	w.WriteHeader(http.StatusCreated)
}

func (h *AuthHandler) handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req dto.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Errors(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}
	if err := req.Validate(); err != nil {
		respond.ValidationErrors(w, err)
		return
	}

	token, err := h.svc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		// Unknown email and wrong password return the same response so the
		// caller cannot tell which one failed.
		if errors.Is(err, auth.ErrInvalidCredentials) {
			respond.Errors(w, http.StatusBadRequest, "Invalid Credentials")
			return
		}
		log.Printf("login error: %v", err)
		respond.Message(w, http.StatusInternalServerError, "Server error")
		return
	}

	respond.JSON(w, http.StatusOK, dto.LoginResponse{Token: token})
}
