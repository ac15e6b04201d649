package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/stellaracademy/academy-be/internal/gemini"
	"github.com/stellaracademy/academy-be/internal/http/respond"
	"github.com/stellaracademy/academy-be/internal/models/dto"
)

// Generator produces content for a prompt; satisfied by gemini.Client.
type Generator interface {
	Generate(ctx context.Context, prompt string) (gemini.Part, error)
}

// AIHandler proxies prompts to the upstream generative-AI API. Guarded.
type AIHandler struct {
	generator Generator
}

// NewAIHandler constructs the handler.
func NewAIHandler(generator Generator) *AIHandler {
	return &AIHandler{generator: generator}
}

// Register attaches the guarded generate route to the mux.
func (h *AIHandler) Register(mux *http.ServeMux, guard func(http.Handler) http.Handler) {
	mux.Handle("/api/ai/generate", guard(http.HandlerFunc(h.handleGenerate)))
}

func (h *AIHandler) handleGenerate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req dto.GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Message(w, http.StatusBadRequest, "Prompt is required")
		return
	}
	if strings.TrimSpace(req.Prompt) == "" {
		respond.Message(w, http.StatusBadRequest, "Prompt is required")
		return
	}

	part, err := h.generator.Generate(r.Context(), req.Prompt)
	if err != nil {
		var upstream *gemini.UpstreamError
		switch {
		case errors.As(err, &upstream):
			respond.Message(w, upstream.Status, "Error from Gemini API")
		case errors.Is(err, gemini.ErrNoContent):
			respond.Message(w, http.StatusInternalServerError, "No content generated")
		default:
			log.Printf("generate error: %v", err)
			respond.Message(w, http.StatusInternalServerError, "Server error")
		}
		return
	}
	respond.JSON(w, http.StatusOK, part)
}
