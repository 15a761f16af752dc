package matching

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/MrJamesThe3rd/agencyops/internal/forecast"
	"github.com/MrJamesThe3rd/agencyops/internal/matching"
)

type Handler struct {
	svc      *matching.Service
	validate *validator.Validate
}

func NewHandler(svc *matching.Service) *Handler {
	return &Handler{
		svc:      svc,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/suggest", h.suggest)
	r.Post("/", h.learn)
}

type suggestResponse struct {
	RawName  string            `json:"raw_name"`
	AgencyID forecast.AgencyID `json:"agency_id"`
	Matched  bool              `json:"matched"`
}

func (h *Handler) suggest(w http.ResponseWriter, r *http.Request) {
	rawName := r.URL.Query().Get("raw_name")
	if rawName == "" {
		http.Error(w, "raw_name query parameter is required", http.StatusBadRequest)
		return
	}

	agency, err := h.svc.Suggest(r.Context(), rawName)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(suggestResponse{
		RawName:  rawName,
		AgencyID: agency,
		Matched:  agency != "",
	}); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type learnRequest struct {
	RawPattern string `json:"raw_pattern" validate:"required,max=200"`
	AgencyID   string `json:"agency_id" validate:"required,max=100"`
}

func (h *Handler) learn(w http.ResponseWriter, r *http.Request) {
	var req learnRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.validate.Struct(req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	err := h.svc.Learn(r.Context(), req.RawPattern, forecast.AgencyID(req.AgencyID))
	if errors.Is(err, matching.ErrEmptyAlias) {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusCreated)
}
