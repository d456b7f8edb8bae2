package artist

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
)

type Handler struct {
	service      Service
	respondJSON  func(w http.ResponseWriter, status int, payload interface{})
	respondError func(w http.ResponseWriter, status int, message string)
}

func NewArtistHandler(
	service Service,
	respondJSON func(w http.ResponseWriter, status int, payload interface{}),
	respondError func(w http.ResponseWriter, status int, message string),
) *Handler {
	return &Handler{
		service:      service,
		respondJSON:  respondJSON,
		respondError: respondError,
	}
}

type createArtistRequest struct {
	Name  string `json:"name"`
	Genre string `json:"genre"`
}

type artistResponse struct {
	ID                 string    `json:"id"`
	Name               string    `json:"name"`
	Genre              string    `json:"genre"`
	StockPrice         float64   `json:"stock_price"`
	LastMonthListeners int64     `json:"last_month_listeners"`
	LastTotalViews     int64     `json:"last_total_views"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

func toArtistResponse(a Artist) artistResponse {
	return artistResponse{
		ID:                 a.ID.String(),
		Name:               a.Name,
		Genre:              a.Genre,
		StockPrice:         a.StockPrice,
		LastMonthListeners: a.LastMonthListeners,
		LastTotalViews:     a.LastTotalViews,
		CreatedAt:          a.CreatedAt,
		UpdatedAt:          a.UpdatedAt,
	}
}

func (h *Handler) ListArtists(w http.ResponseWriter, r *http.Request) {
	artists, err := h.service.ListArtists(r.Context())
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, "Failed to retrieve artists")
		return
	}

	response := make([]artistResponse, 0, len(artists))
	for _, a := range artists {
		response = append(response, toArtistResponse(a))
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "List of artists retrieved successfully.",
		"data":    response,
	})
}

func (h *Handler) GetArtist(w http.ResponseWriter, r *http.Request) {
	artistID, err := uuid.Parse(r.PathValue("artistID"))
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid artist ID")
		return
	}

	artist, err := h.service.GetArtist(r.Context(), artistID)
	if err != nil {
		if errors.Is(err, ErrArtistNotFound) {
			h.respondError(w, http.StatusNotFound, "Artist not found")
			return
		}
		h.respondError(w, http.StatusInternalServerError, "Failed to retrieve artist")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "Artist retrieved successfully.",
		"data":    toArtistResponse(*artist),
	})
}

func (h *Handler) CreateArtist(w http.ResponseWriter, r *http.Request) {
	var req createArtistRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	artist, err := h.service.CreateArtist(r.Context(), req.Name, req.Genre)
	if err != nil {
		if errors.Is(err, ErrInvalidArtistName) {
			h.respondError(w, http.StatusBadRequest, "Artist name is required")
			return
		}
		if errors.Is(err, ErrArtistAlreadyExists) {
			h.respondError(w, http.StatusConflict, "Artist is already tracked")
			return
		}
		h.respondError(w, http.StatusInternalServerError, "Failed to create artist")
		return
	}

	h.respondJSON(w, http.StatusCreated, map[string]interface{}{
		"status":  "success",
		"message": "Artist successfully created.",
		"data":    toArtistResponse(*artist),
	})
}
