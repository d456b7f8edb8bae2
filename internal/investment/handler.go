package investment

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/wavdex/backend/internal/artist"
)

type Handler struct {
	service      Service
	respondJSON  func(w http.ResponseWriter, status int, payload interface{})
	respondError func(w http.ResponseWriter, status int, message string)
}

func NewInvestmentHandler(
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

type createInvestmentRequest struct {
	ArtistID string  `json:"artist_id"`
	Shares   float64 `json:"shares"`
}

type investmentResponse struct {
	ID            string    `json:"id"`
	ArtistID      string    `json:"artist_id"`
	ArtistName    string    `json:"artist_name"`
	Shares        float64   `json:"shares"`
	PricePerShare float64   `json:"price_per_share"`
	CreatedAt     time.Time `json:"created_at"`
}

func toInvestmentResponse(inv Investment) investmentResponse {
	return investmentResponse{
		ID:            inv.ID.String(),
		ArtistID:      inv.ArtistID.String(),
		ArtistName:    inv.ArtistName,
		Shares:        inv.Shares,
		PricePerShare: inv.PricePerShare,
		CreatedAt:     inv.CreatedAt,
	}
}

func (h *Handler) getUserIDReq(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return uuid.Nil, false
	}
	parsed, err := uuid.Parse(userID)
	if err != nil {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return uuid.Nil, false
	}
	return parsed, true
}

func (h *Handler) ListInvestments(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.getUserIDReq(w, r)
	if !ok {
		return
	}

	investments, err := h.service.ListForUser(r.Context(), userID)
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, "Failed to retrieve investments")
		return
	}

	response := make([]investmentResponse, 0, len(investments))
	for _, inv := range investments {
		response = append(response, toInvestmentResponse(inv))
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "List of investments retrieved successfully.",
		"data":    response,
	})
}

func (h *Handler) CreateInvestment(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.getUserIDReq(w, r)
	if !ok {
		return
	}

	var req createInvestmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	artistID, err := uuid.Parse(req.ArtistID)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid artist ID")
		return
	}

	investment, err := h.service.Buy(r.Context(), userID, artistID, req.Shares)
	if err != nil {
		if errors.Is(err, ErrInvalidShares) {
			h.respondError(w, http.StatusBadRequest, "Shares must be greater than zero")
			return
		}
		if errors.Is(err, artist.ErrArtistNotFound) {
			h.respondError(w, http.StatusNotFound, "Artist not found")
			return
		}
		h.respondError(w, http.StatusInternalServerError, "Failed to create investment")
		return
	}

	h.respondJSON(w, http.StatusCreated, map[string]interface{}{
		"status":  "success",
		"message": "Investment successfully created.",
		"data":    toInvestmentResponse(*investment),
	})
}

func (h *Handler) DeleteInvestment(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.getUserIDReq(w, r)
	if !ok {
		return
	}

	investmentID, err := uuid.Parse(r.PathValue("investmentID"))
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid investment ID")
		return
	}

	err = h.service.Sell(r.Context(), userID, investmentID)
	if err != nil {
		if errors.Is(err, ErrInvestmentNotFound) {
			h.respondError(w, http.StatusNotFound, "Investment not found")
			return
		}
		if errors.Is(err, ErrUnauthorizedAccess) {
			h.respondError(w, http.StatusUnauthorized, "Unauthorized access to investment")
			return
		}
		h.respondError(w, http.StatusInternalServerError, "Failed to delete investment")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "Investment deleted successfully.",
	})
}
