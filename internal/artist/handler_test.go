package artist

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/wavdex/backend/internal/valuation"
)

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]interface{}{
		"status":  "error",
		"message": message,
		"code":    status,
	})
}

type mockArtistService struct {
	artists   []Artist
	createErr error
	getErr    error
}

func (m *mockArtistService) CreateArtist(_ context.Context, name, genre string) (*Artist, error) {
	if m.createErr != nil {
		return nil, m.createErr
	}
	return &Artist{
		ID:         uuid.New(),
		Name:       name,
		Genre:      genre,
		StockPrice: 5,
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}, nil
}

func (m *mockArtistService) ListArtists(_ context.Context) ([]Artist, error) {
	return m.artists, nil
}

func (m *mockArtistService) GetArtist(_ context.Context, artistID uuid.UUID) (*Artist, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	for _, a := range m.artists {
		if a.ID == artistID {
			return &a, nil
		}
	}
	return nil, ErrArtistNotFound
}

func (m *mockArtistService) ListTrackedArtists(_ context.Context) ([]valuation.TrackedArtist, error) {
	return nil, nil
}

func (m *mockArtistService) UpdateValuation(_ context.Context, _ uuid.UUID, _ float64, _, _ int64) error {
	return nil
}

func TestListArtists(t *testing.T) {
	service := &mockArtistService{artists: []Artist{
		{ID: uuid.New(), Name: "Nova Waves", Genre: "electronic", StockPrice: 120.5, LastMonthListeners: 5000, LastTotalViews: 1_000_000},
		{ID: uuid.New(), Name: "Static Bloom", Genre: "indie", StockPrice: 42.42},
	}}
	handler := NewArtistHandler(service, respondJSON, respondError)

	req := httptest.NewRequest(http.MethodGet, "/api/artists", nil)
	w := httptest.NewRecorder()

	handler.ListArtists(w, req)

	res := w.Result()
	defer res.Body.Close()
	assert.Equal(t, http.StatusOK, res.StatusCode)

	var response struct {
		Status string `json:"status"`
		Data   []struct {
			Name       string  `json:"name"`
			StockPrice float64 `json:"stock_price"`
		} `json:"data"`
	}
	err := json.NewDecoder(res.Body).Decode(&response)
	assert.NoError(t, err)
	assert.Equal(t, "success", response.Status)
	assert.Len(t, response.Data, 2)
	assert.Equal(t, "Nova Waves", response.Data[0].Name)
	assert.Equal(t, 120.5, response.Data[0].StockPrice)
}

func TestGetArtist_InvalidID(t *testing.T) {
	handler := NewArtistHandler(&mockArtistService{}, respondJSON, respondError)

	req := httptest.NewRequest(http.MethodGet, "/api/artists/not-a-uuid", nil)
	req.SetPathValue("artistID", "not-a-uuid")
	w := httptest.NewRecorder()

	handler.GetArtist(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Result().StatusCode)
}

func TestGetArtist_NotFound(t *testing.T) {
	handler := NewArtistHandler(&mockArtistService{}, respondJSON, respondError)

	missing := uuid.New()
	req := httptest.NewRequest(http.MethodGet, "/api/artists/"+missing.String(), nil)
	req.SetPathValue("artistID", missing.String())
	w := httptest.NewRecorder()

	handler.GetArtist(w, req)

	assert.Equal(t, http.StatusNotFound, w.Result().StatusCode)
}

func TestCreateArtist(t *testing.T) {
	handler := NewArtistHandler(&mockArtistService{}, respondJSON, respondError)

	body, err := json.Marshal(map[string]string{"name": "Nova Waves", "genre": "electronic"})
	assert.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/artists", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	handler.CreateArtist(w, req)

	res := w.Result()
	defer res.Body.Close()
	assert.Equal(t, http.StatusCreated, res.StatusCode)

	var response struct {
		Status string `json:"status"`
		Data   struct {
			Name  string `json:"name"`
			Genre string `json:"genre"`
		} `json:"data"`
	}
	err = json.NewDecoder(res.Body).Decode(&response)
	assert.NoError(t, err)
	assert.Equal(t, "success", response.Status)
	assert.Equal(t, "Nova Waves", response.Data.Name)
	assert.Equal(t, "electronic", response.Data.Genre)
}

func TestCreateArtist_MissingName(t *testing.T) {
	handler := NewArtistHandler(&mockArtistService{createErr: ErrInvalidArtistName}, respondJSON, respondError)

	req := httptest.NewRequest(http.MethodPost, "/api/artists", bytes.NewBufferString(`{"name": ""}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	handler.CreateArtist(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Result().StatusCode)
}

func TestCreateArtist_AlreadyTracked(t *testing.T) {
	handler := NewArtistHandler(&mockArtistService{createErr: ErrArtistAlreadyExists}, respondJSON, respondError)

	req := httptest.NewRequest(http.MethodPost, "/api/artists", bytes.NewBufferString(`{"name": "Nova Waves"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	handler.CreateArtist(w, req)

	assert.Equal(t, http.StatusConflict, w.Result().StatusCode)
}
