package httpapi

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"io"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/ppiankov/globeintel/internal/assistant"
	"github.com/ppiankov/globeintel/internal/geo"
	"github.com/ppiankov/globeintel/internal/logger"
	"github.com/ppiankov/globeintel/internal/model"
)

const (
	maxChatBodyBytes  = 64 << 10
	maxVoiceBodyBytes = 16 << 20
)

// Responder answers chat messages
type Responder interface {
	Respond(ctx context.Context, req model.ChatRequest) (*model.ChatResult, error)
}

// NewsFetcher returns ranked articles for a query
type NewsFetcher interface {
	Fetch(ctx context.Context, q model.NewsQuery) ([]model.Article, error)
}

// Transcriber converts recorded speech to text
type Transcriber interface {
	Transcribe(ctx context.Context, audio io.Reader, filename string) (string, error)
}

// Handlers serves the dashboard API
type Handlers struct {
	chat        Responder
	news        NewsFetcher
	transcriber Transcriber
	log         *logger.Logger
	version     string
}

// NewHandlers creates the handler set. transcriber may be nil.
func NewHandlers(chat Responder, news NewsFetcher, transcriber Transcriber, log *logger.Logger, version string) *Handlers {
	if log == nil {
		log = logger.NewNop()
	}
	return &Handlers{
		chat:        chat,
		news:        news,
		transcriber: transcriber,
		log:         log,
		version:     version,
	}
}

// Chat handles POST /api/ai/chat
func (h *Handlers) Chat(w http.ResponseWriter, r *http.Request) {
	var req model.ChatRequest
	if apiErr := decodeJSON(w, r, maxChatBodyBytes, &req); apiErr != nil {
		respondError(w, apiErr)
		return
	}

	result, err := h.chat.Respond(r.Context(), req)
	if err != nil {
		h.fail(w, r, chatError(err))
		return
	}

	respondOK(w, result)
}

// ChatMethodNotAllowed answers any verb other than POST on the chat route
func (h *Handlers) ChatMethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Allow", http.MethodPost)
	respondError(w, newAPIError(http.StatusMethodNotAllowed, "method_not_allowed", "Method not allowed. Use POST to send messages.", nil))
}

type voiceRequest struct {
	Transcript string `json:"transcript"`
	Audio      string `json:"audio"`  // Base64, optionally as a data URL
	Format     string `json:"format"` // File extension hint, e.g. webm or mp3
	Country    string `json:"country"`
	Context    string `json:"context"`
}

type voiceResult struct {
	Transcript string `json:"transcript"`
	*model.ChatResult
}

// Voice handles POST /api/ai/chat/voice
func (h *Handlers) Voice(w http.ResponseWriter, r *http.Request) {
	var req voiceRequest
	if apiErr := decodeJSON(w, r, maxVoiceBodyBytes, &req); apiErr != nil {
		respondError(w, apiErr)
		return
	}

	transcript := strings.TrimSpace(req.Transcript)
	if transcript == "" {
		if strings.TrimSpace(req.Audio) == "" {
			respondError(w, newAPIError(http.StatusBadRequest, "invalid_input", "Audio data is required", nil))
			return
		}

		text, apiErr := h.transcribe(r.Context(), req)
		if apiErr != nil {
			h.fail(w, r, apiErr)
			return
		}
		transcript = text
	}

	result, err := h.chat.Respond(r.Context(), model.ChatRequest{
		Message: transcript,
		Country: req.Country,
		Context: req.Context,
	})
	if err != nil {
		h.fail(w, r, chatError(err))
		return
	}

	respondOK(w, voiceResult{Transcript: transcript, ChatResult: result})
}

func (h *Handlers) transcribe(ctx context.Context, req voiceRequest) (string, *apiError) {
	if h.transcriber == nil {
		return "", newAPIError(http.StatusNotImplemented, "not_configured", "Voice transcription is not configured", nil)
	}

	audio, err := decodeAudio(req.Audio)
	if err != nil {
		return "", newAPIError(http.StatusBadRequest, "invalid_input", "Audio data must be base64 encoded", err)
	}

	format := strings.TrimPrefix(strings.ToLower(strings.TrimSpace(req.Format)), ".")
	if format == "" {
		format = "webm"
	}

	text, err := h.transcriber.Transcribe(ctx, bytes.NewReader(audio), "audio."+format)
	if err != nil {
		return "", newAPIError(http.StatusBadGateway, "transcription_failed", "Failed to process voice request", err)
	}
	return text, nil
}

// News handles GET /api/news
func (h *Handlers) News(w http.ResponseWriter, r *http.Request) {
	q := model.NewsQuery{
		Country:  r.URL.Query().Get("country"),
		Category: r.URL.Query().Get("category"),
	}

	articles, err := h.news.Fetch(r.Context(), q)
	if err != nil {
		h.fail(w, r, newAPIError(http.StatusInternalServerError, "internal", "Failed to fetch news", err))
		return
	}
	if articles == nil {
		articles = []model.Article{}
	}

	respondList(w, articles, len(articles))
}

// Countries handles GET /api/countries
func (h *Handlers) Countries(w http.ResponseWriter, r *http.Request) {
	countries := geo.Countries()
	respondList(w, countries, len(countries))
}

// NearestCountry handles GET /api/countries/nearest?lat=&lng=
func (h *Handlers) NearestCountry(w http.ResponseWriter, r *http.Request) {
	lat, errLat := strconv.ParseFloat(r.URL.Query().Get("lat"), 64)
	lng, errLng := strconv.ParseFloat(r.URL.Query().Get("lng"), 64)
	if errLat != nil || errLng != nil || lat < -90 || lat > 90 || lng < -180 || lng > 180 {
		respondError(w, newAPIError(http.StatusBadRequest, "invalid_input", "lat and lng must be valid coordinates", nil))
		return
	}

	country, ok := geo.Nearest(lat, lng)
	if !ok {
		respondError(w, newAPIError(http.StatusNotFound, "not_found", "No country near the given coordinates", nil))
		return
	}

	respondOK(w, country)
}

type distanceResponse struct {
	From       string  `json:"from"`
	To         string  `json:"to"`
	DistanceKm float64 `json:"distanceKm"`
}

// CountryDistance handles GET /api/countries/distance?from=&to=
func (h *Handlers) CountryDistance(w http.ResponseWriter, r *http.Request) {
	from := strings.TrimSpace(r.URL.Query().Get("from"))
	to := strings.TrimSpace(r.URL.Query().Get("to"))
	if from == "" || to == "" {
		respondError(w, newAPIError(http.StatusBadRequest, "invalid_input", "from and to are required", nil))
		return
	}

	a, okFrom := geo.Lookup(from)
	b, okTo := geo.Lookup(to)
	if !okFrom || !okTo {
		respondError(w, newAPIError(http.StatusNotFound, "not_found", "Unknown country", nil))
		return
	}

	km, _ := geo.Distance(a.Name, b.Name)
	respondOK(w, distanceResponse{From: a.Name, To: b.Name, DistanceKm: math.Round(km*10) / 10})
}

// Health handles GET /health
func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	respondOK(w, map[string]string{
		"status":  "ok",
		"version": h.version,
	})
}

// fail logs server-side failures and writes the envelope
func (h *Handlers) fail(w http.ResponseWriter, r *http.Request, e *apiError) {
	if e.Status >= http.StatusInternalServerError {
		h.log.Error("request failed",
			"request_id", RequestIDFromContext(r.Context()),
			"path", r.URL.Path,
			"status", e.Status,
			"error", e,
		)
	}
	respondError(w, e)
}

func chatError(err error) *apiError {
	if errors.Is(err, assistant.ErrInvalidInput) {
		return newAPIError(http.StatusBadRequest, "invalid_input", "Message is required and must be a non-empty string", err)
	}
	e := newAPIError(http.StatusInternalServerError, "internal", "Internal server error", err)
	e.Message = "An unexpected error occurred while processing the request"
	return e
}

func decodeJSON(w http.ResponseWriter, r *http.Request, limit int64, v any) *apiError {
	r.Body = http.MaxBytesReader(w, r.Body, limit)

	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return newAPIError(http.StatusRequestEntityTooLarge, "too_large", "Request body too large", err)
		}
		return newAPIError(http.StatusBadRequest, "invalid_json", "Invalid JSON body", err)
	}
	return nil
}

// decodeAudio accepts raw base64 or a data URL
func decodeAudio(s string) ([]byte, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "data:") {
		if i := strings.Index(s, ","); i >= 0 {
			s = s[i+1:]
		}
	}
	return base64.StdEncoding.DecodeString(s)
}
