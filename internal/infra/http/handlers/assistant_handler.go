package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/jojiShiotsuki/personalApp-sub001/internal/infra/assistant"
	"github.com/jojiShiotsuki/personalApp-sub001/internal/infra/http/middleware"
)

type AssistantHandler struct {
	Gemini      *assistant.Gemini
	rateLimiter *RateLimiter
}

// NewAssistantHandler accepts a nil client; the endpoint then answers 503
// until an API key is configured.
func NewAssistantHandler(gemini *assistant.Gemini) *AssistantHandler {
	return &AssistantHandler{
		Gemini:      gemini,
		rateLimiter: NewRateLimiter(10, time.Minute), // 10 req/min per IP
	}
}

type ChatRequest struct {
	Message string              `json:"message"`
	History []assistant.Message `json:"history"`
}

type ChatResponse struct {
	Reply string `json:"reply"`
}

// Chat (POST /assistant/chat). The conversation is stateless; the client
// replays its history on every call.
func (h *AssistantHandler) Chat(w http.ResponseWriter, r *http.Request) {
	clientIP := getClientIP(r)
	if !h.rateLimiter.Allow(clientIP) {
		writeErrorResponse(w, http.StatusTooManyRequests, "RATE_LIMITED", "Too many requests. Please try again later.")
		return
	}

	if h.Gemini == nil {
		middleware.RecordAssistantRequest("disabled")
		writeErrorResponse(w, http.StatusServiceUnavailable, "ASSISTANT_DISABLED", "assistant is not configured")
		return
	}

	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "INVALID_JSON", "invalid request body")
		return
	}

	if strings.TrimSpace(req.Message) == "" {
		writeErrorResponse(w, http.StatusBadRequest, "MISSING_MESSAGE", "message is required")
		return
	}

	reply, err := h.Gemini.Chat(r.Context(), req.History, req.Message)
	if err != nil {
		middleware.RecordAssistantRequest("error")
		writeErrorResponse(w, http.StatusBadGateway, "ASSISTANT_ERROR", "assistant is unavailable right now")
		return
	}

	middleware.RecordAssistantRequest("ok")
	writeJSON(w, http.StatusOK, ChatResponse{Reply: reply})
}

func getClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		return xff
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}
	return r.RemoteAddr
}

type RateLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	limit    int
	window   time.Duration
}

type visitor struct {
	count     int
	lastReset time.Time
}

func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	rl := &RateLimiter{
		visitors: make(map[string]*visitor),
		limit:    limit,
		window:   window,
	}

	go rl.cleanup()
	return rl
}

func (rl *RateLimiter) Allow(ip string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	v, exists := rl.visitors[ip]
	now := time.Now()

	if !exists {
		rl.visitors[ip] = &visitor{count: 1, lastReset: now}
		return true
	}

	if now.Sub(v.lastReset) > rl.window {
		v.count = 1
		v.lastReset = now
		return true
	}

	v.count++
	return v.count <= rl.limit
}

func (rl *RateLimiter) cleanup() {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		rl.mu.Lock()
		now := time.Now()
		for ip, v := range rl.visitors {
			if now.Sub(v.lastReset) > rl.window*2 {
				delete(rl.visitors, ip)
			}
		}
		rl.mu.Unlock()
	}
}
