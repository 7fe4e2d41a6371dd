package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/relaypair/relay/internal/middleware"
	"github.com/relaypair/relay/internal/services"
)

type Router struct {
	pairs       *services.PairService
	messages    *services.MessageService
	moods       *services.MoodService
	assessments *services.AssessmentService
	insights    *services.InsightService
	rhythm      *services.RhythmService
	store       Store
}

// NewRouter wires every service against one store. aligner may be nil; the
// align and insights routes then answer 502.
func NewRouter(store Store, aligner services.Aligner) *Router {
	return &Router{
		pairs:       services.NewPairService(store, middleware.SignToken),
		messages:    services.NewMessageService(store, aligner),
		moods:       services.NewMoodService(store),
		assessments: services.NewAssessmentService(store),
		insights:    services.NewInsightService(aligner),
		rhythm:      services.NewRhythmService(store),
		store:       store,
	}
}

func (rt *Router) Register(mux *http.ServeMux) {
	mux.HandleFunc("/api/pair/create", rt.handlePairCreate)     // POST
	mux.HandleFunc("/api/pair/join", rt.handlePairJoin)         // POST
	mux.HandleFunc("/api/pair", rt.handlePairGet)               // GET
	mux.HandleFunc("/api/messages", rt.handleMessages)          // GET, POST
	mux.HandleFunc("/api/moods", rt.handleMoods)                // GET, POST
	mux.HandleFunc("/api/needs/items", rt.handleNeedItems)      // GET
	mux.HandleFunc("/api/needs/responses", rt.handleNeedSubmit) // POST
	mux.HandleFunc("/api/needs/gaps", rt.handleNeedGaps)        // GET
	mux.HandleFunc("/api/needs/insights", rt.handleInsights)    // POST
	mux.HandleFunc("/api/metrics/rhythm", rt.handleRhythm)      // GET
	mux.HandleFunc("/api/export", rt.handleExport)              // GET
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

// writeServiceError maps the service error taxonomy onto HTTP statuses.
func writeServiceError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	if se, ok := services.AsServiceError(err); ok {
		switch se.Code {
		case services.ErrorInvalid:
			status = http.StatusBadRequest
		case services.ErrorUnauthorized:
			status = http.StatusUnauthorized
		case services.ErrorForbidden:
			status = http.StatusForbidden
		case services.ErrorNotFound:
			status = http.StatusNotFound
		case services.ErrorConflict:
			status = http.StatusConflict
		case services.ErrorBadGateway:
			status = http.StatusBadGateway
		}
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
}

// pairScope resolves the acting pair/user: session claims win, body values
// fill in for unauthenticated callers.
func pairScope(r *http.Request, bodyPairID, bodyUserID string) (string, string) {
	if c, ok := middleware.ClaimsFromContext(r.Context()); ok {
		return c.PID, c.UID
	}
	return bodyPairID, bodyUserID
}

// POST /api/pair/create
func (rt *Router) handlePairCreate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req struct {
		CreatorName string `json:"creator_name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	res, err := rt.pairs.Create(req.CreatorName)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, res)
}

// POST /api/pair/join
func (rt *Router) handlePairJoin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req struct {
		Code       string `json:"code"`
		JoinerName string `json:"joiner_name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	res, err := rt.pairs.Join(req.Code, req.JoinerName)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, res)
}

// GET /api/pair?pair_id=...
func (rt *Router) handlePairGet(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	pairID, _ := pairScope(r, r.URL.Query().Get("pair_id"), "")
	pair, err := rt.pairs.Get(pairID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, pair)
}

// GET /api/messages?pair_id=...&days=...
// POST /api/messages {text, mood, intensity, pair_id?, sender_id?}
func (rt *Router) handleMessages(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		days, _ := strconv.Atoi(r.URL.Query().Get("days"))
		pairID, _ := pairScope(r, r.URL.Query().Get("pair_id"), "")
		msgs, err := rt.messages.List(pairID, days)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, map[string]any{"messages": msgs})
	case http.MethodPost:
		var req struct {
			PairID    string `json:"pair_id"`
			SenderID  string `json:"sender_id"`
			Text      string `json:"text"`
			Mood      string `json:"mood"`
			Intensity int    `json:"intensity"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		pairID, userID := pairScope(r, req.PairID, req.SenderID)
		msg, err := rt.messages.Align(r.Context(), services.AlignInput{
			PairID:    pairID,
			SenderID:  userID,
			Text:      req.Text,
			Mood:      req.Mood,
			Intensity: req.Intensity,
		})
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, msg)
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

// GET /api/moods?pair_id=...&days=7
// POST /api/moods {mood, mood_value, intensity, tag, pair_id?, user_id?}
func (rt *Router) handleMoods(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		days, _ := strconv.Atoi(r.URL.Query().Get("days"))
		pairID, _ := pairScope(r, r.URL.Query().Get("pair_id"), "")
		pings, err := rt.moods.List(pairID, days)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, map[string]any{"moods": pings})
	case http.MethodPost:
		var req struct {
			PairID    string `json:"pair_id"`
			UserID    string `json:"user_id"`
			MoodEmoji string `json:"mood"`
			MoodValue string `json:"mood_value"`
			Intensity int    `json:"intensity"`
			Tag       string `json:"tag"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		pairID, userID := pairScope(r, req.PairID, req.UserID)
		ping, err := rt.moods.Log(services.LogInput{
			PairID:    pairID,
			UserID:    userID,
			MoodEmoji: req.MoodEmoji,
			MoodValue: req.MoodValue,
			Intensity: req.Intensity,
			Tag:       req.Tag,
		})
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, ping)
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

// GET /api/needs/items
func (rt *Router) handleNeedItems(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, map[string]any{"items": services.NeedItems, "categories": services.NeedCategories})
}

// POST /api/needs/responses {perspective, responses, pair_id?, user_id?}
func (rt *Router) handleNeedSubmit(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req struct {
		PairID      string                  `json:"pair_id"`
		UserID      string                  `json:"user_id"`
		Perspective string                  `json:"perspective"`
		Responses   []services.NeedResponse `json:"responses"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	pairID, userID := pairScope(r, req.PairID, req.UserID)
	scores, err := rt.assessments.Submit(pairID, userID, req.Perspective, req.Responses)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, map[string]any{"scores": scores})
}

// GET /api/needs/gaps?pair_id=...&user_id=...
func (rt *Router) handleNeedGaps(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	q := r.URL.Query()
	pairID, userID := pairScope(r, q.Get("pair_id"), q.Get("user_id"))
	gaps, err := rt.assessments.Gaps(pairID, userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, map[string]any{"gaps": gaps, "top_gaps": services.TopGaps(gaps, services.DefaultTopGapCount)})
}

// POST /api/needs/insights {gaps, recent_moods?, horsemen_trends?}
func (rt *Router) handleInsights(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req services.InsightRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	insights, err := rt.insights.Generate(r.Context(), req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, map[string]any{"insights": insights})
}

// GET /api/metrics/rhythm?pair_id=...&days=30
func (rt *Router) handleRhythm(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	days, _ := strconv.Atoi(r.URL.Query().Get("days"))
	pairID, _ := pairScope(r, r.URL.Query().Get("pair_id"), "")
	metrics, err := rt.rhythm.Compute(pairID, days)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, metrics)
}

// GET /api/export?pair_id=...&kind=moods|messages&days=...
func (rt *Router) handleExport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	q := r.URL.Query()
	pairID, _ := pairScope(r, q.Get("pair_id"), "")
	days, _ := strconv.Atoi(q.Get("days"))
	kind := q.Get("kind")
	if kind == "" {
		kind = "moods"
	}

	var (
		b   []byte
		err error
	)
	switch kind {
	case "moods":
		pings, lerr := rt.moods.List(pairID, days)
		if lerr != nil {
			writeServiceError(w, lerr)
			return
		}
		b, err = services.ExportMoodsCSV(pings)
	case "messages":
		msgs, lerr := rt.messages.List(pairID, days)
		if lerr != nil {
			writeServiceError(w, lerr)
			return
		}
		b, err = services.ExportMessagesCSV(msgs)
	default:
		http.Error(w, "unsupported kind", http.StatusBadRequest)
		return
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", "attachment; filename="+kind+".csv")
	_, _ = w.Write(b)
}
