package api

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"github.com/kaimahi/ergosurvey/internal/middleware"
	"github.com/kaimahi/ergosurvey/internal/services"
)

type Router struct {
	store      Store
	surveys    *services.SurveyService
	thresholds *services.ThresholdService
	exports    *services.ExportService
	imports    *services.ImportService
	trends     *services.TrendService
	auth       *services.AuthService
}

func NewRouter(store Store) *Router {
	return &Router{
		store:      store,
		surveys:    services.NewSurveyService(newSurveyStoreAdapter(store)),
		thresholds: services.NewThresholdService(newThresholdStoreAdapter(store)),
		exports:    services.NewExportService(newExportStoreAdapter(store)),
		imports:    services.NewImportService(newImportStoreAdapter(store)),
		trends:     services.NewTrendService(newTrendStoreAdapter(store)),
		auth:       services.NewAuthService(newAuthStoreAdapter(store), middleware.SignToken),
	}
}

func (rt *Router) Register(mux *http.ServeMux) {
	mux.HandleFunc("/api/surveys", rt.handleSurveys)                    // GET, POST
	mux.HandleFunc("/api/export", rt.handleExport)                      // GET
	mux.HandleFunc("/api/import", rt.handleImport)                      // POST (auth)
	mux.HandleFunc("/api/thresholds", rt.handleThresholds)              // GET, PUT (auth)
	mux.HandleFunc("/api/thresholds/reset", rt.handleThresholdReset)    // POST (auth)
	mux.HandleFunc("/api/thresholds/preview", rt.handleThresholdPreview) // POST
	mux.HandleFunc("/api/trend", rt.handleTrend)                        // GET
	mux.HandleFunc("/api/recommendations", rt.handleRecommendations)    // GET
	mux.HandleFunc("/api/auth/register", rt.handleRegister)             // POST
	mux.HandleFunc("/api/auth/login", rt.handleLogin)                   // POST
	mux.HandleFunc("/api/seed", rt.handleSeed)                          // POST
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeServiceError(w http.ResponseWriter, err error) {
	if se, ok := services.AsServiceError(err); ok {
		status := http.StatusInternalServerError
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
		}
		http.Error(w, se.Message, status)
		return
	}
	http.Error(w, err.Error(), http.StatusInternalServerError)
}

// requireUser returns the authenticated claims or writes a 401.
func requireUser(w http.ResponseWriter, r *http.Request) (*middleware.Claims, bool) {
	c, ok := middleware.UserFromContext(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return nil, false
	}
	return c, true
}

// POST /api/surveys — score, classify, persist; GET /api/surveys — list.
func (rt *Router) handleSurveys(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		var req services.SubmitSurveyRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		res, err := rt.surveys.Submit(&req)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, res)
	case http.MethodGet:
		limit := 0
		if v := r.URL.Query().Get("limit"); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil || n < 0 {
				http.Error(w, "bad limit", http.StatusBadRequest)
				return
			}
			limit = n
		}
		recs, err := rt.surveys.List(services.Tool(r.URL.Query().Get("tool")), limit)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"records": recs, "count": len(recs)})
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

// GET /api/export
func (rt *Router) handleExport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	res, err := rt.exports.ExportCSV()
	if err != nil {
		writeServiceError(w, err)
		return
	}
	w.Header().Set("Content-Type", res.ContentType)
	w.Header().Set("Content-Disposition", "attachment; filename="+res.Filename)
	_, _ = w.Write(res.Data)
}

// POST /api/import — CSV body replaces all records, all-or-nothing.
func (rt *Router) handleImport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	claims, ok := requireUser(w, r)
	if !ok {
		return
	}
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, 10<<20))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	n, err := rt.imports.ImportCSV(claims.Email, body)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "imported": n})
}

// GET /api/thresholds; PUT /api/thresholds (auth)
func (rt *Router) handleThresholds(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		t, err := rt.thresholds.Get()
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, t)
	case http.MethodPut:
		claims, ok := requireUser(w, r)
		if !ok {
			return
		}
		var t services.Thresholds
		if err := json.NewDecoder(r.Body).Decode(&t); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		updated, err := rt.thresholds.Update(claims.Email, t)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, updated)
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

// POST /api/thresholds/reset (auth)
func (rt *Router) handleThresholdReset(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	claims, ok := requireUser(w, r)
	if !ok {
		return
	}
	t, err := rt.thresholds.Reset(claims.Email)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, t)
}

// POST /api/thresholds/preview — re-derive tiers under candidate thresholds.
func (rt *Router) handleThresholdPreview(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var t services.Thresholds
	if err := json.NewDecoder(r.Body).Decode(&t); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	preview, err := rt.thresholds.Preview(t)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"thresholds": t, "preview": preview})
}

// GET /api/trend?tool=
func (rt *Router) handleTrend(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	sum, err := rt.trends.Summary(services.Tool(r.URL.Query().Get("tool")))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sum)
}

// GET /api/recommendations?tier=&tool=
func (rt *Router) handleRecommendations(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	tier := services.Tier(r.URL.Query().Get("tier"))
	tool := services.Tool(r.URL.Query().Get("tool"))
	writeJSON(w, http.StatusOK, map[string]any{
		"tier":            tier,
		"tool":            tool,
		"recommendations": services.Recommend(tier, tool),
	})
}

func (rt *Router) handleRegister(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	res, err := rt.auth.Register(req.Email, req.Password)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"token": res.Token, "user_id": res.UserID})
}

func (rt *Router) handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	res, err := rt.auth.Login(req.Email, req.Password)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"token": res.Token, "user_id": res.UserID})
}

// POST /api/seed — insert the three demo tasks through the real engine.
func (rt *Router) handleSeed(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	f := func(v float64) *float64 { return &v }
	s := func(v string) *string { return &v }
	demos := []*services.SubmitSurveyRequest{
		{Tool: services.ToolLifting, TaskName: "Lift cartons", DurationMin: 10, FrequencyPerHr: 30,
			Posture: "bending", LoadKg: f(12), LiftHeight: s("knee")},
		{Tool: services.ToolPushPull, TaskName: "Push trolley", DurationMin: 8, FrequencyPerHr: 20,
			Posture: "neutral", PushPullForceKg: f(18), DistanceM: f(25), Surface: s("smooth")},
		{Tool: services.ToolRepetitive, TaskName: "Soldering", DurationMin: 15, FrequencyPerHr: 40,
			Posture: "reaching", RepsPerMin: f(28), CycleTimeSec: f(12), NeckShoulderAwk: s("severe")},
	}
	out := make([]*services.SurveyRecord, 0, len(demos))
	for _, d := range demos {
		res, err := rt.surveys.Submit(d)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		out = append(out, res.Record)
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "records": out})
}
