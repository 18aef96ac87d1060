package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"curadoria/internal"
	"curadoria/internal/query"
)

type Handlers struct {
	holder *query.Holder
	reload func(ctx context.Context) error
}

func NewHandlers(holder *query.Holder, reload func(ctx context.Context) error) *Handlers {
	return &Handlers{holder: holder, reload: reload}
}

type statusResponse struct {
	Status   internal.LoadStatus `json:"status"`
	Message  string              `json:"message"`
	Detected string              `json:"detected,omitempty"`
	TraceID  string              `json:"traceId,omitempty"`
	Source   string              `json:"source,omitempty"`
	LoadedAt *time.Time          `json:"loadedAt,omitempty"`
	Columns  internal.ColumnMap  `json:"columns,omitempty"`
	Count    int                 `json:"count"`
}

func (h *Handlers) Health(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handlers) ListPlaces(w http.ResponseWriter, r *http.Request) {
	q, err := parseQuery(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, h.holder.Load().Query(q))
}

func (h *Handlers) Facets(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, h.holder.Load().Facets())
}

func (h *Handlers) Status(w http.ResponseWriter, _ *http.Request) {
	state := h.holder.Load()
	respondJSON(w, http.StatusOK, statusOf(state))
}

func (h *Handlers) Reload(w http.ResponseWriter, r *http.Request) {
	if err := h.reload(r.Context()); err != nil {
		respondError(w, http.StatusBadGateway, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, statusOf(h.holder.Load()))
}

func statusOf(state *query.State) statusResponse {
	info := state.Info()
	resp := statusResponse{
		Status:   info.Status,
		Message:  info.Message,
		Detected: info.Detected,
		TraceID:  info.TraceID,
		Source:   info.Source,
		Columns:  info.Columns,
		Count:    state.Len(),
	}
	if resp.Status == "" {
		resp.Message = "Carregando..."
	}
	if !info.LoadedAt.IsZero() {
		loadedAt := info.LoadedAt
		resp.LoadedAt = &loadedAt
	}
	return resp
}

func parseQuery(r *http.Request) (query.Query, error) {
	v := r.URL.Query()
	q := query.Query{
		Text:     strings.TrimSpace(v.Get("q")),
		Category: strings.TrimSpace(v.Get("category")),
		Region:   strings.TrimSpace(v.Get("region")),
		Price:    internal.PriceTier(strings.TrimSpace(v.Get("price"))),
		Rating:   internal.RatingTier(strings.TrimSpace(v.Get("rating"))),
		Sort:     query.ParseSort(v.Get("sort")),
	}
	if q.Price != "" && !q.Price.Valid() {
		return query.Query{}, fmt.Errorf("unknown price tier: %s", q.Price)
	}
	if q.Rating != "" && !q.Rating.Valid() {
		return query.Query{}, fmt.Errorf("unknown rating tier: %s", q.Rating)
	}
	return q, nil
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
