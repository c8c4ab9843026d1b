package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"integrityindex/internal/platform/middleware"
	"integrityindex/internal/politician/models"
	"integrityindex/internal/politician/service"
	"integrityindex/internal/politician/store"
	"integrityindex/pkg/platform/httputil"
	"integrityindex/pkg/platform/sentinel"
)

// Service defines the catalog operations the HTTP layer needs.
type Service interface {
	List(ctx context.Context, filter store.Filter, skip, limit int) ([]*models.Politician, error)
	Get(ctx context.Context, id int64) (*models.Politician, error)
	Create(ctx context.Context, params service.CreateParams) (*models.Politician, error)
}

// Handler wires catalog endpoints to the politician service.
type Handler struct {
	service Service
	logger  *slog.Logger
}

// New constructs a catalog handler with its dependencies.
func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts catalog endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/", h.HandleRoot)
	r.Get("/politicians", h.HandleList)
	r.Get("/politicians/{id}", h.HandleGet)
	r.Post("/politicians", h.HandleCreate)
}

// HandleRoot handles GET / requests.
func (h *Handler) HandleRoot(w http.ResponseWriter, _ *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, map[string]string{
		"message": "Welcome to Integrity Index Backend API",
	})
}

// HandleList handles GET /politicians requests with optional filters.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	query := r.URL.Query()

	skip, err := intParam(query.Get("skip"), 0)
	if err != nil {
		httputil.WriteDetail(w, http.StatusUnprocessableEntity, "skip must be an integer")
		return
	}
	limit, err := intParam(query.Get("limit"), service.DefaultLimit)
	if err != nil {
		httputil.WriteDetail(w, http.StatusUnprocessableEntity, "limit must be an integer")
		return
	}

	filter := store.Filter{
		State:      query.Get("state"),
		OfficeType: query.Get("office_type"),
		Party:      query.Get("party"),
	}

	politicians, err := h.service.List(ctx, filter, skip, limit)
	if err != nil {
		h.logger.ErrorContext(ctx, "list politicians failed",
			"request_id", middleware.GetRequestID(ctx),
			"error", err,
		)
		httputil.WriteDetail(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, FromModels(politicians))
}

// HandleGet handles GET /politicians/{id} requests.
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httputil.WriteDetail(w, http.StatusUnprocessableEntity, "id must be an integer")
		return
	}

	p, err := h.service.Get(ctx, id)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			httputil.WriteDetail(w, http.StatusNotFound, "Politician not found")
			return
		}
		h.logger.ErrorContext(ctx, "get politician failed",
			"request_id", middleware.GetRequestID(ctx),
			"politician_id", id,
			"error", err,
		)
		httputil.WriteDetail(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, FromModel(p))
}

// HandleCreate handles POST /politicians requests.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req CreatePoliticianRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteDetail(w, http.StatusUnprocessableEntity, "invalid request body")
		return
	}

	p, err := h.service.Create(ctx, req.ToParams())
	if err != nil {
		switch {
		case errors.Is(err, sentinel.ErrInvalid):
			httputil.WriteDetail(w, http.StatusUnprocessableEntity, err.Error())
		case errors.Is(err, sentinel.ErrConflict):
			httputil.WriteDetail(w, http.StatusBadRequest, fmt.Sprintf("Database constraint violation: %v", err))
		default:
			h.logger.ErrorContext(ctx, "create politician failed",
				"request_id", middleware.GetRequestID(ctx),
				"name", req.Name,
				"error", err,
			)
			httputil.WriteDetail(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	h.logger.InfoContext(ctx, "politician created",
		"request_id", middleware.GetRequestID(ctx),
		"politician_id", p.ID,
		"name", p.Name,
	)
	httputil.WriteJSON(w, http.StatusCreated, FromModel(p))
}

func intParam(raw string, fallback int) (int, error) {
	if raw == "" {
		return fallback, nil
	}
	return strconv.Atoi(raw)
}
