// Package v1 carries the JSON API surface over the alarm domain.
package v1

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/Raimguhinov/alarm-go/internal/alarm"
	"github.com/Raimguhinov/alarm-go/internal/auth"
	"github.com/Raimguhinov/alarm-go/pkg/logger"
	"github.com/emersion/go-ical"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type Handler struct {
	repo         alarm.Repository
	logger       *logger.Logger
	defaultOwner string
	version      string

	// now is swappable in tests; handlers never read the clock elsewhere.
	now func() time.Time
}

func NewHandler(repo alarm.Repository, l *logger.Logger, defaultOwner, version string) *Handler {
	return &Handler{
		repo:         repo,
		logger:       l,
		defaultOwner: defaultOwner,
		version:      version,
		now:          time.Now,
	}
}

func (h *Handler) Register(r chi.Router) {
	r.Get("/", h.welcome)
	r.Get("/health", h.health)

	r.Route("/api/alarms", func(r chi.Router) {
		r.Get("/", h.list)
		r.Post("/", h.create)
		r.Get("/export", h.export)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", h.get)
			r.Put("/", h.update)
			r.Delete("/", h.delete)
			r.Patch("/toggle", h.toggle)
			r.Post("/fire", h.fire)
			r.Post("/snooze", h.snooze)
		})
	})
}

func (h *Handler) owner(r *http.Request) string {
	if owner, ok := auth.OwnerFromContext(r.Context()); ok && owner != "" {
		return owner
	}
	return h.defaultOwner
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	alarms, err := h.repo.List(r.Context(), h.owner(r))
	if err != nil {
		h.respondError(w, "v1 - list", err)
		return
	}

	h.respond(w, http.StatusOK, newAlarmListResponse(alarms, h.now()))
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		h.respondError(w, "v1 - get", err)
		return
	}

	found, err := h.repo.Get(r.Context(), id)
	if err != nil {
		h.respondError(w, "v1 - get", err)
		return
	}

	h.respond(w, http.StatusOK, newAlarmResponse(found, h.now()))
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req alarmRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respond(w, http.StatusBadRequest, errorResponse{Error: "malformed request body"})
		return
	}

	created, err := h.repo.Create(r.Context(), req.toDomain(h.owner(r)))
	if err != nil {
		h.respondError(w, "v1 - create", err)
		return
	}

	h.respond(w, http.StatusCreated, newAlarmResponse(created, h.now()))
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		h.respondError(w, "v1 - update", err)
		return
	}

	var req alarmRequest
	if err = json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respond(w, http.StatusBadRequest, errorResponse{Error: "malformed request body"})
		return
	}

	updated, err := h.repo.Replace(r.Context(), id, req.toDomain(h.owner(r)))
	if err != nil {
		h.respondError(w, "v1 - update", err)
		return
	}

	h.respond(w, http.StatusOK, newAlarmResponse(updated, h.now()))
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		h.respondError(w, "v1 - delete", err)
		return
	}

	deleted, err := h.repo.Delete(r.Context(), id)
	if err != nil {
		h.respondError(w, "v1 - delete", err)
		return
	}

	h.respond(w, http.StatusOK, deleteResponse{
		Message: "Alarm deleted successfully",
		Alarm:   newAlarmResponse(deleted, h.now()),
	})
}

func (h *Handler) toggle(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		h.respondError(w, "v1 - toggle", err)
		return
	}

	toggled, err := h.repo.Toggle(r.Context(), id)
	if err != nil {
		h.respondError(w, "v1 - toggle", err)
		return
	}

	h.respond(w, http.StatusOK, newAlarmResponse(toggled, h.now()))
}

func (h *Handler) fire(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		h.respondError(w, "v1 - fire", err)
		return
	}

	fired, err := h.repo.MarkFired(r.Context(), id, h.now())
	if err != nil {
		h.respondError(w, "v1 - fire", err)
		return
	}

	h.respond(w, http.StatusOK, newAlarmResponse(fired, h.now()))
}

func (h *Handler) snooze(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		h.respondError(w, "v1 - snooze", err)
		return
	}

	snoozed, err := h.repo.MarkSnoozed(r.Context(), id, h.now())
	if err != nil {
		h.respondError(w, "v1 - snooze", err)
		return
	}

	h.respond(w, http.StatusOK, newAlarmResponse(snoozed, h.now()))
}

func (h *Handler) export(w http.ResponseWriter, r *http.Request) {
	alarms, err := h.repo.List(r.Context(), h.owner(r))
	if err != nil {
		h.respondError(w, "v1 - export", err)
		return
	}

	cal := alarm.ExportCalendar(alarms, h.now())

	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="alarms.ics"`)
	if err = ical.NewEncoder(w).Encode(cal); err != nil {
		h.logger.Error("v1 - export - Encode", logger.Err(err))
	}
}

func (h *Handler) health(w http.ResponseWriter, _ *http.Request) {
	h.respond(w, http.StatusOK, healthResponse{
		Status:    "healthy",
		Timestamp: h.now(),
		Service:   "Alarm API",
	})
}

func (h *Handler) welcome(w http.ResponseWriter, _ *http.Request) {
	h.respond(w, http.StatusOK, welcomeResponse{
		Message: "Welcome to Smart Alarm API",
		Version: h.version,
		Endpoints: map[string]string{
			"health": "/health",
			"alarms": "/api/alarms",
			"export": "/api/alarms/export",
		},
	})
}

func (h *Handler) respond(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("v1 - respond - Encode", logger.Err(err))
	}
}

func (h *Handler) respondError(w http.ResponseWriter, op string, err error) {
	var vErr *alarm.ValidationError

	switch {
	case errors.As(err, &vErr):
		h.respond(w, http.StatusBadRequest, errorResponse{Error: vErr.Reason})
	case errors.Is(err, alarm.ErrNotFound):
		h.respond(w, http.StatusNotFound, errorResponse{Error: "Alarm not found"})
	default:
		h.logger.Error("http - "+op, logger.Err(err))
		h.respond(w, http.StatusInternalServerError, errorResponse{Error: "Something went wrong!"})
	}
}

// parseID treats a malformed id the same as a missing record.
func parseID(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		return uuid.Nil, alarm.ErrNotFound
	}
	return id, nil
}
