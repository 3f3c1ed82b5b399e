package handlers

import (
	"net/http"

	"github.com/skywebdev/server/internal/api/respond"
	"github.com/skywebdev/server/internal/domain/enrollments"
)

type EnrollmentsHandler struct {
	Service *enrollments.Service
	Env     string
}

func NewEnrollmentsHandler(service *enrollments.Service, env string) *EnrollmentsHandler {
	return &EnrollmentsHandler{Service: service, Env: env}
}

// Apply is the public intake endpoint for internship applications.
func (h *EnrollmentsHandler) Apply(w http.ResponseWriter, r *http.Request) {
	var params enrollments.ApplyParams
	if err := decodeJSON(w, r, &params); err != nil {
		respond.Error(w, r, err, h.Env)
		return
	}

	enrollment, err := h.Service.Apply(r.Context(), params)
	if err != nil {
		respond.Error(w, r, err, h.Env)
		return
	}
	respond.OKMessage(w, http.StatusCreated, "application submitted successfully", enrollment)
}

func (h *EnrollmentsHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filters := enrollments.Filters{
		InternshipID: query.Get("internshipId"),
		Status:       enrollments.Status(query.Get("status")),
	}
	page := pageFrom(r, 50)

	items, total, err := h.Service.List(r.Context(), filters, page)
	if err != nil {
		respond.Error(w, r, err, h.Env)
		return
	}
	respond.List(w, items, listMeta(page, total))
}

func (h *EnrollmentsHandler) Get(w http.ResponseWriter, r *http.Request) {
	enrollment, err := h.Service.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		respond.Error(w, r, err, h.Env)
		return
	}
	respond.OK(w, http.StatusOK, enrollment)
}

type statusChange struct {
	Status string `json:"status"`
}

func (h *EnrollmentsHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var change statusChange
	if err := decodeJSON(w, r, &change); err != nil {
		respond.Error(w, r, err, h.Env)
		return
	}

	enrollment, err := h.Service.SetStatus(r.Context(), r.PathValue("id"), enrollments.Status(change.Status))
	if err != nil {
		respond.Error(w, r, err, h.Env)
		return
	}
	respond.OKMessage(w, http.StatusOK, "enrollment status updated successfully", enrollment)
}

func (h *EnrollmentsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.Delete(r.Context(), r.PathValue("id")); err != nil {
		respond.Error(w, r, err, h.Env)
		return
	}
	respond.OKMessage(w, http.StatusOK, "enrollment deleted successfully", nil)
}

// Stats summarizes application volume for the admin dashboard.
func (h *EnrollmentsHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Service.Stats(r.Context())
	if err != nil {
		respond.Error(w, r, err, h.Env)
		return
	}
	respond.OK(w, http.StatusOK, stats)
}
