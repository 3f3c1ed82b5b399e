package handlers

import (
	"net/http"

	"github.com/skywebdev/server/internal/api/respond"
	"github.com/skywebdev/server/internal/domain/projects"
	"github.com/skywebdev/server/internal/media"
	"github.com/skywebdev/server/internal/validation"
)

type ProjectsHandler struct {
	Service *projects.Service
	Env     string
}

func NewProjectsHandler(service *projects.Service, env string) *ProjectsHandler {
	return &ProjectsHandler{Service: service, Env: env}
}

func (h *ProjectsHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filters := projects.Filters{
		Status:   query.Get("status"),
		Category: query.Get("category"),
		IsActive: boolQuery(r, "isActive"),
		Search:   query.Get("search"),
	}
	page := pageFrom(r, 100)

	items, total, err := h.Service.List(r.Context(), filters, page)
	if err != nil {
		respond.Error(w, r, err, h.Env)
		return
	}
	respond.List(w, items, listMeta(page, total))
}

func (h *ProjectsHandler) Get(w http.ResponseWriter, r *http.Request) {
	project, err := h.Service.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		respond.Error(w, r, err, h.Env)
		return
	}
	respond.OK(w, http.StatusOK, project)
}

func (h *ProjectsHandler) Create(w http.ResponseWriter, r *http.Request) {
	if !isMultipart(r) {
		respond.Fail(w, http.StatusBadRequest, "expected multipart/form-data with an image")
		return
	}
	if err := parseMultipart(w, r); err != nil {
		respond.Error(w, r, err, h.Env)
		return
	}

	params, err := projectCreateParams(r)
	if err != nil {
		respond.Error(w, r, err, h.Env)
		return
	}

	upload, err := formUpload(r, "image")
	if err != nil {
		respond.Error(w, r, err, h.Env)
		return
	}
	if upload == nil {
		respond.Fail(w, http.StatusBadRequest, "image is required")
		return
	}

	project, err := h.Service.Create(r.Context(), params, *upload)
	if err != nil {
		respond.Error(w, r, err, h.Env)
		return
	}
	respond.OKMessage(w, http.StatusCreated, "project created successfully", project)
}

func (h *ProjectsHandler) Update(w http.ResponseWriter, r *http.Request) {
	var params projects.UpdateParams
	var upload *media.Upload

	if isMultipart(r) {
		if err := parseMultipart(w, r); err != nil {
			respond.Error(w, r, err, h.Env)
			return
		}
		parsed, err := projectUpdateParams(r)
		if err != nil {
			respond.Error(w, r, err, h.Env)
			return
		}
		params = parsed
		upload, err = formUpload(r, "image")
		if err != nil {
			respond.Error(w, r, err, h.Env)
			return
		}
	} else if err := decodeJSON(w, r, &params); err != nil {
		respond.Error(w, r, err, h.Env)
		return
	}

	project, err := h.Service.Update(r.Context(), r.PathValue("id"), params, upload)
	if err != nil {
		respond.Error(w, r, err, h.Env)
		return
	}
	respond.OKMessage(w, http.StatusOK, "project updated successfully", project)
}

func (h *ProjectsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.Delete(r.Context(), r.PathValue("id")); err != nil {
		respond.Error(w, r, err, h.Env)
		return
	}
	respond.OKMessage(w, http.StatusOK, "project deleted successfully", nil)
}

func projectCreateParams(r *http.Request) (projects.CreateParams, error) {
	params := projects.CreateParams{
		Title:       r.FormValue("title"),
		Description: r.FormValue("description"),
		ProjectURL:  r.FormValue("projectUrl"),
		Status:      r.FormValue("status"),
		Category:    r.FormValue("category"),
	}
	if err := validation.DecodeString("tags", r.FormValue("tags"), &params.Tags); err != nil {
		return params, err
	}
	order, err := formInt(r, "order")
	if err != nil {
		return params, err
	}
	params.Order = order
	isActive, err := formBoolPtr(r, "isActive")
	if err != nil {
		return params, err
	}
	params.IsActive = isActive
	return params, nil
}

func projectUpdateParams(r *http.Request) (projects.UpdateParams, error) {
	params := projects.UpdateParams{
		Title:       formStringPtr(r, "title"),
		Description: formStringPtr(r, "description"),
		ProjectURL:  formStringPtr(r, "projectUrl"),
		Status:      formStringPtr(r, "status"),
		Category:    formStringPtr(r, "category"),
	}
	if hasFormValue(r, "tags") {
		var tags validation.StringList
		if err := validation.DecodeString("tags", r.FormValue("tags"), &tags); err != nil {
			return params, err
		}
		params.Tags = &tags
	}
	order, err := formIntPtr(r, "order")
	if err != nil {
		return params, err
	}
	params.Order = order
	isActive, err := formBoolPtr(r, "isActive")
	if err != nil {
		return params, err
	}
	params.IsActive = isActive
	return params, nil
}
