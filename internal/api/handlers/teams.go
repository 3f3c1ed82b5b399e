package handlers

import (
	"net/http"

	"github.com/skywebdev/server/internal/api/respond"
	"github.com/skywebdev/server/internal/domain/teams"
	"github.com/skywebdev/server/internal/media"
	"github.com/skywebdev/server/internal/validation"
)

type TeamsHandler struct {
	Service *teams.Service
	Env     string
}

func NewTeamsHandler(service *teams.Service, env string) *TeamsHandler {
	return &TeamsHandler{Service: service, Env: env}
}

func (h *TeamsHandler) List(w http.ResponseWriter, r *http.Request) {
	filters := teams.Filters{IsActive: boolQuery(r, "isActive")}
	page := pageFrom(r, 100)

	members, total, err := h.Service.List(r.Context(), filters, page)
	if err != nil {
		respond.Error(w, r, err, h.Env)
		return
	}
	respond.List(w, members, listMeta(page, total))
}

func (h *TeamsHandler) Get(w http.ResponseWriter, r *http.Request) {
	member, err := h.Service.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		respond.Error(w, r, err, h.Env)
		return
	}
	respond.OK(w, http.StatusOK, member)
}

func (h *TeamsHandler) Create(w http.ResponseWriter, r *http.Request) {
	if !isMultipart(r) {
		respond.Fail(w, http.StatusBadRequest, "expected multipart/form-data with an image")
		return
	}
	if err := parseMultipart(w, r); err != nil {
		respond.Error(w, r, err, h.Env)
		return
	}

	params, err := teamCreateParams(r)
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

	member, err := h.Service.Create(r.Context(), params, *upload)
	if err != nil {
		respond.Error(w, r, err, h.Env)
		return
	}
	respond.OKMessage(w, http.StatusCreated, "team member created successfully", member)
}

func (h *TeamsHandler) Update(w http.ResponseWriter, r *http.Request) {
	var params teams.UpdateParams
	var upload *media.Upload

	if isMultipart(r) {
		if err := parseMultipart(w, r); err != nil {
			respond.Error(w, r, err, h.Env)
			return
		}
		parsed, err := teamUpdateParams(r)
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

	member, err := h.Service.Update(r.Context(), r.PathValue("id"), params, upload)
	if err != nil {
		respond.Error(w, r, err, h.Env)
		return
	}
	respond.OKMessage(w, http.StatusOK, "team member updated successfully", member)
}

func (h *TeamsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.Delete(r.Context(), r.PathValue("id")); err != nil {
		respond.Error(w, r, err, h.Env)
		return
	}
	respond.OKMessage(w, http.StatusOK, "team member deleted successfully", nil)
}

func teamCreateParams(r *http.Request) (teams.CreateParams, error) {
	params := teams.CreateParams{
		Name: r.FormValue("name"),
		Role: r.FormValue("role"),
		Bio:  r.FormValue("bio"),
	}
	if err := validation.DecodeString("skills", r.FormValue("skills"), &params.Skills); err != nil {
		return params, err
	}
	if err := validation.DecodeString("social", r.FormValue("social"), &params.Social); err != nil {
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

func teamUpdateParams(r *http.Request) (teams.UpdateParams, error) {
	params := teams.UpdateParams{
		Name: formStringPtr(r, "name"),
		Role: formStringPtr(r, "role"),
		Bio:  formStringPtr(r, "bio"),
	}
	if hasFormValue(r, "skills") {
		var skills validation.StringList
		if err := validation.DecodeString("skills", r.FormValue("skills"), &skills); err != nil {
			return params, err
		}
		params.Skills = &skills
	}
	if hasFormValue(r, "social") {
		var social teams.SocialLinks
		if err := validation.DecodeString("social", r.FormValue("social"), &social); err != nil {
			return params, err
		}
		params.Social = &social
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
