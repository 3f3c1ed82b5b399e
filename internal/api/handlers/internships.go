package handlers

import (
	"net/http"

	"github.com/skywebdev/server/internal/api/respond"
	"github.com/skywebdev/server/internal/domain/enrollments"
	"github.com/skywebdev/server/internal/domain/internships"
	"github.com/skywebdev/server/internal/media"
	"github.com/skywebdev/server/internal/validation"
)

type InternshipsHandler struct {
	Service     *internships.Service
	Enrollments *enrollments.Service
	Env         string
}

func NewInternshipsHandler(service *internships.Service, enrollmentSvc *enrollments.Service, env string) *InternshipsHandler {
	return &InternshipsHandler{Service: service, Enrollments: enrollmentSvc, Env: env}
}

func (h *InternshipsHandler) List(w http.ResponseWriter, r *http.Request) {
	filters := internships.Filters{
		IsActive: boolQuery(r, "isActive"),
		Search:   r.URL.Query().Get("search"),
	}
	page := pageFrom(r, 10)

	items, total, err := h.Service.List(r.Context(), filters, page)
	if err != nil {
		respond.Error(w, r, err, h.Env)
		return
	}
	respond.List(w, items, listMeta(page, total))
}

func (h *InternshipsHandler) Get(w http.ResponseWriter, r *http.Request) {
	posting, err := h.Service.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		respond.Error(w, r, err, h.Env)
		return
	}
	respond.OK(w, http.StatusOK, posting)
}

// ListEnrollments returns the applications for one posting.
func (h *InternshipsHandler) ListEnrollments(w http.ResponseWriter, r *http.Request) {
	internshipID := r.PathValue("id")
	if _, err := h.Service.Get(r.Context(), internshipID); err != nil {
		respond.Error(w, r, err, h.Env)
		return
	}

	filters := enrollments.Filters{
		InternshipID: internshipID,
		Status:       enrollments.Status(r.URL.Query().Get("status")),
	}
	page := pageFrom(r, 50)

	items, total, err := h.Enrollments.List(r.Context(), filters, page)
	if err != nil {
		respond.Error(w, r, err, h.Env)
		return
	}
	respond.List(w, items, listMeta(page, total))
}

func (h *InternshipsHandler) Create(w http.ResponseWriter, r *http.Request) {
	if !isMultipart(r) {
		respond.Fail(w, http.StatusBadRequest, "expected multipart/form-data with an image")
		return
	}
	if err := parseMultipart(w, r); err != nil {
		respond.Error(w, r, err, h.Env)
		return
	}

	params, err := internshipCreateParams(r)
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

	posting, err := h.Service.Create(r.Context(), params, *upload)
	if err != nil {
		respond.Error(w, r, err, h.Env)
		return
	}
	respond.OKMessage(w, http.StatusCreated, "internship created successfully", posting)
}

func (h *InternshipsHandler) Update(w http.ResponseWriter, r *http.Request) {
	var params internships.UpdateParams
	var upload *media.Upload

	if isMultipart(r) {
		if err := parseMultipart(w, r); err != nil {
			respond.Error(w, r, err, h.Env)
			return
		}
		parsed, err := internshipUpdateParams(r)
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

	posting, err := h.Service.Update(r.Context(), r.PathValue("id"), params, upload)
	if err != nil {
		respond.Error(w, r, err, h.Env)
		return
	}
	respond.OKMessage(w, http.StatusOK, "internship updated successfully", posting)
}

func (h *InternshipsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.Delete(r.Context(), r.PathValue("id")); err != nil {
		respond.Error(w, r, err, h.Env)
		return
	}
	respond.OKMessage(w, http.StatusOK, "internship and its enrollments deleted successfully", nil)
}

func internshipCreateParams(r *http.Request) (internships.CreateParams, error) {
	params := internships.CreateParams{
		Title:               r.FormValue("title"),
		Description:         r.FormValue("description"),
		Duration:            r.FormValue("duration"),
		Stipend:             r.FormValue("stipend"),
		Location:            r.FormValue("location"),
		Eligibility:         r.FormValue("eligibility"),
		StartDate:           r.FormValue("startDate"),
		ApplicationDeadline: r.FormValue("applicationDeadline"),
	}
	if err := validation.DecodeString("skillsRequired", r.FormValue("skillsRequired"), &params.SkillsRequired); err != nil {
		return params, err
	}
	if err := validation.DecodeString("responsibilities", r.FormValue("responsibilities"), &params.Responsibilities); err != nil {
		return params, err
	}
	certificate, err := formBoolPtr(r, "certificate")
	if err != nil {
		return params, err
	}
	params.Certificate = certificate
	isActive, err := formBoolPtr(r, "isActive")
	if err != nil {
		return params, err
	}
	params.IsActive = isActive
	return params, nil
}

func internshipUpdateParams(r *http.Request) (internships.UpdateParams, error) {
	params := internships.UpdateParams{
		Title:               formStringPtr(r, "title"),
		Description:         formStringPtr(r, "description"),
		Duration:            formStringPtr(r, "duration"),
		Stipend:             formStringPtr(r, "stipend"),
		Location:            formStringPtr(r, "location"),
		Eligibility:         formStringPtr(r, "eligibility"),
		StartDate:           formStringPtr(r, "startDate"),
		ApplicationDeadline: formStringPtr(r, "applicationDeadline"),
	}
	if hasFormValue(r, "skillsRequired") {
		var skills validation.StringList
		if err := validation.DecodeString("skillsRequired", r.FormValue("skillsRequired"), &skills); err != nil {
			return params, err
		}
		params.SkillsRequired = &skills
	}
	if hasFormValue(r, "responsibilities") {
		var resp validation.StringList
		if err := validation.DecodeString("responsibilities", r.FormValue("responsibilities"), &resp); err != nil {
			return params, err
		}
		params.Responsibilities = &resp
	}
	certificate, err := formBoolPtr(r, "certificate")
	if err != nil {
		return params, err
	}
	params.Certificate = certificate
	isActive, err := formBoolPtr(r, "isActive")
	if err != nil {
		return params, err
	}
	params.IsActive = isActive
	return params, nil
}
