package handlers

import (
	"net/http"

	"github.com/skywebdev/server/internal/api/respond"
	"github.com/skywebdev/server/internal/domain/pricing"
	"github.com/skywebdev/server/internal/media"
	"github.com/skywebdev/server/internal/validation"
)

type PricingHandler struct {
	Service *pricing.Service
	Env     string
}

func NewPricingHandler(service *pricing.Service, env string) *PricingHandler {
	return &PricingHandler{Service: service, Env: env}
}

func (h *PricingHandler) List(w http.ResponseWriter, r *http.Request) {
	filters := pricing.Filters{
		Category: r.URL.Query().Get("category"),
		IsActive: boolQuery(r, "isActive"),
	}
	page := pageFrom(r, 100)

	items, total, err := h.Service.List(r.Context(), filters, page)
	if err != nil {
		respond.Error(w, r, err, h.Env)
		return
	}
	respond.List(w, items, listMeta(page, total))
}

func (h *PricingHandler) Get(w http.ResponseWriter, r *http.Request) {
	pkg, err := h.Service.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		respond.Error(w, r, err, h.Env)
		return
	}
	respond.OK(w, http.StatusOK, pkg)
}

func (h *PricingHandler) Create(w http.ResponseWriter, r *http.Request) {
	if !isMultipart(r) {
		respond.Fail(w, http.StatusBadRequest, "expected multipart/form-data with an image")
		return
	}
	if err := parseMultipart(w, r); err != nil {
		respond.Error(w, r, err, h.Env)
		return
	}

	params, err := pricingCreateParams(r)
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

	pkg, err := h.Service.Create(r.Context(), params, *upload)
	if err != nil {
		respond.Error(w, r, err, h.Env)
		return
	}
	respond.OKMessage(w, http.StatusCreated, "pricing package created successfully", pkg)
}

func (h *PricingHandler) Update(w http.ResponseWriter, r *http.Request) {
	var params pricing.UpdateParams
	var upload *media.Upload

	if isMultipart(r) {
		if err := parseMultipart(w, r); err != nil {
			respond.Error(w, r, err, h.Env)
			return
		}
		parsed, err := pricingUpdateParams(r)
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

	pkg, err := h.Service.Update(r.Context(), r.PathValue("id"), params, upload)
	if err != nil {
		respond.Error(w, r, err, h.Env)
		return
	}
	respond.OKMessage(w, http.StatusOK, "pricing package updated successfully", pkg)
}

func (h *PricingHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.Delete(r.Context(), r.PathValue("id")); err != nil {
		respond.Error(w, r, err, h.Env)
		return
	}
	respond.OKMessage(w, http.StatusOK, "pricing package deleted successfully", nil)
}

func pricingCreateParams(r *http.Request) (pricing.CreateParams, error) {
	params := pricing.CreateParams{
		Name:        r.FormValue("name"),
		Description: r.FormValue("description"),
		Currency:    r.FormValue("currency"),
		Duration:    r.FormValue("duration"),
		Category:    r.FormValue("category"),
		ButtonText:  r.FormValue("buttonText"),
	}
	price, err := formFloat(r, "price")
	if err != nil {
		return params, err
	}
	params.Price = price
	if err := validation.DecodeString("features", r.FormValue("features"), &params.Features); err != nil {
		return params, err
	}
	if err := validation.DecodeString("stack", r.FormValue("stack"), &params.Stack); err != nil {
		return params, err
	}
	popular, err := formBoolPtr(r, "popular")
	if err != nil {
		return params, err
	}
	params.Popular = popular
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

func pricingUpdateParams(r *http.Request) (pricing.UpdateParams, error) {
	params := pricing.UpdateParams{
		Name:        formStringPtr(r, "name"),
		Description: formStringPtr(r, "description"),
		Currency:    formStringPtr(r, "currency"),
		Duration:    formStringPtr(r, "duration"),
		Category:    formStringPtr(r, "category"),
		ButtonText:  formStringPtr(r, "buttonText"),
	}
	price, err := formFloatPtr(r, "price")
	if err != nil {
		return params, err
	}
	params.Price = price
	if hasFormValue(r, "features") {
		var features pricing.FeatureList
		if err := validation.DecodeString("features", r.FormValue("features"), &features); err != nil {
			return params, err
		}
		params.Features = &features
	}
	if hasFormValue(r, "stack") {
		var stack validation.StringList
		if err := validation.DecodeString("stack", r.FormValue("stack"), &stack); err != nil {
			return params, err
		}
		params.Stack = &stack
	}
	popular, err := formBoolPtr(r, "popular")
	if err != nil {
		return params, err
	}
	params.Popular = popular
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
