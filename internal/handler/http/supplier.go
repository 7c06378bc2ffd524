package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/fornecedor-api/internal/logger"
	"github.com/MKhiriev/fornecedor-api/internal/utils"
	"github.com/MKhiriev/fornecedor-api/models"
)

const supplierLocationPrefix = "/fornecedor/"

func (h *Handler) listSuppliers(w http.ResponseWriter, r *http.Request) {
	suppliers, err := h.services.SupplierService.List(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	// an empty table is still 200 with []
	if suppliers == nil {
		suppliers = []models.Supplier{}
	}

	utils.WriteJSON(w, suppliers, http.StatusOK)
}

func (h *Handler) getSupplier(w http.ResponseWriter, r *http.Request) {
	supplier, err := h.services.SupplierService.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, supplier, http.StatusOK)
}

func (h *Handler) createSupplier(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	var supplier models.Supplier
	if err := utils.DecodeJSON(r, &supplier); err != nil {
		log.Err(err).Msg(msgInvalidJSON)
		http.Error(w, msgInvalidJSON, http.StatusBadRequest)
		return
	}

	created, err := h.services.SupplierService.Create(r.Context(), supplier)
	if err != nil {
		writeError(w, r, err)
		return
	}

	log.Info().Str("id", created.ID).Msg("supplier created")
	w.Header().Set("Location", supplierLocationPrefix+created.ID)
	utils.WriteJSON(w, created, http.StatusCreated)
}

// updateSupplier fully replaces a supplier. The id always comes from the
// path; an id in the body is ignored.
func (h *Handler) updateSupplier(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	var supplier models.Supplier
	if err := utils.DecodeJSON(r, &supplier); err != nil {
		log.Err(err).Msg(msgInvalidJSON)
		http.Error(w, msgInvalidJSON, http.StatusBadRequest)
		return
	}
	supplier.ID = chi.URLParam(r, "id")

	if err := h.services.SupplierService.Update(r.Context(), supplier); err != nil {
		writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) deleteSupplier(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.services.SupplierService.Delete(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}

	logger.FromRequest(r).Info().Str("id", id).Msg("supplier deleted")
	w.WriteHeader(http.StatusNoContent)
}
