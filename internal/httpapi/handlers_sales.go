package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (a *API) handleCreateSale(w http.ResponseWriter, r *http.Request) {
	var payload saleCreatePayload
	if !a.bind(w, r, &payload) {
		return
	}

	sale, err := a.service.CreateSale(r.Context(), payload.toRequest())
	if err != nil {
		a.writeServiceError(w, r, err, errSaleNotFound)
		return
	}
	writeJSON(w, http.StatusOK, sale)
}

func (a *API) handleListSales(w http.ResponseWriter, r *http.Request) {
	sales, err := a.service.ListSales(r.Context())
	if err != nil {
		a.writeServiceError(w, r, err, errSaleNotFound)
		return
	}
	writeJSON(w, http.StatusOK, sales)
}

func (a *API) handleGetSale(w http.ResponseWriter, r *http.Request) {
	sale, err := a.service.GetSale(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		a.writeServiceError(w, r, err, errSaleNotFound)
		return
	}
	writeJSON(w, http.StatusOK, sale)
}

func (a *API) handleUpdateSale(w http.ResponseWriter, r *http.Request) {
	var payload saleUpdatePayload
	if !a.bind(w, r, &payload) {
		return
	}

	sale, err := a.service.UpdateSale(r.Context(), chi.URLParam(r, "id"), payload.toRequest())
	if err != nil {
		a.writeServiceError(w, r, err, errSaleNotFound)
		return
	}
	writeJSON(w, http.StatusOK, sale)
}

func (a *API) handleDeleteSale(w http.ResponseWriter, r *http.Request) {
	if err := a.service.DeleteSale(r.Context(), chi.URLParam(r, "id")); err != nil {
		a.writeServiceError(w, r, err, errSaleNotFound)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: "Transaction deleted successfully"})
}
