package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (a *API) handleCreateStockItem(w http.ResponseWriter, r *http.Request) {
	var payload stockItemCreatePayload
	if !a.bind(w, r, &payload) {
		return
	}

	item, err := a.service.CreateStockItem(r.Context(), payload.toRequest())
	if err != nil {
		a.writeServiceError(w, r, err, errItemNotFound)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (a *API) handleListStockItems(w http.ResponseWriter, r *http.Request) {
	items, err := a.service.ListStockItems(r.Context())
	if err != nil {
		a.writeServiceError(w, r, err, errItemNotFound)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (a *API) handleLowStock(w http.ResponseWriter, r *http.Request) {
	items, err := a.service.ListLowStock(r.Context())
	if err != nil {
		a.writeServiceError(w, r, err, errItemNotFound)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (a *API) handleGetStockItem(w http.ResponseWriter, r *http.Request) {
	item, err := a.service.GetStockItem(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		a.writeServiceError(w, r, err, errItemNotFound)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (a *API) handleUpdateStockItem(w http.ResponseWriter, r *http.Request) {
	var payload stockItemUpdatePayload
	if !a.bind(w, r, &payload) {
		return
	}

	item, err := a.service.UpdateStockItem(r.Context(), chi.URLParam(r, "id"), payload.toRequest())
	if err != nil {
		a.writeServiceError(w, r, err, errItemNotFound)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (a *API) handleDeleteStockItem(w http.ResponseWriter, r *http.Request) {
	if err := a.service.DeleteStockItem(r.Context(), chi.URLParam(r, "id")); err != nil {
		a.writeServiceError(w, r, err, errItemNotFound)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: "Inventory item deleted successfully"})
}
