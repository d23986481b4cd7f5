package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/feedme/feedme/internal/api/service"
	"github.com/feedme/feedme/pkg/httpx"
)

type InventoryHandler struct {
	InventoryService *service.InventoryService
}

type inventoryItemRequest struct {
	IngredientID string     `json:"ingredientId"`
	Quantity     float64    `json:"quantity"`
	Unit         string     `json:"unit"`
	ExpiresAt    *time.Time `json:"expiresAt,omitempty"`
}

// HandleList returns the caller's pantry.
//
//	@Summary	List inventory
//	@Tags		Inventory
//	@Security	BearerAuth
//	@Produce	json
//	@Success	200	{object}	httpx.Envelope	"Inventory items"
//	@Router		/v1/inventory [get].
func (h *InventoryHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ident, _ := IdentityFromContext(r.Context())

	items, err := h.InventoryService.ListInventory(r.Context(), ident.ID)
	if err != nil {
		respondError(w, r, err)
		return
	}

	out := make([]inventoryItemResponse, 0, len(items))
	for _, item := range items {
		out = append(out, toInventoryItemResponse(item))
	}
	httpx.WriteSuccess(w, http.StatusOK, "", out)
}

// HandleAdd adds stock to the caller's pantry.
//
//	@Summary	Add inventory item
//	@Tags		Inventory
//	@Security	BearerAuth
//	@Accept		json
//	@Produce	json
//	@Param		body	body		inventoryItemRequest	true	"Item payload"
//	@Success	201		{object}	httpx.Envelope			"Created item"
//	@Failure	404		{object}	httpx.Envelope			"Unknown ingredient"
//	@Router		/v1/inventory [post].
func (h *InventoryHandler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	ident, _ := IdentityFromContext(r.Context())

	var req inventoryItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteErrorMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	item, err := h.InventoryService.AddItem(r.Context(), ident.ID, req.IngredientID, req.Quantity, req.Unit, req.ExpiresAt)
	if err != nil {
		respondError(w, r, err)
		return
	}
	httpx.WriteSuccess(w, http.StatusCreated, "Inventory item added successfully", toInventoryItemResponse(item))
}

// HandleUpdate adjusts one of the caller's items.
//
//	@Summary	Update inventory item
//	@Tags		Inventory
//	@Security	BearerAuth
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string					true	"Item id"
//	@Param		body	body		inventoryItemRequest	true	"Fields to update"
//	@Success	200		{object}	httpx.Envelope			"Updated item"
//	@Failure	403		{object}	httpx.Envelope
//	@Failure	404		{object}	httpx.Envelope
//	@Router		/v1/inventory/{id} [put].
func (h *InventoryHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ident, _ := IdentityFromContext(r.Context())

	var req inventoryItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteErrorMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	item, err := h.InventoryService.UpdateItem(r.Context(), ident.ID, r.PathValue("id"), req.Quantity, req.Unit, req.ExpiresAt)
	if err != nil {
		respondError(w, r, err)
		return
	}
	httpx.WriteSuccess(w, http.StatusOK, "Inventory item updated successfully", toInventoryItemResponse(item))
}

// HandleRemove deletes one of the caller's items.
//
//	@Summary	Remove inventory item
//	@Tags		Inventory
//	@Security	BearerAuth
//	@Produce	json
//	@Param		id	path		string	true	"Item id"
//	@Success	200	{object}	httpx.Envelope
//	@Failure	403	{object}	httpx.Envelope
//	@Failure	404	{object}	httpx.Envelope
//	@Router		/v1/inventory/{id} [delete].
func (h *InventoryHandler) HandleRemove(w http.ResponseWriter, r *http.Request) {
	ident, _ := IdentityFromContext(r.Context())

	if err := h.InventoryService.RemoveItem(r.Context(), ident.ID, r.PathValue("id")); err != nil {
		respondError(w, r, err)
		return
	}
	httpx.WriteSuccess(w, http.StatusOK, "Inventory item removed successfully", nil)
}
