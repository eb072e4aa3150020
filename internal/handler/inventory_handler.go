package handler

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"

	"petclinic-console/internal/model"
	"petclinic-console/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// InventoryHandler handles inventory-related HTTP requests.
type InventoryHandler struct {
	service service.InventoryService
	logger  zerolog.Logger
}

// NewInventoryHandler creates a new inventory handler.
func NewInventoryHandler(service service.InventoryService, logger zerolog.Logger) *InventoryHandler {
	return &InventoryHandler{
		service: service,
		logger:  logger.With().Str("handler", "inventory").Logger(),
	}
}

// List handles GET /inventories requests with pagination and search filters.
func (h *InventoryHandler) List(w http.ResponseWriter, r *http.Request) {
	values := r.URL.Query()

	page, err := intParam(values, "page")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid page parameter", h.logger)
		return
	}
	size, err := intParam(values, "size")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid size parameter", h.logger)
		return
	}

	inventories, err := h.service.List(r.Context(), model.InventoryQuery{
		Page:                 page,
		Size:                 size,
		InventoryCode:        values.Get("inventoryCode"),
		InventoryName:        values.Get("inventoryName"),
		InventoryType:        values.Get("inventoryType"),
		InventoryDescription: values.Get("inventoryDescription"),
	})
	if err != nil {
		writeDomainError(w, err, "failed to retrieve inventories", h.logger)
		return
	}

	writeList(w, r, inventories, h.logger)
}

// Types handles GET /inventories/types requests.
func (h *InventoryHandler) Types(w http.ResponseWriter, r *http.Request) {
	types, err := h.service.ListTypes(r.Context())
	if err != nil {
		writeDomainError(w, err, "failed to retrieve inventory types", h.logger)
		return
	}

	writeList(w, r, types, h.logger)
}

// Create handles POST /inventories requests.
func (h *InventoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.InventoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, model.ErrorResponse{
			Error:   model.ErrCodeInvalidJSON,
			Message: "invalid request body",
		})
		return
	}

	inv, err := h.service.Create(r.Context(), &req)
	if err != nil {
		writeDomainError(w, err, "failed to create inventory", h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, inv)
}

// Delete handles DELETE /inventories/{inventoryId} requests.
func (h *InventoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	inventoryID := chi.URLParam(r, "inventoryId")

	if err := h.service.Delete(r.Context(), inventoryID); err != nil {
		writeDomainError(w, err, "failed to delete inventory", h.logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Products handles GET /inventories/{inventoryId}/products requests.
func (h *InventoryHandler) Products(w http.ResponseWriter, r *http.Request) {
	inventoryID := chi.URLParam(r, "inventoryId")

	q, err := productQuery(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error(), h.logger)
		return
	}

	products, err := h.service.ListProducts(r.Context(), inventoryID, q)
	if err != nil {
		writeDomainError(w, err, "failed to retrieve products", h.logger)
		return
	}

	writeList(w, r, products, h.logger)
}

// DeleteProduct handles DELETE /inventories/{inventoryId}/products/{productId} requests.
func (h *InventoryHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	inventoryID := chi.URLParam(r, "inventoryId")
	productID := chi.URLParam(r, "productId")

	if err := h.service.DeleteProduct(r.Context(), inventoryID, productID); err != nil {
		writeDomainError(w, err, "failed to delete product", h.logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func productQuery(values url.Values) (model.ProductQuery, error) {
	var (
		q   model.ProductQuery
		err error
	)

	if q.Page, err = intParam(values, "page"); err != nil {
		return q, errInvalidParam("page")
	}
	if q.Size, err = intParam(values, "size"); err != nil {
		return q, errInvalidParam("size")
	}
	q.ProductName = values.Get("productName")

	if raw := values.Get("productQuantity"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return q, errInvalidParam("productQuantity")
		}
		q.ProductQuantity = &n
	}

	floats := []struct {
		name string
		dst  **float64
	}{
		{"minPrice", &q.MinPrice},
		{"maxPrice", &q.MaxPrice},
		{"minSalePrice", &q.MinSalePrice},
		{"maxSalePrice", &q.MaxSalePrice},
	}
	for _, f := range floats {
		raw := values.Get(f.name)
		if raw == "" {
			continue
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return q, errInvalidParam(f.name)
		}
		*f.dst = &v
	}

	return q, nil
}

// intParam returns 0 when the parameter is absent.
func intParam(values url.Values, name string) (int, error) {
	raw := values.Get(name)
	if raw == "" {
		return 0, nil
	}
	return strconv.Atoi(raw)
}

type errInvalidParam string

func (e errInvalidParam) Error() string {
	return "invalid " + string(e) + " parameter"
}
