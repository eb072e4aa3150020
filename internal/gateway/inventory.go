package gateway

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"petclinic-console/internal/model"
)

// ListInventories returns one page of inventories matching q.
func (c *Client) ListInventories(ctx context.Context, q model.InventoryQuery) ([]model.Inventory, error) {
	var out []model.Inventory
	if err := c.DoJSON(ctx, http.MethodGet, "/inventories", InventoryValues(q), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// InventoryValues encodes q the way the inventory search form does: the code
// is upper-cased and empty filters are left out.
func InventoryValues(q model.InventoryQuery) url.Values {
	v := url.Values{}
	v.Set("page", strconv.Itoa(q.Page))
	if q.Size > 0 {
		v.Set("size", strconv.Itoa(q.Size))
	}
	setIf(v, "inventoryCode", strings.ToUpper(strings.TrimSpace(q.InventoryCode)))
	setIf(v, "inventoryName", strings.TrimSpace(q.InventoryName))
	setIf(v, "inventoryType", strings.TrimSpace(q.InventoryType))
	setIf(v, "inventoryDescription", strings.TrimSpace(q.InventoryDescription))
	return v
}

// GetInventory returns one inventory.
func (c *Client) GetInventory(ctx context.Context, inventoryID string) (model.Inventory, error) {
	var out model.Inventory
	err := c.DoJSON(ctx, http.MethodGet, "/inventories/"+url.PathEscape(inventoryID), nil, nil, &out)
	return out, err
}

// CreateInventory adds an inventory.
func (c *Client) CreateInventory(ctx context.Context, req model.InventoryRequest) (model.Inventory, error) {
	var out model.Inventory
	err := c.DoJSON(ctx, http.MethodPost, "/inventories", nil, req, &out)
	return out, err
}

// UpdateInventory replaces an inventory's editable fields.
func (c *Client) UpdateInventory(ctx context.Context, inventoryID string, req model.InventoryRequest) (model.Inventory, error) {
	var out model.Inventory
	err := c.DoJSON(ctx, http.MethodPut, "/inventories/"+url.PathEscape(inventoryID), nil, req, &out)
	return out, err
}

// DeleteInventory removes an inventory.
func (c *Client) DeleteInventory(ctx context.Context, inventoryID string) error {
	return c.DoJSON(ctx, http.MethodDelete, "/inventories/"+url.PathEscape(inventoryID), nil, nil, nil)
}

// DeleteAllInventories removes every inventory.
func (c *Client) DeleteAllInventories(ctx context.Context) error {
	return c.DoJSON(ctx, http.MethodDelete, "/inventories", nil, nil, nil)
}

// ListInventoryTypes returns every inventory type.
func (c *Client) ListInventoryTypes(ctx context.Context) ([]model.InventoryType, error) {
	var out []model.InventoryType
	if err := c.DoJSON(ctx, http.MethodGet, "/inventories/types", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// AddInventoryType creates an inventory type.
func (c *Client) AddInventoryType(ctx context.Context, name string) (model.InventoryType, error) {
	var out model.InventoryType
	err := c.DoJSON(ctx, http.MethodPost, "/inventories/types", nil, model.InventoryType{Type: name}, &out)
	return out, err
}

// ListProducts returns the products of an inventory matching q.
func (c *Client) ListProducts(ctx context.Context, inventoryID string, q model.ProductQuery) ([]model.InventoryProduct, error) {
	var out []model.InventoryProduct
	if err := c.DoJSON(ctx, http.MethodGet, productsPath(inventoryID), ProductValues(q), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ProductValues encodes q. A product quantity filter is only sent when it is
// positive.
func ProductValues(q model.ProductQuery) url.Values {
	v := url.Values{}
	if q.Page > 0 {
		v.Set("page", strconv.Itoa(q.Page))
	}
	if q.Size > 0 {
		v.Set("size", strconv.Itoa(q.Size))
	}
	setIf(v, "productName", strings.TrimSpace(q.ProductName))
	if q.ProductQuantity != nil && *q.ProductQuantity > 0 {
		v.Set("productQuantity", strconv.Itoa(*q.ProductQuantity))
	}
	setFloat(v, "minPrice", q.MinPrice)
	setFloat(v, "maxPrice", q.MaxPrice)
	setFloat(v, "minSalePrice", q.MinSalePrice)
	setFloat(v, "maxSalePrice", q.MaxSalePrice)
	return v
}

// GetProduct returns one product of an inventory.
func (c *Client) GetProduct(ctx context.Context, inventoryID, productID string) (model.InventoryProduct, error) {
	var out model.InventoryProduct
	err := c.DoJSON(ctx, http.MethodGet, productPath(inventoryID, productID), nil, nil, &out)
	return out, err
}

// CreateProduct adds a product to an inventory.
func (c *Client) CreateProduct(ctx context.Context, inventoryID string, p model.InventoryProduct) (model.InventoryProduct, error) {
	var out model.InventoryProduct
	err := c.DoJSON(ctx, http.MethodPost, productsPath(inventoryID), nil, p, &out)
	return out, err
}

// UpdateProduct replaces a product of an inventory.
func (c *Client) UpdateProduct(ctx context.Context, inventoryID, productID string, p model.InventoryProduct) (model.InventoryProduct, error) {
	var out model.InventoryProduct
	err := c.DoJSON(ctx, http.MethodPut, productPath(inventoryID, productID), nil, p, &out)
	return out, err
}

// DeleteProduct removes a product from an inventory.
func (c *Client) DeleteProduct(ctx context.Context, inventoryID, productID string) error {
	return c.DoJSON(ctx, http.MethodDelete, productPath(inventoryID, productID), nil, nil, nil)
}

func productsPath(inventoryID string) string {
	return "/inventories/" + url.PathEscape(inventoryID) + "/products"
}

func productPath(inventoryID, productID string) string {
	return productsPath(inventoryID) + "/" + url.PathEscape(productID)
}

func setIf(v url.Values, key, value string) {
	if value != "" {
		v.Set(key, value)
	}
}

func setFloat(v url.Values, key string, f *float64) {
	if f != nil {
		v.Set(key, strconv.FormatFloat(*f, 'f', -1, 64))
	}
}
