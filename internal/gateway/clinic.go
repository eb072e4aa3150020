package gateway

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"petclinic-console/internal/model"
)

// ListVets returns every vet. The gateway streams them.
func (c *Client) ListVets(ctx context.Context) ([]model.Vet, error) {
	return CollectStream[model.Vet](ctx, c, "/vets", nil)
}

// GetVet returns one vet.
func (c *Client) GetVet(ctx context.Context, vetID string) (model.Vet, error) {
	var out model.Vet
	err := c.DoJSON(ctx, http.MethodGet, "/vets/"+url.PathEscape(vetID), nil, nil, &out)
	return out, err
}

// DeleteVet removes a vet.
func (c *Client) DeleteVet(ctx context.Context, vetID string) error {
	return c.DoJSON(ctx, http.MethodDelete, "/vets/"+url.PathEscape(vetID), nil, nil, nil)
}

// ListOwners returns every owner. The gateway streams them.
func (c *Client) ListOwners(ctx context.Context) ([]model.Owner, error) {
	return CollectStream[model.Owner](ctx, c, "/owners", nil)
}

// GetOwner returns one owner.
func (c *Client) GetOwner(ctx context.Context, ownerID string) (model.Owner, error) {
	var out model.Owner
	err := c.DoJSON(ctx, http.MethodGet, "/owners/"+url.PathEscape(ownerID), nil, nil, &out)
	return out, err
}

// DeleteOwner removes an owner.
func (c *Client) DeleteOwner(ctx context.Context, ownerID string) error {
	return c.DoJSON(ctx, http.MethodDelete, "/owners/"+url.PathEscape(ownerID), nil, nil, nil)
}

// ListBills returns the bills with status, or every bill when status is
// empty. The gateway streams them.
func (c *Client) ListBills(ctx context.Context, status model.BillStatus) ([]model.Bill, error) {
	return CollectStream[model.Bill](ctx, c, BillsPath(status), nil)
}

// BillsPath returns the stream path of the bill history filtered by status.
func BillsPath(status model.BillStatus) string {
	if status == "" {
		return "/bills"
	}
	return "/bills/" + strings.ToLower(string(status))
}

// GetBill returns one bill.
func (c *Client) GetBill(ctx context.Context, billID string) (model.Bill, error) {
	var out model.Bill
	err := c.DoJSON(ctx, http.MethodGet, "/bills/"+url.PathEscape(billID), nil, nil, &out)
	return out, err
}

// DeleteBill removes a bill.
func (c *Client) DeleteBill(ctx context.Context, billID string) error {
	return c.DoJSON(ctx, http.MethodDelete, "/bills/"+url.PathEscape(billID), nil, nil, nil)
}

// GetCart returns a cart with its products.
func (c *Client) GetCart(ctx context.Context, cartID string) (model.Cart, error) {
	var out model.Cart
	err := c.DoJSON(ctx, http.MethodGet, "/carts/"+url.PathEscape(cartID), nil, nil, &out)
	return out, err
}

// ClearCart removes every product from a cart.
func (c *Client) ClearCart(ctx context.Context, cartID string) error {
	return c.DoJSON(ctx, http.MethodDelete, "/carts/"+url.PathEscape(cartID)+"/clear", nil, nil, nil)
}

// RemoveCartProduct removes one product from a cart.
func (c *Client) RemoveCartProduct(ctx context.Context, cartID, productID string) error {
	path := "/carts/" + url.PathEscape(cartID) + "/" + url.PathEscape(productID)
	return c.DoJSON(ctx, http.MethodDelete, path, nil, nil, nil)
}
