package integration

import (
	"context"
	"net/http"
	"testing"

	"petclinic-console/internal/gateway"
	"petclinic-console/internal/model"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGatewayAPI_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	testDB := SetupTestDB(t)
	srv := StartGateway(t, testDB)
	ctx := context.Background()

	t.Run("Health check", func(t *testing.T) {
		resp, err := http.Get(srv.URL + "/health")
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	for _, version := range []gateway.Version{gateway.V1, gateway.V2} {
		client := NewClient(t, srv, version)

		t.Run(version.Prefix()+" list inventories", func(t *testing.T) {
			inventories, err := client.ListInventories(ctx, model.InventoryQuery{})
			require.NoError(t, err)
			require.Len(t, inventories, 3)

			assert.Equal(t, "INV-0001", inventories[0].InventoryCode)
			assert.Equal(t, "Medications", inventories[0].InventoryName)
		})

		t.Run(version.Prefix()+" search by lower-case code", func(t *testing.T) {
			inventories, err := client.ListInventories(ctx, model.InventoryQuery{InventoryCode: "inv-0002"})
			require.NoError(t, err)
			require.Len(t, inventories, 1)
			assert.Equal(t, "inv-surgical", inventories[0].InventoryID)
		})
	}

	client := NewClient(t, srv, gateway.V1)

	t.Run("Pagination", func(t *testing.T) {
		page, err := client.ListInventories(ctx, model.InventoryQuery{Page: 1, Size: 2})
		require.NoError(t, err)
		require.Len(t, page, 1)
		assert.Equal(t, "INV-0003", page[0].InventoryCode)
	})

	t.Run("Inventory types", func(t *testing.T) {
		types, err := client.ListInventoryTypes(ctx)
		require.NoError(t, err)
		assert.Len(t, types, 3)
	})

	t.Run("Products with quantity filter", func(t *testing.T) {
		qty := 40
		products, err := client.ListProducts(ctx, "inv-medication", model.ProductQuery{ProductQuantity: &qty})
		require.NoError(t, err)
		require.Len(t, products, 1)
		assert.Equal(t, "Amoxicillin", products[0].ProductName)
		assert.Equal(t, 18.00, products[0].ProductSalePrice)
	})

	t.Run("Products of unknown inventory", func(t *testing.T) {
		_, err := client.ListProducts(ctx, "inv-missing", model.ProductQuery{})
		assert.ErrorIs(t, err, gateway.ErrNotFound)
	})

	t.Run("Create inventory", func(t *testing.T) {
		inv, err := client.CreateInventory(ctx, model.InventoryRequest{
			InventoryName:        "Grooming",
			InventoryType:        "Equipment",
			InventoryDescription: "Brushes and clippers",
		})
		require.NoError(t, err)
		assert.NotEmpty(t, inv.InventoryID)
		assert.Equal(t, "INV-0004", inv.InventoryCode)
	})

	t.Run("Create inventory validation", func(t *testing.T) {
		_, err := client.CreateInventory(ctx, model.InventoryRequest{InventoryName: "Nameless"})

		var apiErr *gateway.APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, http.StatusUnprocessableEntity, apiErr.StatusCode)
		assert.Contains(t, apiErr.Error(), "InventoryType is required")
	})

	t.Run("Visit status", func(t *testing.T) {
		v, err := client.UpdateVisitStatus(ctx, "visit-1", model.VisitConfirmed)
		require.NoError(t, err)
		assert.Equal(t, model.VisitConfirmed, v.Status)

		v, err = client.AdvanceVisit(ctx, v)
		require.NoError(t, err)
		assert.Equal(t, model.VisitCompleted, v.Status)
	})

	t.Run("Visit status of unknown visit", func(t *testing.T) {
		_, err := client.UpdateVisitStatus(ctx, "visit-missing", model.VisitCancelled)
		assert.ErrorIs(t, err, gateway.ErrNotFound)
	})

	t.Run("Delete unknown visit", func(t *testing.T) {
		err := client.DeleteVisit(ctx, "visit-missing")
		assert.ErrorIs(t, err, gateway.ErrNotFound)
	})

	t.Run("Wrong API key", func(t *testing.T) {
		bad, err := gateway.New(gateway.Options{BaseURL: srv.URL, APIKey: "nope"}, zerolog.Nop())
		require.NoError(t, err)

		_, err = bad.ListInventoryTypes(ctx)
		var apiErr *gateway.APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	})
}
