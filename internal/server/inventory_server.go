package server

import (
	"context"
	"fmt"
	"net/http"

	"card_tracker/internal/domain/entity"
	"card_tracker/internal/domain/service/inventory"
	"card_tracker/internal/domain/value"
	"card_tracker/pkg/errcodes"
	"card_tracker/pkg/httpx/reply"
	"card_tracker/pkg/httpx/req"
	"card_tracker/pkg/lox"
	"card_tracker/pkg/rest"
)

type inventoryService interface {
	Create(ctx context.Context, in inventory.NewItem) (entity.InventoryItem, error)
	Get(ctx context.Context, id value.InventoryID) (entity.InventoryItem, error)
	List(ctx context.Context, status entity.InventoryStatus) ([]entity.InventoryItem, error)
	Update(ctx context.Context, id value.InventoryID, changes inventory.ItemChanges) (entity.InventoryItem, error)
	Delete(ctx context.Context, id value.InventoryID) error
	RecordSale(ctx context.Context, id value.InventoryID, params inventory.SaleParams) (entity.InventoryItem, entity.Sale, error)
}

type InventoryServer struct {
	inventoryService inventoryService
}

func NewInventoryServer(inventoryService inventoryService) InventoryServer {
	return InventoryServer{
		inventoryService: inventoryService,
	}
}

func (s InventoryServer) getV1Inventory(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	status := entity.InventoryStatusAll
	if raw := r.URL.Query().Get("status"); raw != "" {
		status = entity.InventoryStatus(raw)
	}

	if !status.Valid() {
		return invalidArgument(
			fmt.Errorf("unknown status %q", status),
			errcodes.InvalidStatus,
			"status must be one of all, available, sold",
		)
	}

	items, err := s.inventoryService.List(ctx, status)
	if err != nil {
		return fmt.Errorf("inventoryService.List: %w", err)
	}

	reply.JSON(ctx, w, http.StatusOK, lox.Map(items, newRESTInventoryItem))

	return nil
}

func (s InventoryServer) postV1Inventory(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	var request rest.InventoryItemRequest

	if err := req.Read(r, &request); err != nil {
		return fmt.Errorf("req.Read: %w", err)
	}

	purchaseDate, err := parseDate(request.PurchaseDate)
	if err != nil {
		return err
	}

	item, err := s.inventoryService.Create(ctx, inventory.NewItem{
		CardID:             value.CardID(request.CardID),
		CardName:           request.CardName,
		Condition:          request.Condition,
		PurchasePriceCents: *request.PurchasePriceCents,
		Quantity:           request.Quantity,
		PurchaseDate:       purchaseDate,
		Notes:              request.Notes,
	})
	if err != nil {
		return fmt.Errorf("inventoryService.Create: %w", err)
	}

	reply.JSON(ctx, w, http.StatusCreated, newRESTInventoryItem(item))

	return nil
}

func (s InventoryServer) getV1InventoryItem(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	id, err := parseInventoryID(r)
	if err != nil {
		return err
	}

	item, err := s.inventoryService.Get(ctx, id)
	if err != nil {
		return fmt.Errorf("inventoryService.Get: %w", err)
	}

	reply.JSON(ctx, w, http.StatusOK, newRESTInventoryItem(item))

	return nil
}

func (s InventoryServer) putV1InventoryItem(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	id, err := parseInventoryID(r)
	if err != nil {
		return err
	}

	var request rest.InventoryItemUpdate

	if err = req.Read(r, &request); err != nil {
		return fmt.Errorf("req.Read: %w", err)
	}

	changes := inventory.ItemChanges{
		CardName:           request.CardName,
		Condition:          request.Condition,
		PurchasePriceCents: request.PurchasePriceCents,
		Quantity:           request.Quantity,
		Notes:              request.Notes,
	}

	if request.PurchaseDate != nil {
		d, dateErr := parseDate(*request.PurchaseDate)
		if dateErr != nil {
			return dateErr
		}

		changes.PurchaseDate = &d
	}

	item, err := s.inventoryService.Update(ctx, id, changes)
	if err != nil {
		return fmt.Errorf("inventoryService.Update: %w", err)
	}

	reply.JSON(ctx, w, http.StatusOK, newRESTInventoryItem(item))

	return nil
}

func (s InventoryServer) deleteV1InventoryItem(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	id, err := parseInventoryID(r)
	if err != nil {
		return err
	}

	if err = s.inventoryService.Delete(ctx, id); err != nil {
		return fmt.Errorf("inventoryService.Delete: %w", err)
	}

	reply.NoContent(w)

	return nil
}

func (s InventoryServer) postV1InventoryItemSale(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	id, err := parseInventoryID(r)
	if err != nil {
		return err
	}

	var request rest.SaleRequest

	if err = req.Read(r, &request); err != nil {
		return fmt.Errorf("req.Read: %w", err)
	}

	saleDate, err := parseDate(request.SaleDate)
	if err != nil {
		return err
	}

	item, sale, err := s.inventoryService.RecordSale(ctx, id, inventory.SaleParams{
		SalePriceCents:  *request.SalePriceCents,
		SaleDate:        saleDate,
		ShippingCents:   request.ShippingCents,
		AdditionalCents: request.AdditionalCents,
	})
	if err != nil {
		return fmt.Errorf("inventoryService.RecordSale: %w", err)
	}

	reply.JSON(ctx, w, http.StatusCreated, rest.SaleResponse{
		Item: newRESTInventoryItem(item),
		Sale: newRESTSale(sale),
	})

	return nil
}
