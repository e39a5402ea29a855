package inventory

import (
	"github.com/georgemunganga/printa-dashboard/internal/modules/catalog"
	"github.com/georgemunganga/printa-dashboard/internal/money"
)

// Dimensions is the package size of an inventory item.
type Dimensions struct {
	Length float64 `json:"length"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Unit   string  `json:"unit"`
}

// Item is a product as managed on the inventory page: the catalog view plus
// stock and logistics details.
type Item struct {
	catalog.Product
	BarcodeString          string       `json:"barcodeString"`
	Weight                 float64      `json:"weight"`
	WeightUnit             string       `json:"weightUnit"`
	IncomingQuantity       int          `json:"incomingQuantity"`
	ProfitPercentage       float64      `json:"profitPercentage"`
	PackageDimensions      Dimensions   `json:"packageDimensions"`
	ReorderPointOfQuantity int          `json:"reorderPointOfQuantity"`
	WarehouseLocation      string       `json:"warehouseLocation"`
	CompetitorPrice        money.Amount `json:"competitorPrice"`
}

// ItemRequest is the add/edit inventory form. ItemNumber is fixed once the
// item exists and is not sent on update.
type ItemRequest struct {
	Name                   string       `json:"name"`
	Description            string       `json:"description,omitempty"`
	ItemNumber             string       `json:"itemNumber,omitempty"`
	BarcodeString          string       `json:"barcodeString"`
	CategoryID             string       `json:"categoryId"`
	PacketSize             string       `json:"packetSize"`
	Weight                 float64      `json:"weight"`
	WeightUnit             string       `json:"weightUnit"`
	Quantity               int          `json:"quantity"`
	ReorderPointOfQuantity int          `json:"reorderPointOfQuantity"`
	WarehouseLocation      string       `json:"warehouseLocation"`
	PurchasePrice          money.Amount `json:"purchasePrice"`
	SalesPrice             money.Amount `json:"salesPrice"`
	CompetitorPrice        money.Amount `json:"competitorPrice"`
	PackageDimensions      Dimensions   `json:"packageDimensions"`
}

// RequestFrom returns the edit form pre-filled from an existing item.
func RequestFrom(item *Item) ItemRequest {
	return ItemRequest{
		Name:                   item.Name,
		Description:            item.Description,
		BarcodeString:          item.BarcodeString,
		CategoryID:             item.CategoryID(),
		PacketSize:             item.PacketSize,
		Weight:                 item.Weight,
		WeightUnit:             item.WeightUnit,
		Quantity:               item.Quantity,
		ReorderPointOfQuantity: item.ReorderPointOfQuantity,
		WarehouseLocation:      item.WarehouseLocation,
		PurchasePrice:          item.PurchasePrice,
		SalesPrice:             item.SalesPrice,
		CompetitorPrice:        item.CompetitorPrice,
		PackageDimensions:      item.PackageDimensions,
	}
}
