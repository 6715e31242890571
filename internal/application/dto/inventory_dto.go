package dto

// AdjustStockRequest body para POST /api/inventory/adjustments.
// BatchID ajusta un lote específico; si va vacío se usa el lote por defecto
// del producto. Reason es obligatorio.
type AdjustStockRequest struct {
	ProductID string `json:"product_id,omitempty"`
	BatchID   string `json:"batch_id,omitempty"`
	Delta     int64  `json:"delta"`
	Reason    string `json:"reason"`
}

// ConvertBulkRequest body para POST /api/inventory/conversions.
type ConvertBulkRequest struct {
	SourceProductID string `json:"source_product_id"`
	TargetProductID string `json:"target_product_id"`
	SourceQuantity  int64  `json:"source_quantity"`
}

// ConversionResult resultado de una conversión a granel.
type ConversionResult struct {
	ConversionID     string `json:"conversion_id"`
	SourceProductID  string `json:"source_product_id"`
	TargetProductID  string `json:"target_product_id"`
	QuantityConsumed int64  `json:"quantity_consumed"`
	QuantityProduced int64  `json:"quantity_produced"`
	Ratio            int64  `json:"ratio"`
}

// StockMovementResponse movimiento de stock en respuestas.
type StockMovementResponse struct {
	ID          string `json:"id"`
	ProductID   string `json:"product_id"`
	Quantity    int64  `json:"quantity"`
	Category    string `json:"category"`
	Reason      string `json:"reason"`
	ReferenceID string `json:"reference_id,omitempty"`
	Date        string `json:"date"`
	CreatedBy   string `json:"created_by,omitempty"`
}

// ReplenishmentSuggestion producto en o bajo su punto de reorden con la
// cantidad sugerida de pedido.
type ReplenishmentSuggestion struct {
	ProductID    string `json:"product_id"`
	SKU          string `json:"sku"`
	ProductName  string `json:"product_name"`
	OnHand       int64  `json:"on_hand"`
	ReorderLevel int64  `json:"reorder_level"`
	SuggestedQty int64  `json:"suggested_qty"`
}
