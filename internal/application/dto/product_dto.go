package dto

import "github.com/shopspring/decimal"

// CreateProductRequest body para POST /api/products.
type CreateProductRequest struct {
	SKU             string          `json:"sku"`
	Name            string          `json:"name"`
	UnitMeasure     string          `json:"unit_measure,omitempty"`
	Price           decimal.Decimal `json:"price"`
	Cost            decimal.Decimal `json:"cost"`
	ReorderLevel    int64           `json:"reorder_level"`
	ConversionRatio int64           `json:"conversion_ratio,omitempty"`
}

// PatchProductRequest actualización parcial: solo los campos presentes se
// aplican (un puntero opcional por atributo mutable).
type PatchProductRequest struct {
	Name            *string          `json:"name,omitempty"`
	UnitMeasure     *string          `json:"unit_measure,omitempty"`
	Price           *decimal.Decimal `json:"price,omitempty"`
	Cost            *decimal.Decimal `json:"cost,omitempty"`
	ReorderLevel    *int64           `json:"reorder_level,omitempty"`
	ConversionRatio *int64           `json:"conversion_ratio,omitempty"`
}

// ProductResponse producto en respuestas, con stock disponible agregado.
type ProductResponse struct {
	ID              string          `json:"id"`
	SKU             string          `json:"sku"`
	Name            string          `json:"name"`
	UnitMeasure     string          `json:"unit_measure,omitempty"`
	Price           decimal.Decimal `json:"price"`
	Cost            decimal.Decimal `json:"cost"`
	ReorderLevel    int64           `json:"reorder_level"`
	ConversionRatio int64           `json:"conversion_ratio"`
	OnHand          int64           `json:"on_hand"`
}
