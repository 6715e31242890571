package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto o SKU del catálogo.
// La identidad (ID, SKU) es inmutable; precio, punto de reorden y ratio de
// conversión se modifican vía ProductPatch.
type Product struct {
	ID              string
	SKU             string // código único
	Name            string
	UnitMeasure     string          // unidad de venta (UN, KG, CAJA, ...)
	Price           decimal.Decimal // precio sugerido de venta
	Cost            decimal.Decimal // costo de referencia
	ReorderLevel    int64           // punto de reorden en unidades
	ConversionRatio int64           // unidades de este producto que rinde 1 unidad a granel convertida (0 => 1)
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// EffectiveConversionRatio devuelve el ratio a aplicar en conversiones (mínimo 1).
func (p *Product) EffectiveConversionRatio() int64 {
	if p.ConversionRatio <= 0 {
		return 1
	}
	return p.ConversionRatio
}

// ProductPatch actualización parcial explícita: un campo opcional por atributo
// mutable, aplicado campo a campo (nunca merge dinámico de objetos).
type ProductPatch struct {
	Name            *string
	UnitMeasure     *string
	Price           *decimal.Decimal
	Cost            *decimal.Decimal
	ReorderLevel    *int64
	ConversionRatio *int64
}

// Apply copia sobre el producto los campos presentes del patch.
func (p *ProductPatch) Apply(product *Product, now time.Time) {
	if p.Name != nil {
		product.Name = *p.Name
	}
	if p.UnitMeasure != nil {
		product.UnitMeasure = *p.UnitMeasure
	}
	if p.Price != nil {
		product.Price = *p.Price
	}
	if p.Cost != nil {
		product.Cost = *p.Cost
	}
	if p.ReorderLevel != nil {
		product.ReorderLevel = *p.ReorderLevel
	}
	if p.ConversionRatio != nil {
		product.ConversionRatio = *p.ConversionRatio
	}
	product.UpdatedAt = now
}
