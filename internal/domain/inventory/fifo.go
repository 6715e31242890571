package inventory

import (
	"sort"

	"github.com/tu-usuario/retail-pos/internal/domain"
	"github.com/tu-usuario/retail-pos/internal/domain/entity"
)

// BatchDraw indica cuántas unidades tomar de un lote dentro de un plan FIFO.
type BatchDraw struct {
	BatchID  string
	Quantity int64
}

// SortFIFO ordena lotes por vencimiento ascendente; los que no vencen van de
// último ("nunca vencen"). Empates se resuelven por fecha de creación para
// mantener un orden de consumo estable.
func SortFIFO(batches []*entity.InventoryBatch) {
	sort.SliceStable(batches, func(i, j int) bool {
		bi, bj := batches[i], batches[j]
		switch {
		case bi.Expires() && bj.Expires():
			if !bi.ExpiresAt.Equal(*bj.ExpiresAt) {
				return bi.ExpiresAt.Before(*bj.ExpiresAt)
			}
			return bi.CreatedAt.Before(bj.CreatedAt)
		case bi.Expires():
			return true
		case bj.Expires():
			return false
		default:
			return bi.CreatedAt.Before(bj.CreatedAt)
		}
	})
}

// PlanAllocation arma el plan de consumo FIFO-por-vencimiento sobre los lotes
// activos de un producto. No muta los lotes: devuelve cuánto tomar de cada uno,
// en orden, hasta satisfacer quantity. Si el total disponible no alcanza,
// devuelve InsufficientStockError y ningún plan parcial.
func PlanAllocation(productID string, batches []*entity.InventoryBatch, quantity int64) ([]BatchDraw, error) {
	if quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}

	active := make([]*entity.InventoryBatch, 0, len(batches))
	var available int64
	for _, b := range batches {
		if b.Status != entity.BatchStatusActive || b.Quantity <= 0 {
			continue
		}
		active = append(active, b)
		available += b.Quantity
	}
	if available < quantity {
		return nil, &domain.InsufficientStockError{
			ProductID: productID,
			Requested: quantity,
			Available: available,
		}
	}

	SortFIFO(active)

	var plan []BatchDraw
	remaining := quantity
	for _, b := range active {
		take := b.Quantity
		if take > remaining {
			take = remaining
		}
		plan = append(plan, BatchDraw{BatchID: b.ID, Quantity: take})
		remaining -= take
		if remaining == 0 {
			break
		}
	}
	return plan, nil
}

// ConversionOutput calcula las unidades al detal producidas por una conversión
// a granel. Un ratio no positivo se trata como 1 (producto sin ratio definido).
func ConversionOutput(sourceQuantity, ratio int64) int64 {
	if ratio <= 0 {
		ratio = 1
	}
	return sourceQuantity * ratio
}

// TotalOnHand suma las unidades disponibles de los lotes activos.
func TotalOnHand(batches []*entity.InventoryBatch) int64 {
	var total int64
	for _, b := range batches {
		if b.Status == entity.BatchStatusActive {
			total += b.Quantity
		}
	}
	return total
}
