package inventory

import (
	"context"
	"encoding/json"
	"time"

	"github.com/tu-usuario/retail-pos/internal/application/dto"
	"github.com/tu-usuario/retail-pos/pkg/cache"
)

const (
	replenishmentCacheKey = "replenishment:suggestions"
	replenishmentCacheTTL = 5 * time.Minute
)

// ReplenishmentUseCase calcula la lista de reposición: productos cuyo stock
// disponible está en o por debajo de su nivel de reorden. El resultado se
// cachea porque recorre todo el catálogo.
type ReplenishmentUseCase struct {
	inventory *InventoryUseCase
	store     cache.Store
}

// NewReplenishmentUseCase construye el caso de uso. store puede ser cache.Noop.
func NewReplenishmentUseCase(inventory *InventoryUseCase, store cache.Store) *ReplenishmentUseCase {
	return &ReplenishmentUseCase{inventory: inventory, store: store}
}

// Suggestions productos en nivel de reorden con la cantidad sugerida para
// volver a cubrir el doble del nivel.
func (uc *ReplenishmentUseCase) Suggestions(ctx context.Context) ([]dto.ReplenishmentSuggestion, error) {
	if cached, err := uc.store.Get(ctx, replenishmentCacheKey); err == nil && cached != nil {
		var out []dto.ReplenishmentSuggestion
		if err := json.Unmarshal(cached, &out); err == nil {
			return out, nil
		}
	}

	products, err := uc.inventory.products.List(500, 0)
	if err != nil {
		return nil, err
	}

	out := make([]dto.ReplenishmentSuggestion, 0)
	for _, p := range products {
		if p.ReorderLevel <= 0 {
			continue
		}
		onHand, err := uc.inventory.batches.TotalOnHand(p.ID)
		if err != nil {
			return nil, err
		}
		if onHand > p.ReorderLevel {
			continue
		}
		suggested := p.ReorderLevel*2 - onHand
		if suggested < 1 {
			suggested = 1
		}
		out = append(out, dto.ReplenishmentSuggestion{
			ProductID:    p.ID,
			SKU:          p.SKU,
			ProductName:  p.Name,
			OnHand:       onHand,
			ReorderLevel: p.ReorderLevel,
			SuggestedQty: suggested,
		})
	}

	if payload, err := json.Marshal(out); err == nil {
		// Fallo de caché no bloquea la respuesta
		_ = uc.store.Set(ctx, replenishmentCacheKey, payload, replenishmentCacheTTL)
	}
	return out, nil
}

// Invalidate descarta la lista cacheada. Se invoca tras recepciones grandes.
func (uc *ReplenishmentUseCase) Invalidate(ctx context.Context) error {
	return uc.store.Delete(ctx, replenishmentCacheKey)
}
