// Package sales orquesta las ventas POS: validación, asignación FIFO de
// stock, totales, cartera del cliente y registro auditable, todo en una sola
// unidad de trabajo.
package sales

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/retail-pos/internal/application/dto"
	appledger "github.com/tu-usuario/retail-pos/internal/application/ledger"
	"github.com/tu-usuario/retail-pos/internal/application/stock"
	"github.com/tu-usuario/retail-pos/internal/application/uow"
	"github.com/tu-usuario/retail-pos/internal/domain"
	"github.com/tu-usuario/retail-pos/internal/domain/entity"
	"github.com/tu-usuario/retail-pos/internal/domain/repository"
	"github.com/tu-usuario/retail-pos/pkg/logger"
)

// SaleUseCase procesa ventas y anulaciones.
type SaleUseCase struct {
	runner    uow.Runner
	products  repository.ProductRepository
	customers repository.CustomerRepository
	sales     repository.SaleRepository
	log       *logger.Logger
}

// NewSaleUseCase construye el caso de uso.
func NewSaleUseCase(
	runner uow.Runner,
	products repository.ProductRepository,
	customers repository.CustomerRepository,
	sales repository.SaleRepository,
	log *logger.Logger,
) *SaleUseCase {
	return &SaleUseCase{
		runner:    runner,
		products:  products,
		customers: customers,
		sales:     sales,
		log:       log,
	}
}

// CreateSale procesa una venta completa en una transacción: verifica y asigna
// stock FIFO por línea, persiste cabecera y detalle, registra los movimientos
// SALE y, si la venta queda a crédito, debita la cartera del cliente por el
// saldo. Cualquier falla descarta todos los efectos (no hay venta parcial).
func (uc *SaleUseCase) CreateSale(ctx context.Context, actor string, in dto.CreateSaleRequest) (*dto.SaleResponse, error) {
	if len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	if in.Discount.LessThan(decimal.Zero) || in.AmountPaid.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}

	// Validar productos y completar precios (fuera de la tx, solo lectura)
	productsByID := make(map[string]*entity.Product)
	for i := range in.Items {
		item := &in.Items[i]
		if item.ProductID == "" || item.Quantity <= 0 || item.UnitPrice.LessThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		product, err := uc.products.GetByID(item.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, domain.ErrNotFound
		}
		productsByID[item.ProductID] = product
		if item.UnitPrice.IsZero() {
			item.UnitPrice = product.Price
		}
	}

	// Validar cliente si la venta no es de mostrador
	var customer *entity.Customer
	if in.CustomerID != "" {
		var err error
		customer, err = uc.customers.GetByID(in.CustomerID)
		if err != nil {
			return nil, err
		}
		if customer == nil {
			return nil, domain.ErrAccountNotFound
		}
	}

	// Totales y estado de pago
	subtotal := decimal.Zero
	for _, item := range in.Items {
		subtotal = subtotal.Add(item.UnitPrice.Mul(decimal.NewFromInt(item.Quantity)))
	}
	total := subtotal.Sub(in.Discount)
	if total.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}

	var paymentStatus string
	switch {
	case in.AmountPaid.GreaterThanOrEqual(total):
		paymentStatus = entity.PaymentStatusPaid
	case in.AmountPaid.GreaterThan(decimal.Zero):
		paymentStatus = entity.PaymentStatusPartial
	default:
		paymentStatus = entity.PaymentStatusUnpaid
	}
	if paymentStatus != entity.PaymentStatusPaid && customer == nil {
		// Venta a crédito sin cliente: no hay cuenta a quién debitar.
		return nil, domain.ErrInvalidInput
	}

	paymentMethod := in.PaymentMethod
	if paymentMethod == "" {
		paymentMethod = "CASH"
	}

	now := time.Now()
	saleID := uuid.New().String()
	sale := &entity.Sale{
		ID:            saleID,
		Subtotal:      subtotal,
		Discount:      in.Discount,
		Total:         total,
		AmountPaid:    in.AmountPaid,
		PaymentMethod: paymentMethod,
		PaymentStatus: paymentStatus,
		Status:        entity.SaleStatusActive,
		CreatedAt:     now,
		CreatedBy:     actor,
	}
	if customer != nil {
		sale.CustomerID = &customer.ID
	}

	var items []*entity.SaleItem

	err := uc.runner.Run(ctx, func(r *uow.Repos) error {
		// 1) Asignación FIFO por línea. El lock de los lotes hace atómico el
		// leer-y-descontar: dos ventas concurrentes no pueden sobrevender.
		for _, item := range in.Items {
			if _, err := stock.AllocateInTx(r, item.ProductID, item.Quantity); err != nil {
				return err
			}
		}

		// 2) Cabecera y detalle
		if err := r.Sales.Create(sale); err != nil {
			return err
		}
		for _, item := range in.Items {
			lineSubtotal := item.UnitPrice.Mul(decimal.NewFromInt(item.Quantity))
			detail := &entity.SaleItem{
				ID:        uuid.New().String(),
				SaleID:    saleID,
				ProductID: item.ProductID,
				Quantity:  item.Quantity,
				UnitPrice: item.UnitPrice,
				Subtotal:  lineSubtotal,
			}
			if err := r.Sales.CreateItem(detail); err != nil {
				return err
			}
			items = append(items, detail)
		}

		// 3) Movimientos de stock (delta negativo, categoría SALE)
		for _, item := range in.Items {
			product := productsByID[item.ProductID]
			reason := fmt.Sprintf("venta %s (%s)", saleID, product.SKU)
			if err := stock.RecordMovement(r, item.ProductID, -item.Quantity,
				entity.MovementCategorySale, reason, saleID, actor, now); err != nil {
				return err
			}
		}

		// 4) Cartera: el saldo no pagado se debita al cliente
		if customer != nil && paymentStatus != entity.PaymentStatusPaid {
			outstanding := total.Sub(in.AmountPaid)
			if err := appledger.PostInTx(r, entity.AccountTypeCustomer, customer.ID,
				entity.ReferenceTypeSale, saleID, outstanding, decimal.Zero, now); err != nil {
				return err
			}
			if customer.CreditBalance.Add(outstanding).GreaterThan(customer.CreditLimit) {
				uc.log.Warn().
					Str("customer_id", customer.ID).
					Str("sale_id", saleID).
					Str("credit_limit", customer.CreditLimit.String()).
					Msg("venta a crédito deja al cliente por encima de su cupo")
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("sale_id", saleID).
		Str("total", total.String()).
		Str("payment_status", paymentStatus).
		Int("items", len(items)).
		Msg("venta registrada")

	return saleToResponse(sale, items), nil
}

// GetSale devuelve una venta con su detalle.
func (uc *SaleUseCase) GetSale(ctx context.Context, saleID string) (*dto.SaleResponse, error) {
	sale, err := uc.sales.GetByID(saleID)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, domain.ErrNotFound
	}
	items, err := uc.sales.ListItems(saleID)
	if err != nil {
		return nil, err
	}
	return saleToResponse(sale, items), nil
}

func saleToResponse(sale *entity.Sale, items []*entity.SaleItem) *dto.SaleResponse {
	resp := &dto.SaleResponse{
		ID:            sale.ID,
		Subtotal:      sale.Subtotal,
		Discount:      sale.Discount,
		Total:         sale.Total,
		AmountPaid:    sale.AmountPaid,
		PaymentMethod: sale.PaymentMethod,
		PaymentStatus: sale.PaymentStatus,
		Status:        sale.Status,
		Date:          sale.CreatedAt.Format(time.RFC3339),
	}
	if sale.CustomerID != nil {
		resp.CustomerID = *sale.CustomerID
	}
	for _, it := range items {
		resp.Items = append(resp.Items, dto.SaleItemResponse{
			ID:        it.ID,
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
			Subtotal:  it.Subtotal,
		})
	}
	return resp
}
