package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/retail-pos/internal/application/dto"
	"github.com/tu-usuario/retail-pos/internal/application/uow"
	"github.com/tu-usuario/retail-pos/internal/domain"
	"github.com/tu-usuario/retail-pos/internal/domain/entity"
	"github.com/tu-usuario/retail-pos/pkg/logger"
)

// PaymentUseCase registra abonos de clientes y pagos a proveedores.
// Política heredada del sistema de origen: un pago mayor al saldo pendiente se
// recorta al saldo en vez de rechazarse; el recorte queda en el log.
type PaymentUseCase struct {
	runner uow.Runner
	log    *logger.Logger
}

// NewPaymentUseCase construye el caso de uso.
func NewPaymentUseCase(runner uow.Runner, log *logger.Logger) *PaymentUseCase {
	return &PaymentUseCase{runner: runner, log: log}
}

// RecordCustomerPayment aplica un abono del cliente: crédito en cartera que
// baja su CreditBalance. Devuelve el monto aplicado y el saldo resultante.
func (uc *PaymentUseCase) RecordCustomerPayment(ctx context.Context, customerID string, amount decimal.Decimal) (*dto.PaymentResponse, error) {
	if customerID == "" || !amount.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	paymentID := uuid.New().String()
	var resp *dto.PaymentResponse

	err := uc.runner.Run(ctx, func(r *uow.Repos) error {
		c, err := r.Customers.GetForUpdate(customerID)
		if err != nil {
			return err
		}
		if c == nil {
			return domain.ErrAccountNotFound
		}

		applied := amount
		clamped := false
		if applied.GreaterThan(c.CreditBalance) {
			// El excedente se descarta: se abona solo lo pendiente.
			uc.log.Warn().
				Str("customer_id", customerID).
				Str("amount", amount.String()).
				Str("outstanding", c.CreditBalance.String()).
				Msg("pago de cliente recortado al saldo pendiente")
			applied = c.CreditBalance
			clamped = true
		}

		newBalance := c.CreditBalance
		if applied.GreaterThan(decimal.Zero) {
			if err := PostInTx(r, entity.AccountTypeCustomer, customerID,
				entity.ReferenceTypePayment, paymentID, decimal.Zero, applied, now); err != nil {
				return err
			}
			newBalance = c.CreditBalance.Sub(applied)
		}

		resp = &dto.PaymentResponse{
			AccountID:      customerID,
			AmountApplied:  applied,
			NewBalance:     newBalance,
			AmountClamped:  clamped,
			AmountReceived: amount,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// RecordSupplierPayment aplica un pago al proveedor: crédito que baja el
// PayableBalance. Misma política de recorte que los abonos de cliente.
func (uc *PaymentUseCase) RecordSupplierPayment(ctx context.Context, supplierID string, amount decimal.Decimal) (*dto.PaymentResponse, error) {
	if supplierID == "" || !amount.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	paymentID := uuid.New().String()
	var resp *dto.PaymentResponse

	err := uc.runner.Run(ctx, func(r *uow.Repos) error {
		s, err := r.Suppliers.GetForUpdate(supplierID)
		if err != nil {
			return err
		}
		if s == nil {
			return domain.ErrAccountNotFound
		}

		applied := amount
		clamped := false
		if applied.GreaterThan(s.PayableBalance) {
			uc.log.Warn().
				Str("supplier_id", supplierID).
				Str("amount", amount.String()).
				Str("outstanding", s.PayableBalance.String()).
				Msg("pago a proveedor recortado al saldo pendiente")
			applied = s.PayableBalance
			clamped = true
		}

		newBalance := s.PayableBalance
		if applied.GreaterThan(decimal.Zero) {
			if err := PostInTx(r, entity.AccountTypeSupplier, supplierID,
				entity.ReferenceTypePayment, paymentID, decimal.Zero, applied, now); err != nil {
				return err
			}
			newBalance = s.PayableBalance.Sub(applied)
		}

		resp = &dto.PaymentResponse{
			AccountID:      supplierID,
			AmountApplied:  applied,
			NewBalance:     newBalance,
			AmountClamped:  clamped,
			AmountReceived: amount,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}
