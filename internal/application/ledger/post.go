// Package ledger implementa el libro auxiliar débito/crédito y los pagos de
// cartera. Cada asiento se anexa en la misma transacción que el ajuste del
// saldo cacheado, de modo que saldo == Σ(debit - credit) en todo momento.
package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/retail-pos/internal/application/uow"
	"github.com/tu-usuario/retail-pos/internal/domain"
	"github.com/tu-usuario/retail-pos/internal/domain/entity"
)

// PostInTx anexa un asiento y ajusta el saldo de la cuenta por (debit - credit),
// con la fila de la cuenta bloqueada. Falla con ErrAccountNotFound si la
// cuenta no existe.
func PostInTx(r *uow.Repos, accountType, accountID, referenceType, referenceID string, debit, credit decimal.Decimal, now time.Time) error {
	delta := debit.Sub(credit)

	switch accountType {
	case entity.AccountTypeCustomer:
		c, err := r.Customers.GetForUpdate(accountID)
		if err != nil {
			return err
		}
		if c == nil {
			return domain.ErrAccountNotFound
		}
		if err := r.Customers.UpdateBalance(accountID, c.CreditBalance.Add(delta)); err != nil {
			return err
		}
	case entity.AccountTypeSupplier:
		s, err := r.Suppliers.GetForUpdate(accountID)
		if err != nil {
			return err
		}
		if s == nil {
			return domain.ErrAccountNotFound
		}
		if err := r.Suppliers.UpdateBalance(accountID, s.PayableBalance.Add(delta)); err != nil {
			return err
		}
	default:
		return domain.ErrInvalidInput
	}

	return r.Ledger.Create(&entity.LedgerEntry{
		ID:            uuid.New().String(),
		AccountType:   accountType,
		AccountID:     accountID,
		ReferenceType: referenceType,
		ReferenceID:   referenceID,
		Debit:         debit,
		Credit:        credit,
		CreatedAt:     now,
	})
}

// ReverseReferenceInTx anula el efecto contable neto de un documento: si los
// asientos con esa referencia suman un débito neto, asienta el crédito
// equivalente (y viceversa). No hace nada si la referencia está en cero.
func ReverseReferenceInTx(r *uow.Repos, accountType, accountID, referenceType, referenceID string, now time.Time) error {
	net, err := r.Ledger.SumByReference(referenceType, referenceID)
	if err != nil {
		return err
	}
	switch {
	case net.GreaterThan(decimal.Zero):
		return PostInTx(r, accountType, accountID, referenceType, referenceID, decimal.Zero, net, now)
	case net.LessThan(decimal.Zero):
		return PostInTx(r, accountType, accountID, referenceType, referenceID, net.Neg(), decimal.Zero, now)
	default:
		return nil
	}
}
