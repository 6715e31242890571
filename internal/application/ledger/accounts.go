package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/retail-pos/internal/application/dto"
	"github.com/tu-usuario/retail-pos/internal/domain"
	"github.com/tu-usuario/retail-pos/internal/domain/entity"
	"github.com/tu-usuario/retail-pos/internal/domain/repository"
)

// AccountUseCase administración y consulta de cuentas (clientes y proveedores).
// Las lecturas usan los repos atados al pool: el saldo cacheado es la fuente
// de verdad operativa y la conciliación contra el libro se verifica en tests.
type AccountUseCase struct {
	customers repository.CustomerRepository
	suppliers repository.SupplierRepository
	ledger    repository.LedgerRepository
}

// NewAccountUseCase construye el caso de uso.
func NewAccountUseCase(
	customers repository.CustomerRepository,
	suppliers repository.SupplierRepository,
	ledger repository.LedgerRepository,
) *AccountUseCase {
	return &AccountUseCase{customers: customers, suppliers: suppliers, ledger: ledger}
}

// CreateCustomer da de alta un cliente con saldo en cero.
func (uc *AccountUseCase) CreateCustomer(ctx context.Context, in dto.CreateCustomerRequest) (*dto.CustomerResponse, error) {
	if in.Name == "" || in.CreditLimit.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	c := &entity.Customer{
		ID:            uuid.New().String(),
		Name:          in.Name,
		Phone:         in.Phone,
		CreditLimit:   in.CreditLimit,
		CreditBalance: decimal.Zero,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.customers.Create(c); err != nil {
		return nil, err
	}
	return customerToResponse(c), nil
}

// CreateSupplier da de alta un proveedor con saldo en cero.
func (uc *AccountUseCase) CreateSupplier(ctx context.Context, in dto.CreateSupplierRequest) (*dto.SupplierResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	s := &entity.Supplier{
		ID:             uuid.New().String(),
		Name:           in.Name,
		Phone:          in.Phone,
		PayableBalance: decimal.Zero,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := uc.suppliers.Create(s); err != nil {
		return nil, err
	}
	return supplierToResponse(s), nil
}

// CurrentBalance devuelve el saldo cacheado de la cuenta.
func (uc *AccountUseCase) CurrentBalance(ctx context.Context, accountType, accountID string) (decimal.Decimal, error) {
	switch accountType {
	case entity.AccountTypeCustomer:
		c, err := uc.customers.GetByID(accountID)
		if err != nil {
			return decimal.Zero, err
		}
		if c == nil {
			return decimal.Zero, domain.ErrAccountNotFound
		}
		return c.CreditBalance, nil
	case entity.AccountTypeSupplier:
		s, err := uc.suppliers.GetByID(accountID)
		if err != nil {
			return decimal.Zero, err
		}
		if s == nil {
			return decimal.Zero, domain.ErrAccountNotFound
		}
		return s.PayableBalance, nil
	default:
		return decimal.Zero, domain.ErrInvalidInput
	}
}

// ListCustomers lista clientes con paginación.
func (uc *AccountUseCase) ListCustomers(ctx context.Context, page dto.PageRequest) ([]dto.CustomerResponse, error) {
	page.DefaultPage()
	list, err := uc.customers.List(page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CustomerResponse, 0, len(list))
	for _, c := range list {
		out = append(out, *customerToResponse(c))
	}
	return out, nil
}

// ListSuppliers lista proveedores con paginación.
func (uc *AccountUseCase) ListSuppliers(ctx context.Context, page dto.PageRequest) ([]dto.SupplierResponse, error) {
	page.DefaultPage()
	list, err := uc.suppliers.List(page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SupplierResponse, 0, len(list))
	for _, s := range list {
		out = append(out, *supplierToResponse(s))
	}
	return out, nil
}

// ListEntries devuelve los asientos de una cuenta, más reciente primero.
func (uc *AccountUseCase) ListEntries(ctx context.Context, accountType, accountID string, page dto.PageRequest) ([]dto.LedgerEntryResponse, error) {
	if accountType != entity.AccountTypeCustomer && accountType != entity.AccountTypeSupplier {
		return nil, domain.ErrInvalidInput
	}
	page.DefaultPage()
	entries, err := uc.ledger.ListByAccount(accountType, accountID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.LedgerEntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, dto.LedgerEntryResponse{
			ID:            e.ID,
			AccountType:   e.AccountType,
			AccountID:     e.AccountID,
			ReferenceType: e.ReferenceType,
			ReferenceID:   e.ReferenceID,
			Debit:         e.Debit,
			Credit:        e.Credit,
			Date:          e.CreatedAt.Format(time.RFC3339),
		})
	}
	return out, nil
}

func customerToResponse(c *entity.Customer) *dto.CustomerResponse {
	return &dto.CustomerResponse{
		ID:            c.ID,
		Name:          c.Name,
		Phone:         c.Phone,
		CreditLimit:   c.CreditLimit,
		CreditBalance: c.CreditBalance,
	}
}

func supplierToResponse(s *entity.Supplier) *dto.SupplierResponse {
	return &dto.SupplierResponse{
		ID:             s.ID,
		Name:           s.Name,
		Phone:          s.Phone,
		PayableBalance: s.PayableBalance,
	}
}
