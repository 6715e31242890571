package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/retail-pos/internal/application/dto"
	"github.com/tu-usuario/retail-pos/internal/application/ledger"
	"github.com/tu-usuario/retail-pos/internal/domain/entity"
)

// AccountHandler maneja clientes, proveedores, pagos y el libro auxiliar.
type AccountHandler struct {
	accounts *ledger.AccountUseCase
	payments *ledger.PaymentUseCase
}

// NewAccountHandler construye el handler.
func NewAccountHandler(accounts *ledger.AccountUseCase, payments *ledger.PaymentUseCase) *AccountHandler {
	return &AccountHandler{accounts: accounts, payments: payments}
}

// CreateCustomer da de alta un cliente con saldo cero.
// POST /api/customers
func (h *AccountHandler) CreateCustomer(c *fiber.Ctx) error {
	var in dto.CreateCustomerRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	customer, err := h.accounts.CreateCustomer(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(customer)
}

// ListCustomers clientes paginados.
// GET /api/customers
func (h *AccountHandler) ListCustomers(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	customers, err := h.accounts.ListCustomers(c.Context(), page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"total": len(customers), "customers": customers})
}

// CustomerPayment registra un abono del cliente (acredita su cartera).
// POST /api/customers/:id/payments
func (h *AccountHandler) CustomerPayment(c *fiber.Ctx) error {
	var in dto.PaymentRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	payment, err := h.payments.RecordCustomerPayment(c.Context(), c.Params("id"), in.Amount)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(payment)
}

// CustomerLedger asientos de la cuenta del cliente con el saldo actual.
// GET /api/customers/:id/ledger
func (h *AccountHandler) CustomerLedger(c *fiber.Ctx) error {
	return h.ledgerOf(c, entity.AccountTypeCustomer)
}

// CreateSupplier da de alta un proveedor con saldo cero.
// POST /api/suppliers
func (h *AccountHandler) CreateSupplier(c *fiber.Ctx) error {
	var in dto.CreateSupplierRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	supplier, err := h.accounts.CreateSupplier(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(supplier)
}

// ListSuppliers proveedores paginados.
// GET /api/suppliers
func (h *AccountHandler) ListSuppliers(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	suppliers, err := h.accounts.ListSuppliers(c.Context(), page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"total": len(suppliers), "suppliers": suppliers})
}

// SupplierPayment registra un pago al proveedor (acredita el por pagar).
// POST /api/suppliers/:id/payments
func (h *AccountHandler) SupplierPayment(c *fiber.Ctx) error {
	var in dto.PaymentRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	payment, err := h.payments.RecordSupplierPayment(c.Context(), c.Params("id"), in.Amount)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(payment)
}

// SupplierLedger asientos de la cuenta del proveedor con el saldo actual.
// GET /api/suppliers/:id/ledger
func (h *AccountHandler) SupplierLedger(c *fiber.Ctx) error {
	return h.ledgerOf(c, entity.AccountTypeSupplier)
}

func (h *AccountHandler) ledgerOf(c *fiber.Ctx, accountType string) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	accountID := c.Params("id")
	entries, err := h.accounts.ListEntries(c.Context(), accountType, accountID, page)
	if err != nil {
		return respondError(c, err)
	}
	balance, err := h.accounts.CurrentBalance(c.Context(), accountType, accountID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"balance": balance,
		"total":   len(entries),
		"entries": entries,
	})
}
