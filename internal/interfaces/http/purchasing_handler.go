package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/retail-pos/internal/application/dto"
	"github.com/tu-usuario/retail-pos/internal/application/purchasing"
)

// PurchasingHandler maneja suministros directos y órdenes de compra.
type PurchasingHandler struct {
	uc *purchasing.PurchasingUseCase
}

// NewPurchasingHandler construye el handler.
func NewPurchasingHandler(uc *purchasing.PurchasingUseCase) *PurchasingHandler {
	return &PurchasingHandler{uc: uc}
}

// ReceiveSupply registra una recepción directa de mercancía.
// POST /api/supplies
func (h *PurchasingHandler) ReceiveSupply(c *fiber.Ctx) error {
	var in dto.ReceiveSupplyRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	supply, err := h.uc.ReceiveSupply(c.Context(), GetActor(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(supply)
}

// GetSupply obtiene un suministro con su detalle.
// GET /api/supplies/:id
func (h *PurchasingHandler) GetSupply(c *fiber.Ctx) error {
	supply, err := h.uc.GetSupply(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(supply)
}

// VoidSupply anula un suministro: retira el stock recibido y revierte el por pagar.
// Puede fallar con 409 si las unidades ya se vendieron.
// POST /api/supplies/:id/void
func (h *PurchasingHandler) VoidSupply(c *fiber.Ctx) error {
	var in dto.VoidSupplyRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.uc.VoidSupply(c.Context(), GetActor(c), c.Params("id"), in.Reason); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "suministro anulado"})
}

// CreateOrder godoc
// @Summary      Crear orden de compra
// @Tags         purchase-orders
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreatePurchaseOrderRequest  true  "supplier_id, items"
// @Success      201   {object}  dto.PurchaseOrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/purchase-orders [post]
func (h *PurchasingHandler) CreateOrder(c *fiber.Ctx) error {
	var in dto.CreatePurchaseOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	order, err := h.uc.CreatePurchaseOrder(c.Context(), GetActor(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(order)
}

// GetOrder obtiene una orden con su detalle y avance de recepción.
// GET /api/purchase-orders/:id
func (h *PurchasingHandler) GetOrder(c *fiber.Ctx) error {
	order, err := h.uc.GetPurchaseOrder(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(order)
}

// ReceiveOrder registra la recepción (parcial o total) de líneas de la orden.
// POST /api/purchase-orders/:id/receive
func (h *PurchasingHandler) ReceiveOrder(c *fiber.Ctx) error {
	var in dto.ReceivePurchaseOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	order, err := h.uc.ReceivePurchaseOrder(c.Context(), GetActor(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(order)
}

// CancelOrder marca la orden CANCELLED y revierte lo asentado en el por pagar.
// POST /api/purchase-orders/:id/cancel
func (h *PurchasingHandler) CancelOrder(c *fiber.Ctx) error {
	var in dto.CancelPurchaseOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.uc.CancelPurchaseOrder(c.Context(), GetActor(c), c.Params("id"), in.Reason); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "orden cancelada"})
}
