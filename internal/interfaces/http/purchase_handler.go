package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/comercio-api/internal/application/dto"
	"github.com/jhoicas/comercio-api/internal/application/orders"
	"github.com/jhoicas/comercio-api/internal/domain/repository"
)

// PurchaseHandler maneja las peticiones HTTP de órdenes de compra (protegido).
type PurchaseHandler struct {
	uc *orders.PurchaseUseCase
}

// NewPurchaseHandler construye el handler.
func NewPurchaseHandler(uc *orders.PurchaseUseCase) *PurchaseHandler {
	return &PurchaseHandler{uc: uc}
}

// Create godoc
// @Summary      Crear orden de compra (ingresa stock y re-promedia el costo)
// @Tags         purchases
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreatePurchaseRequest  true  "Orden de compra"
// @Success      200   {object}  dto.OrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/purchases [post]
func (h *PurchaseHandler) Create(c *fiber.Ctx) error {
	var in dto.CreatePurchaseRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(toPurchaseResponse(out))
}

// GetByID godoc
// @Summary      Obtener orden de compra con sus líneas
// @Tags         purchases
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la orden"
// @Success      200  {object}  dto.OrderResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/purchases/{id} [get]
func (h *PurchaseHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetWithItems(c.Params("id"))
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(toPurchaseResponse(out))
}

// List godoc
// @Summary      Listar órdenes de compra
// @Tags         purchases
// @Security     Bearer
// @Produce      json
// @Param        supplier_id  query  string  false  "Filtrar por proveedor"
// @Param        status       query  string  false  "pending, completed o cancelled"
// @Param        search       query  string  false  "Número de orden o proveedor"
// @Param        limit        query  int     false  "Límite"  default(100)
// @Param        offset       query  int     false  "Offset"  default(0)
// @Success      200  {array}  dto.OrderResponse
// @Router       /api/purchases [get]
func (h *PurchaseHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return badRequest(c, "INVALID_QUERY", "parámetros inválidos")
	}
	page.DefaultPage()
	list, err := h.uc.List(repository.OrderListFilter{
		CounterpartyID: c.Query("supplier_id"),
		Status:         c.Query("status"),
		Search:         c.Query("search"),
		Limit:          page.Limit,
		Offset:         page.Offset,
	})
	if err != nil {
		return writeDomainError(c, err)
	}
	out := make([]dto.OrderResponse, 0, len(list))
	for _, o := range list {
		out = append(out, toPurchaseResponse(o))
	}
	return c.JSON(out)
}

// UpdateStatus godoc
// @Summary      Cambiar estado de una orden de compra
// @Tags         purchases
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la orden"
// @Param        body  body  dto.UpdateOrderStatusRequest  true  "Nuevo estado"
// @Success      200   {object}  dto.OrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/purchases/{id}/status [patch]
func (h *PurchaseHandler) UpdateStatus(c *fiber.Ctx) error {
	var in dto.UpdateOrderStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	out, err := h.uc.UpdateStatus(c.Params("id"), in.Status)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(toPurchaseResponse(out))
}

// Delete godoc
// @Summary      Eliminar orden de compra (no permitido si está completada)
// @Tags         purchases
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la orden"
// @Success      200  {object}  dto.MessageResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/purchases/{id} [delete]
func (h *PurchaseHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Params("id")); err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "orden de compra eliminada"})
}
