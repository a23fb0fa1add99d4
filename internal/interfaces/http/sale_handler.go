package http

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/comercio-api/internal/application/dto"
	"github.com/jhoicas/comercio-api/internal/application/orders"
	"github.com/jhoicas/comercio-api/internal/domain/repository"
)

// SaleHandler maneja las peticiones HTTP de órdenes de venta (protegido).
type SaleHandler struct {
	uc *orders.SaleUseCase
}

// NewSaleHandler construye el handler.
func NewSaleHandler(uc *orders.SaleUseCase) *SaleHandler {
	return &SaleHandler{uc: uc}
}

// Create godoc
// @Summary      Crear orden de venta (valida stock de todas las líneas y lo descuenta)
// @Tags         sales
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateSaleRequest  true  "Orden de venta"
// @Success      200   {object}  dto.OrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/sales [post]
func (h *SaleHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateSaleRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(toSaleResponse(out))
}

// GetByID godoc
// @Summary      Obtener orden de venta con sus líneas
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la orden"
// @Success      200  {object}  dto.OrderResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sales/{id} [get]
func (h *SaleHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetWithItems(c.Params("id"))
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(toSaleResponse(out))
}

// List godoc
// @Summary      Listar órdenes de venta
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        customer_id  query  string  false  "Filtrar por cliente"
// @Param        status       query  string  false  "pending, completed o cancelled"
// @Param        search       query  string  false  "Número de orden o cliente"
// @Param        date         query  string  false  "Ventas de un día YYYY-MM-DD"
// @Param        limit        query  int     false  "Límite"  default(100)
// @Param        offset       query  int     false  "Offset"  default(0)
// @Success      200  {array}  dto.OrderResponse
// @Router       /api/sales [get]
func (h *SaleHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return badRequest(c, "INVALID_QUERY", "parámetros inválidos")
	}
	page.DefaultPage()
	filter := repository.OrderListFilter{
		CounterpartyID: c.Query("customer_id"),
		Status:         c.Query("status"),
		Search:         c.Query("search"),
		Limit:          page.Limit,
		Offset:         page.Offset,
	}
	if s := c.Query("date"); s != "" {
		t, err := time.Parse("2006-01-02", s)
		if err != nil {
			return badRequest(c, "VALIDATION", "date debe ser YYYY-MM-DD")
		}
		filter.Date = &t
	}
	list, err := h.uc.List(filter)
	if err != nil {
		return writeDomainError(c, err)
	}
	out := make([]dto.OrderResponse, 0, len(list))
	for _, o := range list {
		out = append(out, toSaleResponse(o))
	}
	return c.JSON(out)
}

// UpdateStatus godoc
// @Summary      Cambiar estado de una orden de venta
// @Tags         sales
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la orden"
// @Param        body  body  dto.UpdateOrderStatusRequest  true  "Nuevo estado"
// @Success      200   {object}  dto.OrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/sales/{id}/status [patch]
func (h *SaleHandler) UpdateStatus(c *fiber.Ctx) error {
	var in dto.UpdateOrderStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	out, err := h.uc.UpdateStatus(c.Params("id"), in.Status)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(toSaleResponse(out))
}

// Delete godoc
// @Summary      Eliminar orden de venta (no permitido si está completada)
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la orden"
// @Success      200  {object}  dto.MessageResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sales/{id} [delete]
func (h *SaleHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Params("id")); err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "orden de venta eliminada"})
}

// GetPDF godoc
// @Summary      Descargar la orden de venta en PDF
// @Tags         sales
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "ID de la orden"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sales/{id}/pdf [get]
func (h *SaleHandler) GetPDF(c *fiber.Ctx) error {
	pdfBytes, err := h.uc.GeneratePDF(c.Params("id"))
	if err != nil {
		return writeDomainError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="orden-%s.pdf"`, c.Params("id")))
	return c.Send(pdfBytes)
}
