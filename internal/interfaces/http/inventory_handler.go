package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/comercio-api/internal/application/dto"
	"github.com/jhoicas/comercio-api/internal/application/inventory"
	"github.com/jhoicas/comercio-api/internal/application/usecase"
	"github.com/jhoicas/comercio-api/internal/domain/repository"
)

// InventoryHandler maneja las peticiones HTTP del inventario: ajustes manuales,
// consultas de stock y el libro de movimientos (protegido).
type InventoryHandler struct {
	adjustUC *inventory.AdjustStockUseCase
	queryUC  *usecase.InventoryQueryUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(adjustUC *inventory.AdjustStockUseCase, queryUC *usecase.InventoryQueryUseCase) *InventoryHandler {
	return &InventoryHandler{adjustUC: adjustUC, queryUC: queryUC}
}

// Adjust godoc
// @Summary      Ajustar stock manualmente (delta con signo)
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AdjustStockRequest  true  "Ajuste"
// @Success      200   {object}  dto.StockResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/inventory/adjust [post]
func (h *InventoryHandler) Adjust(c *fiber.Ctx) error {
	var in dto.AdjustStockRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	if in.ProductID == "" {
		return badRequest(c, "VALIDATION", "product_id es requerido")
	}
	record, err := h.adjustUC.Adjust(c.UserContext(), inventory.Adjustment{
		ProductID:       in.ProductID,
		Delta:           in.Quantity,
		Reason:          in.Reason,
		OverrideAvgCost: in.NewAvgCost,
	})
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(dto.StockResponse{
		ID:          record.ID,
		ProductID:   record.ProductID,
		Quantity:    record.Quantity,
		AvgCost:     money(record.AvgCost),
		LastUpdated: record.LastUpdated,
	})
}

// List godoc
// @Summary      Listar inventario con datos del producto
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        search        query  string  false  "Nombre o SKU"
// @Param        low_stock     query  bool    false  "Solo bajo nivel de reorden"
// @Param        out_of_stock  query  bool    false  "Solo agotados"
// @Param        limit         query  int     false  "Límite"  default(100)
// @Param        offset        query  int     false  "Offset"  default(0)
// @Success      200  {array}  dto.StockResponse
// @Router       /api/inventory [get]
func (h *InventoryHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return badRequest(c, "INVALID_QUERY", "parámetros inválidos")
	}
	page.DefaultPage()
	list, err := h.queryUC.List(repository.StockListFilter{
		Search:     c.Query("search"),
		LowStock:   c.QueryBool("low_stock"),
		OutOfStock: c.QueryBool("out_of_stock"),
		Limit:      page.Limit,
		Offset:     page.Offset,
	})
	if err != nil {
		return writeDomainError(c, err)
	}
	out := make([]dto.StockResponse, 0, len(list))
	for _, s := range list {
		out = append(out, toStockResponse(s))
	}
	return c.JSON(out)
}

// LowStock godoc
// @Summary      Productos bajo su nivel de reorden
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"  default(100)
// @Param        offset  query  int  false  "Offset"  default(0)
// @Success      200  {array}  dto.StockResponse
// @Router       /api/inventory/low-stock [get]
func (h *InventoryHandler) LowStock(c *fiber.Ctx) error {
	return h.listFiltered(c, repository.StockListFilter{LowStock: true})
}

// OutOfStock godoc
// @Summary      Productos agotados
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"  default(100)
// @Param        offset  query  int  false  "Offset"  default(0)
// @Success      200  {array}  dto.StockResponse
// @Router       /api/inventory/out-of-stock [get]
func (h *InventoryHandler) OutOfStock(c *fiber.Ctx) error {
	return h.listFiltered(c, repository.StockListFilter{OutOfStock: true})
}

func (h *InventoryHandler) listFiltered(c *fiber.Ctx, filter repository.StockListFilter) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return badRequest(c, "INVALID_QUERY", "parámetros inválidos")
	}
	page.DefaultPage()
	filter.Limit = page.Limit
	filter.Offset = page.Offset
	list, err := h.queryUC.List(filter)
	if err != nil {
		return writeDomainError(c, err)
	}
	out := make([]dto.StockResponse, 0, len(list))
	for _, s := range list {
		out = append(out, toStockResponse(s))
	}
	return c.JSON(out)
}

// Summary godoc
// @Summary      Totales agregados del inventario
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.StockSummaryResponse
// @Router       /api/inventory/summary [get]
func (h *InventoryHandler) Summary(c *fiber.Ctx) error {
	sum, err := h.queryUC.Summary()
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(dto.StockSummaryResponse{
		TotalItems:      sum.TotalItems,
		LowStockItems:   sum.LowStockItems,
		OutOfStockItems: sum.OutOfStockItems,
		TotalValue:      money(sum.TotalValue),
	})
}

// GetByProduct godoc
// @Summary      Stock actual de un producto
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        productId  path  string  true  "ID del producto"
// @Success      200  {object}  dto.StockResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/{productId} [get]
func (h *InventoryHandler) GetByProduct(c *fiber.Ctx) error {
	out, err := h.queryUC.GetByProduct(c.Params("productId"))
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(toStockResponse(out))
}

// Movements godoc
// @Summary      Libro de movimientos de stock
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        product_id     query  string  false  "Filtrar por producto"
// @Param        movement_type  query  string  false  "in, out o adjustment"
// @Param        start          query  string  false  "Fecha inicial YYYY-MM-DD (inclusiva)"
// @Param        end            query  string  false  "Fecha final YYYY-MM-DD (inclusiva, día completo)"
// @Param        limit          query  int     false  "Límite"  default(100)
// @Param        offset         query  int     false  "Offset"  default(0)
// @Success      200  {array}  dto.MovementResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/inventory/movements [get]
func (h *InventoryHandler) Movements(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return badRequest(c, "INVALID_QUERY", "parámetros inválidos")
	}
	page.DefaultPage()

	filter := repository.MovementFilter{
		ProductID:    c.Query("product_id"),
		MovementType: c.Query("movement_type"),
		Limit:        page.Limit,
		Offset:       page.Offset,
	}
	if s := c.Query("start"); s != "" {
		t, err := time.Parse("2006-01-02", s)
		if err != nil {
			return badRequest(c, "VALIDATION", "start debe ser YYYY-MM-DD")
		}
		filter.From = &t
	}
	if s := c.Query("end"); s != "" {
		t, err := time.Parse("2006-01-02", s)
		if err != nil {
			return badRequest(c, "VALIDATION", "end debe ser YYYY-MM-DD")
		}
		// Inclusivo hasta el final del día
		end := t.Add(24*time.Hour - time.Nanosecond)
		filter.To = &end
	}

	list, err := h.queryUC.Movements(filter)
	if err != nil {
		return writeDomainError(c, err)
	}
	out := make([]dto.MovementResponse, 0, len(list))
	for _, m := range list {
		out = append(out, toMovementResponse(m))
	}
	return c.JSON(out)
}
