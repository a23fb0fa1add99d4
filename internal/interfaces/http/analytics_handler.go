package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/comercio-api/internal/application/usecase"
)

// AnalyticsHandler maneja las consultas del panel y los reportes (protegido).
type AnalyticsHandler struct {
	uc *usecase.AnalyticsUseCase
}

// NewAnalyticsHandler construye el handler.
func NewAnalyticsHandler(uc *usecase.AnalyticsUseCase) *AnalyticsHandler {
	return &AnalyticsHandler{uc: uc}
}

// parseRange lee from/to (YYYY-MM-DD, inclusivos). Sin parámetros usa los
// últimos 30 días.
func parseRange(c *fiber.Ctx) (from, to time.Time, err error) {
	now := time.Now()
	from = now.AddDate(0, 0, -30)
	to = now

	if s := c.Query("from"); s != "" {
		from, err = time.Parse("2006-01-02", s)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
	}
	if s := c.Query("to"); s != "" {
		t, perr := time.Parse("2006-01-02", s)
		if perr != nil {
			return time.Time{}, time.Time{}, perr
		}
		to = t.Add(24*time.Hour - time.Nanosecond)
	}
	return from, to, nil
}

// Dashboard godoc
// @Summary      Contadores del panel principal
// @Tags         analytics
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.DashboardResponse
// @Router       /api/analytics/dashboard [get]
func (h *AnalyticsHandler) Dashboard(c *fiber.Ctx) error {
	out, err := h.uc.Dashboard(c.UserContext())
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(out)
}

// SalesReport godoc
// @Summary      Ventas completadas agrupadas por período
// @Tags         analytics
// @Security     Bearer
// @Produce      json
// @Param        from      query  string  false  "YYYY-MM-DD (default: hace 30 días)"
// @Param        to        query  string  false  "YYYY-MM-DD (default: hoy)"
// @Param        group_by  query  string  false  "day, week o month"  default(day)
// @Success      200  {array}  dto.ReportRowResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/analytics/sales-report [get]
func (h *AnalyticsHandler) SalesReport(c *fiber.Ctx) error {
	from, to, err := parseRange(c)
	if err != nil {
		return badRequest(c, "VALIDATION", "from/to deben ser YYYY-MM-DD")
	}
	out, err := h.uc.SalesReport(c.UserContext(), from, to, c.Query("group_by"))
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(out)
}

// PurchaseReport godoc
// @Summary      Compras completadas agrupadas por período
// @Tags         analytics
// @Security     Bearer
// @Produce      json
// @Param        from      query  string  false  "YYYY-MM-DD (default: hace 30 días)"
// @Param        to        query  string  false  "YYYY-MM-DD (default: hoy)"
// @Param        group_by  query  string  false  "day, week o month"  default(day)
// @Success      200  {array}  dto.ReportRowResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/analytics/purchase-report [get]
func (h *AnalyticsHandler) PurchaseReport(c *fiber.Ctx) error {
	from, to, err := parseRange(c)
	if err != nil {
		return badRequest(c, "VALIDATION", "from/to deben ser YYYY-MM-DD")
	}
	out, err := h.uc.PurchaseReport(c.UserContext(), from, to, c.Query("group_by"))
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(out)
}

// TopProducts godoc
// @Summary      Productos más vendidos por unidades
// @Tags         analytics
// @Security     Bearer
// @Produce      json
// @Param        from   query  string  false  "YYYY-MM-DD (default: hace 30 días)"
// @Param        to     query  string  false  "YYYY-MM-DD (default: hoy)"
// @Param        limit  query  int     false  "Número de productos"  default(10)
// @Success      200  {array}  dto.TopProductResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/analytics/top-products [get]
func (h *AnalyticsHandler) TopProducts(c *fiber.Ctx) error {
	from, to, err := parseRange(c)
	if err != nil {
		return badRequest(c, "VALIDATION", "from/to deben ser YYYY-MM-DD")
	}
	out, err := h.uc.TopProducts(c.UserContext(), from, to, c.QueryInt("limit", 10))
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(out)
}

// TopCustomers godoc
// @Summary      Clientes con mayor monto comprado
// @Tags         analytics
// @Security     Bearer
// @Produce      json
// @Param        from   query  string  false  "YYYY-MM-DD (default: hace 30 días)"
// @Param        to     query  string  false  "YYYY-MM-DD (default: hoy)"
// @Param        limit  query  int     false  "Número de clientes"  default(10)
// @Success      200  {array}  dto.TopCustomerResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/analytics/top-customers [get]
func (h *AnalyticsHandler) TopCustomers(c *fiber.Ctx) error {
	from, to, err := parseRange(c)
	if err != nil {
		return badRequest(c, "VALIDATION", "from/to deben ser YYYY-MM-DD")
	}
	out, err := h.uc.TopCustomers(c.UserContext(), from, to, c.QueryInt("limit", 10))
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(out)
}
