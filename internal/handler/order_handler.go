package handler

import (
	"net/http"
	"strings"

	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

// チェックアウトと保存済みレシートのHTTP
type OrderHandler struct {
	uc          *usecase.CheckoutUsecase
	guestUserID string
}

// DI
func NewOrderHandler(uc *usecase.CheckoutUsecase, guestUserID string) *OrderHandler {
	return &OrderHandler{uc: uc, guestUserID: guestUserID}
}

type CheckoutRequest struct {
	UserID        string `json:"userId"`
	CustomerName  string `json:"customerName"`
	CustomerEmail string `json:"customerEmail"`
}

func (h *OrderHandler) RegisterRoutes(g *echo.Group) {
	g.POST("/cart/checkout", h.checkout)
	g.GET("/orders", h.listOrders)
	g.GET("/orders/:orderNumber", h.getOrder)
}

func (h *OrderHandler) checkout(c echo.Context) error {
	var req CheckoutRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, APIResponse{Success: false, Message: "invalid body"})
	}

	userID := resolveUserID(req.UserID, h.guestUserID)

	out, err := h.uc.Checkout(c.Request().Context(), userID, usecase.CheckoutInput{
		CustomerName:  req.CustomerName,
		CustomerEmail: req.CustomerEmail,
	})
	if err != nil {
		return writeError(c, err)
	}

	return writeData(c, "Checkout successful", out)
}

func (h *OrderHandler) listOrders(c echo.Context) error {
	userID := resolveUserID(c.QueryParam("userId"), h.guestUserID)

	out, err := h.uc.ListOrders(c.Request().Context(), userID)
	if err != nil {
		return writeError(c, err)
	}

	return writeData(c, "", out)
}

func (h *OrderHandler) getOrder(c echo.Context) error {
	orderNumber := strings.TrimSpace(c.Param("orderNumber"))
	if orderNumber == "" {
		return c.JSON(http.StatusBadRequest, APIResponse{Success: false, Message: "invalid order number"})
	}

	out, err := h.uc.GetOrder(c.Request().Context(), orderNumber)
	if err != nil {
		return writeError(c, err)
	}

	return writeData(c, "", out)
}
