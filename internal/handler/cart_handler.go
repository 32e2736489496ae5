package handler

import (
	"net/http"
	"strconv"

	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /cartのHTTP
type CartHandler struct {
	uc          *usecase.CartUsecase
	guestUserID string
}

// DI
func NewCartHandler(uc *usecase.CartUsecase, guestUserID string) *CartHandler {
	return &CartHandler{uc: uc, guestUserID: guestUserID}
}

type AddCartRequest struct {
	ProductID int64  `json:"productId"`
	Quantity  *int64 `json:"quantity"`
	UserID    string `json:"userId"`
}

type UpdateCartItemRequest struct {
	Quantity int64  `json:"quantity"`
	UserID   string `json:"userId"`
}

// /cart, /cart/{itemId} を登録
func (h *CartHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/cart", h.getCart)
	g.POST("/cart", h.addToCart)
	g.PUT("/cart/:itemId", h.updateItem)
	g.DELETE("/cart/:itemId", h.deleteItem)
	g.DELETE("/cart", h.clearCart)
}

func (h *CartHandler) getCart(c echo.Context) error {
	userID := resolveUserID(c.QueryParam("userId"), h.guestUserID)

	out, err := h.uc.GetCart(c.Request().Context(), userID)
	if err != nil {
		return writeError(c, err)
	}

	return writeData(c, "", out)
}

func (h *CartHandler) addToCart(c echo.Context) error {
	var req AddCartRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, APIResponse{Success: false, Message: "invalid body"})
	}

	userID := resolveUserID(req.UserID, h.guestUserID)

	//quantity省略時は1
	qty := int64(1)
	if req.Quantity != nil {
		qty = *req.Quantity
	}

	out, err := h.uc.AddToCart(c.Request().Context(), userID, usecase.AddCartInput{
		ProductID: req.ProductID,
		Quantity:  qty,
	})
	if err != nil {
		return writeError(c, err)
	}

	return writeData(c, "Item added to cart", out)
}

func (h *CartHandler) updateItem(c echo.Context) error {
	itemID, err := strconv.ParseInt(c.Param("itemId"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, APIResponse{Success: false, Message: "invalid item id"})
	}

	var req UpdateCartItemRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, APIResponse{Success: false, Message: "invalid body"})
	}

	userID := resolveUserID(req.UserID, h.guestUserID)

	out, err := h.uc.UpdateCartItem(c.Request().Context(), userID, itemID, usecase.UpdateCartItemInput{
		Quantity: req.Quantity,
	})
	if err != nil {
		return writeError(c, err)
	}

	return writeData(c, "Cart updated", out)
}

func (h *CartHandler) deleteItem(c echo.Context) error {
	itemID, err := strconv.ParseInt(c.Param("itemId"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, APIResponse{Success: false, Message: "invalid item id"})
	}

	userID := resolveUserID(c.QueryParam("userId"), h.guestUserID)

	out, err := h.uc.RemoveFromCart(c.Request().Context(), userID, itemID)
	if err != nil {
		return writeError(c, err)
	}

	return writeData(c, "Item removed from cart", out)
}

func (h *CartHandler) clearCart(c echo.Context) error {
	userID := resolveUserID(c.QueryParam("userId"), h.guestUserID)

	out, err := h.uc.ClearCart(c.Request().Context(), userID)
	if err != nil {
		return writeError(c, err)
	}

	return writeData(c, "Cart cleared", out)
}
