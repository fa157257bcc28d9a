package controller

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/kishorkishor/storefront-backend/internal/app/service"
	apperrors "github.com/kishorkishor/storefront-backend/internal/errors"
	"github.com/kishorkishor/storefront-backend/internal/middleware"
)

type CartController struct {
	cartService service.CartService
}

func NewCartController(cartService service.CartService) *CartController {
	return &CartController{cartService: cartService}
}

type AddToCartRequest struct {
	ProductID string `json:"product_id" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,gte=1"`
}

type UpdateCartItemRequest struct {
	Quantity int `json:"quantity"`
}

// GetCart returns the session's cart.
// GET /api/v1/cart
func (ctrl *CartController) GetCart(c *gin.Context) {
	sessionID := middleware.GetSessionID(c)

	view, err := ctrl.cartService.Get(sessionID)
	if err != nil {
		ctrl.respondError(c, err, "Failed to fetch cart")
		return
	}
	respondOK(c, view)
}

// AddToCart adds a product to the session's cart.
// POST /api/v1/cart/items
func (ctrl *CartController) AddToCart(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)
	sessionID := middleware.GetSessionID(c)

	var req AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid add to cart request", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Product ID and a quantity of at least 1 are required")
		return
	}

	view, err := ctrl.cartService.Add(sessionID, req.ProductID, req.Quantity)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrProductNotFound):
			apperrors.NotFound(c, apperrors.ProductNotFound, "Product not found")
		case errors.Is(err, service.ErrInvalidQuantity):
			apperrors.BadRequest(c, apperrors.CartInvalidQty, "Quantity must be at least 1")
		default:
			ctrl.respondError(c, err, "Failed to add item to cart")
		}
		return
	}

	log.Info("Item added to cart", map[string]interface{}{
		"session_id": sessionID,
		"product_id": req.ProductID,
		"quantity":   req.Quantity,
	})
	respondOKWithMessage(c, view, "Item added to cart")
}

// UpdateCartItem sets the quantity of a line item. Zero removes it.
// PUT /api/v1/cart/items/:product_id
func (ctrl *CartController) UpdateCartItem(c *gin.Context) {
	sessionID := middleware.GetSessionID(c)
	productID := c.Param("product_id")

	var req UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid request data")
		return
	}

	view, err := ctrl.cartService.UpdateQuantity(sessionID, productID, req.Quantity)
	if err != nil {
		ctrl.respondError(c, err, "Failed to update cart item")
		return
	}
	respondOK(c, view)
}

// RemoveFromCart removes a line item.
// DELETE /api/v1/cart/items/:product_id
func (ctrl *CartController) RemoveFromCart(c *gin.Context) {
	sessionID := middleware.GetSessionID(c)
	productID := c.Param("product_id")

	view, err := ctrl.cartService.Remove(sessionID, productID)
	if err != nil {
		ctrl.respondError(c, err, "Failed to remove cart item")
		return
	}
	respondOKWithMessage(c, view, "Item removed from cart")
}

// ClearCart empties the cart.
// DELETE /api/v1/cart
func (ctrl *CartController) ClearCart(c *gin.Context) {
	sessionID := middleware.GetSessionID(c)

	view, err := ctrl.cartService.Clear(sessionID)
	if err != nil {
		ctrl.respondError(c, err, "Failed to clear cart")
		return
	}
	respondOKWithMessage(c, view, "Cart cleared")
}

// GetCartCount returns the total quantity across line items.
// GET /api/v1/cart/count
func (ctrl *CartController) GetCartCount(c *gin.Context) {
	sessionID := middleware.GetSessionID(c)

	count, err := ctrl.cartService.Count(sessionID)
	if err != nil {
		ctrl.respondError(c, err, "Failed to fetch cart count")
		return
	}
	respondOK(c, gin.H{"count": count})
}

// GetCartTotal returns the cart subtotal.
// GET /api/v1/cart/total
func (ctrl *CartController) GetCartTotal(c *gin.Context) {
	sessionID := middleware.GetSessionID(c)

	total, err := ctrl.cartService.Total(sessionID)
	if err != nil {
		ctrl.respondError(c, err, "Failed to fetch cart total")
		return
	}
	respondOK(c, gin.H{"total": total})
}

func (ctrl *CartController) respondError(c *gin.Context, err error, msg string) {
	log := middleware.GetLoggerFromContext(c)
	log.Error(msg, err, map[string]interface{}{
		"session_id": middleware.GetSessionID(c),
	})
	info := apperrors.ParseError(err, "cart")
	apperrors.RespondWithError(c, info.Status, info.Code, info.Message)
}
