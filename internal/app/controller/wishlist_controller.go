package controller

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/kishorkishor/storefront-backend/internal/app/query"
	"github.com/kishorkishor/storefront-backend/internal/app/service"
	apperrors "github.com/kishorkishor/storefront-backend/internal/errors"
	"github.com/kishorkishor/storefront-backend/internal/middleware"
)

type WishlistController struct {
	wishlistService service.WishlistService
}

func NewWishlistController(wishlistService service.WishlistService) *WishlistController {
	return &WishlistController{wishlistService: wishlistService}
}

type WishlistItemRequest struct {
	ProductID string `json:"product_id" binding:"required"`
}

// GetWishlist returns the session's wishlist, optionally filtered and
// sorted with the product list parameters.
// GET /api/v1/wishlist
func (ctrl *WishlistController) GetWishlist(c *gin.Context) {
	sessionID := middleware.GetSessionID(c)

	params := query.ParseParams(c.Request.URL.Query())
	view, err := ctrl.wishlistService.List(sessionID, params)
	if err != nil {
		ctrl.respondError(c, err, "Failed to fetch wishlist")
		return
	}
	respondOK(c, view)
}

// AddToWishlist saves a product.
// POST /api/v1/wishlist/items
func (ctrl *WishlistController) AddToWishlist(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)
	sessionID := middleware.GetSessionID(c)

	var req WishlistItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Product ID is required")
		return
	}

	view, err := ctrl.wishlistService.Add(sessionID, req.ProductID)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			apperrors.NotFound(c, apperrors.ProductNotFound, "Product not found")
			return
		}
		ctrl.respondError(c, err, "Failed to add item to wishlist")
		return
	}

	log.Info("Item added to wishlist", map[string]interface{}{
		"session_id": sessionID,
		"product_id": req.ProductID,
	})
	respondOKWithMessage(c, view, "Item added to wishlist")
}

// ToggleWishlist flips a product in or out of the wishlist.
// POST /api/v1/wishlist/toggle
func (ctrl *WishlistController) ToggleWishlist(c *gin.Context) {
	sessionID := middleware.GetSessionID(c)

	var req WishlistItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Product ID is required")
		return
	}

	view, saved, err := ctrl.wishlistService.Toggle(sessionID, req.ProductID)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			apperrors.NotFound(c, apperrors.ProductNotFound, "Product not found")
			return
		}
		ctrl.respondError(c, err, "Failed to toggle wishlist item")
		return
	}

	respondOK(c, gin.H{"wishlist": view, "saved": saved})
}

// RemoveFromWishlist deletes a saved product.
// DELETE /api/v1/wishlist/items/:product_id
func (ctrl *WishlistController) RemoveFromWishlist(c *gin.Context) {
	sessionID := middleware.GetSessionID(c)
	productID := c.Param("product_id")

	view, err := ctrl.wishlistService.Remove(sessionID, productID)
	if err != nil {
		ctrl.respondError(c, err, "Failed to remove wishlist item")
		return
	}
	respondOKWithMessage(c, view, "Item removed from wishlist")
}

// ClearWishlist empties the wishlist.
// DELETE /api/v1/wishlist
func (ctrl *WishlistController) ClearWishlist(c *gin.Context) {
	sessionID := middleware.GetSessionID(c)

	view, err := ctrl.wishlistService.Clear(sessionID)
	if err != nil {
		ctrl.respondError(c, err, "Failed to clear wishlist")
		return
	}
	respondOKWithMessage(c, view, "Wishlist cleared")
}

// CheckWishlist reports whether a product is saved.
// GET /api/v1/wishlist/contains/:product_id
func (ctrl *WishlistController) CheckWishlist(c *gin.Context) {
	sessionID := middleware.GetSessionID(c)
	productID := c.Param("product_id")

	saved, err := ctrl.wishlistService.Contains(sessionID, productID)
	if err != nil {
		ctrl.respondError(c, err, "Failed to check wishlist")
		return
	}
	respondOK(c, gin.H{"product_id": productID, "saved": saved})
}

// GetWishlistCount returns the number of saved products.
// GET /api/v1/wishlist/count
func (ctrl *WishlistController) GetWishlistCount(c *gin.Context) {
	sessionID := middleware.GetSessionID(c)

	count, err := ctrl.wishlistService.Count(sessionID)
	if err != nil {
		ctrl.respondError(c, err, "Failed to fetch wishlist count")
		return
	}
	respondOK(c, gin.H{"count": count})
}

func (ctrl *WishlistController) respondError(c *gin.Context, err error, msg string) {
	log := middleware.GetLoggerFromContext(c)
	log.Error(msg, err, map[string]interface{}{
		"session_id": middleware.GetSessionID(c),
	})
	info := apperrors.ParseError(err, "wishlist")
	apperrors.RespondWithError(c, info.Status, info.Code, info.Message)
}
