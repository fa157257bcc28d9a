package errors

// Error code constants.
// Format: CATEGORY_SPECIFIC_DETAIL
// Clients map these codes to display messages.

const (
	// ==================== Validation (VALIDATION_) ====================
	ValidationInvalidInput  = "VALIDATION_INVALID_INPUT"
	ValidationInvalidID     = "VALIDATION_INVALID_ID"
	ValidationInvalidRange  = "VALIDATION_INVALID_RANGE"
	ValidationRequired      = "VALIDATION_REQUIRED"
	ValidationInvalidFormat = "VALIDATION_INVALID_FORMAT"

	// ==================== Products (PRODUCT_) ====================
	ProductNotFound      = "PRODUCT_NOT_FOUND"
	ProductOutOfStock    = "PRODUCT_OUT_OF_STOCK"
	ProductNotPublished  = "PRODUCT_NOT_PUBLISHED"
	ProductAlreadyExists = "PRODUCT_ALREADY_EXISTS"

	// ==================== Cart (CART_) ====================
	CartItemNotFound  = "CART_ITEM_NOT_FOUND"
	CartInvalidQty    = "CART_INVALID_QUANTITY"
	CartPersistFailed = "CART_PERSIST_FAILED"

	// ==================== Wishlist (WISHLIST_) ====================
	WishlistItemNotFound  = "WISHLIST_ITEM_NOT_FOUND"
	WishlistPersistFailed = "WISHLIST_PERSIST_FAILED"

	// ==================== Upstream catalog (UPSTREAM_) ====================
	UpstreamTimeout     = "UPSTREAM_TIMEOUT"
	UpstreamNetwork     = "UPSTREAM_NETWORK_ERROR"
	UpstreamError       = "UPSTREAM_ERROR"
	UpstreamUnavailable = "UPSTREAM_UNAVAILABLE"

	// ==================== Session (SESSION_) ====================
	SessionInvalid = "SESSION_INVALID"
	SessionExpired = "SESSION_EXPIRED"

	// ==================== Resources (RESOURCE_) ====================
	ResourceNotFound      = "RESOURCE_NOT_FOUND"
	ResourceAlreadyExists = "RESOURCE_ALREADY_EXISTS"
	ResourceConflict      = "RESOURCE_CONFLICT"

	// ==================== Server (SERVER_) ====================
	InternalServerError = "INTERNAL_SERVER_ERROR"
	ServiceUnavailable  = "SERVICE_UNAVAILABLE"
)
