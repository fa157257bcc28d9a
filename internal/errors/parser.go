package errors

import (
	"errors"
	"net/http"

	"gorm.io/gorm"

	"github.com/kishorkishor/storefront-backend/pkg/apiclient"
)

// ErrorInfo pairs an error code with the HTTP status and message to return.
type ErrorInfo struct {
	Status  int
	Code    string
	Message string
}

// ParseError maps a service-layer error onto the response to send. Upstream
// client failures keep their transport distinction (timeout vs network vs
// HTTP error) so callers can tell a slow catalog from a dead one.
func ParseError(err error, context string) ErrorInfo {
	if err == nil {
		return ErrorInfo{
			Status:  http.StatusInternalServerError,
			Code:    InternalServerError,
			Message: "An unexpected error occurred",
		}
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrorInfo{
			Status:  http.StatusNotFound,
			Code:    ResourceNotFound,
			Message: notFoundMessage(context),
		}
	}

	if apiclient.IsTimeout(err) {
		return ErrorInfo{
			Status:  http.StatusGatewayTimeout,
			Code:    UpstreamTimeout,
			Message: "The catalog service took too long to respond",
		}
	}
	if apiclient.IsNetwork(err) {
		return ErrorInfo{
			Status:  http.StatusBadGateway,
			Code:    UpstreamNetwork,
			Message: "Could not reach the catalog service",
		}
	}
	var apiErr *apiclient.Error
	if errors.As(err, &apiErr) {
		return ErrorInfo{
			Status:  http.StatusBadGateway,
			Code:    UpstreamError,
			Message: "The catalog service returned an error",
		}
	}

	return ErrorInfo{
		Status:  http.StatusInternalServerError,
		Code:    InternalServerError,
		Message: "An unexpected error occurred",
	}
}

func notFoundMessage(context string) string {
	switch context {
	case "product":
		return "Product not found"
	case "category":
		return "Category not found"
	default:
		return "Resource not found"
	}
}
