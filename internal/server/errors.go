package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	permdomain "github.com/merchhaus/backoffice/internal/accesspermission/domain"
	apikeydomain "github.com/merchhaus/backoffice/internal/apikey/domain"
	authdomain "github.com/merchhaus/backoffice/internal/auth/domain"
	campaigndomain "github.com/merchhaus/backoffice/internal/campaign/domain"
	companydomain "github.com/merchhaus/backoffice/internal/company/domain"
	orderdomain "github.com/merchhaus/backoffice/internal/pendingorder/domain"
	privacydomain "github.com/merchhaus/backoffice/internal/privacyrule/domain"
	userdomain "github.com/merchhaus/backoffice/internal/user/domain"
	"gorm.io/gorm"
)

// The forbidden message is deliberately generic: it never reveals whether
// the record exists or which rule denied the request.
const forbiddenMessage = "You do not have the necessary permissions to perform this action"

var (
	ErrUnauthorized    = errors.New("unauthorized")
	ErrForbidden       = errors.New(forbiddenMessage)
	ErrTooManyRequests = errors.New("too many requests")
)

type errorBody struct {
	Message string `json:"message"`
}

// respond writes the success envelope with the payload under its own key.
func respond(c *gin.Context, status int, key string, payload any) {
	c.JSON(status, gin.H{
		"statusCode": status,
		"success":    true,
		key:          payload,
	})
}

// respondList is respond plus the pagination meta block.
func respondList(c *gin.Context, key string, payload any, meta any) {
	c.JSON(http.StatusOK, gin.H{
		"statusCode": http.StatusOK,
		"success":    true,
		key:          payload,
		"meta":       meta,
	})
}

func ErrorHandlingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}

		lastErr := c.Errors.Last()
		if lastErr == nil {
			return
		}

		status, message := mapError(lastErr.Err)
		c.AbortWithStatusJSON(status, gin.H{
			"statusCode": status,
			"success":    false,
			"errors":     errorBody{Message: message},
		})
	}
}

func AbortWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}

func mapError(err error) (int, string) {
	if err == nil {
		return http.StatusInternalServerError, "internal server error"
	}

	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		return http.StatusUnprocessableEntity, "validation failed"
	}

	switch {
	case errors.Is(err, ErrUnauthorized),
		errors.Is(err, authdomain.ErrInvalidCredentials),
		errors.Is(err, authdomain.ErrSessionExpired),
		errors.Is(err, apikeydomain.ErrInvalidKey):
		return http.StatusUnauthorized, "unauthorized"

	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden, forbiddenMessage
	case errors.Is(err, orderdomain.ErrForeignOrders),
		errors.Is(err, orderdomain.ErrDuplicateRole):
		return http.StatusForbidden, err.Error()
	case errors.Is(err, orderdomain.ErrOrderLocked),
		errors.Is(err, orderdomain.ErrCampaignClosed):
		return http.StatusForbidden, forbiddenMessage

	case errors.Is(err, ErrTooManyRequests):
		return http.StatusTooManyRequests, "too many requests"

	case errors.Is(err, orderdomain.ErrNotFound):
		return http.StatusNotFound, "PendingOrder not found"
	case isNotFoundError(err):
		return http.StatusNotFound, "not found"

	case errors.Is(err, userdomain.ErrEmailInUse):
		return http.StatusConflict, "email already in use"

	case isValidationError(err):
		return http.StatusUnprocessableEntity, "validation failed"

	default:
		return http.StatusInternalServerError, "internal server error"
	}
}

func isNotFoundError(err error) bool {
	switch {
	case errors.Is(err, userdomain.ErrNotFound),
		errors.Is(err, companydomain.ErrNotFound),
		errors.Is(err, campaigndomain.ErrNotFound),
		errors.Is(err, campaigndomain.ErrAddressNotFound),
		errors.Is(err, permdomain.ErrNotFound),
		errors.Is(err, privacydomain.ErrNotFound),
		errors.Is(err, apikeydomain.ErrNotFound),
		errors.Is(err, orderdomain.ErrNoCampaign),
		errors.Is(err, gorm.ErrRecordNotFound):
		return true
	default:
		return false
	}
}

func isValidationError(err error) bool {
	switch {
	case errors.Is(err, userdomain.ErrInvalidRole),
		errors.Is(err, userdomain.ErrInvalidEmail),
		errors.Is(err, permdomain.ErrInvalidRole),
		errors.Is(err, permdomain.ErrInvalidModule),
		errors.Is(err, permdomain.ErrInvalidLevel),
		errors.Is(err, privacydomain.ErrInvalidRole),
		errors.Is(err, privacydomain.ErrInvalidModule),
		errors.Is(err, apikeydomain.ErrInvalidName),
		errors.Is(err, apikeydomain.ErrInvalidModule),
		errors.Is(err, apikeydomain.ErrInvalidLevel),
		errors.Is(err, campaigndomain.ErrInvalidCompany):
		return true
	default:
		return false
	}
}
