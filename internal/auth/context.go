package auth

import (
	"github.com/gin-gonic/gin"

	"github.com/nekogravitycat/smart-parking-backend/internal/pkg/apperror"
)

// ErrPermissionDenied is returned when a caller acts on another driver's behalf.
var ErrPermissionDenied = apperror.Forbidden("permission denied")

const (
	RoleUser  = "user"
	RoleAdmin = "admin"

	ctxUserID = "userID"
	ctxRole   = "userRole"
	ctxClaims = "tokenClaims"
)

// GetUserID returns the authenticated driver's user id, or false when the
// request is unauthenticated.
func GetUserID(c *gin.Context) (int64, bool) {
	if v, ok := c.Get(ctxUserID); ok {
		if id, ok := v.(int64); ok {
			return id, true
		}
	}
	return 0, false
}

// IsAdmin reports whether the authenticated caller carries the admin role.
func IsAdmin(c *gin.Context) bool {
	return c.GetString(ctxRole) == RoleAdmin
}

// CanActAs reports whether the caller may operate on behalf of userID.
func CanActAs(c *gin.Context, userID int64) bool {
	if IsAdmin(c) {
		return true
	}
	id, ok := GetUserID(c)
	return ok && id == userID
}

// GetClaims returns the parsed token claims stored by AuthRequired.
func GetClaims(c *gin.Context) *Claims {
	if v, ok := c.Get(ctxClaims); ok {
		if claims, ok := v.(*Claims); ok {
			return claims
		}
	}
	return nil
}
