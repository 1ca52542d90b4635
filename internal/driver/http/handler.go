package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/nekogravitycat/smart-parking-backend/internal/auth"
	"github.com/nekogravitycat/smart-parking-backend/internal/driver"
	"github.com/nekogravitycat/smart-parking-backend/internal/pkg/request"
	"github.com/nekogravitycat/smart-parking-backend/internal/pkg/response"
)

type DriverHandler struct {
	service    driver.Service
	jwtManager *auth.JWTManager
	revoker    auth.Revoker
}

func NewHandler(service driver.Service, jwtManager *auth.JWTManager, revoker auth.Revoker) *DriverHandler {
	return &DriverHandler{
		service:    service,
		jwtManager: jwtManager,
		revoker:    revoker,
	}
}

// Register creates a driver account.
func (h *DriverHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request", err)
		return
	}

	d, err := h.service.Register(c.Request.Context(), driver.RegisterRequest{
		UserID:      req.UserID,
		OwnerName:   req.OwnerName,
		VehicleName: req.VehicleName,
		BankNumber:  req.BankNumber,
		Password:    req.Password,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	zap.L().Info("driver registered", zap.Int64("user_id", d.UserID))
	c.JSON(http.StatusCreated, gin.H{
		"message": "Driver Registered",
		"user":    NewProfileResponse(d),
	})
}

// Login authenticates a driver and returns a signed access token.
func (h *DriverHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, driver.ErrLoginFailed)
		return
	}

	d, err := h.service.Authenticate(c.Request.Context(), req.UserID, req.Password)
	if err != nil {
		response.Error(c, err)
		return
	}

	token, err := h.jwtManager.GenerateAccessToken(d.UserID, d.Role)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, LoginResponse{
		Message:     "Login Success",
		AccessToken: token,
		User:        NewProfileResponse(d),
	})
}

// Logout revokes the presented token until it expires.
func (h *DriverHandler) Logout(c *gin.Context) {
	claims := auth.GetClaims(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	if err := h.revoker.Revoke(c.Request.Context(), claims.ID, claims.ExpiresAt.Time); err != nil {
		response.Error(c, err)
		return
	}

	response.Message(c, http.StatusOK, "Logout Success")
}

// Me returns the authenticated driver's profile.
func (h *DriverHandler) Me(c *gin.Context) {
	userID, ok := auth.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	d, err := h.service.GetByUserID(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": NewProfileResponse(d)})
}

// UpdateMe applies a partial profile update to the authenticated driver.
func (h *DriverHandler) UpdateMe(c *gin.Context) {
	userID, ok := auth.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var body UpdateProfileRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BadRequest(c, "invalid request body", err)
		return
	}

	d, err := h.service.UpdateProfile(c.Request.Context(), userID, driver.ProfilePatch{
		OwnerName:   body.OwnerName,
		VehicleName: body.VehicleName,
		BankNumber:  body.BankNumber,
		OldPassword: body.OldPassword,
		NewPassword: body.NewPassword,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "User information updated successfully",
		"user":    NewProfileResponse(d),
	})
}

// List returns every driver with their current slot.
// Access Control: admin only.
func (h *DriverHandler) List(c *gin.Context) {
	drivers, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]DriverResponse, len(drivers))
	for i, d := range drivers {
		items[i] = NewDriverResponse(d)
	}
	c.JSON(http.StatusOK, items)
}

// LookupID resolves an external user id to the internal driver id.
func (h *DriverHandler) LookupID(c *gin.Context) {
	var uri request.ByUserIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BadRequest(c, "invalid request", err)
		return
	}

	d, err := h.service.GetByUserID(c.Request.Context(), uri.UserID)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": d.ID})
}
