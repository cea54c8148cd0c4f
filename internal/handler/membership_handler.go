package handler

import (
	"net/http"

	"khanaveve/internal/config"
	"khanaveve/internal/middleware"
	"khanaveve/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /membershipのHTTP
type MembershipHandler struct {
	uc *usecase.MembershipUsecase
}

// DI
func NewMembershipHandler(uc *usecase.MembershipUsecase) *MembershipHandler {
	return &MembershipHandler{uc: uc}
}

func (h *MembershipHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	g := e.Group("/membership")
	g.Use(middleware.GuestSession(cfg))

	g.GET("", h.getMembership)
	g.POST("/purchase", h.purchase)
}

func (h *MembershipHandler) getMembership(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	out, err := h.uc.GetMembership(c.Request().Context(), userID)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

func (h *MembershipHandler) purchase(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	out, err := h.uc.PurchasePrime(c.Request().Context(), userID)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}
