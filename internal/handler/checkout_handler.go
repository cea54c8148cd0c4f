package handler

import (
	"net/http"

	"khanaveve/internal/config"
	"khanaveve/internal/middleware"
	"khanaveve/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /checkoutのHTTP。支払額の内訳を返すだけで何も確定しない。
type CheckoutHandler struct {
	uc *usecase.CheckoutUsecase
}

// DI
func NewCheckoutHandler(uc *usecase.CheckoutUsecase) *CheckoutHandler {
	return &CheckoutHandler{uc: uc}
}

func (h *CheckoutHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	g := e.Group("/checkout")
	g.Use(middleware.GuestSession(cfg))

	g.GET("/totals", h.getTotals)
}

// GET /checkout/totals?coupon_id=...&use_wallet=true
func (h *CheckoutHandler) getTotals(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	out, err := h.uc.ComputeCheckoutTotals(c.Request().Context(), userID, usecase.CheckoutInput{
		CouponID:  c.QueryParam("coupon_id"),
		UseWallet: c.QueryParam("use_wallet") == "true",
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}
