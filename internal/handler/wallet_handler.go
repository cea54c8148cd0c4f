package handler

import (
	"net/http"

	"khanaveve/internal/config"
	"khanaveve/internal/middleware"
	"khanaveve/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /walletのHTTP
type WalletHandler struct {
	uc *usecase.WalletUsecase
}

// DI
func NewWalletHandler(uc *usecase.WalletUsecase) *WalletHandler {
	return &WalletHandler{uc: uc}
}

type TopUpRequest struct {
	Amount float64 `json:"amount"`
}

func (h *WalletHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	g := e.Group("/wallet")
	g.Use(middleware.GuestSession(cfg))

	g.GET("", h.getWallet)
	g.POST("/topup", h.topUp)
}

func (h *WalletHandler) getWallet(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	out, err := h.uc.GetWallet(c.Request().Context(), userID)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

func (h *WalletHandler) topUp(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	var req TopUpRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.uc.TopUp(c.Request().Context(), userID, usecase.TopUpInput{
		Amount: req.Amount,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}
