package handler

import (
	"encoding/json"
	"fmt"
	"net/http"

	"khanaveve/internal/config"
	"khanaveve/internal/middleware"
	"khanaveve/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /payment/sessionのHTTP。疑似決済の状態機械を操作する。
type PaymentHandler struct {
	sim *usecase.PaymentSimulator
}

// DI
func NewPaymentHandler(sim *usecase.PaymentSimulator) *PaymentHandler {
	return &PaymentHandler{sim: sim}
}

type StartPaymentRequest struct {
	Method    string `json:"method"` // "upi" | "qr"
	CouponID  string `json:"coupon_id"`
	UseWallet bool   `json:"use_wallet"`
}

type VerifyUPIRequest struct {
	UPIID string `json:"upi_id"`
}

func (h *PaymentHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	g := e.Group("/payment/session")
	g.Use(middleware.GuestSession(cfg))

	g.POST("", h.startSession)
	g.POST("/verify-upi", h.verifyUPI)
	g.POST("/confirm", h.confirm)
	g.GET("", h.getSession)
	g.DELETE("", h.cancel)
	g.GET("/events", h.streamEvents)
}

func (h *PaymentHandler) startSession(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	var req StartPaymentRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.sim.StartSession(c.Request().Context(), userID, usecase.StartPaymentInput{
		Method:    usecase.PaymentMethod(req.Method),
		CouponID:  req.CouponID,
		UseWallet: req.UseWallet,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, out)
}

func (h *PaymentHandler) verifyUPI(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	var req VerifyUPIRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.sim.VerifyUPI(c.Request().Context(), userID, usecase.VerifyUPIInput{
		UPIID: req.UPIID,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

func (h *PaymentHandler) confirm(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	out, err := h.sim.Confirm(c.Request().Context(), userID)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

func (h *PaymentHandler) getSession(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	out, err := h.sim.GetSession(c.Request().Context(), userID)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

func (h *PaymentHandler) cancel(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	if err := h.sim.Cancel(c.Request().Context(), userID); err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, SuccessResponse{Message: "payment session cancelled"})
}

// streamEvents は状態変化をSSEで流す。チャネルが閉じるか
// クライアントが切断したら終わる。
func (h *PaymentHandler) streamEvents(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	events, err := h.sim.Events(userID)
	if err != nil {
		return writeError(c, err)
	}

	res := c.Response()
	res.Header().Set(echo.HeaderContentType, "text/event-stream")
	res.Header().Set("Cache-Control", "no-cache")
	res.Header().Set("Connection", "keep-alive")
	res.WriteHeader(http.StatusOK)
	res.Flush()

	ctx := c.Request().Context()
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, open := <-events:
			if !open {
				return nil
			}
			payload, err := json.Marshal(ev)
			if err != nil {
				return nil
			}
			if _, err := fmt.Fprintf(res, "data: %s\n\n", payload); err != nil {
				return nil
			}
			res.Flush()
		}
	}
}
