package handler

import (
	"net/http"

	"khanaveve/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /session のHTTP。ゲストIDの払い出しだけ（ログインは無い）。
type SessionHandler struct {
	uc *usecase.SessionUsecase
}

// DI
func NewSessionHandler(uc *usecase.SessionUsecase) *SessionHandler {
	return &SessionHandler{uc: uc}
}

func (h *SessionHandler) RegisterRoutes(e *echo.Echo) {
	e.POST("/session/guest", h.createGuest)
}

func (h *SessionHandler) createGuest(c echo.Context) error {
	out, err := h.uc.CreateGuest(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}
