package server

import (
	"khanaveve/internal/config"
	"khanaveve/internal/handler"

	"github.com/labstack/echo/v4"
)

type Handlers struct {
	Session    *handler.SessionHandler
	Catalog    *handler.CatalogHandler
	Cart       *handler.CartHandler
	Coupon     *handler.CouponHandler
	Wallet     *handler.WalletHandler
	Order      *handler.OrderHandler
	Checkout   *handler.CheckoutHandler
	Payment    *handler.PaymentHandler
	Membership *handler.MembershipHandler
}

func RegisterRoutes(e *echo.Echo, cfg config.Config, h Handlers) {
	h.Session.RegisterRoutes(e)
	h.Catalog.RegisterRoutes(e)
	h.Cart.RegisterRoutes(e, cfg)
	h.Coupon.RegisterRoutes(e, cfg)
	h.Wallet.RegisterRoutes(e, cfg)
	h.Order.RegisterRoutes(e, cfg)
	h.Checkout.RegisterRoutes(e, cfg)
	h.Payment.RegisterRoutes(e, cfg)
	h.Membership.RegisterRoutes(e, cfg)
}
