package usecase

import (
	"context"
	"net/http"
	"time"

	"khanaveve/internal/domain/model"
	repo "khanaveve/internal/repository"
)

type OrderUsecase struct {
	orderRepo     repo.OrderRepository
	orderItemRepo repo.OrderItemRepository
	clock         Clock
}

func NewOrderUsecase(orderRepo repo.OrderRepository, orderItemRepo repo.OrderItemRepository, clock Clock) *OrderUsecase {
	return &OrderUsecase{
		orderRepo:     orderRepo,
		orderItemRepo: orderItemRepo,
		clock:         clock,
	}
}

type OrderOutput struct {
	ID              string            `json:"id"`
	Status          model.OrderStatus `json:"status"`
	Total           float64           `json:"total"`
	OrderDate       time.Time         `json:"order_date"`
	DeliveryAddress string            `json:"delivery_address"`
	VendorName      string            `json:"vendor_name"`
	Items           []model.OrderItem `json:"items"`
}

type OrderListOutput struct {
	Active []OrderOutput `json:"active"`
	Past   []OrderOutput `json:"past"`
}

// ListMyOrders は注文一覧。ステータスは注文日時からの経過で毎回導出する。
// 5分を超えたものは保存側のstatusもDeliveredへ更新する（キャッシュであって正ではない）。
func (u *OrderUsecase) ListMyOrders(ctx context.Context, userID string) (OrderListOutput, error) {
	if userID == "" {
		return OrderListOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	orders, err := u.orderRepo.ListByUserID(ctx, userID)
	if err != nil {
		return OrderListOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	now := u.clock.Now()
	out := OrderListOutput{Active: []OrderOutput{}, Past: []OrderOutput{}}

	for _, o := range orders {
		derived := o.DeriveStatus(now)

		if derived == model.OrderStatusDelivered && o.Status != model.OrderStatusDelivered {
			// キャッシュの前進更新。失敗しても導出結果には影響しない。
			_ = u.orderRepo.UpdateStatus(ctx, o.ID, model.OrderStatusDelivered)
		}

		items, err := u.orderItemRepo.ListByOrderID(ctx, o.ID)
		if err != nil {
			return OrderListOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
		}

		oo := toOrderOutput(o, derived, items)
		if derived == model.OrderStatusDelivered || derived == model.OrderStatusCancelled {
			out.Past = append(out.Past, oo)
		} else {
			out.Active = append(out.Active, oo)
		}
	}

	return out, nil
}

func (u *OrderUsecase) GetMyOrder(ctx context.Context, userID string, orderID string) (OrderOutput, error) {
	if userID == "" {
		return OrderOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if orderID == "" {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	o, err := u.orderRepo.FindByID(ctx, orderID)
	if err == repo.ErrNotFound {
		return OrderOutput{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return OrderOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if o.UserID != userID {
		// 他人の注文は存在しない扱い
		return OrderOutput{}, NewHTTPError(http.StatusNotFound, "not found")
	}

	items, err := u.orderItemRepo.ListByOrderID(ctx, orderID)
	if err != nil {
		return OrderOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return toOrderOutput(o, o.DeriveStatus(u.clock.Now()), items), nil
}

func toOrderOutput(o model.Order, derived model.OrderStatus, items []model.OrderItem) OrderOutput {
	return OrderOutput{
		ID:              o.ID,
		Status:          derived,
		Total:           o.Total,
		OrderDate:       o.OrderDate,
		DeliveryAddress: o.DeliveryAddress,
		VendorName:      o.VendorName,
		Items:           items,
	}
}
