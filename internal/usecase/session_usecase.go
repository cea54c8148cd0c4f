package usecase

import (
	"context"
	"fmt"
	"math/rand"
	"net/http"
	"time"

	"khanaveve/internal/domain/model"
	repo "khanaveve/internal/repository"

	"github.com/golang-jwt/jwt/v4"
)

// ゲスト初期付与のパラメータ
const (
	welcomeWalletBalance = 350.0
	welcomeRandomCoupons = 6
	sessionValidityDays  = 90
)

type SessionUsecase struct {
	couponRepo     repo.CouponRepository
	walletRepo     repo.WalletRepository
	membershipRepo repo.MembershipRepository
	profileRepo    repo.ProfileRepository
	clock          Clock
	idGen          IDGenerator
	sessionSecret  string
}

func NewSessionUsecase(
	couponRepo repo.CouponRepository,
	walletRepo repo.WalletRepository,
	membershipRepo repo.MembershipRepository,
	profileRepo repo.ProfileRepository,
	clock Clock,
	idGen IDGenerator,
	sessionSecret string,
) *SessionUsecase {
	return &SessionUsecase{
		couponRepo:     couponRepo,
		walletRepo:     walletRepo,
		membershipRepo: membershipRepo,
		profileRepo:    profileRepo,
		clock:          clock,
		idGen:          idGen,
		sessionSecret:  sessionSecret,
	}
}

type GuestSessionOutput struct {
	UserID string `json:"user_id"`
	Token  string `json:"token"`
}

// CreateGuest はゲストIDを払い出して初期状態を付与し、署名トークンを返す。
// 付与内容：ウォレット350、Prime 30日、固定クーポン3枚＋ランダム6枚、
// デフォルト住所つきプロフィール。
func (u *SessionUsecase) CreateGuest(ctx context.Context) (GuestSessionOutput, error) {
	userID := u.idGen.NewID()
	now := u.clock.Now()

	if err := u.seedWallet(ctx, userID, now); err != nil {
		return GuestSessionOutput{}, err
	}
	if err := u.seedMembership(ctx, userID, now); err != nil {
		return GuestSessionOutput{}, err
	}
	if err := u.seedCoupons(ctx, userID, now); err != nil {
		return GuestSessionOutput{}, err
	}
	if err := u.seedProfile(ctx, userID, now); err != nil {
		return GuestSessionOutput{}, err
	}

	token, err := u.signToken(userID, now)
	if err != nil {
		return GuestSessionOutput{}, NewHTTPError(http.StatusInternalServerError, "token error")
	}

	return GuestSessionOutput{UserID: userID, Token: token}, nil
}

func (u *SessionUsecase) seedWallet(ctx context.Context, userID string, now time.Time) error {
	if _, err := u.walletRepo.GetOrCreateByUserID(ctx, userID); err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	txn := model.WalletTransaction{
		ID:          "txn_" + u.idGen.NewID(),
		UserID:      userID,
		Amount:      welcomeWalletBalance,
		Kind:        model.TransactionCredit,
		Description: "Welcome bonus",
		CreatedAt:   now,
	}
	if err := u.walletRepo.ApplyTransaction(ctx, txn); err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

func (u *SessionUsecase) seedMembership(ctx context.Context, userID string, now time.Time) error {
	expiry := now.Add(primeValidityDays * 24 * time.Hour)
	m := model.Membership{
		UserID:    userID,
		IsActive:  true,
		Expiry:    &expiry,
		AutoRenew: true,
		UpdatedAt: now,
	}
	if err := u.membershipRepo.Save(ctx, m); err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

func (u *SessionUsecase) seedCoupons(ctx context.Context, userID string, now time.Time) error {
	expiry := now.Add(couponValidityDays * 24 * time.Hour)

	fixed := []model.Coupon{
		{ID: "c1_" + userID, Code: "10%OFF", Description: "10% off on all orders", Discount: 10, Type: model.CouponTypePercent, MinOrder: 200},
		{ID: "c2_" + userID, Code: "RS50", Description: "Flat ₹50 off", Discount: 50, Type: model.CouponTypeFixed, MinOrder: 300},
		{ID: "c3_" + userID, Code: "PRIME15", Description: "Extra 15% off for Prime members", Discount: 15, Type: model.CouponTypePercent, MinOrder: 250},
	}

	for _, c := range fixed {
		c.UserID = userID
		c.Expiry = expiry
		if err := u.couponRepo.Create(ctx, c); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
	}

	for i := 0; i < welcomeRandomCoupons; i++ {
		percent := scratchMinPercent + rand.Intn(scratchMaxPercent-scratchMinPercent+1)
		c := model.Coupon{
			ID:          "rc_" + u.idGen.NewID(),
			UserID:      userID,
			Code:        fmt.Sprintf("SAVE%d", percent),
			Description: fmt.Sprintf("%d%% off on subtotal", percent),
			Discount:    float64(percent),
			Type:        model.CouponTypePercent,
			MinOrder:    scratchMinOrder,
			Expiry:      expiry,
		}
		if err := u.couponRepo.Create(ctx, c); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
	}
	return nil
}

func (u *SessionUsecase) seedProfile(ctx context.Context, userID string, now time.Time) error {
	p := model.UserProfile{
		UserID:    userID,
		Name:      "Nikhil Rajput",
		Email:     "nikhil.rajput@example.com",
		Phone:     "9876543210",
		UpdatedAt: now,
	}
	addresses := []model.Address{
		{ID: "addr1_" + userID, FullAddress: "123 Tech Park, Silicon Valley, Mumbai - 400001", IsDefault: true},
		{ID: "addr2_" + userID, FullAddress: "456 Startup Lane, Innovation Hub, Thane - 400601", IsDefault: false},
	}
	if err := u.profileRepo.SeedProfile(ctx, p, addresses); err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

func (u *SessionUsecase) signToken(userID string, now time.Time) (string, error) {
	claims := jwt.MapClaims{
		"sub": userID,
		"iat": now.Unix(),
		"exp": now.Add(sessionValidityDays * 24 * time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(u.sessionSecret))
}
