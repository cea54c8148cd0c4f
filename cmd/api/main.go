package main

import (
	"context"
	"time"

	"khanaveve/internal/config"
	"khanaveve/internal/domain/model"
	"khanaveve/internal/handler"
	"khanaveve/internal/infra/db"
	infraRepo "khanaveve/internal/infra/repository"
	"khanaveve/internal/server"
	"khanaveve/internal/usecase"
	"khanaveve/internal/validator"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

type uuidGenerator struct{}

func (g *uuidGenerator) NewID() string {
	return uuid.NewString()
}

type realClock struct{}

func (c *realClock) Now() time.Time {
	return time.Now()
}

// time.AfterFunc をusecase.Schedulerに合わせる薄いラッパ
type realScheduler struct{}

func (s *realScheduler) AfterFunc(d time.Duration, fn func()) usecase.Timer {
	return time.AfterFunc(d, fn)
}

func main() {
	//.envは無くてもよい（環境変数直指定を許す）
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	//DB接続
	gormDB, err := db.Connect()
	if err != nil {
		panic(err)
	}
	if err := gormDB.AutoMigrate(
		&model.Vendor{},
		&model.Dish{},
		&model.CartItem{},
		&model.Coupon{},
		&model.Wallet{},
		&model.WalletTransaction{},
		&model.Order{},
		&model.OrderItem{},
		&model.Membership{},
		&model.UserProfile{},
		&model.Address{},
	); err != nil {
		panic(err)
	}

	//Repository（GORM実装）生成
	catalogRepo := infraRepo.NewCatalogGormRepository(gormDB)
	cartRepo := infraRepo.NewCartGormRepository(gormDB)

	//カタログ初期投入（既にあればスキップ）
	if err := db.SeedCatalog(context.Background(), catalogRepo); err != nil {
		panic(err)
	}
	couponRepo := infraRepo.NewCouponGormRepository(gormDB)
	walletRepo := infraRepo.NewWalletGormRepository(gormDB)
	orderRepo := infraRepo.NewOrderGormRepository(gormDB)
	orderItemRepo := infraRepo.NewOrderItemGormRepository(gormDB)
	membershipRepo := infraRepo.NewMembershipGormRepository(gormDB)
	profileRepo := infraRepo.NewProfileGormRepository(gormDB)
	txManager := infraRepo.NewTxManagerGorm(gormDB)

	//usecaseに渡す部品
	idGen := &uuidGenerator{}
	clock := &realClock{}
	sched := &realScheduler{}
	upiValidator := validator.NewPaymentValidator()

	//Usecase生成
	sessionUC := usecase.NewSessionUsecase(couponRepo, walletRepo, membershipRepo, profileRepo, clock, idGen, cfg.SessionSecret)
	catalogUC := usecase.NewCatalogUsecase(catalogRepo)
	cartUC := usecase.NewCartUsecase(cartRepo, catalogRepo)
	couponUC := usecase.NewCouponUsecase(couponRepo, clock, idGen)
	walletUC := usecase.NewWalletUsecase(walletRepo, clock, idGen)
	orderUC := usecase.NewOrderUsecase(orderRepo, orderItemRepo, clock)
	membershipUC := usecase.NewMembershipUsecase(membershipRepo, walletRepo, clock, idGen)
	checkoutUC := usecase.NewCheckoutUsecase(cartRepo, couponRepo, walletRepo, membershipRepo, clock)
	paymentSim := usecase.NewPaymentSimulator(
		txManager,
		cartRepo,
		profileRepo,
		catalogRepo,
		checkoutUC,
		upiValidator,
		clock,
		idGen,
		sched,
	)

	//Handler生成
	handlers := server.Handlers{
		Session:    handler.NewSessionHandler(sessionUC),
		Catalog:    handler.NewCatalogHandler(catalogUC),
		Cart:       handler.NewCartHandler(cartUC),
		Coupon:     handler.NewCouponHandler(couponUC),
		Wallet:     handler.NewWalletHandler(walletUC),
		Order:      handler.NewOrderHandler(orderUC),
		Checkout:   handler.NewCheckoutHandler(checkoutUC),
		Payment:    handler.NewPaymentHandler(paymentSim),
		Membership: handler.NewMembershipHandler(membershipUC),
	}

	//Server起動
	addr := cfg.Port
	if addr == "" || addr[0] != ':' {
		addr = ":" + addr
	}

	if err := server.Start(addr, cfg, handlers); err != nil {
		panic(err)
	}
}
