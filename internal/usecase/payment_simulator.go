package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"khanaveve/internal/domain/model"
	repo "khanaveve/internal/repository"
)

type PaymentMethod string

const (
	PaymentMethodUPI PaymentMethod = "upi"
	PaymentMethodQR  PaymentMethod = "qr"
)

type PaymentState string

const (
	PaymentStateIdle      PaymentState = "IDLE"
	PaymentStateVerifying PaymentState = "VERIFYING"
	PaymentStateVerified  PaymentState = "VERIFIED"
	PaymentStateAwaiting  PaymentState = "AWAITING_PAYMENT"
	PaymentStateCompleted PaymentState = "COMPLETED"
	PaymentStateTimedOut  PaymentState = "TIMED_OUT"
	PaymentStateFailed    PaymentState = "FAILED"
)

// 疑似ゲートウェイのタイムライン
const (
	upiVerifyDelay   = 2 * time.Second  // UPI検証の疑似レイテンシ
	processingDelay  = 10 * time.Second // 支払い処理の疑似レイテンシ
	qrRevealDelay    = 5 * time.Second  // QR画像が出るまで
	qrAutoStartDelay = 10 * time.Second // QR経路のカウントダウン自動開始
	countdownSeconds = 300              // 5分
	eventBufferSize  = 512
)

// UPI IDの構文チェックだけを約束する（実在検証はしない）。
type PaymentValidator interface {
	ValidateUPIID(upiID string) error
}

// セッションの状態変化通知。成功時の最終イベントはOrderを運ぶ。
type PaymentEvent struct {
	SessionID string       `json:"session_id"`
	State     PaymentState `json:"state"`
	Remaining int          `json:"remaining_seconds"`
	QRVisible bool         `json:"qr_visible"`
	Order     *OrderOutput `json:"order,omitempty"`
}

type paymentSession struct {
	id         string
	userID     string
	method     PaymentMethod
	state      PaymentState
	upiID      string
	verified   bool
	qrVisible  bool
	remaining  int
	couponID   string
	useWallet  bool
	totals     CheckoutTotals
	vendorName string
	timers     []Timer
	events     chan PaymentEvent
}

func (s *paymentSession) terminal() bool {
	switch s.state {
	case PaymentStateCompleted, PaymentStateTimedOut, PaymentStateFailed:
		return true
	}
	return false
}

// PaymentSimulator は疑似決済の状態機械。
// Goのタイマーは別goroutineで発火するので、遷移と確定コミットは
// 1つのmutexで直列化する（ユーザー単位の同時チェックアウトは無い前提）。
type PaymentSimulator struct {
	mu       sync.Mutex
	sessions map[string]*paymentSession // userID -> 現在のセッション

	tx          repo.TransactionManager
	cartRepo    repo.CartRepository
	profileRepo repo.ProfileRepository
	catalogRepo repo.CatalogRepository
	checkout    *CheckoutUsecase
	validator   PaymentValidator
	clock       Clock
	idGen       IDGenerator
	sched       Scheduler
}

func NewPaymentSimulator(
	tx repo.TransactionManager,
	cartRepo repo.CartRepository,
	profileRepo repo.ProfileRepository,
	catalogRepo repo.CatalogRepository,
	checkout *CheckoutUsecase,
	validator PaymentValidator,
	clock Clock,
	idGen IDGenerator,
	sched Scheduler,
) *PaymentSimulator {
	return &PaymentSimulator{
		sessions:    make(map[string]*paymentSession),
		tx:          tx,
		cartRepo:    cartRepo,
		profileRepo: profileRepo,
		catalogRepo: catalogRepo,
		checkout:    checkout,
		validator:   validator,
		clock:       clock,
		idGen:       idGen,
		sched:       sched,
	}
}

type StartPaymentInput struct {
	Method    PaymentMethod
	CouponID  string
	UseWallet bool
}

type PaymentSessionOutput struct {
	ID          string         `json:"id"`
	Method      PaymentMethod  `json:"method"`
	State       PaymentState   `json:"state"`
	UPIVerified bool           `json:"upi_verified"`
	QRVisible   bool           `json:"qr_visible"`
	Remaining   int            `json:"remaining_seconds"`
	Totals      CheckoutTotals `json:"totals"`
}

// StartSession は決済セッションを開始する。空カートは400。
// 既存セッションが残っていたら先にそのタイマーを全部止めて破棄する。
func (s *PaymentSimulator) StartSession(ctx context.Context, userID string, in StartPaymentInput) (PaymentSessionOutput, error) {
	if userID == "" {
		return PaymentSessionOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if in.Method != PaymentMethodUPI && in.Method != PaymentMethodQR {
		return PaymentSessionOutput{}, NewHTTPError(http.StatusBadRequest, "invalid method")
	}

	// 支払額のスナップショット（空カートはここで弾かれる）
	quote, err := s.checkout.ComputeCheckoutTotals(ctx, userID, CheckoutInput{
		CouponID:  in.CouponID,
		UseWallet: in.UseWallet,
	})
	if err != nil {
		return PaymentSessionOutput{}, err
	}

	vendorName := s.lookupVendorName(ctx, userID)

	s.mu.Lock()
	defer s.mu.Unlock()

	if prev, ok := s.sessions[userID]; ok {
		s.discardLocked(prev)
	}

	sess := &paymentSession{
		id:         s.idGen.NewID(),
		userID:     userID,
		method:     in.Method,
		state:      PaymentStateIdle,
		remaining:  countdownSeconds,
		couponID:   in.CouponID,
		useWallet:  in.UseWallet,
		totals:     quote.Totals,
		vendorName: vendorName,
		events:     make(chan PaymentEvent, eventBufferSize),
	}
	s.sessions[userID] = sess

	if in.Method == PaymentMethodQR {
		// QR経路の独自タイムライン：5秒でQR表示、10秒でカウントダウン自動開始
		s.scheduleLocked(sess, qrRevealDelay, func() {
			if sess.state == PaymentStateIdle {
				sess.qrVisible = true
				s.emitLocked(sess, nil)
			}
		})
		s.scheduleLocked(sess, qrAutoStartDelay, func() {
			if sess.state == PaymentStateIdle {
				s.enterAwaitingLocked(sess)
			}
		})
	}

	s.emitLocked(sess, nil)
	return outputLocked(sess), nil
}

type VerifyUPIInput struct {
	UPIID string
}

// VerifyUPI はUPI IDの疑似検証を開始する。約2秒後にVERIFIEDへ。
func (s *PaymentSimulator) VerifyUPI(ctx context.Context, userID string, in VerifyUPIInput) (PaymentSessionOutput, error) {
	if err := s.validator.ValidateUPIID(in.UPIID); err != nil {
		return PaymentSessionOutput{}, NewHTTPError(http.StatusBadRequest, "invalid upi id")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[userID]
	if !ok {
		return PaymentSessionOutput{}, NewHTTPError(http.StatusNotFound, "no payment session")
	}
	if sess.method != PaymentMethodUPI {
		return PaymentSessionOutput{}, NewHTTPError(http.StatusBadRequest, "not a upi session")
	}
	if sess.state == PaymentStateAwaiting || sess.terminal() {
		return PaymentSessionOutput{}, NewHTTPError(http.StatusConflict, "payment in progress")
	}

	// IDを入れ直したら検証済みフラグは外す（再検証）
	sess.upiID = in.UPIID
	sess.verified = false
	sess.state = PaymentStateVerifying
	s.emitLocked(sess, nil)

	s.scheduleLocked(sess, upiVerifyDelay, func() {
		if sess.state == PaymentStateVerifying {
			sess.verified = true
			sess.state = PaymentStateVerified
			s.emitLocked(sess, nil)
		}
	})

	return outputLocked(sess), nil
}

// Confirm は支払い開始（Place Order）。UPI経路は検証済みが前提。
// AWAITING_PAYMENTに入り、300秒のカウントダウンと約10秒の処理タイマーが走る。
func (s *PaymentSimulator) Confirm(ctx context.Context, userID string) (PaymentSessionOutput, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[userID]
	if !ok {
		return PaymentSessionOutput{}, NewHTTPError(http.StatusNotFound, "no payment session")
	}
	if sess.state == PaymentStateAwaiting {
		return PaymentSessionOutput{}, NewHTTPError(http.StatusConflict, "payment in progress")
	}
	if sess.terminal() {
		return PaymentSessionOutput{}, NewHTTPError(http.StatusConflict, "session closed")
	}
	if sess.method == PaymentMethodUPI && !sess.verified {
		return PaymentSessionOutput{}, NewHTTPError(http.StatusBadRequest, "verify upi first")
	}

	s.enterAwaitingLocked(sess)
	return outputLocked(sess), nil
}

func (s *PaymentSimulator) GetSession(ctx context.Context, userID string) (PaymentSessionOutput, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[userID]
	if !ok {
		return PaymentSessionOutput{}, NewHTTPError(http.StatusNotFound, "no payment session")
	}
	return outputLocked(sess), nil
}

// Cancel はダイアログを閉じた時の処理。タイマーを全部止めて破棄し、
// 何も確定しない（ユーザーはIdleからやり直す）。
func (s *PaymentSimulator) Cancel(ctx context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[userID]
	if !ok {
		return NewHTTPError(http.StatusNotFound, "no payment session")
	}
	s.discardLocked(sess)
	return nil
}

// Events はセッションの通知チャネルを返す。終端状態で閉じられる。
func (s *PaymentSimulator) Events(userID string) (<-chan PaymentEvent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[userID]
	if !ok {
		return nil, NewHTTPError(http.StatusNotFound, "no payment session")
	}
	return sess.events, nil
}

// --- 内部（呼び出し側がmuを握っていること） ---

func (s *PaymentSimulator) enterAwaitingLocked(sess *paymentSession) {
	sess.state = PaymentStateAwaiting
	sess.remaining = countdownSeconds
	s.emitLocked(sess, nil)

	s.scheduleTickLocked(sess)
	s.scheduleLocked(sess, processingDelay, func() {
		if sess.state == PaymentStateAwaiting {
			s.completeLocked(sess)
		}
	})
}

// 1秒ごとのカウントダウン。0になったらタイムアウトで閉じる。
func (s *PaymentSimulator) scheduleTickLocked(sess *paymentSession) {
	s.scheduleLocked(sess, time.Second, func() {
		if sess.state != PaymentStateAwaiting {
			return
		}
		sess.remaining--
		if sess.remaining <= 0 {
			s.stopTimersLocked(sess)
			sess.state = PaymentStateTimedOut
			s.emitLocked(sess, nil)
			close(sess.events)
			return
		}
		s.emitLocked(sess, nil)
		s.scheduleTickLocked(sess)
	})
}

// scheduleLocked はタイマーを張る。発火時はロックを取り直し、
// セッションが差し替わっていたら何もしない（孤児タイマー対策の二重防御）。
func (s *PaymentSimulator) scheduleLocked(sess *paymentSession, d time.Duration, fn func()) {
	t := s.sched.AfterFunc(d, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.sessions[sess.userID] != sess {
			return
		}
		fn()
	})
	sess.timers = append(sess.timers, t)
}

func (s *PaymentSimulator) stopTimersLocked(sess *paymentSession) {
	for _, t := range sess.timers {
		t.Stop()
	}
	sess.timers = nil
}

func (s *PaymentSimulator) discardLocked(sess *paymentSession) {
	s.stopTimersLocked(sess)
	if !sess.terminal() {
		close(sess.events)
	}
	delete(s.sessions, sess.userID)
}

// completeLocked は成功時の確定。4ステップを1トランザクションで実行する：
// (a)ウォレット減算 (b)注文作成 (c)クーポン消費 (d)カートクリア。
// どれか失敗したらロールバックし、部分的な状態は残さない。
func (s *PaymentSimulator) completeLocked(sess *paymentSession) {
	s.stopTimersLocked(sess)

	ctx := context.Background()
	now := s.clock.Now()

	profile, err := s.profileRepo.GetOrCreateByUserID(ctx, sess.userID)
	if err != nil {
		sess.state = PaymentStateFailed
		s.emitLocked(sess, nil)
		close(sess.events)
		return
	}

	var placed model.Order
	var placedItems []model.OrderItem

	err = s.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		items, err := r.Carts().ListByUserID(ctx, sess.userID)
		if err != nil {
			return err
		}
		if len(items) == 0 {
			return errors.New("cart empty")
		}

		// (a) ウォレット減算。確定時点の残高で再キャップする。
		if sess.useWallet && sess.totals.WalletDeduction > 0 {
			w, err := r.Wallets().GetOrCreateByUserID(ctx, sess.userID)
			if err != nil {
				return err
			}
			deduction := sess.totals.WalletDeduction
			if deduction > w.Balance {
				deduction = w.Balance
			}
			if deduction > 0 {
				if err := r.Wallets().ApplyTransaction(ctx, model.WalletTransaction{
					ID:          "txn_" + s.idGen.NewID(),
					UserID:      sess.userID,
					Amount:      deduction,
					Kind:        model.TransactionDebit,
					Description: "Order payment",
					CreatedAt:   now,
				}); err != nil {
					return err
				}
			}
		}

		// (b) 注文作成（確定時点のカートのコピー）
		order := model.Order{
			ID:              fmt.Sprintf("KHV-%d", now.UnixMilli()),
			UserID:          sess.userID,
			Status:          model.OrderStatusPlaced,
			Total:           sess.totals.FinalTotal,
			OrderDate:       now,
			DeliveryAddress: profile.DefaultAddress(),
			VendorName:      sess.vendorName,
		}
		if err := r.Orders().Create(ctx, order); err != nil {
			return err
		}

		orderItems := make([]model.OrderItem, 0, len(items))
		for _, it := range items {
			orderItems = append(orderItems, model.OrderItem{
				OrderID:           order.ID,
				DishID:            it.DishID,
				VendorID:          it.VendorID,
				DishNameSnapshot:  it.DishNameSnapshot,
				UnitPriceSnapshot: it.UnitPriceSnapshot,
				Quantity:          it.Quantity,
				CreatedAt:         now,
			})
		}
		if err := r.OrderItems().CreateBulk(ctx, order.ID, orderItems); err != nil {
			return err
		}

		// (c) クーポン消費（選択されていれば。無効IDはno-op）
		if sess.couponID != "" {
			if err := r.Coupons().Consume(ctx, sess.couponID); err != nil {
				return err
			}
		}

		// (d) カートクリア
		if err := r.Carts().Clear(ctx, sess.userID); err != nil {
			return err
		}

		placed = order
		placedItems = orderItems
		return nil
	})

	if err != nil {
		sess.state = PaymentStateFailed
		s.emitLocked(sess, nil)
		close(sess.events)
		return
	}

	sess.state = PaymentStateCompleted
	out := toOrderOutput(placed, model.OrderStatusPlaced, placedItems)
	s.emitLocked(sess, &out)
	close(sess.events)
}

// emitLocked は通知を落とさないよう非ブロッキングで送る。
// 消費者がいない場合は捨てる（状態の正はGetSession側）。
func (s *PaymentSimulator) emitLocked(sess *paymentSession, order *OrderOutput) {
	ev := PaymentEvent{
		SessionID: sess.id,
		State:     sess.state,
		Remaining: sess.remaining,
		QRVisible: sess.qrVisible,
		Order:     order,
	}
	select {
	case sess.events <- ev:
	default:
	}
}

func (s *PaymentSimulator) lookupVendorName(ctx context.Context, userID string) string {
	items, err := s.cartRepo.ListByUserID(ctx, userID)
	if err != nil || len(items) == 0 {
		return "Various"
	}
	v, err := s.catalogRepo.FindVendorByID(ctx, items[0].VendorID)
	if err != nil {
		return "Various"
	}
	return v.Name
}

func outputLocked(sess *paymentSession) PaymentSessionOutput {
	return PaymentSessionOutput{
		ID:          sess.id,
		Method:      sess.method,
		State:       sess.state,
		UPIVerified: sess.verified,
		QRVisible:   sess.qrVisible,
		Remaining:   sess.remaining,
		Totals:      sess.totals,
	}
}
