package usecase_test

import (
	"context"
	"fmt"
	"sync"
	"time"

	"khanaveve/internal/domain/model"
	repo "khanaveve/internal/repository"
	"khanaveve/internal/usecase"
)

// =====================
// テスト用の部品（固定時計・連番ID・手動発火スケジューラ）
// =====================

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock(t time.Time) *fakeClock {
	return &fakeClock{now: t}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type seqIDGen struct {
	mu sync.Mutex
	n  int
}

func (g *seqIDGen) NewID() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.n++
	return fmt.Sprintf("id-%d", g.n)
}

type fakeTimer struct {
	d       time.Duration
	fn      func()
	stopped bool
	fired   bool
}

func (t *fakeTimer) Stop() bool {
	wasActive := !t.fired && !t.stopped
	t.stopped = true
	return wasActive
}

// fakeScheduler はタイマーを記録するだけで、テストがfireで手動発火させる。
type fakeScheduler struct {
	mu     sync.Mutex
	timers []*fakeTimer
}

func (s *fakeScheduler) AfterFunc(d time.Duration, fn func()) usecase.Timer {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := &fakeTimer{d: d, fn: fn}
	s.timers = append(s.timers, t)
	return t
}

// fire は指定遅延の未発火タイマーを1つ発火させる。無ければfalse。
func (s *fakeScheduler) fire(d time.Duration) bool {
	s.mu.Lock()
	var target *fakeTimer
	for _, t := range s.timers {
		if t.d == d && !t.fired && !t.stopped {
			target = t
			break
		}
	}
	if target != nil {
		target.fired = true
	}
	s.mu.Unlock()

	if target == nil {
		return false
	}
	target.fn()
	return true
}

func (s *fakeScheduler) activeCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, t := range s.timers {
		if !t.fired && !t.stopped {
			n++
		}
	}
	return n
}

// =====================
// インメモリRepository
// =====================

type fakeCartRepo struct {
	mu     sync.Mutex
	nextID int64
	items  []model.CartItem
}

func (r *fakeCartRepo) ListByUserID(ctx context.Context, userID string) ([]model.CartItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []model.CartItem{}
	for _, it := range r.items {
		if it.UserID == userID {
			out = append(out, it)
		}
	}
	return out, nil
}

func (r *fakeCartRepo) UpsertByUserAndDish(ctx context.Context, item model.CartItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.items {
		if r.items[i].UserID == item.UserID && r.items[i].DishID == item.DishID {
			r.items[i].Quantity += item.Quantity
			return nil
		}
	}
	r.nextID++
	item.ID = r.nextID
	r.items = append(r.items, item)
	return nil
}

func (r *fakeCartRepo) UpdateQuantity(ctx context.Context, userID string, dishID string, qty int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.items {
		if r.items[i].UserID == userID && r.items[i].DishID == dishID {
			r.items[i].Quantity = qty
			return nil
		}
	}
	return repo.ErrNotFound
}

func (r *fakeCartRepo) DeleteByDishID(ctx context.Context, userID string, dishID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.items {
		if r.items[i].UserID == userID && r.items[i].DishID == dishID {
			r.items = append(r.items[:i], r.items[i+1:]...)
			return nil
		}
	}
	return repo.ErrNotFound
}

func (r *fakeCartRepo) Clear(ctx context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	kept := r.items[:0]
	for _, it := range r.items {
		if it.UserID != userID {
			kept = append(kept, it)
		}
	}
	r.items = kept
	return nil
}

type fakeCatalogRepo struct {
	vendors []model.Vendor
	dishes  []model.Dish
}

func (r *fakeCatalogRepo) ListVendors(ctx context.Context) ([]model.Vendor, error) {
	return r.vendors, nil
}

func (r *fakeCatalogRepo) FindVendorByID(ctx context.Context, vendorID string) (model.Vendor, error) {
	for _, v := range r.vendors {
		if v.ID == vendorID {
			return v, nil
		}
	}
	return model.Vendor{}, repo.ErrNotFound
}

func (r *fakeCatalogRepo) ListDishesByVendorID(ctx context.Context, vendorID string) ([]model.Dish, error) {
	out := []model.Dish{}
	for _, d := range r.dishes {
		if d.VendorID == vendorID {
			out = append(out, d)
		}
	}
	return out, nil
}

func (r *fakeCatalogRepo) FindDishByID(ctx context.Context, dishID string) (model.Dish, error) {
	for _, d := range r.dishes {
		if d.ID == dishID {
			return d, nil
		}
	}
	return model.Dish{}, repo.ErrNotFound
}

func (r *fakeCatalogRepo) CountVendors(ctx context.Context) (int64, error) {
	return int64(len(r.vendors)), nil
}

func (r *fakeCatalogRepo) CreateVendor(ctx context.Context, v model.Vendor, dishes []model.Dish) error {
	r.vendors = append(r.vendors, v)
	r.dishes = append(r.dishes, dishes...)
	return nil
}

type fakeCouponRepo struct {
	mu      sync.Mutex
	coupons []model.Coupon
}

func (r *fakeCouponRepo) ListByUserID(ctx context.Context, userID string) ([]model.Coupon, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []model.Coupon{}
	for _, c := range r.coupons {
		if c.UserID == userID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *fakeCouponRepo) FindByID(ctx context.Context, couponID string) (model.Coupon, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.coupons {
		if c.ID == couponID {
			return c, nil
		}
	}
	return model.Coupon{}, repo.ErrNotFound
}

func (r *fakeCouponRepo) Create(ctx context.Context, c model.Coupon) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.coupons = append(r.coupons, c)
	return nil
}

func (r *fakeCouponRepo) Consume(ctx context.Context, couponID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.coupons {
		if r.coupons[i].ID == couponID {
			r.coupons = append(r.coupons[:i], r.coupons[i+1:]...)
			return nil
		}
	}
	return nil
}

type fakeWalletRepo struct {
	mu       sync.Mutex
	balances map[string]float64
	txns     []model.WalletTransaction
	applyErr error
}

func newFakeWalletRepo() *fakeWalletRepo {
	return &fakeWalletRepo{balances: map[string]float64{}}
}

func (r *fakeWalletRepo) GetOrCreateByUserID(ctx context.Context, userID string) (model.Wallet, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return model.Wallet{UserID: userID, Balance: r.balances[userID]}, nil
}

func (r *fakeWalletRepo) ApplyTransaction(ctx context.Context, txn model.WalletTransaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.applyErr != nil {
		return r.applyErr
	}
	switch txn.Kind {
	case model.TransactionCredit:
		r.balances[txn.UserID] += txn.Amount
	case model.TransactionDebit:
		r.balances[txn.UserID] -= txn.Amount
	}
	r.txns = append([]model.WalletTransaction{txn}, r.txns...)
	return nil
}

func (r *fakeWalletRepo) ListTransactions(ctx context.Context, userID string) ([]model.WalletTransaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []model.WalletTransaction{}
	for _, t := range r.txns {
		if t.UserID == userID {
			out = append(out, t)
		}
	}
	return out, nil
}

type fakeMembershipRepo struct {
	mu          sync.Mutex
	memberships map[string]model.Membership
}

func newFakeMembershipRepo() *fakeMembershipRepo {
	return &fakeMembershipRepo{memberships: map[string]model.Membership{}}
}

func (r *fakeMembershipRepo) GetOrCreateByUserID(ctx context.Context, userID string) (model.Membership, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if m, ok := r.memberships[userID]; ok {
		return m, nil
	}
	m := model.Membership{UserID: userID}
	r.memberships[userID] = m
	return m, nil
}

func (r *fakeMembershipRepo) Save(ctx context.Context, m model.Membership) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.memberships[m.UserID] = m
	return nil
}

type fakeOrderRepo struct {
	mu     sync.Mutex
	orders []model.Order
}

func (r *fakeOrderRepo) FindByID(ctx context.Context, orderID string) (model.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, o := range r.orders {
		if o.ID == orderID {
			return o, nil
		}
	}
	return model.Order{}, repo.ErrNotFound
}

func (r *fakeOrderRepo) ListByUserID(ctx context.Context, userID string) ([]model.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []model.Order{}
	for _, o := range r.orders {
		if o.UserID == userID {
			out = append(out, o)
		}
	}
	return out, nil
}

func (r *fakeOrderRepo) Create(ctx context.Context, order model.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.orders = append(r.orders, order)
	return nil
}

func (r *fakeOrderRepo) UpdateStatus(ctx context.Context, orderID string, status model.OrderStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.orders {
		if r.orders[i].ID == orderID {
			r.orders[i].Status = status
			return nil
		}
	}
	return repo.ErrNotFound
}

type fakeOrderItemRepo struct {
	mu    sync.Mutex
	items map[string][]model.OrderItem
}

func newFakeOrderItemRepo() *fakeOrderItemRepo {
	return &fakeOrderItemRepo{items: map[string][]model.OrderItem{}}
}

func (r *fakeOrderItemRepo) CreateBulk(ctx context.Context, orderID string, items []model.OrderItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range items {
		items[i].OrderID = orderID
	}
	r.items[orderID] = append(r.items[orderID], items...)
	return nil
}

func (r *fakeOrderItemRepo) ListByOrderID(ctx context.Context, orderID string) ([]model.OrderItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.items[orderID], nil
}

type fakeProfileRepo struct {
	mu        sync.Mutex
	profiles  map[string]model.UserProfile
	addresses map[string][]model.Address
}

func newFakeProfileRepo() *fakeProfileRepo {
	return &fakeProfileRepo{
		profiles:  map[string]model.UserProfile{},
		addresses: map[string][]model.Address{},
	}
}

func (r *fakeProfileRepo) GetOrCreateByUserID(ctx context.Context, userID string) (model.UserProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.profiles[userID]
	if !ok {
		p = model.UserProfile{UserID: userID}
		r.profiles[userID] = p
	}
	p.Addresses = r.addresses[userID]
	return p, nil
}

func (r *fakeProfileRepo) SeedProfile(ctx context.Context, p model.UserProfile, addresses []model.Address) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.profiles[p.UserID] = p
	for i := range addresses {
		addresses[i].UserID = p.UserID
	}
	r.addresses[p.UserID] = addresses
	return nil
}

// =====================
// TransactionManager（スナップショット方式でロールバックを模倣）
// =====================

type fakeTxRepos struct {
	orders     *fakeOrderRepo
	orderItems *fakeOrderItemRepo
	carts      *fakeCartRepo
	coupons    *fakeCouponRepo
	wallets    *fakeWalletRepo
}

func (r *fakeTxRepos) Orders() repo.OrderRepository         { return r.orders }
func (r *fakeTxRepos) OrderItems() repo.OrderItemRepository { return r.orderItems }
func (r *fakeTxRepos) Carts() repo.CartRepository           { return r.carts }
func (r *fakeTxRepos) Coupons() repo.CouponRepository       { return r.coupons }
func (r *fakeTxRepos) Wallets() repo.WalletRepository       { return r.wallets }

type fakeTxManager struct {
	repos *fakeTxRepos
}

func (m *fakeTxManager) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	// スナップショットを取り、失敗したら巻き戻す
	orders := append([]model.Order{}, m.repos.orders.orders...)
	cartItems := append([]model.CartItem{}, m.repos.carts.items...)
	coupons := append([]model.Coupon{}, m.repos.coupons.coupons...)
	balances := map[string]float64{}
	for k, v := range m.repos.wallets.balances {
		balances[k] = v
	}
	txns := append([]model.WalletTransaction{}, m.repos.wallets.txns...)
	orderItems := map[string][]model.OrderItem{}
	for k, v := range m.repos.orderItems.items {
		orderItems[k] = append([]model.OrderItem{}, v...)
	}

	err := fn(m.repos)
	if err == nil {
		return nil
	}

	m.repos.orders.orders = orders
	m.repos.carts.items = cartItems
	m.repos.coupons.coupons = coupons
	m.repos.wallets.balances = balances
	m.repos.wallets.txns = txns
	m.repos.orderItems.items = orderItems
	return err
}
