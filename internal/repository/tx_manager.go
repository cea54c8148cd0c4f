package repository

import "context"

// 決済確定の4ステップ（ウォレット減算→注文作成→クーポン消費→カートクリア）を
// ひとつのトランザクションで実行するための約束。
type TxRepos interface {
	Orders() OrderRepository
	OrderItems() OrderItemRepository
	Carts() CartRepository
	Coupons() CouponRepository
	Wallets() WalletRepository
}

// UsecaseからTxの開始/commit/rollbackを隠す。
type TransactionManager interface {
	WithinTx(ctx context.Context, fn func(r TxRepos) error) error
}
