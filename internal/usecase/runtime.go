package usecase

import "time"

// usecaseに注入する時計。テストでは固定時刻を返す偽物を使う。
type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID() string
}

// キャンセル可能なタイマーのハンドル。
type Timer interface {
	Stop() bool
}

// 遅延コールバックのスケジューラ。決済シミュレータの
// 検証待ち・カウントダウン・処理待ちは全部これ経由で張る。
// セッションを閉じたら必ずStopする（孤児タイマー禁止）。
type Scheduler interface {
	AfterFunc(d time.Duration, fn func()) Timer
}
