package repository

import (
	"context"

	"khanaveve/internal/domain/model"
)

// プロフィールは外部コラボレーターのストア。このコアは配送先の参照にだけ使う。
type ProfileRepository interface {
	// 住所込みで返す
	GetOrCreateByUserID(ctx context.Context, userID string) (model.UserProfile, error)

	// 初期プロフィールと住所をまとめて作る（ゲスト作成時）
	SeedProfile(ctx context.Context, p model.UserProfile, addresses []model.Address) error
}
