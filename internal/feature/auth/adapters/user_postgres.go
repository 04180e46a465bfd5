// Package adapters はauthフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"assetwatch/internal/feature/auth/domain"
	"assetwatch/internal/feature/auth/domain/entity"
	"assetwatch/internal/feature/auth/usecase"
)

// userPostgres はUserRepositoryインターフェースのGORM実装です。
type userPostgres struct {
	db *gorm.DB
}

// userPostgresがUserRepositoryを実装していることをコンパイル時に検証します。
var _ usecase.UserRepository = (*userPostgres)(nil)

// NewUserRepository は指定されたgorm.DB接続でuserPostgresの新しいインスタンスを生成します。
// 依存性注入用のコンストラクタです。
func NewUserRepository(db *gorm.DB) *userPostgres {
	return &userPostgres{db: db}
}

// Create はユーザーをデータベースに追加します。
// 同じユーザー名のユーザーが既に存在する場合、domain.ErrUserAlreadyExistsを返します。
// ストレージの一意制約が同時登録のレースを最終的に解決します。
func (r *userPostgres) Create(ctx context.Context, u *entity.User) error {
	if err := r.db.WithContext(ctx).Create(u).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.ErrUserAlreadyExists
		}
		return err
	}
	return nil
}

// FindByUsername はユーザー名でユーザーを取得します（完全一致、大文字小文字を区別）。
// ユーザーが存在しない場合、domain.ErrUserNotFoundを返します。
func (r *userPostgres) FindByUsername(ctx context.Context, username string) (*entity.User, error) {
	var u entity.User
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

// FindIDByUsername はユーザー名からユーザーIDを解決します。
// 認証ミドルウェア（jwtmw.UserFinder）用のメソッドです。
func (r *userPostgres) FindIDByUsername(ctx context.Context, username string) (uuid.UUID, error) {
	u, err := r.FindByUsername(ctx, username)
	if err != nil {
		return uuid.Nil, err
	}
	return u.ID, nil
}
