// Package usecase はauthフィーチャーのビジネスロジックを実装します。
package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"assetwatch/internal/feature/auth/domain"
	"assetwatch/internal/feature/auth/domain/entity"
)

// UserRepository はユーザーエンティティの永続化層を抽象化します。
// Goの慣例に従い、インターフェースはプロバイダー（adapters）ではなくコンシューマー（usecase）が定義します。
type UserRepository interface {
	// Create は新しいユーザーをストレージに永続化します。
	// 同じユーザー名のユーザーが既に存在する場合、domain.ErrUserAlreadyExistsを返します。
	Create(ctx context.Context, user *entity.User) error

	// FindByUsername は指定されたユーザー名に一致するユーザーを取得します。
	// ユーザーが存在しない場合、domain.ErrUserNotFoundを返します。
	FindByUsername(ctx context.Context, username string) (*entity.User, error)
}

// TokenIssuer はJWTトークン発行のインターフェースを定義します。
// Goの慣例に従い、インターフェースはプロバイダー（platform/jwt）ではなくコンシューマー（usecase）が定義します。
type TokenIssuer interface {
	// GenerateToken は指定されたユーザー名の署名済みJWTトークンを生成します。
	// ttlが0の場合は設定済みのデフォルト有効期間が使われます。
	GenerateToken(username string, extraClaims map[string]any, ttl time.Duration) (string, error)
}

// AuthUsecase は認証ビジネスロジックを実装します。
type AuthUsecase struct {
	users  UserRepository
	tokens TokenIssuer
}

// NewAuthUsecase はAuthUsecaseの新しいインスタンスを生成します。
func NewAuthUsecase(users UserRepository, tokens TokenIssuer) *AuthUsecase {
	return &AuthUsecase{users: users, tokens: tokens}
}

// Register はハッシュ化されたパスワードで新規ユーザーを登録します。
// 存在チェックと挿入は別々の操作です。同一ユーザー名の同時登録が両方チェックを
// 通過した場合、後から挿入した側は一意制約違反としてdomain.ErrUserAlreadyExistsを受け取ります。
func (u *AuthUsecase) Register(ctx context.Context, username, password string) (*entity.User, error) {
	if _, err := u.users.FindByUsername(ctx, username); err == nil {
		return nil, domain.ErrUserAlreadyExists
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &entity.User{Username: username, HashPassword: string(hashed)}
	if err := u.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Authenticate はユーザー名とパスワードを検証し、成功時にユーザーを返します。
// ユーザー未検出とパスワード不一致は同じdomain.ErrInvalidCredentialsになります。
// タイミング攻撃を緩和するため、ユーザーが存在しない場合でもbcrypt比較を実行します。
func (u *AuthUsecase) Authenticate(ctx context.Context, username, password string) (*entity.User, error) {
	user, err := u.users.FindByUsername(ctx, username)

	// ユーザーが存在しない場合のダミーハッシュ
	// bcrypt.CompareHashAndPasswordが常に呼ばれることを保証する
	passwordHash := "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"
	if err == nil {
		passwordHash = user.HashPassword
	}

	compareErr := bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(password))
	if err != nil || compareErr != nil {
		return nil, domain.ErrInvalidCredentials
	}
	return user, nil
}

// Login はユーザーを認証し、成功時にJWTトークンを返します。
func (u *AuthUsecase) Login(ctx context.Context, username, password string) (string, error) {
	user, err := u.Authenticate(ctx, username, password)
	if err != nil {
		return "", err
	}

	token, err := u.tokens.GenerateToken(user.Username, nil, 0)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return token, nil
}
