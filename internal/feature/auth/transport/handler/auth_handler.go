// Package handler はauthフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"assetwatch/internal/feature/auth/domain"
	"assetwatch/internal/feature/auth/domain/entity"
	"assetwatch/internal/feature/auth/transport/http/dto"
	jwtmw "assetwatch/internal/platform/jwt"
)

// AuthUsecase は認証操作のユースケースを定義します。
// Goの慣例に従い、インターフェースはプロバイダー（usecase）ではなくコンシューマー（handler）が定義します。
type AuthUsecase interface {
	// Register は指定されたユーザー名とパスワードで新規ユーザーを登録します。
	Register(ctx context.Context, username, password string) (*entity.User, error)
	// Login はユーザーを認証し、成功時にJWTトークンを返します。
	Login(ctx context.Context, username, password string) (string, error)
}

// AuthHandler は認証操作のHTTPリクエストを処理します。
type AuthHandler struct {
	auth AuthUsecase
}

// NewAuthHandler はAuthHandlerの新しいインスタンスを生成します。
// 依存性注入用のコンストラクタで、外部からAuthUsecaseを注入します。
func NewAuthHandler(auth AuthUsecase) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// Register はユーザー登録APIエンドポイントを処理します。
// - バリデーションエラー時は400を返却
// - ユーザー名重複時は400を返却
// - 成功時は201と"User created"を返却
//
// POST /register
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.CredentialsReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("register validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, gin.H{"detail": "invalid request"})
		return
	}
	if _, err := h.auth.Register(c.Request.Context(), req.Username, req.Password); err != nil {
		if errors.Is(err, domain.ErrUserAlreadyExists) {
			slog.Warn("register rejected", "username", req.Username, "remote_addr", c.ClientIP())
			c.JSON(http.StatusBadRequest, gin.H{"detail": "User already exists"})
			return
		}
		slog.Error("register failed", "error", err, "username", req.Username)
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "registration failed"})
		return
	}
	slog.Info("user registered", "username", req.Username, "remote_addr", c.ClientIP())
	c.String(http.StatusCreated, "User created")
}

// Token はログインAPIエンドポイントを処理し、ベアラートークンを発行します。
// 認証失敗時は原因を区別せずに400を返します。
//
// POST /token
func (h *AuthHandler) Token(c *gin.Context) {
	var req dto.CredentialsReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("token validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, gin.H{"detail": "invalid request"})
		return
	}
	token, err := h.auth.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		// ユーザー列挙攻撃を防止するため、実際のエラーを公開しない
		slog.Warn("login failed", "username", req.Username, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, gin.H{"detail": "invalid username or password"})
		return
	}
	slog.Info("user login successful", "username", req.Username, "remote_addr", c.ClientIP())
	c.JSON(http.StatusOK, dto.TokenResponse{Token: token, TokenType: "bearer"})
}

// Me は認証済みユーザー自身のユーザー名を返します。
// ユーザー名は認証ミドルウェアがコンテキストに設定済みです。
//
// GET /users/me
func (h *AuthHandler) Me(c *gin.Context) {
	username := c.GetString(jwtmw.ContextUsername)
	c.JSON(http.StatusOK, username)
}
