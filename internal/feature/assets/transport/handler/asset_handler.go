// Package handler はassetsフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"assetwatch/internal/feature/assets/domain/entity"
	"assetwatch/internal/feature/assets/transport/http/dto"
	marketdomain "assetwatch/internal/feature/market/domain"
	marketentity "assetwatch/internal/feature/market/domain/entity"
	jwtmw "assetwatch/internal/platform/jwt"
)

// AssetUsecase はユーザー保有資産操作のユースケースを定義します。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type AssetUsecase interface {
	FindCurrencyByName(ctx context.Context, name string) (*marketentity.Currency, error)
	CreateAsset(ctx context.Context, userID, currencyID uuid.UUID) (*entity.Asset, error)
	AddAmount(ctx context.Context, assetID uuid.UUID, amount float64) (*entity.AssetAmountPriceHistory, error)
	UserAssets(ctx context.Context, userID uuid.UUID) ([]entity.AssetInfo, error)
}

// AssetHandler はユーザー保有資産のHTTPリクエストを処理します。
type AssetHandler struct {
	uc AssetUsecase
}

// NewAssetHandler は指定されたusecaseでAssetHandlerの新しいインスタンスを生成します。
func NewAssetHandler(uc AssetUsecase) *AssetHandler {
	return &AssetHandler{uc: uc}
}

// GetUserAssets は認証済みユーザーの全資産の評価情報を返します。
//
// GET /users/me/assets
func (h *AssetHandler) GetUserAssets(c *gin.Context) {
	userID, ok := jwtmw.UserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"detail": "Could not validate credentials"})
		return
	}

	infos, err := h.uc.UserAssets(c.Request.Context(), userID)
	if err != nil {
		slog.Error("failed to load user assets", "error", err, "user_id", userID)
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "failed to load assets"})
		return
	}

	out := make([]dto.AssetInfoResponse, 0, len(infos))
	for _, info := range infos {
		out = append(out, dto.AssetInfoResponse{
			Currency:     info.Currency,
			Amount:       info.Amount,
			CurrentCost:  info.CurrentCost,
			CurrentPrice: info.CurrentPrice,
		})
	}
	c.JSON(http.StatusOK, out)
}

// CreateUserAsset は認証済みユーザーに通貨の保有量を記録します。
// - 未知の通貨は404を返却
// - アセット作成・保有量追加の失敗は400を返却
// - 成功時は{"status": "success"}を返却
//
// POST /users/me/assets
func (h *AssetHandler) CreateUserAsset(c *gin.Context) {
	userID, ok := jwtmw.UserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"detail": "Could not validate credentials"})
		return
	}

	var req dto.AssetCreateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("asset create validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, gin.H{"detail": "invalid request"})
		return
	}

	currency, err := h.uc.FindCurrencyByName(c.Request.Context(), req.Currency)
	if err != nil {
		if errors.Is(err, marketdomain.ErrCurrencyNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"detail": "Currency not found"})
			return
		}
		slog.Error("currency lookup failed", "error", err, "currency", req.Currency)
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "currency lookup failed"})
		return
	}

	asset, err := h.uc.CreateAsset(c.Request.Context(), userID, currency.ID)
	if err != nil {
		slog.Error("asset creation failed", "error", err, "user_id", userID, "currency", req.Currency)
		c.JSON(http.StatusBadRequest, gin.H{"detail": "failed to create asset"})
		return
	}

	if _, err := h.uc.AddAmount(c.Request.Context(), asset.ID, req.Amount); err != nil {
		slog.Error("add asset amount failed", "error", err, "asset_id", asset.ID)
		c.JSON(http.StatusBadRequest, gin.H{"detail": "failed to add asset amount"})
		return
	}

	slog.Info("asset amount recorded", "user_id", userID, "currency", req.Currency, "amount", req.Amount)
	c.JSON(http.StatusOK, gin.H{"status": "success"})
}
