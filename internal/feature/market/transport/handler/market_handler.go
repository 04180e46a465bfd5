// Package handler はmarketフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"assetwatch/internal/feature/market/domain"
	"assetwatch/internal/feature/market/domain/entity"
	"assetwatch/internal/feature/market/transport/http/dto"
)

// ListingUsecase は相場一覧操作のユースケースインターフェースを定義します。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type ListingUsecase interface {
	Listings(ctx context.Context) ([]entity.Listing, error)
	ListingByOrdinal(ctx context.Context, n int) (entity.Listing, error)
}

// MarketHandler は相場一覧のHTTPリクエストを処理します。
type MarketHandler struct {
	uc ListingUsecase
}

// NewMarketHandler は指定されたusecaseでMarketHandlerの新しいインスタンスを生成します。
func NewMarketHandler(uc ListingUsecase) *MarketHandler {
	return &MarketHandler{uc: uc}
}

// GetCryptocurrencies は全通貨の最新価格一覧を返します。
//
// GET /cryptocurrencies
func (h *MarketHandler) GetCryptocurrencies(c *gin.Context) {
	listings, err := h.uc.Listings(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load listings"})
		return
	}
	c.JSON(http.StatusOK, toResponse(listings))
}

// GetCryptocurrency は一覧の中のn番目（1始まり）の通貨を返します。
// 範囲外または数値でないIDの場合は404を返します。
//
// GET /cryptocurrencies/:id
func (h *MarketHandler) GetCryptocurrency(c *gin.Context) {
	n, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Currency not found"})
		return
	}

	listing, err := h.uc.ListingByOrdinal(c.Request.Context(), n)
	if err != nil {
		if errors.Is(err, domain.ErrListingNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"detail": "Currency not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load listings"})
		return
	}
	c.JSON(http.StatusOK, dto.ListingResponse{
		Name:          listing.Name,
		Symbol:        listing.Symbol,
		Price:         listing.Price,
		SyncTimestamp: listing.SyncTimestamp,
	})
}

func toResponse(listings []entity.Listing) []dto.ListingResponse {
	out := make([]dto.ListingResponse, 0, len(listings))
	for _, l := range listings {
		out = append(out, dto.ListingResponse{
			Name:          l.Name,
			Symbol:        l.Symbol,
			Price:         l.Price,
			SyncTimestamp: l.SyncTimestamp,
		})
	}
	return out
}
