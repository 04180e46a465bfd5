package coinmarketcap

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"assetwatch/internal/feature/market/adapters/coinmarketcap/dto"
	"assetwatch/internal/feature/market/domain"
	"assetwatch/internal/feature/market/domain/entity"
	"assetwatch/internal/feature/market/usecase"
	platformhttp "assetwatch/internal/platform/http"
)

// Client はCoinMarketCap APIから相場データを取得するMarketRepository実装です。
// ネットワークセッションは呼び出しごとに開き、成功・失敗・キャンセルの
// いずれの経路でも必ず解放されます。
type Client struct {
	cfg Config

	// newSession は呼び出しごとのHTTPクライアントを生成します。
	newSession func() *http.Client
}

// ClientがMarketRepositoryを実装していることをコンパイル時に検証します。
var _ usecase.MarketRepository = (*Client)(nil)

// NewClient は指定された設定でClientの新しいインスタンスを生成します。
func NewClient(cfg Config) *Client {
	return &Client{
		cfg: cfg,
		newSession: func() *http.Client {
			return platformhttp.NewHTTPClient(cfg.Timeout)
		},
	}
}

// FetchListings はCoinMarketCapの/v1/cryptocurrency/listings/latestを呼び出し、
// 各行にレスポンスのバッチタイムスタンプを付与して返します。
// 通信エラーや不正なレスポンスボディはすべてdomain.ErrUpstreamにラップされます。
func (c *Client) FetchListings(ctx context.Context) ([]entity.CurrencyQuote, error) {
	session := c.newSession()
	defer session.CloseIdleConnections()

	u := c.cfg.BaseURL + "/v1/cryptocurrency/listings/latest"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %v", domain.ErrUpstream, err)
	}
	req.Header.Set(c.cfg.AuthHeader, c.cfg.APIKey)
	req.Header.Set("Accept", "application/json")

	res, err := session.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUpstream, err)
	}
	defer res.Body.Close()

	if res.StatusCode >= 400 {
		return nil, fmt.Errorf("%w: http %d", domain.ErrUpstream, res.StatusCode)
	}

	var body dto.ListingsResponse
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("%w: decode response: %v", domain.ErrUpstream, err)
	}
	if body.Status.ErrorMessage != "" {
		return nil, fmt.Errorf("%w: %s", domain.ErrUpstream, body.Status.ErrorMessage)
	}

	// バッチ全体で単一のタイムスタンプ（サーバ報告時刻）を共有する
	batchTime, err := time.Parse(time.RFC3339, body.Status.Timestamp)
	if err != nil {
		return nil, fmt.Errorf("%w: parse batch timestamp %q: %v", domain.ErrUpstream, body.Status.Timestamp, err)
	}

	quotes := make([]entity.CurrencyQuote, 0, len(body.Data))
	for _, row := range body.Data {
		quotes = append(quotes, entity.CurrencyQuote{
			Name:      row.Name,
			Symbol:    row.Symbol,
			Price:     row.Quote.USD.Price,
			Timestamp: batchTime,
		})
	}
	return quotes, nil
}
