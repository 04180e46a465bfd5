package router

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	assetadapters "assetwatch/internal/feature/assets/adapters"
	assetentity "assetwatch/internal/feature/assets/domain/entity"
	assethandler "assetwatch/internal/feature/assets/transport/handler"
	assetusecase "assetwatch/internal/feature/assets/usecase"
	authadapters "assetwatch/internal/feature/auth/adapters"
	authentity "assetwatch/internal/feature/auth/domain/entity"
	authhandler "assetwatch/internal/feature/auth/transport/handler"
	authusecase "assetwatch/internal/feature/auth/usecase"
	marketadapters "assetwatch/internal/feature/market/adapters"
	marketentity "assetwatch/internal/feature/market/domain/entity"
	markethandler "assetwatch/internal/feature/market/transport/handler"
	marketusecase "assetwatch/internal/feature/market/usecase"
	jwtmw "assetwatch/internal/platform/jwt"
)

// newTestServer は全レイヤーを実装で組み立てたテスト用ルーターを返します。
// ストレージはインメモリSQLite、キャッシュなしの構成です。
func newTestServer(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&authentity.User{},
		&marketentity.Currency{},
		&marketentity.PriceHistory{},
		&assetentity.Asset{},
		&assetentity.AssetAmountPriceHistory{},
	))

	userRepo := authadapters.NewUserRepository(db)
	currencyRepo := marketadapters.NewCurrencyRepository(db)
	assetRepo := assetadapters.NewAssetRepository(db)

	tokens, err := jwtmw.NewGenerator("test-secret", "HS256", time.Hour)
	require.NoError(t, err)

	authUC := authusecase.NewAuthUsecase(userRepo, tokens)
	listingUC := marketusecase.NewListingUsecase(currencyRepo)
	assetUC := assetusecase.NewAssetUsecase(assetRepo, currencyRepo)

	return NewRouter(
		authhandler.NewAuthHandler(authUC),
		markethandler.NewMarketHandler(listingUC),
		assethandler.NewAssetHandler(assetUC),
		jwtmw.AuthRequired(tokens, userRepo),
		nil,
	), db
}

func doJSON(r *gin.Engine, method, path, body, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func seedPrices(t *testing.T, db *gorm.DB, ts time.Time) {
	t.Helper()
	repo := marketadapters.NewCurrencyRepository(db)
	require.NoError(t, repo.SaveBatch(context.Background(), []marketentity.CurrencyQuote{
		{Name: "Bitcoin", Symbol: "BTC", Price: 68000.5, Timestamp: ts},
		{Name: "Ethereum", Symbol: "ETH", Price: 3200.25, Timestamp: ts},
	}))
}

func TestRouter_HealthAndRoot(t *testing.T) {
	r, _ := newTestServer(t)

	w := doJSON(r, http.MethodGet, "/", "", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "<Hello world>", w.Body.String())

	w = doJSON(r, http.MethodGet, "/healthz", "", "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRouter_AuthFlow(t *testing.T) {
	r, _ := newTestServer(t)

	creds := `{"username": "alice", "password": "secret123"}`

	// 登録
	w := doJSON(r, http.MethodPost, "/register", creds, "")
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "User created", w.Body.String())

	// 二重登録は400
	w = doJSON(r, http.MethodPost, "/register", creds, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "User already exists")

	// ログインしてトークンを取得
	w = doJSON(r, http.MethodPost, "/token", creds, "")
	require.Equal(t, http.StatusOK, w.Code)

	var tokenRes struct {
		Token     string `json:"token"`
		TokenType string `json:"token_type"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &tokenRes))
	assert.Equal(t, "bearer", tokenRes.TokenType)
	require.NotEmpty(t, tokenRes.Token)

	// 保護ルートへアクセス
	w = doJSON(r, http.MethodGet, "/users/me", "", tokenRes.Token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `"alice"`, w.Body.String())

	// 不正なトークンは401
	w = doJSON(r, http.MethodGet, "/users/me", "", "not-a-token")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Could not validate credentials")

	// トークンなしも401
	w = doJSON(r, http.MethodGet, "/users/me", "", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// 間違ったパスワードではトークンを発行しない
	w = doJSON(r, http.MethodPost, "/token", `{"username": "alice", "password": "wrong"}`, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRouter_Cryptocurrencies(t *testing.T) {
	r, db := newTestServer(t)

	// 台帳が空でも200と空配列
	w := doJSON(r, http.MethodGet, "/cryptocurrencies", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())

	ts := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	seedPrices(t, db, ts)

	w = doJSON(r, http.MethodGet, "/cryptocurrencies", "", "")
	require.Equal(t, http.StatusOK, w.Code)

	var listings []struct {
		Name   string  `json:"name"`
		Symbol string  `json:"symbol"`
		Price  float64 `json:"price"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listings))
	require.Len(t, listings, 2)
	assert.Equal(t, "Bitcoin", listings[0].Name)
	assert.Equal(t, 68000.5, listings[0].Price)

	// 1始まりの序数でアクセス
	w = doJSON(r, http.MethodGet, "/cryptocurrencies/2", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"name":"Ethereum"`)

	// 範囲外は404
	w = doJSON(r, http.MethodGet, "/cryptocurrencies/999", "", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Currency not found")
}

func TestRouter_AssetFlow(t *testing.T) {
	r, db := newTestServer(t)

	ts := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	seedPrices(t, db, ts)

	// ユーザーを作ってログイン
	creds := `{"username": "alice", "password": "secret123"}`
	w := doJSON(r, http.MethodPost, "/register", creds, "")
	require.Equal(t, http.StatusCreated, w.Code)
	w = doJSON(r, http.MethodPost, "/token", creds, "")
	require.Equal(t, http.StatusOK, w.Code)

	var tokenRes struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &tokenRes))
	token := tokenRes.Token

	// 認証なしのアクセスは401
	w = doJSON(r, http.MethodPost, "/users/me/assets", `{"currency": "Bitcoin", "amount": 2}`, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// 未知の通貨は404
	w = doJSON(r, http.MethodPost, "/users/me/assets", `{"currency": "Dogecoin", "amount": 2}`, token)
	assert.Equal(t, http.StatusNotFound, w.Code)

	// 保有量を記録
	w = doJSON(r, http.MethodPost, "/users/me/assets", `{"currency": "Bitcoin", "amount": 2}`, token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"success"`)

	// 一覧には最新の台帳行から計算された評価額が載る
	w = doJSON(r, http.MethodGet, "/users/me/assets", "", token)
	require.Equal(t, http.StatusOK, w.Code)

	var infos []struct {
		Currency     string  `json:"currency"`
		Amount       float64 `json:"amount"`
		CurrentCost  float64 `json:"current_cost"`
		CurrentPrice float64 `json:"current_price"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &infos))
	require.Len(t, infos, 1)
	assert.Equal(t, "Bitcoin", infos[0].Currency)
	assert.Equal(t, 2.0, infos[0].Amount)
	assert.Equal(t, 2.0*68000.5, infos[0].CurrentCost)
	assert.Equal(t, 68000.5, infos[0].CurrentPrice)

	// 同じ通貨への再記録は既存アセットを再利用して行だけ増える
	w = doJSON(r, http.MethodPost, "/users/me/assets", `{"currency": "Bitcoin", "amount": 3}`, token)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(r, http.MethodGet, "/users/me/assets", "", token)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &infos))
	require.Len(t, infos, 1)
	assert.Equal(t, 3.0, infos[0].Amount)
}
