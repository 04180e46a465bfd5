package router

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	assethandler "assetwatch/internal/feature/assets/transport/handler"
	authhandler "assetwatch/internal/feature/auth/transport/handler"
	markethandler "assetwatch/internal/feature/market/transport/handler"
	"assetwatch/internal/platform/http/handler"
)

// NewRouter assembles the gin engine: public market/auth routes plus the
// bearer-protected /users group. The auth middleware is injected so the
// router stays free of token and storage concerns.
func NewRouter(
	authHandler *authhandler.AuthHandler,
	market *markethandler.MarketHandler,
	assets *assethandler.AssetHandler,
	authRequired gin.HandlerFunc,
	allowOrigins []string,
) *gin.Engine {
	r := gin.Default()

	// ブラウザフロントエンド用CORS設定
	if len(allowOrigins) > 0 {
		cfg := cors.DefaultConfig()
		cfg.AllowOrigins = allowOrigins
		cfg.AllowCredentials = true
		r.Use(cors.New(cfg))
	}

	// 認証不要
	// 導通確認用
	r.GET("/", handler.Root)
	r.GET("/healthz", handler.Health)
	// 相場一覧
	r.GET("/cryptocurrencies", market.GetCryptocurrencies)
	r.GET("/cryptocurrencies/:id", market.GetCryptocurrency)
	// 新規ユーザー登録
	r.POST("/register", authHandler.Register)
	// ログイン（JWT 発行）
	r.POST("/token", authHandler.Token)

	// 認証必須のルート
	// リクエストヘッダーにベアラートークンが必要になる
	users := r.Group("/users")
	users.Use(authRequired)
	{
		users.GET("/me", authHandler.Me)
		users.GET("/me/assets", assets.GetUserAssets)
		users.POST("/me/assets", assets.CreateUserAsset)
	}

	return r
}
