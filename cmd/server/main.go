package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	redisv9 "github.com/redis/go-redis/v9"

	"assetwatch/internal/app/router"
	assetadapters "assetwatch/internal/feature/assets/adapters"
	assethandler "assetwatch/internal/feature/assets/transport/handler"
	assetusecase "assetwatch/internal/feature/assets/usecase"
	authadapters "assetwatch/internal/feature/auth/adapters"
	authhandler "assetwatch/internal/feature/auth/transport/handler"
	authusecase "assetwatch/internal/feature/auth/usecase"
	"assetwatch/internal/feature/market/adapters"
	"assetwatch/internal/feature/market/adapters/coinmarketcap"
	markethandler "assetwatch/internal/feature/market/transport/handler"
	marketusecase "assetwatch/internal/feature/market/usecase"
	"assetwatch/internal/platform/cache"
	"assetwatch/internal/platform/config"
	infradb "assetwatch/internal/platform/db"
	jwtmw "assetwatch/internal/platform/jwt"
	infraredis "assetwatch/internal/platform/redis"
)

// allowedOrigins はブラウザフロントエンドの開発用オリジンです。
var allowedOrigins = []string{
	"http://localhost:5173",
	"http://127.0.0.1:5173",
}

func main() {
	// .envがあれば読み込む（本番は環境変数で直接設定）
	_ = godotenv.Load()
	cfg := config.Load()

	if cfg.TokenSecret == "" {
		log.Println("[WARN] TOKEN_SECRET is not set. Set a strong secret in production.")
	}

	// db
	db := infradb.OpenDB(cfg.DatabaseURL)

	// Redis
	var rdb *redisv9.Client
	if tmp, err := infraredis.NewRedisClient(); err != nil {
		log.Println("[WARN] Redis unavailable. Running without cache.")
		rdb = nil
	} else {
		rdb = tmp
		defer func() {
			if err := rdb.Close(); err != nil {
				log.Println("[ERROR] Failed to close Redis client:", err)
			}
		}()
	}

	// Repository
	userRepo := authadapters.NewUserRepository(db)
	currencyRepo := adapters.NewCurrencyRepository(db)
	assetRepo := assetadapters.NewAssetRepository(db)

	// Redisキャッシュでラップ
	cachedListings := cache.NewCachingListingRepository(rdb, cfg.RefreshInterval, currencyRepo, "listings")

	// JWT
	tokens, err := jwtmw.NewGenerator(cfg.TokenSecret, cfg.Algorithm, cfg.TokenExpire)
	if err != nil {
		log.Fatal(err)
	}

	// Usecase
	authUC := authusecase.NewAuthUsecase(userRepo, tokens)
	listingUC := marketusecase.NewListingUsecase(cachedListings)
	assetUC := assetusecase.NewAssetUsecase(assetRepo, currencyRepo)

	cmcClient := coinmarketcap.NewClient(coinmarketcap.LoadConfig())
	refreshUC := marketusecase.NewRefreshUsecase(cmcClient, currencyRepo, cachedListings)

	// Handler
	authH := authhandler.NewAuthHandler(authUC)
	marketH := markethandler.NewMarketHandler(listingUC)
	assetH := assethandler.NewAssetHandler(assetUC)

	// ルータ生成
	r := router.NewRouter(authH, marketH, assetH, jwtmw.AuthRequired(tokens, userRepo), allowedOrigins)

	// リフレッシュジョブをバックグラウンドで起動
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	go refreshUC.Run(ctx, cfg.RefreshInterval)

	srv := &http.Server{Addr: cfg.ListenAddr, Handler: r}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal(err)
		}
	}()

	// SIGINT/SIGTERMでリフレッシュループを止め、サーバを安全に停止する
	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Println("[ERROR] Server shutdown:", err)
	}
}
