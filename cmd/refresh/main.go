package main

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"

	"assetwatch/internal/feature/market/adapters"
	"assetwatch/internal/feature/market/adapters/coinmarketcap"
	"assetwatch/internal/feature/market/usecase"
	"assetwatch/internal/platform/config"
	infradb "assetwatch/internal/platform/db"
)

// 1回分のリフレッシュサイクルを実行する運用ツールです。
func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db := infradb.OpenDB(cfg.DatabaseURL)
	currencyRepo := adapters.NewCurrencyRepository(db)
	cmcClient := coinmarketcap.NewClient(coinmarketcap.LoadConfig())
	uc := usecase.NewRefreshUsecase(cmcClient, currencyRepo, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	if err := uc.RefreshOnce(ctx); err != nil {
		log.Fatal(err)
	}
	log.Println("refresh ok")
}
