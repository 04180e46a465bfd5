// Package usecase はassetsフィーチャーのビジネスロジックを実装します。
package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"assetwatch/internal/feature/assets/domain"
	"assetwatch/internal/feature/assets/domain/entity"
	marketentity "assetwatch/internal/feature/market/domain/entity"
)

// AssetRepository はアセット台帳の永続化層を抽象化します。
// Goの慣例に従い、インターフェースはプロバイダー（adapters）ではなくコンシューマー（usecase）が定義します。
type AssetRepository interface {
	// Find は(user, currency)ペアのAssetを取得します。
	// 存在しない場合、domain.ErrAssetNotFoundを返します。
	Find(ctx context.Context, userID, currencyID uuid.UUID) (*entity.Asset, error)

	// FindByID はIDでAssetを取得します。
	// 存在しない場合、domain.ErrAssetNotFoundを返します。
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Asset, error)

	// Create は新しいAssetを永続化します。
	Create(ctx context.Context, asset *entity.Asset) error

	// ListByUser は指定ユーザーの全Assetを返します。
	ListByUser(ctx context.Context, userID uuid.UUID) ([]entity.Asset, error)

	// AddAmount は保有量台帳に新しい行を追加します。行は以後不変です。
	AddAmount(ctx context.Context, amount *entity.AssetAmountPriceHistory) error

	// LastAmount は指定Assetの最新のAssetAmountPriceHistory行を返します。
	// 1件もない場合、domain.ErrNoAmountHistoryを返します。
	LastAmount(ctx context.Context, assetID uuid.UUID) (*entity.AssetAmountPriceHistory, error)
}

// CurrencyReader はmarketフィーチャーが管理する通貨・価格データへの読み取りアクセスを抽象化します。
type CurrencyReader interface {
	FindByName(ctx context.Context, name string) (*marketentity.Currency, error)
	FindByID(ctx context.Context, id uuid.UUID) (*marketentity.Currency, error)
	LatestPrice(ctx context.Context, currencyID uuid.UUID) (*marketentity.PriceHistory, error)
}

// AssetUsecase はユーザー保有資産のビジネスロジックを実装します。
type AssetUsecase struct {
	assets     AssetRepository
	currencies CurrencyReader
}

// NewAssetUsecase はAssetUsecaseの新しいインスタンスを生成します。
func NewAssetUsecase(assets AssetRepository, currencies CurrencyReader) *AssetUsecase {
	return &AssetUsecase{assets: assets, currencies: currencies}
}

// FindCurrencyByName は通貨名からCurrencyを解決します。
// 未知の通貨の場合、market側のdomain.ErrCurrencyNotFoundをそのまま返します。
func (u *AssetUsecase) FindCurrencyByName(ctx context.Context, name string) (*marketentity.Currency, error) {
	return u.currencies.FindByName(ctx, name)
}

// CreateAsset は(user, currency)ペアのAssetを作成します。冪等です:
// 既に存在する場合はエラーにせず既存のAssetを返します。
func (u *AssetUsecase) CreateAsset(ctx context.Context, userID, currencyID uuid.UUID) (*entity.Asset, error) {
	if existing, err := u.assets.Find(ctx, userID, currencyID); err == nil {
		return existing, nil
	} else if !errors.Is(err, domain.ErrAssetNotFound) {
		return nil, err
	}

	asset := &entity.Asset{UserID: userID, CurrencyID: currencyID}
	if err := u.assets.Create(ctx, asset); err != nil {
		return nil, err
	}
	return asset, nil
}

// AddAmount は保有量台帳に新しい行を追加します。行には現在時刻と、
// その通貨の最新価格のスナップショットが記録されます。
// assetIDが未知の場合はdomain.ErrAssetNotFound、通貨がまだ一度も
// リフレッシュされていない場合はmarket側のErrPriceNotFoundを返します。
func (u *AssetUsecase) AddAmount(ctx context.Context, assetID uuid.UUID, amount float64) (*entity.AssetAmountPriceHistory, error) {
	asset, err := u.assets.FindByID(ctx, assetID)
	if err != nil {
		return nil, err
	}

	latest, err := u.currencies.LatestPrice(ctx, asset.CurrencyID)
	if err != nil {
		return nil, err
	}

	record := &entity.AssetAmountPriceHistory{
		AssetID:   asset.ID,
		Amount:    amount,
		Price:     latest.Price,
		Timestamp: time.Now().UTC(),
	}
	if err := u.assets.AddAmount(ctx, record); err != nil {
		return nil, err
	}
	return record, nil
}

// UserAssets は指定ユーザーの全Assetの評価情報を返します。
// 評価額は各Assetの最新台帳行の amount × そこに記録されたスナップショット価格です
// （通貨の現在価格ではありません）。保有量履歴が1件もないAssetがあると
// 呼び出し全体がdomain.ErrNoAmountHistoryで失敗します。
func (u *AssetUsecase) UserAssets(ctx context.Context, userID uuid.UUID) ([]entity.AssetInfo, error) {
	assets, err := u.assets.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	infos := make([]entity.AssetInfo, 0, len(assets))
	for _, asset := range assets {
		last, err := u.assets.LastAmount(ctx, asset.ID)
		if err != nil {
			return nil, err
		}
		currency, err := u.currencies.FindByID(ctx, asset.CurrencyID)
		if err != nil {
			return nil, err
		}
		infos = append(infos, entity.AssetInfo{
			Currency:     currency.Name,
			Amount:       last.Amount,
			CurrentCost:  last.Amount * last.Price,
			CurrentPrice: last.Price,
		})
	}
	return infos, nil
}
