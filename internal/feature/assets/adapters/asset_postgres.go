// Package adapters はassetsフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"assetwatch/internal/feature/assets/domain"
	"assetwatch/internal/feature/assets/domain/entity"
	"assetwatch/internal/feature/assets/usecase"
)

// assetPostgres はAssetRepositoryインターフェースのGORM実装です。
type assetPostgres struct {
	db *gorm.DB
}

// assetPostgresがAssetRepositoryを実装していることをコンパイル時に検証します。
var _ usecase.AssetRepository = (*assetPostgres)(nil)

// NewAssetRepository は指定されたgorm.DB接続でassetPostgresの新しいインスタンスを生成します。
func NewAssetRepository(db *gorm.DB) *assetPostgres {
	return &assetPostgres{db: db}
}

// Find は(user, currency)ペアのAssetを取得します。
func (r *assetPostgres) Find(ctx context.Context, userID, currencyID uuid.UUID) (*entity.Asset, error) {
	var a entity.Asset
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND currency_id = ?", userID, currencyID).
		First(&a).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrAssetNotFound
		}
		return nil, err
	}
	return &a, nil
}

// FindByID はIDでAssetを取得します。
func (r *assetPostgres) FindByID(ctx context.Context, id uuid.UUID) (*entity.Asset, error) {
	var a entity.Asset
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&a).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrAssetNotFound
		}
		return nil, err
	}
	return &a, nil
}

// Create は新しいAssetをデータベースに追加します。
func (r *assetPostgres) Create(ctx context.Context, asset *entity.Asset) error {
	return r.db.WithContext(ctx).Create(asset).Error
}

// ListByUser は指定ユーザーの全Assetを作成順で返します。
func (r *assetPostgres) ListByUser(ctx context.Context, userID uuid.UUID) ([]entity.Asset, error) {
	var assets []entity.Asset
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&assets).Error; err != nil {
		return nil, err
	}
	return assets, nil
}

// AddAmount は保有量台帳に新しい行を追加します。
func (r *assetPostgres) AddAmount(ctx context.Context, amount *entity.AssetAmountPriceHistory) error {
	return r.db.WithContext(ctx).Create(amount).Error
}

// LastAmount は指定Assetの最新のAssetAmountPriceHistory行を返します。
func (r *assetPostgres) LastAmount(ctx context.Context, assetID uuid.UUID) (*entity.AssetAmountPriceHistory, error) {
	var a entity.AssetAmountPriceHistory
	if err := r.db.WithContext(ctx).
		Where("asset_id = ?", assetID).
		Order("timestamp DESC").
		First(&a).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNoAmountHistory
		}
		return nil, err
	}
	return &a, nil
}
