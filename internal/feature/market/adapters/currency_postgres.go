// Package adapters はmarketフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"assetwatch/internal/feature/market/domain"
	"assetwatch/internal/feature/market/domain/entity"
	"assetwatch/internal/feature/market/usecase"
)

// currencyPostgres は価格台帳（Currency, PriceHistory）のGORM実装です。
type currencyPostgres struct {
	db *gorm.DB
}

// コンパイル時のインターフェース実装チェック
var (
	_ usecase.RefreshStore      = (*currencyPostgres)(nil)
	_ usecase.ListingRepository = (*currencyPostgres)(nil)
)

// NewCurrencyRepository は指定されたgorm.DB接続でcurrencyPostgresの新しいインスタンスを生成します。
func NewCurrencyRepository(db *gorm.DB) *currencyPostgres {
	return &currencyPostgres{db: db}
}

// EnsureSchema は台帳テーブルが存在することを保証します。冪等で、毎サイクル呼んでも安全です。
func (r *currencyPostgres) EnsureSchema(ctx context.Context) error {
	return r.db.WithContext(ctx).AutoMigrate(&entity.Currency{}, &entity.PriceHistory{})
}

// FindByName は名前でCurrencyを取得します。
// 存在しない場合、domain.ErrCurrencyNotFoundを返します。
func (r *currencyPostgres) FindByName(ctx context.Context, name string) (*entity.Currency, error) {
	var c entity.Currency
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&c).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrCurrencyNotFound
		}
		return nil, err
	}
	return &c, nil
}

// FindByID はIDでCurrencyを取得します。
func (r *currencyPostgres) FindByID(ctx context.Context, id uuid.UUID) (*entity.Currency, error) {
	var c entity.Currency
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&c).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrCurrencyNotFound
		}
		return nil, err
	}
	return &c, nil
}

// LatestPrice は指定通貨の最新のPriceHistory行を返します。
// 価格履歴が1件もない場合、domain.ErrPriceNotFoundを返します。
func (r *currencyPostgres) LatestPrice(ctx context.Context, currencyID uuid.UUID) (*entity.PriceHistory, error) {
	var p entity.PriceHistory
	if err := r.db.WithContext(ctx).
		Where("currency_id = ?", currencyID).
		Order("timestamp DESC").
		First(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrPriceNotFound
		}
		return nil, err
	}
	return &p, nil
}

// SaveBatch は1リフレッシュサイクル分の相場データを単一トランザクションで永続化します。
// 未知の通貨名はその場で作成し、各行の価格をバッチタイムスタンプで挿入します。
// 制約違反（再配信されたバッチ等）が発生した場合、サイクル全体がロールバックされます。
func (r *currencyPostgres) SaveBatch(ctx context.Context, quotes []entity.CurrencyQuote) error {
	if len(quotes) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, q := range quotes {
			var c entity.Currency
			err := tx.Where("name = ?", q.Name).First(&c).Error
			switch {
			case errors.Is(err, gorm.ErrRecordNotFound):
				// シンボルは上流の値をそのまま使用（正規化しない）
				c = entity.Currency{Name: q.Name, Symbol: q.Symbol}
				if err := tx.Create(&c).Error; err != nil {
					return err
				}
			case err != nil:
				return err
			}

			history := entity.PriceHistory{
				CurrencyID: c.ID,
				Timestamp:  q.Timestamp,
				Price:      q.Price,
			}
			if err := tx.Create(&history).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// Listings は価格履歴を1件以上持つ全通貨について、最新価格とその記録時刻を返します。
// 順序は通貨の登録順です。
func (r *currencyPostgres) Listings(ctx context.Context) ([]entity.Listing, error) {
	var currencies []entity.Currency
	if err := r.db.WithContext(ctx).Order("created_at ASC").Find(&currencies).Error; err != nil {
		return nil, err
	}

	listings := make([]entity.Listing, 0, len(currencies))
	for _, c := range currencies {
		latest, err := r.LatestPrice(ctx, c.ID)
		if errors.Is(err, domain.ErrPriceNotFound) {
			// 履歴のない通貨は一覧から除外
			continue
		}
		if err != nil {
			return nil, err
		}
		listings = append(listings, entity.Listing{
			Name:          c.Name,
			Symbol:        c.Symbol,
			Price:         latest.Price,
			SyncTimestamp: latest.Timestamp,
		})
	}
	return listings, nil
}
