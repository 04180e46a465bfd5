// Package dto はassetsフィーチャーのHTTPトランスポート層のデータ転送オブジェクトを定義します。
package dto

// AssetCreateReq は POST /users/me/assets のリクエストボディを表します。
type AssetCreateReq struct {
	Currency string  `json:"currency" binding:"required"`
	Amount   float64 `json:"amount" binding:"gte=0"`
}
