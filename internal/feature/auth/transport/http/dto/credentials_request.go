// Package dto はauthフィーチャーのHTTPトランスポート層のデータ転送オブジェクトを定義します。
package dto

// CredentialsReq は/registerと/tokenエンドポイントのリクエストボディを表します。
// ユーザー名は最大49文字です。
type CredentialsReq struct {
	Username string `json:"username" binding:"required,max=49"`
	Password string `json:"password" binding:"required"`
}
