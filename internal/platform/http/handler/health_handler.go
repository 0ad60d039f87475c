// Package handler はプラットフォームレベルのエンドポイント用HTTPハンドラーを提供します。
package handler

import "github.com/gin-gonic/gin"

// ModeFunc は現在の表示モード名（"loading" など）を返します。
type ModeFunc func() string

// NewHealth はサービスヘルスチェック用の /healthz ハンドラーを返します。
// HTTPメソッドに応じて適切にレスポンスし、キャッシュを防止します。
// mode が nil でなければ、GETのレスポンスに現在の表示モードを含めます。
func NewHealth(mode ModeFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		// 明示的にキャッシュを防止
		c.Header("Cache-Control", "no-store")

		// すべてのGET/HEAD/OPTIONSリクエストに対して200または204を返す
		switch c.Request.Method {
		case "HEAD":
			c.Status(200)
		case "OPTIONS":
			c.Status(204)
		default:
			body := gin.H{"status": "ok"}
			if mode != nil {
				body["mode"] = mode()
			}
			c.JSON(200, body)
		}
	}
}

// Health は表示モードを含まないヘルスチェックハンドラーです。
var Health = NewHealth(nil)
