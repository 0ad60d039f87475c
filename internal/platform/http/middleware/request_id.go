// Package middleware はHTTPルーター共通のミドルウェアを提供します。
package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestIDHeader はリクエストIDを運ぶヘッダー名です。
const RequestIDHeader = "X-Request-ID"

// requestIDKey は gin.Context にリクエストIDを保存するキーです。
const requestIDKey = "request_id"

// maxRequestIDLen を超える受信IDは信用せず採番し直す
const maxRequestIDLen = 128

// RequestID はリクエストごとにIDを付与し、レスポンスヘッダーに返します。
// クライアントが送ったIDがあればそれを引き継ぎます。
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" || len(id) > maxRequestIDLen {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}

// GetRequestID は RequestID ミドルウェアが保存したIDを返します。
func GetRequestID(c *gin.Context) string {
	return c.GetString(requestIDKey)
}
