// Package dto はcandlesフィーチャーのHTTPレスポンスDTOを定義します。
package dto

// ErrorResponse はエラー時のレスポンスDTOです。
type ErrorResponse struct {
	Error string `json:"error"`
}
