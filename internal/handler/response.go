package handler

import (
	"net/http"
	"strings"

	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

// 全レスポンス共通のエンベロープ。
// 成功: {success:true, message?, data}
// 失敗: {success:false, message}
type APIResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

func writeData(c echo.Context, message string, data interface{}) error {
	return c.JSON(http.StatusOK, APIResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

func writeError(c echo.Context, err error) error {
	if err == nil {
		return nil
	}
	if he, ok := usecase.AsHTTPError(err); ok {
		if he.Status == http.StatusInternalServerError {
			//内部詳細は漏らさずログだけ残す
			c.Logger().Error(err)
			return c.JSON(he.Status, APIResponse{Success: false, Message: "Internal server error"})
		}
		return c.JSON(he.Status, APIResponse{Success: false, Message: he.Message})
	}

	//500
	c.Logger().Error(err)
	return c.JSON(http.StatusInternalServerError, APIResponse{Success: false, Message: "Internal server error"})
}

// userId はクエリ/ボディで任意。無ければゲストとして扱う。
func resolveUserID(v string, guestUserID string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return guestUserID
	}
	return v
}
