package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// チェックアウト成功ごとに1件作成。作成後は変更しない。
type Order struct {
	ID            int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderNumber   string          `gorm:"type:varchar(64);not null;uniqueIndex" json:"order_number"`
	UserID        string          `gorm:"type:varchar(255);not null;index" json:"user_id"`
	CustomerName  string          `gorm:"type:varchar(255);not null" json:"customer_name"`
	CustomerEmail string          `gorm:"type:varchar(255)" json:"customer_email"`
	Total         decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"total"`
	CreatedAt     time.Time       `gorm:"not null;autoCreateTime" json:"created_at"`
}
