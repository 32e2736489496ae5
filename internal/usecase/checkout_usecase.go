package usecase

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"github.com/shopspring/decimal"
)

// 注文番号生成用
type IDGenerator interface {
	NewID() string
}

type Clock interface {
	Now() time.Time
}

// CheckoutUsecase はカートを不変のレシートに変換し、在庫を消費します。
// 在庫減算・注文作成・カートクリアは1トランザクションでまとめてcommitする。
type CheckoutUsecase struct {
	tx    repo.TransactionManager
	idGen IDGenerator
	clock Clock
}

func NewCheckoutUsecase(tx repo.TransactionManager, idGen IDGenerator, clock Clock) *CheckoutUsecase {
	return &CheckoutUsecase{tx: tx, idGen: idGen, clock: clock}
}

type CheckoutInput struct {
	CustomerName  string
	CustomerEmail string
}

// チェックアウト時点のスナップショット。後から商品が変わっても不変。
type ReceiptItem struct {
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Quantity int64           `json:"quantity"`
	Subtotal decimal.Decimal `json:"subtotal"`
}

type ReceiptResponse struct {
	OrderID       string          `json:"order_id"`
	CustomerName  string          `json:"customer_name"`
	CustomerEmail string          `json:"customer_email"`
	Items         []ReceiptItem   `json:"items"`
	Total         decimal.Decimal `json:"total"`
	Timestamp     time.Time       `json:"timestamp"`
}

func (u *CheckoutUsecase) Checkout(ctx context.Context, userID string, in CheckoutInput) (ReceiptResponse, error) {
	if strings.TrimSpace(in.CustomerName) == "" {
		return ReceiptResponse{}, NewHTTPError(http.StatusBadRequest, "Customer name is required")
	}

	var out ReceiptResponse

	//チェックアウトはトランザクション
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		cart, err := r.Carts().FindByUserID(ctx, userID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusBadRequest, "Cart is empty")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		cartItems, err := r.CartItems().ListByCartID(ctx, cart.ID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if len(cartItems) == 0 {
			return NewHTTPError(http.StatusBadRequest, "Cart is empty")
		}

		//先に全明細の在庫を確認してから減らす（check-all-before-mutate-any）
		products := make([]model.Product, 0, len(cartItems))
		for _, ci := range cartItems {
			p, err := r.Products().FindByID(ctx, ci.ProductID)
			if err == repo.ErrNotFound {
				return NewHTTPError(http.StatusNotFound, "Product not found")
			}
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
			if p.Stock < ci.Quantity {
				return NewHTTPError(http.StatusBadRequest, "Insufficient stock for "+p.Name)
			}
			products = append(products, p)
		}

		//在庫減算（条件付きUPDATEなので、減算時点で足りなければ false）
		receiptItems := make([]ReceiptItem, 0, len(cartItems))
		orderItems := make([]model.OrderItem, 0, len(cartItems))
		total := decimal.Zero
		now := u.clock.Now()

		for i, ci := range cartItems {
			p := products[i]

			ok, err := r.Inventory().DecreaseStockIfEnough(ctx, ci.ProductID, ci.Quantity)
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
			if !ok {
				//同時チェックアウトに負けた。rollbackで他明細の減算も戻る。
				return NewHTTPError(http.StatusBadRequest, "Insufficient stock for "+p.Name)
			}

			subtotal := p.Price.Mul(decimal.NewFromInt(ci.Quantity))

			receiptItems = append(receiptItems, ReceiptItem{
				Name:     p.Name,
				Price:    p.Price,
				Quantity: ci.Quantity,
				Subtotal: subtotal,
			})
			orderItems = append(orderItems, model.OrderItem{
				ProductID:           ci.ProductID,
				ProductNameSnapshot: p.Name,
				UnitPriceSnapshot:   p.Price,
				Quantity:            ci.Quantity,
				Subtotal:            subtotal,
				CreatedAt:           now,
			})

			total = total.Add(subtotal)
		}

		orderNumber := u.newOrderNumber(now)

		//レシートを注文レコードとして保存
		orderID, err := r.Orders().Create(ctx, model.Order{
			OrderNumber:   orderNumber,
			UserID:        userID,
			CustomerName:  strings.TrimSpace(in.CustomerName),
			CustomerEmail: strings.TrimSpace(in.CustomerEmail),
			Total:         total,
			CreatedAt:     now,
		})
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		if err := r.OrderItems().CreateBulk(ctx, orderID, orderItems); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		//カートをクリア（再購入はまた同じカートを使う）
		if err := r.Carts().Clear(ctx, cart.ID); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		out = ReceiptResponse{
			OrderID:       orderNumber,
			CustomerName:  strings.TrimSpace(in.CustomerName),
			CustomerEmail: strings.TrimSpace(in.CustomerEmail),
			Items:         receiptItems,
			Total:         total,
			Timestamp:     now,
		}
		return nil
	})

	if err != nil {
		return ReceiptResponse{}, err
	}
	return out, nil
}

// 注文番号。作成時刻ベース＋uuid断片でチェックアウトごとに一意。
func (u *CheckoutUsecase) newOrderNumber(now time.Time) string {
	suffix := u.idGen.NewID()
	suffix = strings.ReplaceAll(suffix, "-", "")
	if len(suffix) > 8 {
		suffix = suffix[:8]
	}
	return fmt.Sprintf("ORD-%d-%s", now.UnixMilli(), strings.ToUpper(suffix))
}

// 保存済みレシートの参照
func (u *CheckoutUsecase) GetOrder(ctx context.Context, orderNumber string) (ReceiptResponse, error) {
	var out ReceiptResponse

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByOrderNumber(ctx, orderNumber)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "Order not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		items, err := r.OrderItems().ListByOrderID(ctx, o.ID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		out = toReceiptResponse(o, items)
		return nil
	})

	if err != nil {
		return ReceiptResponse{}, err
	}
	return out, nil
}

func (u *CheckoutUsecase) ListOrders(ctx context.Context, userID string) ([]ReceiptResponse, error) {
	var outs []ReceiptResponse

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		orders, err := r.Orders().ListByUserID(ctx, userID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		outs = make([]ReceiptResponse, 0, len(orders))
		for _, o := range orders {
			items, err := r.OrderItems().ListByOrderID(ctx, o.ID)
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
			outs = append(outs, toReceiptResponse(o, items))
		}
		return nil
	})

	if err != nil {
		return []ReceiptResponse{}, err
	}
	return outs, nil
}

func toReceiptResponse(o model.Order, items []model.OrderItem) ReceiptResponse {
	outItems := make([]ReceiptItem, 0, len(items))
	for _, it := range items {
		outItems = append(outItems, ReceiptItem{
			Name:     it.ProductNameSnapshot,
			Price:    it.UnitPriceSnapshot,
			Quantity: it.Quantity,
			Subtotal: it.Subtotal,
		})
	}

	return ReceiptResponse{
		OrderID:       o.OrderNumber,
		CustomerName:  o.CustomerName,
		CustomerEmail: o.CustomerEmail,
		Items:         outItems,
		Total:         o.Total,
		Timestamp:     o.CreatedAt,
	}
}
