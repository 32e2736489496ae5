package usecase_test

import (
	"context"
	"fmt"
	"net/http"
	"testing"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"
	"app/internal/usecase"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newCheckoutUsecase(now time.Time) (*usecase.CheckoutUsecase, *txReposStub) {
	repos := newTxReposStub()
	tm := &txManagerStub{repos: repos}
	uc := usecase.NewCheckoutUsecase(tm, &stubIDGen{id: "0123456789abcdef"}, &fixedClock{now: now})
	return uc, repos
}

func TestCheckoutUsecase_RequiresCustomerName(t *testing.T) {
	ctx := context.Background()
	uc, repos := newCheckoutUsecase(time.Now())

	_, err := uc.Checkout(ctx, "guest", usecase.CheckoutInput{CustomerName: "  "})
	assertErrContains(t, err, "Customer name is required")

	repos.carts.AssertNotCalled(t, "FindByUserID", mock.Anything, mock.Anything)
}

func TestCheckoutUsecase_EmptyCart(t *testing.T) {
	ctx := context.Background()
	uc, repos := newCheckoutUsecase(time.Now())

	repos.carts.On("FindByUserID", mock.Anything, "guest").Return(model.Cart{ID: 1, UserID: "guest"}, nil)
	repos.cartItems.On("ListByCartID", mock.Anything, int64(1)).Return([]model.CartItem{}, nil)

	_, err := uc.Checkout(ctx, "guest", usecase.CheckoutInput{CustomerName: gofakeit.Name()})
	assertErrContains(t, err, "Cart is empty")

	he, _ := usecase.AsHTTPError(err)
	assert.Equal(t, http.StatusBadRequest, he.Status)

	//レシートも在庫変更も発生しない
	repos.orders.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	repos.inventory.AssertNotCalled(t, "DecreaseStockIfEnough", mock.Anything, mock.Anything, mock.Anything)
}

func TestCheckoutUsecase_MissingCartIsEmptyCart(t *testing.T) {
	ctx := context.Background()
	uc, repos := newCheckoutUsecase(time.Now())

	repos.carts.On("FindByUserID", mock.Anything, "nobody").Return(model.Cart{}, repo.ErrNotFound)

	_, err := uc.Checkout(ctx, "nobody", usecase.CheckoutInput{CustomerName: gofakeit.Name()})
	assertErrContains(t, err, "Cart is empty")
}

// 2明細のうち2件目だけ在庫不足なら、どちらの在庫も減らない
func TestCheckoutUsecase_ValidatesAllBeforeMutatingAny(t *testing.T) {
	ctx := context.Background()
	uc, repos := newCheckoutUsecase(time.Now())

	repos.carts.On("FindByUserID", mock.Anything, "guest").Return(model.Cart{ID: 1, UserID: "guest"}, nil)
	repos.cartItems.On("ListByCartID", mock.Anything, int64(1)).Return([]model.CartItem{
		{ID: 11, CartID: 1, ProductID: 101, Quantity: 2},
		{ID: 12, CartID: 1, ProductID: 102, Quantity: 5},
	}, nil)
	repos.products.On("FindByID", mock.Anything, int64(101)).
		Return(model.Product{ID: 101, Name: "Beans", Price: mustDecimal("10.00"), Stock: 5}, nil)
	repos.products.On("FindByID", mock.Anything, int64(102)).
		Return(model.Product{ID: 102, Name: "Grinder", Price: mustDecimal("5.00"), Stock: 3}, nil)

	_, err := uc.Checkout(ctx, "guest", usecase.CheckoutInput{CustomerName: gofakeit.Name()})
	assertErrContains(t, err, "Insufficient stock for Grinder")

	repos.inventory.AssertNotCalled(t, "DecreaseStockIfEnough", mock.Anything, mock.Anything, mock.Anything)
	repos.orders.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	repos.carts.AssertNotCalled(t, "Clear", mock.Anything, mock.Anything)
}

// 減算時点で負けた場合も同じエラー（トランザクションごと巻き戻る）
func TestCheckoutUsecase_AbortsWhenDecrementLosesRace(t *testing.T) {
	ctx := context.Background()
	uc, repos := newCheckoutUsecase(time.Now())

	repos.carts.On("FindByUserID", mock.Anything, "guest").Return(model.Cart{ID: 1, UserID: "guest"}, nil)
	repos.cartItems.On("ListByCartID", mock.Anything, int64(1)).Return([]model.CartItem{
		{ID: 11, CartID: 1, ProductID: 101, Quantity: 2},
	}, nil)
	repos.products.On("FindByID", mock.Anything, int64(101)).
		Return(model.Product{ID: 101, Name: "Beans", Price: mustDecimal("10.00"), Stock: 5}, nil)
	repos.inventory.On("DecreaseStockIfEnough", mock.Anything, int64(101), int64(2)).Return(false, nil)

	_, err := uc.Checkout(ctx, "guest", usecase.CheckoutInput{CustomerName: gofakeit.Name()})
	assertErrContains(t, err, "Insufficient stock for Beans")

	repos.orders.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCheckoutUsecase_Success(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	uc, repos := newCheckoutUsecase(now)

	name := gofakeit.Name()
	email := gofakeit.Email()

	repos.carts.On("FindByUserID", mock.Anything, "guest").Return(model.Cart{ID: 1, UserID: "guest"}, nil)
	repos.cartItems.On("ListByCartID", mock.Anything, int64(1)).Return([]model.CartItem{
		{ID: 11, CartID: 1, ProductID: 101, Quantity: 2},
		{ID: 12, CartID: 1, ProductID: 102, Quantity: 1},
	}, nil)
	repos.products.On("FindByID", mock.Anything, int64(101)).
		Return(model.Product{ID: 101, Name: "Beans", Price: mustDecimal("10.00"), Stock: 5}, nil)
	repos.products.On("FindByID", mock.Anything, int64(102)).
		Return(model.Product{ID: 102, Name: "Grinder", Price: mustDecimal("5.00"), Stock: 10}, nil)
	repos.inventory.On("DecreaseStockIfEnough", mock.Anything, int64(101), int64(2)).Return(true, nil)
	repos.inventory.On("DecreaseStockIfEnough", mock.Anything, int64(102), int64(1)).Return(true, nil)

	var createdOrder model.Order
	repos.orders.On("Create", mock.Anything, mock.MatchedBy(func(o model.Order) bool {
		createdOrder = o
		return o.UserID == "guest" && o.Total.Equal(mustDecimal("25.00"))
	})).Return(int64(77), nil)

	var createdItems []model.OrderItem
	repos.orderItems.On("CreateBulk", mock.Anything, int64(77), mock.MatchedBy(func(items []model.OrderItem) bool {
		createdItems = items
		return len(items) == 2
	})).Return(nil)

	repos.carts.On("Clear", mock.Anything, int64(1)).Return(nil)

	out, err := uc.Checkout(ctx, "guest", usecase.CheckoutInput{CustomerName: name, CustomerEmail: email})
	assert.NoError(t, err)

	//レシート本体
	expectedOrderID := fmt.Sprintf("ORD-%d-01234567", now.UnixMilli())
	assert.Equal(t, expectedOrderID, out.OrderID)
	assert.Equal(t, name, out.CustomerName)
	assert.Equal(t, email, out.CustomerEmail)
	assert.Equal(t, now, out.Timestamp)
	assert.True(t, out.Total.Equal(mustDecimal("25.00")), "total=%s", out.Total)

	//明細スナップショット
	assert.Len(t, out.Items, 2)
	assert.Equal(t, "Beans", out.Items[0].Name)
	assert.True(t, out.Items[0].Subtotal.Equal(mustDecimal("20.00")))
	assert.Equal(t, "Grinder", out.Items[1].Name)
	assert.True(t, out.Items[1].Subtotal.Equal(mustDecimal("5.00")))

	//保存された注文レコードもレシートと一致
	assert.Equal(t, expectedOrderID, createdOrder.OrderNumber)
	assert.Len(t, createdItems, 2)
	assert.Equal(t, "Beans", createdItems[0].ProductNameSnapshot)
	assert.True(t, createdItems[0].UnitPriceSnapshot.Equal(mustDecimal("10.00")))

	//在庫減算とカートクリアが行われた
	repos.inventory.AssertExpectations(t)
	repos.carts.AssertCalled(t, "Clear", mock.Anything, int64(1))
}

func TestCheckoutUsecase_GetOrder_NotFound(t *testing.T) {
	ctx := context.Background()
	uc, repos := newCheckoutUsecase(time.Now())

	repos.orders.On("FindByOrderNumber", mock.Anything, "ORD-missing").Return(model.Order{}, repo.ErrNotFound)

	_, err := uc.GetOrder(ctx, "ORD-missing")
	assertErrContains(t, err, "Order not found")

	he, _ := usecase.AsHTTPError(err)
	assert.Equal(t, http.StatusNotFound, he.Status)
}

func TestCheckoutUsecase_ListOrders(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	uc, repos := newCheckoutUsecase(now)

	repos.orders.On("ListByUserID", mock.Anything, "guest").Return([]model.Order{
		{ID: 77, OrderNumber: "ORD-1", UserID: "guest", CustomerName: "A", Total: mustDecimal("25.00"), CreatedAt: now},
	}, nil)
	repos.orderItems.On("ListByOrderID", mock.Anything, int64(77)).Return([]model.OrderItem{
		{ID: 1, OrderID: 77, ProductID: 101, ProductNameSnapshot: "Beans", UnitPriceSnapshot: mustDecimal("10.00"), Quantity: 2, Subtotal: mustDecimal("20.00")},
		{ID: 2, OrderID: 77, ProductID: 102, ProductNameSnapshot: "Grinder", UnitPriceSnapshot: mustDecimal("5.00"), Quantity: 1, Subtotal: mustDecimal("5.00")},
	}, nil)

	outs, err := uc.ListOrders(ctx, "guest")
	assert.NoError(t, err)
	assert.Len(t, outs, 1)
	assert.Equal(t, "ORD-1", outs[0].OrderID)
	assert.Len(t, outs[0].Items, 2)
	assert.True(t, outs[0].Total.Equal(mustDecimal("25.00")))
}
