package main

import (
	"context"
	"log"

	"app/internal/domain/model"
	"app/internal/infra/db"
	infraRepo "app/internal/infra/repository"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// カタログの初期データ
var products = []model.Product{
	{
		Name:        "Wireless Headphones",
		Price:       decimal.RequireFromString("89.99"),
		Description: "Premium noise-cancelling wireless headphones with 30-hour battery life",
		Image:       "https://images.unsplash.com/photo-1505740420928-5e560c06d30e?w=500&h=500&fit=crop",
		Category:    "Electronics",
		Stock:       50,
	},
	{
		Name:        "Smart Watch",
		Price:       decimal.RequireFromString("299.99"),
		Description: "Fitness tracker with heart rate monitor and GPS",
		Image:       "https://images.unsplash.com/photo-1523275335684-37898b6baf30?w=500&h=500&fit=crop",
		Category:    "Electronics",
		Stock:       30,
	},
	{
		Name:        "Laptop Backpack",
		Price:       decimal.RequireFromString("49.99"),
		Description: "Water-resistant backpack with padded laptop compartment",
		Image:       "https://images.unsplash.com/photo-1553062407-98eeb64c6a62?w=500&h=500&fit=crop",
		Category:    "Accessories",
		Stock:       100,
	},
	{
		Name:        "Mechanical Keyboard",
		Price:       decimal.RequireFromString("129.99"),
		Description: "RGB mechanical gaming keyboard with Cherry MX switches",
		Image:       "https://images.unsplash.com/photo-1587829741301-dc798b83add3?w=500&h=500&fit=crop",
		Category:    "Electronics",
		Stock:       45,
	},
	{
		Name:        "USB-C Hub",
		Price:       decimal.RequireFromString("39.99"),
		Description: "7-in-1 USB-C hub with HDMI, USB 3.0, and SD card reader",
		Image:       "https://images.unsplash.com/photo-1625948515291-69613efd103f?w=500&h=500&fit=crop",
		Category:    "Accessories",
		Stock:       75,
	},
	{
		Name:        "Portable Charger",
		Price:       decimal.RequireFromString("29.99"),
		Description: "20000mAh power bank with fast charging support",
		Image:       "https://images.unsplash.com/photo-1609091839311-d5365f9ff1c5?w=500&h=500&fit=crop",
		Category:    "Electronics",
		Stock:       120,
	},
	{
		Name:        "Wireless Mouse",
		Price:       decimal.RequireFromString("34.99"),
		Description: "Ergonomic wireless mouse with adjustable DPI",
		Image:       "https://images.unsplash.com/photo-1527864550417-7fd91fc51a46?w=500&h=500&fit=crop",
		Category:    "Electronics",
		Stock:       80,
	},
	{
		Name:        "Phone Case",
		Price:       decimal.RequireFromString("19.99"),
		Description: "Slim protective case with military-grade drop protection",
		Image:       "https://images.unsplash.com/photo-1601784551446-20c9e07cdbdb?w=500&h=500&fit=crop",
		Category:    "Accessories",
		Stock:       200,
	},
	{
		Name:        "Bluetooth Speaker",
		Price:       decimal.RequireFromString("59.99"),
		Description: "Waterproof portable speaker with 360° sound",
		Image:       "https://images.unsplash.com/photo-1608043152269-423dbba4e7e1?w=500&h=500&fit=crop",
		Category:    "Electronics",
		Stock:       65,
	},
	{
		Name:        "Webcam HD",
		Price:       decimal.RequireFromString("79.99"),
		Description: "1080p webcam with auto-focus and noise reduction",
		Image:       "https://images.unsplash.com/photo-1593305841991-05c297ba4575?w=500&h=500&fit=crop",
		Category:    "Electronics",
		Stock:       40,
	},
}

func main() {
	_ = godotenv.Load()

	gormDB, err := db.Connect()
	if err != nil {
		log.Fatalf("db connect: %v", err)
	}

	if err := gormDB.AutoMigrate(
		&model.Product{},
		&model.Cart{},
		&model.CartItem{},
		&model.Order{},
		&model.OrderItem{},
	); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	//既存データを消してから入れ直す
	if err := gormDB.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&model.CartItem{}).Error; err != nil {
		log.Fatalf("clear cart items: %v", err)
	}
	if err := gormDB.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&model.Cart{}).Error; err != nil {
		log.Fatalf("clear carts: %v", err)
	}
	if err := gormDB.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&model.Product{}).Error; err != nil {
		log.Fatalf("clear products: %v", err)
	}

	ctx := context.Background()
	productRepo := infraRepo.NewProductGormRepository(gormDB)

	for _, p := range products {
		if _, err := productRepo.Create(ctx, p); err != nil {
			log.Fatalf("seed %q: %v", p.Name, err)
		}
	}

	log.Printf("database seeded: %d products", len(products))
}
