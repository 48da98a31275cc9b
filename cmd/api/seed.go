package main

import "github.com/Divarzky/jajanan-rizky/internal/usecase"

// 初回起動用の品揃え
func seedProducts() []usecase.ProductDraft {
	drafts := []usecase.ProductDraft{
		{Category: "Mie SS", Name: "Mie SS Manis", Price: 12000, Stock: 30, Notes: "Level 0-15"},
		{Category: "Mie SS", Name: "Mie SS Gurih", Price: 12000, Stock: 30, Notes: "Level 0-15"},
		{Category: "Mie SS", Name: "Pangsit Goreng", Price: 11000, Stock: 25},
		{Category: "Mie SS", Name: "Siomay Goreng", Price: 11000, Stock: 25},
		{Category: "Mie SS", Name: "Siomay Kukus", Price: 11000, Stock: 25},
		{Category: "Mie SS", Name: "Udang Keju", Price: 11000, Stock: 20},
		{Category: "Mie SS", Name: "Udang Rambutan", Price: 11000, Stock: 20},
		{Category: "Mie SS", Name: "Dimsum", Price: 11000, Stock: 20},
	}

	drinks := []string{
		"Taro Milk", "Strawberry Milk", "Red Velvet", "Regal Milk", "Oreo Milk", "Blueberry Milk",
		"Cappuccino Milk", "Avocado Milk", "Hazelnut Milk", "Choco Milk", "Matcha Milk",
		"Tiramisu Milk", "Coffee Milk", "Ovaltine Milk",
		"Orange Squash", "Melon Squash", "Manggo Squash", "Lychee Squash",
		"Lemon Tea", "Apple Tea", "Original Tea",
	}
	for _, name := range drinks {
		drafts = append(drafts, usecase.ProductDraft{Category: "Minuman", Name: name, Price: 5000, Stock: 80})
	}

	drafts = append(drafts,
		usecase.ProductDraft{Category: "Camilan", Name: "Tahu Walik", Price: 6000, Stock: 40},
		usecase.ProductDraft{Category: "Camilan", Name: "Cheese Roll", Price: 5000, Stock: 40},
		usecase.ProductDraft{Category: "Camilan", Name: "Corndog Mozarella Jumbo", Price: 5000, Stock: 30},
		usecase.ProductDraft{Category: "Camilan", Name: "Corndog Sosis Jumbo", Price: 5000, Stock: 30},
		usecase.ProductDraft{Category: "Camilan", Name: "Corndog Sosis Mozarella", Price: 5000, Stock: 30},
		usecase.ProductDraft{Category: "Camilan", Name: "Corndog Mozarella Mini", Price: 3000, Stock: 60},
		usecase.ProductDraft{Category: "Camilan", Name: "Corndog Sosis Mini", Price: 3000, Stock: 60},
	)
	return drafts
}
