package model

// 商品。在庫は「現在値」のみ持つ（売れた累計はSaleが持つ）。
// IDは作成時に採番し、以後変更しない。
type Product struct {
	ID       string `json:"id"`
	Category string `json:"category"`
	Name     string `json:"name"`
	Price    int64  `json:"price"` // 最小通貨単位（Rp）
	Stock    int64  `json:"stock"`
	Notes    string `json:"notes,omitempty"`
}
