package model

// 未確定の注文1行。追加時点の商品名・価格のスナップショットと
// 変更可能な数量を持つ。永続化しない（プロセス寿命のみ）。
type CartLine struct {
	ProductID string `json:"productId"`
	Name      string `json:"name"`
	Price     int64  `json:"price"`
	Quantity  int64  `json:"quantity"`
}

// 売上明細への変換（確定時に凍結する）
func (l CartLine) ToSaleItem() SaleItem {
	return SaleItem{
		ProductID: l.ProductID,
		Name:      l.Name,
		Price:     l.Price,
		Quantity:  l.Quantity,
	}
}
