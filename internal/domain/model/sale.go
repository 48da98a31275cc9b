package model

type PaymentMethod string

const (
	PaymentCash     PaymentMethod = "cash"
	PaymentQRIS     PaymentMethod = "qris"
	PaymentTransfer PaymentMethod = "transfer"
)

// 有効な支払い方法か
func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentCash, PaymentQRIS, PaymentTransfer:
		return true
	}
	return false
}

// 売上の明細。確定時点の商品名と価格を必ずコピーして保存する。
// 商品が後で削除・改名されても履歴は読めるままにする。
type SaleItem struct {
	ProductID string `json:"productId"`
	Name      string `json:"name"`
	Price     int64  `json:"price"`
	Quantity  int64  `json:"quantity"`
}

// 売上。作成後は変更しない（追記専用の台帳）。
// 通常フローでの削除は無く、リストア時にまとめて入れ替わるだけ。
type Sale struct {
	ID               string        `json:"id"`
	CreatedAt        int64         `json:"createdAt"` // epoch ms
	Items            []SaleItem    `json:"items"`
	Total            int64         `json:"total"`
	AmountPaid       int64         `json:"amountPaid"`
	Change           int64         `json:"change"`
	PaymentMethod    PaymentMethod `json:"paymentMethod"`
	PaymentReference string        `json:"paymentReference,omitempty"`
}
