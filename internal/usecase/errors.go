package usecase

import "fmt"

// 入力不正。副作用なしで呼び出し側がそのまま直せる。
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func NewValidationError(field string, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// 在庫不足。どの商品が・いくつ要求され・いくつ残っているかを持つ。
// 業務ルールの拒否であり、副作用は発生していない。
type InsufficientStockError struct {
	ProductID string
	Name      string
	Requested int64
	Available int64
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %s: requested %d, available %d", e.Name, e.Requested, e.Available)
}

func (e *InsufficientStockError) Shortfall() int64 {
	return e.Requested - e.Available
}

// 現金支払いの不足。checkout専用。副作用なし。
type UnderPaymentError struct {
	Total int64
	Paid  int64
}

func (e *UnderPaymentError) Error() string {
	return fmt.Sprintf("under payment: total %d, paid %d", e.Total, e.Paid)
}

func (e *UnderPaymentError) Shortfall() int64 {
	return e.Total - e.Paid
}

// リストア入力の形式不正。副作用なし。
type InvalidSnapshotError struct {
	Reason string
}

func (e *InvalidSnapshotError) Error() string {
	return fmt.Sprintf("invalid snapshot: %s", e.Reason)
}

// ここまで減らした、という記録
type AppliedDecrement struct {
	ProductID string
	Quantity  int64
}

// チェックアウト途中で媒体が落ちた場合。在庫は減ったのにSaleが残っていない。
// 全体をリトライすると二重減算になるため、他のエラーと区別して返し、
// オペレーターの手動照合に回す。
type PartialCommitError struct {
	Applied []AppliedDecrement
	Err     error
}

func (e *PartialCommitError) Error() string {
	return fmt.Sprintf("partial commit: %d decrement(s) applied without a sale record: %v", len(e.Applied), e.Err)
}

func (e *PartialCommitError) Unwrap() error {
	return e.Err
}
