package usecase

import (
	"context"
	"errors"

	"github.com/Divarzky/jajanan-rizky/internal/domain/cart"
	"github.com/Divarzky/jajanan-rizky/internal/domain/model"
	repo "github.com/Divarzky/jajanan-rizky/internal/repository"
)

// CheckoutUsecase はカートを売上に確定する。
// 媒体はコレクション単位の原子性しか持たないので、ここでは
// 「検証を尽くす→在庫減算→Sale書き込み→カート破棄」の順で直列に進める。
// 元に戻しにくい操作ほど後ろに置く。
type CheckoutUsecase struct {
	store   repo.Store
	catalog *CatalogUsecase
	idGen   IDGenerator
	clock   Clock
}

// DI
func NewCheckoutUsecase(store repo.Store, catalog *CatalogUsecase, idGen IDGenerator, clock Clock) *CheckoutUsecase {
	return &CheckoutUsecase{store: store, catalog: catalog, idGen: idGen, clock: clock}
}

type CheckoutInput struct {
	Method           model.PaymentMethod `json:"paymentMethod"`
	AmountPaid       int64               `json:"amountPaid"`
	PaymentReference string              `json:"paymentReference"`
}

// Checkout は確定プロトコル本体。
//  1. 全行を現在庫と突き合わせる（ここまで副作用なし）
//  2. 金額と支払い方法を解決する（現金は過不足チェック、非現金は額面=合計）
//  3. カート順に在庫を減らす（後続行の失敗でも巻き戻さない→PartialCommit）
//  4. Saleを書く
//  5. Saleが書けた後でだけカートを空にする
func (u *CheckoutUsecase) Checkout(ctx context.Context, c *cart.Cart, in CheckoutInput) (model.Sale, error) {
	lines := c.Lines()
	if len(lines) == 0 {
		return model.Sale{}, NewValidationError("cart", "cart is empty")
	}
	if !in.Method.Valid() {
		return model.Sale{}, NewValidationError("paymentMethod", "must be cash, qris or transfer")
	}

	// 1. 検証。1行でも足りなければ何も変更せずに中断する。
	for _, l := range lines {
		p, err := u.catalog.FindByID(ctx, l.ProductID)
		if errors.Is(err, repo.ErrNotFound) {
			return model.Sale{}, &InsufficientStockError{
				ProductID: l.ProductID,
				Name:      l.Name,
				Requested: l.Quantity,
				Available: 0,
			}
		}
		if err != nil {
			return model.Sale{}, err
		}
		if p.Stock < l.Quantity {
			return model.Sale{}, &InsufficientStockError{
				ProductID: p.ID,
				Name:      p.Name,
				Requested: l.Quantity,
				Available: p.Stock,
			}
		}
	}

	// 2. 金額解決
	total := c.Total()
	paid := in.AmountPaid
	var change int64
	ref := ""

	if in.Method == model.PaymentCash {
		if paid < total {
			return model.Sale{}, &UnderPaymentError{Total: total, Paid: paid}
		}
		change = paid - total
	} else {
		// 非現金は額面=合計に強制。参照番号は形式検証せずそのまま添える。
		paid = total
		change = 0
		ref = in.PaymentReference
	}

	// 3. 在庫減算（カート順）。途中で落ちたら減らした分を添えて返す。
	applied := make([]AppliedDecrement, 0, len(lines))
	for _, l := range lines {
		if _, err := u.catalog.AdjustStock(ctx, l.ProductID, -l.Quantity); err != nil {
			if len(applied) == 0 {
				// まだ何も減らしていないので通常のエラーとして返せる
				return model.Sale{}, err
			}
			return model.Sale{}, &PartialCommitError{Applied: applied, Err: err}
		}
		applied = append(applied, AppliedDecrement{ProductID: l.ProductID, Quantity: l.Quantity})
	}

	// 4. 売上を記録。明細はカート行を凍結したもの。
	items := make([]model.SaleItem, 0, len(lines))
	for _, l := range lines {
		items = append(items, l.ToSaleItem())
	}
	sale := model.Sale{
		ID:               u.idGen.NewID(),
		CreatedAt:        u.clock.Now().UnixMilli(),
		Items:            items,
		Total:            total,
		AmountPaid:       paid,
		Change:           change,
		PaymentMethod:    in.Method,
		PaymentReference: ref,
	}
	if err := u.store.Put(ctx, repo.CollectionSales, sale.ID, sale); err != nil {
		return model.Sale{}, &PartialCommitError{Applied: applied, Err: err}
	}

	// 5. Saleが書けた後でだけカートを捨てる
	c.Clear()
	return sale, nil
}
