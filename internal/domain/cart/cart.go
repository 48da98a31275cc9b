package cart

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/Divarzky/jajanan-rizky/internal/domain/model"
)

// カートに無い商品への数量変更
var ErrLineNotFound = errors.New("cart line not found")

// 追加しようとしたが在庫が足りない。追加は行われていない。
type OutOfStockError struct {
	ProductID string
	Name      string
	Stock     int64
}

func (e *OutOfStockError) Error() string {
	return fmt.Sprintf("out of stock: %s (stock %d)", e.Name, e.Stock)
}

// カートが参照する在庫の読み取り口
type StockReader interface {
	FindByID(ctx context.Context, id string) (model.Product, error)
}

// Cart は支払い前の注文状態。商品ごとに最大1行で、同じ商品の追加は数量加算。
// 永続化はしない。プロセスが落ちたら空から作り直す使い捨ての状態なので、
// 在庫との整合は変更時と確定時に遅延検証する（購読はしない）。
type Cart struct {
	mu       sync.Mutex
	products StockReader
	lines    []model.CartLine
}

func New(products StockReader) *Cart {
	return &Cart{products: products}
}

// 1個追加。行が無ければ追加時点の名前・価格で新しい行を作る。
// 在庫0、または行の数量+1が在庫を超えるときはOutOfStock。
func (c *Cart) AddItem(ctx context.Context, productID string) error {
	p, err := c.products.FindByID(ctx, productID)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	i := c.indexOf(productID)
	var next int64 = 1
	if i >= 0 {
		next = c.lines[i].Quantity + 1
	}
	if p.Stock <= 0 || next > p.Stock {
		return &OutOfStockError{ProductID: p.ID, Name: p.Name, Stock: p.Stock}
	}

	if i >= 0 {
		c.lines[i].Quantity = next
		return nil
	}
	c.lines = append(c.lines, model.CartLine{
		ProductID: p.ID,
		Name:      p.Name,
		Price:     p.Price,
		Quantity:  1,
	})
	return nil
}

// 数量をdeltaだけ変える。結果は[0, 現在庫]にクランプされ、0になった行は消える。
// 在庫上限に当たって切り詰めたときはclamped=true（エラーではない）。
func (c *Cart) ChangeQuantity(ctx context.Context, productID string, delta int64) (clamped bool, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	i := c.indexOf(productID)
	if i < 0 {
		return false, ErrLineNotFound
	}

	next := c.lines[i].Quantity + delta
	if next <= 0 {
		c.remove(i)
		return false, nil
	}

	p, err := c.products.FindByID(ctx, productID)
	if err != nil {
		return false, err
	}
	if next > p.Stock {
		if p.Stock <= 0 {
			c.remove(i)
			return true, nil
		}
		c.lines[i].Quantity = p.Stock
		return true, nil
	}

	c.lines[i].Quantity = next
	return false, nil
}

// 全行を無条件で破棄する
func (c *Cart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lines = nil
}

// Σ price×quantity。純粋な計算で副作用なし。
func (c *Cart) Total() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	var total int64
	for _, l := range c.lines {
		total += l.Price * l.Quantity
	}
	return total
}

// 現在の行のコピー（追加順）
func (c *Cart) Lines() []model.CartLine {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]model.CartLine, len(c.lines))
	copy(out, c.lines)
	return out
}

func (c *Cart) Empty() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.lines) == 0
}

func (c *Cart) indexOf(productID string) int {
	for i, l := range c.lines {
		if l.ProductID == productID {
			return i
		}
	}
	return -1
}

func (c *Cart) remove(i int) {
	c.lines = append(c.lines[:i], c.lines[i+1:]...)
}
