package usecase_test

import (
	"context"
	"fmt"
	"time"

	repo "github.com/Divarzky/jajanan-rizky/internal/repository"
)

// 連番ID（テストで追いやすい）
type seqIDGen struct{ n int }

func (g *seqIDGen) NewID() string {
	g.n++
	return fmt.Sprintf("id-%d", g.n)
}

type fakeClock struct{ now time.Time }

func (c *fakeClock) Now() time.Time {
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.now = c.now.Add(d)
}

// 指定コレクションへのPutをn回成功させた後に落とすラッパ。
// 媒体障害の途中断をシミュレートする。
type flakyStore struct {
	repo.Store
	failCollection string
	succeedFirst   int
	puts           int
}

func (s *flakyStore) Put(ctx context.Context, collection string, key string, value any) error {
	if collection == s.failCollection {
		s.puts++
		if s.puts > s.succeedFirst {
			return fmt.Errorf("%w: disk full", repo.ErrStoreUnavailable)
		}
	}
	return s.Store.Put(ctx, collection, key, value)
}
