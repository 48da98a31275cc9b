package repository

import (
	"context"
	"encoding/json"
	"errors"
)

// 該当レコードなし
var ErrNotFound = errors.New("not found")

// 保存媒体そのものの失敗（未初期化・容量超過など）。自動リトライはしない。
var ErrStoreUnavailable = errors.New("store unavailable")

// 書き込み競合。単一ライター構成では発生しない（将来の複数端末用に予約）。
var ErrWriteConflict = errors.New("write conflict")

// スキーマ外のコレクション名
var ErrUnknownCollection = errors.New("unknown collection")

// コレクションは固定スキーマで事前宣言する。途中で増やす場合は
// model.SchemaVersionを上げてマイグレーションする（削除はしない）。
const (
	CollectionProducts = "products"
	CollectionSales    = "sales"
	CollectionBackups  = "backups"
	CollectionSettings = "settings"
	CollectionUsers    = "users"
)

// 宣言済みコレクションか
func KnownCollection(name string) bool {
	switch name {
	case CollectionProducts, CollectionSales, CollectionBackups, CollectionSettings, CollectionUsers:
		return true
	}
	return false
}

// Storeは名前付きコレクションに対する永続KVテーブルの約束。
// 各操作は1コレクション内で原子的（成功して即座に見えるか、何も書かないか）。
// コレクションをまたぐ原子性は無い。呼び出し側が順序で補償する。
// GetAllの並び順は未定義。並べたい側が明示的にソートする。
type Store interface {
	Put(ctx context.Context, collection string, key string, value any) error
	Get(ctx context.Context, collection string, key string, out any) error
	GetAll(ctx context.Context, collection string) ([]json.RawMessage, error)
	Delete(ctx context.Context, collection string, key string) error
	Clear(ctx context.Context, collection string) error
}

// GetAllの結果を型付きスライスに起こす
func DecodeAll[T any](raws []json.RawMessage) ([]T, error) {
	out := make([]T, 0, len(raws))
	for _, raw := range raws {
		var v T
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}
