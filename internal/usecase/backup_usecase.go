package usecase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/Divarzky/jajanan-rizky/internal/domain/model"
	repo "github.com/Divarzky/jajanan-rizky/internal/repository"
)

// BackupUsecase はスナップショットの作成・保存・リストアを持つ。
// スナップショットの対象は整合が必要な2コレクション（products, sales）のみ。
// settingsとusersは端末ローカルの状態なので含めない。
type BackupUsecase struct {
	store repo.Store
	idGen IDGenerator
	clock Clock
}

// DI
func NewBackupUsecase(store repo.Store, idGen IDGenerator, clock Clock) *BackupUsecase {
	return &BackupUsecase{store: store, idGen: idGen, clock: clock}
}

// Export は全商品と全売上を読んでスナップショットに包む。純粋な読み取り。
// 保存するか・ファイルに出すかは呼び出し側が決める。
func (u *BackupUsecase) Export(ctx context.Context) (model.Snapshot, error) {
	rawProducts, err := u.store.GetAll(ctx, repo.CollectionProducts)
	if err != nil {
		return model.Snapshot{}, err
	}
	products, err := repo.DecodeAll[model.Product](rawProducts)
	if err != nil {
		return model.Snapshot{}, err
	}

	rawSales, err := u.store.GetAll(ctx, repo.CollectionSales)
	if err != nil {
		return model.Snapshot{}, err
	}
	sales, err := repo.DecodeAll[model.Sale](rawSales)
	if err != nil {
		return model.Snapshot{}, err
	}

	// 出力を安定させるためにここでソートする（storeの並びは未定義）
	sort.Slice(products, func(i, j int) bool {
		if products[i].Category != products[j].Category {
			return products[i].Category < products[j].Category
		}
		return products[i].Name < products[j].Name
	})
	sort.Slice(sales, func(i, j int) bool { return sales[i].CreatedAt < sales[j].CreatedAt })

	return model.Snapshot{
		CreatedAt:     u.clock.Now().UnixMilli(),
		SchemaVersion: model.SchemaVersion,
		Products:      products,
		Sales:         sales,
	}, nil
}

// Restore はコアで唯一の破壊的操作。
// 先に両コレクションを空にしてから書く（小さいカタログへ戻したとき
// 古いレコードを残さないため）。productsを先に書くのは通常の依存順に
// 合わせただけで、書き込み時の参照チェックはしない。
// コレクションをまたぐ原子性は無い。途中で失敗したら同じスナップショットで
// やり直せば同じ最終状態に収束する（冪等）。
func (u *BackupUsecase) Restore(ctx context.Context, snap model.Snapshot) error {
	if snap.Products == nil {
		return &InvalidSnapshotError{Reason: "products missing"}
	}

	if err := u.store.Clear(ctx, repo.CollectionProducts); err != nil {
		return err
	}
	if err := u.store.Clear(ctx, repo.CollectionSales); err != nil {
		return err
	}

	for _, p := range snap.Products {
		if err := u.store.Put(ctx, repo.CollectionProducts, p.ID, p); err != nil {
			return err
		}
	}
	for _, s := range snap.Sales {
		if err := u.store.Put(ctx, repo.CollectionSales, s.ID, s); err != nil {
			return err
		}
	}
	return nil
}

// RestoreJSON はアップロードされたスナップショット文書を検証してリストアする。
// productsが無い・配列でない文書はInvalidSnapshotで拒否する（副作用なし）。
func (u *BackupUsecase) RestoreJSON(ctx context.Context, data []byte) error {
	var probe struct {
		Products json.RawMessage `json:"products"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return &InvalidSnapshotError{Reason: "not a valid JSON document"}
	}
	trimmed := bytes.TrimSpace(probe.Products)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return &InvalidSnapshotError{Reason: "products must be an array"}
	}

	var snap model.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return &InvalidSnapshotError{Reason: fmt.Sprintf("malformed snapshot: %v", err)}
	}
	if snap.Sales == nil {
		snap.Sales = []model.Sale{}
	}
	return u.Restore(ctx, snap)
}

// CreateBackup はexportした結果を履歴としてbackupsに保存する。
func (u *BackupUsecase) CreateBackup(ctx context.Context, name string) (model.Backup, error) {
	snap, err := u.Export(ctx)
	if err != nil {
		return model.Backup{}, err
	}

	now := u.clock.Now()
	if name == "" {
		name = fmt.Sprintf("backup-%s-%d.json", now.UTC().Format("2006-01-02"), now.UnixMilli())
	}

	b := model.Backup{
		ID:        u.idGen.NewID(),
		Name:      name,
		CreatedAt: now.UnixMilli(),
		Data:      snap,
	}
	if err := u.store.Put(ctx, repo.CollectionBackups, b.ID, b); err != nil {
		return model.Backup{}, err
	}
	return b, nil
}

// 新しい順
func (u *BackupUsecase) List(ctx context.Context) ([]model.Backup, error) {
	raws, err := u.store.GetAll(ctx, repo.CollectionBackups)
	if err != nil {
		return nil, err
	}
	backups, err := repo.DecodeAll[model.Backup](raws)
	if err != nil {
		return nil, err
	}
	sort.Slice(backups, func(i, j int) bool { return backups[i].CreatedAt > backups[j].CreatedAt })
	return backups, nil
}

func (u *BackupUsecase) FindByID(ctx context.Context, id string) (model.Backup, error) {
	var b model.Backup
	if err := u.store.Get(ctx, repo.CollectionBackups, id, &b); err != nil {
		return model.Backup{}, err
	}
	return b, nil
}

func (u *BackupUsecase) Delete(ctx context.Context, id string) error {
	return u.store.Delete(ctx, repo.CollectionBackups, id)
}

// 保存済みバックアップからのリストア
func (u *BackupUsecase) RestoreBackup(ctx context.Context, id string) error {
	b, err := u.FindByID(ctx, id)
	if err != nil {
		return err
	}
	return u.Restore(ctx, b.Data)
}
