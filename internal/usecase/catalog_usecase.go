package usecase

import (
	"context"
	"sort"
	"strings"

	"github.com/Divarzky/jajanan-rizky/internal/domain/model"
	repo "github.com/Divarzky/jajanan-rizky/internal/repository"
)

// カテゴリ未指定のときの既定値
const defaultCategory = "Umum"

// CatalogUsecase は商品マスタのCRUDと在庫調整を持つ。
// カテゴリ一覧は全商品から導出する（別持ちするとズレるので持たない）。
type CatalogUsecase struct {
	store repo.Store
	idGen IDGenerator
}

// DI
func NewCatalogUsecase(store repo.Store, idGen IDGenerator) *CatalogUsecase {
	return &CatalogUsecase{store: store, idGen: idGen}
}

type ProductDraft struct {
	Category string `json:"category"`
	Name     string `json:"name"`
	Price    int64  `json:"price"`
	Stock    int64  `json:"stock"`
	Notes    string `json:"notes"`
}

// 更新パッチ。nilのフィールドは変更しない。
type ProductPatch struct {
	Category *string `json:"category"`
	Name     *string `json:"name"`
	Price    *int64  `json:"price"`
	Stock    *int64  `json:"stock"`
	Notes    *string `json:"notes"`
}

type ProductFilter struct {
	Query    string
	Category string
}

func validateProduct(p model.Product) error {
	if strings.TrimSpace(p.Name) == "" {
		return NewValidationError("name", "must not be empty")
	}
	if p.Price <= 0 {
		return NewValidationError("price", "must be greater than 0")
	}
	if p.Stock < 0 {
		return NewValidationError("stock", "must not be negative")
	}
	return nil
}

// 新規作成。IDはここで採番し、以後変わらない。在庫未指定は0。
func (u *CatalogUsecase) Create(ctx context.Context, in ProductDraft) (model.Product, error) {
	p := model.Product{
		ID:       u.idGen.NewID(),
		Category: strings.TrimSpace(in.Category),
		Name:     strings.TrimSpace(in.Name),
		Price:    in.Price,
		Stock:    in.Stock,
		Notes:    strings.TrimSpace(in.Notes),
	}
	if p.Category == "" {
		p.Category = defaultCategory
	}
	if err := validateProduct(p); err != nil {
		return model.Product{}, err
	}

	if err := u.store.Put(ctx, repo.CollectionProducts, p.ID, p); err != nil {
		return model.Product{}, err
	}
	return p, nil
}

func (u *CatalogUsecase) FindByID(ctx context.Context, id string) (model.Product, error) {
	var p model.Product
	if err := u.store.Get(ctx, repo.CollectionProducts, id, &p); err != nil {
		return model.Product{}, err
	}
	return p, nil
}

func (u *CatalogUsecase) Update(ctx context.Context, id string, patch ProductPatch) (model.Product, error) {
	p, err := u.FindByID(ctx, id)
	if err != nil {
		return model.Product{}, err
	}

	if patch.Category != nil {
		p.Category = strings.TrimSpace(*patch.Category)
		if p.Category == "" {
			p.Category = defaultCategory
		}
	}
	if patch.Name != nil {
		p.Name = strings.TrimSpace(*patch.Name)
	}
	if patch.Price != nil {
		p.Price = *patch.Price
	}
	if patch.Stock != nil {
		p.Stock = *patch.Stock
	}
	if patch.Notes != nil {
		p.Notes = strings.TrimSpace(*patch.Notes)
	}

	if err := validateProduct(p); err != nil {
		return model.Product{}, err
	}
	if err := u.store.Put(ctx, repo.CollectionProducts, p.ID, p); err != nil {
		return model.Product{}, err
	}
	return p, nil
}

// 削除は無条件。過去のSaleは商品フィールドをコピー済みなので参照チェックしない。
func (u *CatalogUsecase) Delete(ctx context.Context, id string) error {
	return u.store.Delete(ctx, repo.CollectionProducts, id)
}

// 在庫調整。プラスが入荷、マイナスが販売。
// 結果が負になる調整はどの入り口からでもInsufficientStockで拒否する。
func (u *CatalogUsecase) AdjustStock(ctx context.Context, id string, delta int64) (model.Product, error) {
	p, err := u.FindByID(ctx, id)
	if err != nil {
		return model.Product{}, err
	}

	newStock := p.Stock + delta
	if newStock < 0 {
		return model.Product{}, &InsufficientStockError{
			ProductID: p.ID,
			Name:      p.Name,
			Requested: -delta,
			Available: p.Stock,
		}
	}

	p.Stock = newStock
	if err := u.store.Put(ctx, repo.CollectionProducts, p.ID, p); err != nil {
		return model.Product{}, err
	}
	return p, nil
}

// 一覧。storeの並び順は未定義なのでここで（カテゴリ、名前）でソートする。
func (u *CatalogUsecase) List(ctx context.Context, f ProductFilter) ([]model.Product, error) {
	raws, err := u.store.GetAll(ctx, repo.CollectionProducts)
	if err != nil {
		return nil, err
	}
	products, err := repo.DecodeAll[model.Product](raws)
	if err != nil {
		return nil, err
	}

	q := strings.ToLower(strings.TrimSpace(f.Query))
	out := make([]model.Product, 0, len(products))
	for _, p := range products {
		if f.Category != "" && p.Category != f.Category {
			continue
		}
		if q != "" &&
			!strings.Contains(strings.ToLower(p.Name), q) &&
			!strings.Contains(strings.ToLower(p.Category), q) {
			continue
		}
		out = append(out, p)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Category != out[j].Category {
			return out[i].Category < out[j].Category
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}

// カテゴリ集合。全商品を走査して導出する。
func (u *CatalogUsecase) Categories(ctx context.Context) ([]string, error) {
	raws, err := u.store.GetAll(ctx, repo.CollectionProducts)
	if err != nil {
		return nil, err
	}
	products, err := repo.DecodeAll[model.Product](raws)
	if err != nil {
		return nil, err
	}

	seen := map[string]bool{}
	cats := make([]string, 0)
	for _, p := range products {
		if p.Category == "" || seen[p.Category] {
			continue
		}
		seen[p.Category] = true
		cats = append(cats, p.Category)
	}
	sort.Strings(cats)
	return cats, nil
}

// 商品がゼロ件のときだけ初期データを入れる（初回起動用）
func (u *CatalogUsecase) SeedIfEmpty(ctx context.Context, drafts []ProductDraft) (int, error) {
	raws, err := u.store.GetAll(ctx, repo.CollectionProducts)
	if err != nil {
		return 0, err
	}
	if len(raws) > 0 {
		return 0, nil
	}

	n := 0
	for _, d := range drafts {
		if _, err := u.Create(ctx, d); err != nil {
			return n, err
		}
		n++
	}
	return n, nil
}
