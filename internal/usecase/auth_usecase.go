package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/Divarzky/jajanan-rizky/internal/domain/model"
	repo "github.com/Divarzky/jajanan-rizky/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

// ユーザー名またはPINが違う
var ErrInvalidCredentials = errors.New("invalid credentials")

const bcryptCost = 12

// 初期管理者（初回起動時のみ作成。PINは必ず変えること）
const (
	defaultAdminUsername = "admin"
	defaultAdminPIN      = "1234"
)

// JWTを発行する約束（mainで実装を渡す）
type AccessTokenIssuer interface {
	Issue(userID string, username string, now time.Time) (token string, expiresAt time.Time, err error)
}

// AuthUsecase は管理画面用のPINログイン。
// レジ操作（メニュー・カート・会計）はログイン不要で、
// 商品の編集やリストアなど壊せる操作だけを守る。
type AuthUsecase struct {
	store  repo.Store
	issuer AccessTokenIssuer
	idGen  IDGenerator
	clock  Clock
}

// DI
func NewAuthUsecase(store repo.Store, issuer AccessTokenIssuer, idGen IDGenerator, clock Clock) *AuthUsecase {
	return &AuthUsecase{store: store, issuer: issuer, idGen: idGen, clock: clock}
}

type UserDTO struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

type LoginOutput struct {
	User        UserDTO `json:"user"`
	AccessToken string  `json:"accessToken"`
	ExpiresIn   int     `json:"expiresIn"` // 秒
}

func (u *AuthUsecase) Login(ctx context.Context, username string, pin string) (LoginOutput, error) {
	username = strings.TrimSpace(username)
	if username == "" || pin == "" {
		return LoginOutput{}, NewValidationError("credentials", "username and pin are required")
	}

	user, err := u.findByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return LoginOutput{}, ErrInvalidCredentials
		}
		return LoginOutput{}, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PINHash), []byte(pin)) != nil {
		return LoginOutput{}, ErrInvalidCredentials
	}

	now := u.clock.Now()
	token, expiresAt, err := u.issuer.Issue(user.ID, user.Username, now)
	if err != nil {
		return LoginOutput{}, err
	}

	return LoginOutput{
		User:        UserDTO{ID: user.ID, Username: user.Username},
		AccessToken: token,
		ExpiresIn:   int(expiresAt.Sub(now).Seconds()),
	}, nil
}

// PIN変更。旧PINの照合に通った場合のみ。
func (u *AuthUsecase) ChangePIN(ctx context.Context, userID string, oldPIN string, newPIN string) error {
	if len(newPIN) < 4 {
		return NewValidationError("pin", "must be at least 4 characters")
	}

	var user model.User
	if err := u.store.Get(ctx, repo.CollectionUsers, userID, &user); err != nil {
		return err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PINHash), []byte(oldPIN)) != nil {
		return ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPIN), bcryptCost)
	if err != nil {
		return err
	}
	user.PINHash = string(hash)
	return u.store.Put(ctx, repo.CollectionUsers, user.ID, user)
}

// ユーザーがゼロ件なら初期管理者を作る（初回起動用）
func (u *AuthUsecase) EnsureDefaultAdmin(ctx context.Context) error {
	raws, err := u.store.GetAll(ctx, repo.CollectionUsers)
	if err != nil {
		return err
	}
	if len(raws) > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(defaultAdminPIN), bcryptCost)
	if err != nil {
		return err
	}
	admin := model.User{
		ID:       u.idGen.NewID(),
		Username: defaultAdminUsername,
		PINHash:  string(hash),
	}
	return u.store.Put(ctx, repo.CollectionUsers, admin.ID, admin)
}

func (u *AuthUsecase) findByUsername(ctx context.Context, username string) (model.User, error) {
	raws, err := u.store.GetAll(ctx, repo.CollectionUsers)
	if err != nil {
		return model.User{}, err
	}
	users, err := repo.DecodeAll[model.User](raws)
	if err != nil {
		return model.User{}, err
	}
	for _, user := range users {
		if user.Username == username {
			return user, nil
		}
	}
	return model.User{}, repo.ErrNotFound
}
