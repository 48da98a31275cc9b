package main

import (
	"context"
	"time"

	"github.com/Divarzky/jajanan-rizky/internal/config"
	"github.com/Divarzky/jajanan-rizky/internal/domain/cart"
	"github.com/Divarzky/jajanan-rizky/internal/handler"
	"github.com/Divarzky/jajanan-rizky/internal/infra/db"
	"github.com/Divarzky/jajanan-rizky/internal/infra/store"
	"github.com/Divarzky/jajanan-rizky/internal/scheduler"
	"github.com/Divarzky/jajanan-rizky/internal/server"
	"github.com/Divarzky/jajanan-rizky/internal/usecase"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

type uuidGenerator struct{}

func (g *uuidGenerator) NewID() string {
	return uuid.NewString()
}

type realClock struct{}

func (c *realClock) Now() time.Time {
	return time.Now()
}

type jwtIssuer struct {
	secret    []byte
	accessTTL time.Duration
}

func newJWTIssuer(secret string) *jwtIssuer {
	//アクセストークン
	return &jwtIssuer{
		secret:    []byte(secret),
		accessTTL: 12 * time.Hour, // 営業1日ぶん
	}
}

func (i *jwtIssuer) Issue(userID string, username string, now time.Time) (string, time.Time, error) {
	expiresAt := now.Add(i.accessTTL)

	claims := jwt.MapClaims{
		"sub":      userID,
		"username": username,
		"iat":      now.Unix(),
		"exp":      expiresAt.Unix(),
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString(i.secret)
	if err != nil {
		return "", time.Time{}, err
	}

	return signed, expiresAt, nil
}

func main() {
	// .envは任意（ローカル運用では環境変数なしで動く）
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	//DB接続
	gormDB, err := db.Connect(cfg.DBPath)
	if err != nil {
		panic(err)
	}
	if err := store.AutoMigrate(gormDB); err != nil {
		panic(err)
	}

	kv := store.NewGormStore(gormDB)

	//usecaseに渡す部品
	idGen := &uuidGenerator{}
	clock := &realClock{}
	issuer := newJWTIssuer(cfg.JWTSecret)

	//Usecase生成
	catalogUC := usecase.NewCatalogUsecase(kv, idGen)
	checkoutUC := usecase.NewCheckoutUsecase(kv, catalogUC, idGen, clock)
	backupUC := usecase.NewBackupUsecase(kv, idGen, clock)
	settingsUC := usecase.NewSettingsUsecase(kv)
	reportUC := usecase.NewReportUsecase(kv, clock)
	authUC := usecase.NewAuthUsecase(kv, issuer, idGen, clock)

	//初回起動時のデータ投入
	ctx := context.Background()
	if _, err := catalogUC.SeedIfEmpty(ctx, seedProducts()); err != nil {
		panic(err)
	}
	if err := authUC.EnsureDefaultAdmin(ctx); err != nil {
		panic(err)
	}

	//レジ1台ぶんのカート
	posCart := cart.New(catalogUC)

	//自動バックアップ。保存済み設定に従って起動時に再開する。
	autoBackup := scheduler.NewAutoBackup(backupUC, settingsUC, clock, nil)
	if err := autoBackup.InitFromSettings(ctx); err != nil {
		panic(err)
	}

	//Handler生成
	handlers := server.Handlers{
		Auth:     handler.NewAuthHandler(authUC),
		Product:  handler.NewProductHandler(catalogUC),
		Cart:     handler.NewCartHandler(posCart),
		Checkout: handler.NewCheckoutHandler(checkoutUC, posCart),
		Backup:   handler.NewBackupHandler(backupUC, settingsUC, autoBackup),
		Report:   handler.NewReportHandler(reportUC),
		Settings: handler.NewSettingsHandler(settingsUC),
	}

	//Server起動
	e := server.New(cfg, handlers)
	if err := server.Start(e, cfg.Port); err != nil {
		panic(err)
	}
}
