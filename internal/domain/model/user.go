package model

// レジ端末の管理者ユーザー。PINはbcryptハッシュで保存する。
type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	PINHash  string `json:"pinHash"`
}
