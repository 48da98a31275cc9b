package model

// スナップショットのスキーマ版数。コレクションを増やしたら上げる。
const SchemaVersion = 2

// ある時点のProducts+Salesの自己完結したコピー。
// export→ファイル→importで欠けずに往復できること。
type Snapshot struct {
	CreatedAt     int64     `json:"createdAt"` // epoch ms
	SchemaVersion int       `json:"schemaVersion"`
	Products      []Product `json:"products"`
	Sales         []Sale    `json:"sales"`
}

// ローカルに保存した履歴付きスナップショット。
type Backup struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	CreatedAt int64    `json:"createdAt"` // epoch ms
	Data      Snapshot `json:"data"`
}
