package usecase

import "time"

// IDの採番（mainでuuid実装を渡す）
type IDGenerator interface {
	NewID() string
}

// 現在時刻（テストで固定できるように注入する）
type Clock interface {
	Now() time.Time
}
