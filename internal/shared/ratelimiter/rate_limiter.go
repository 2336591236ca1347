package ratelimiter

import (
	"log/slog"
	"sync"
	"time"
)

// RateLimiterInterface は、外部API呼び出しなどの操作の頻度を制限するインターフェースです。
type RateLimiterInterface interface {
	WaitIfNeeded()
}

// RateLimiterは、視覚モデル呼び出しなどの操作の頻度を制限します。
// 分類器はフレームごとに1回呼ばれるため、クォータ超過を防ぐために
// パイプラインのループ内から使用します。複数ゴルーチンから安全に呼べます。
type RateLimiter struct {
	mu        sync.Mutex
	limit     int           // interval あたりの上限
	interval  time.Duration // どの単位でリセットするか
	count     int
	lastReset time.Time
}

// NewRateLimiterは新しいRateLimiterのインスタンスを生成します。
func NewRateLimiter(limit int, interval time.Duration) *RateLimiter {
	return &RateLimiter{
		limit:     limit,
		interval:  interval,
		lastReset: time.Now(),
	}
}

// WaitIfNeededはレートリミットの上限に達しているかを確認し、必要であれば
// 次のintervalの開始まで待機します。
func (rl *RateLimiter) WaitIfNeeded() {
	rl.mu.Lock()

	now := time.Now()
	// interval を過ぎたらカウントリセット
	if now.Sub(rl.lastReset) >= rl.interval {
		rl.count = 0
		rl.lastReset = now
	}

	rl.count++
	if rl.count <= rl.limit {
		rl.mu.Unlock()
		return
	}

	wait := rl.interval - now.Sub(rl.lastReset)
	rl.mu.Unlock()

	if wait > 0 {
		slog.Debug("rate limit reached, waiting", "wait", wait)
		time.Sleep(wait)
	}

	rl.mu.Lock()
	rl.count = 1
	rl.lastReset = time.Now()
	rl.mu.Unlock()
}
