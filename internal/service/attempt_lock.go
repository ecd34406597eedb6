package service

import (
	"budaya_backend/internal/util"
	"budaya_backend/pkg/logger"
	"budaya_backend/pkg/monitoring"
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// LockOptions 每次加锁时读取当前配置，便于热更新
type LockOptions struct {
	TTL  time.Duration
	Wait time.Duration
}

// AttemptLocker 串行化同一次答题的写操作
type AttemptLocker interface {
	Lock(ctx context.Context, attemptID uint, opts LockOptions) (unlock func(), err error)
}

type localLockEntry struct {
	ch   chan struct{}
	refs int
}

// LocalAttemptLocker 进程内按 attemptID 分片的互斥锁，仅适用于单实例部署
type LocalAttemptLocker struct {
	mu    sync.Mutex
	locks map[uint]*localLockEntry
}

func NewLocalAttemptLocker() *LocalAttemptLocker {
	return &LocalAttemptLocker{locks: make(map[uint]*localLockEntry)}
}

func (l *LocalAttemptLocker) acquireEntry(id uint) *localLockEntry {
	l.mu.Lock()
	defer l.mu.Unlock()
	e, ok := l.locks[id]
	if !ok {
		e = &localLockEntry{ch: make(chan struct{}, 1)}
		l.locks[id] = e
	}
	e.refs++
	return e
}

func (l *LocalAttemptLocker) releaseEntry(id uint, e *localLockEntry) {
	l.mu.Lock()
	defer l.mu.Unlock()
	e.refs--
	if e.refs == 0 {
		delete(l.locks, id)
	}
}

func (l *LocalAttemptLocker) Lock(ctx context.Context, attemptID uint, opts LockOptions) (func(), error) {
	start := time.Now()
	e := l.acquireEntry(attemptID)

	var timeout <-chan time.Time
	if opts.Wait > 0 {
		timer := time.NewTimer(opts.Wait)
		defer timer.Stop()
		timeout = timer.C
	}

	select {
	case e.ch <- struct{}{}:
	case <-ctx.Done():
		l.releaseEntry(attemptID, e)
		return nil, ctx.Err()
	case <-timeout:
		l.releaseEntry(attemptID, e)
		return nil, util.ErrAttemptBusy
	}
	monitoring.QuizLockWait.WithLabelValues(util.LockBackendLocal).Observe(time.Since(start).Seconds())

	var once sync.Once
	return func() {
		once.Do(func() {
			<-e.ch
			l.releaseEntry(attemptID, e)
		})
	}, nil
}

// 仅当值仍是自己的 token 时才删除，避免误删他人续上的锁
var releaseLockScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

const redisLockRetryInterval = 20 * time.Millisecond

// RedisAttemptLocker 基于 SET NX PX 的分布式锁，多实例部署时使用
type RedisAttemptLocker struct {
	Redis *redis.Client
}

func NewRedisAttemptLocker(rdb *redis.Client) *RedisAttemptLocker {
	return &RedisAttemptLocker{Redis: rdb}
}

func attemptLockKey(attemptID uint) string {
	return fmt.Sprintf("quiz:attempt:lock:%d", attemptID)
}

func (l *RedisAttemptLocker) Lock(ctx context.Context, attemptID uint, opts LockOptions) (func(), error) {
	start := time.Now()
	key := attemptLockKey(attemptID)
	token := uuid.New().String()

	ttl := opts.TTL
	if ttl <= 0 {
		ttl = 10 * time.Second
	}
	deadline := start.Add(opts.Wait)

	for {
		ok, err := l.Redis.SetNX(ctx, key, token, ttl).Result()
		if err != nil {
			return nil, fmt.Errorf("acquire attempt lock: %w", err)
		}
		if ok {
			break
		}
		if opts.Wait > 0 && time.Now().After(deadline) {
			return nil, util.ErrAttemptBusy
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(redisLockRetryInterval):
		}
	}
	monitoring.QuizLockWait.WithLabelValues(util.LockBackendRedis).Observe(time.Since(start).Seconds())

	log := logger.FromContext(ctx)
	var once sync.Once
	return func() {
		once.Do(func() {
			// 请求上下文可能已取消，释放锁使用独立上下文
			releaseCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			if err := releaseLockScript.Run(releaseCtx, l.Redis, []string{key}, token).Err(); err != nil && err != redis.Nil {
				log.Warn("Failed to release attempt lock",
					zap.Uint("attempt_id", attemptID),
					zap.Error(err),
				)
			}
		})
	}, nil
}
