package feedservice

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/taskpay-ng/taskpay/internal/domain"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	// FeedSize is how many events the public feed shows.
	FeedSize = 20
	// scanLimit bounds how far back we look for feed-worthy transactions.
	scanLimit = 100

	cacheKey = "taskpay:feed"
	cacheTTL = 30 * time.Second
)

// Item is one public activity event: who did what for how much.
type Item struct {
	UserName  string    `json:"user_name"`
	Action    string    `json:"action"`
	Amount    int64     `json:"amount"`
	CreatedAt time.Time `json:"created_at"`
}

type TransactionRepo interface {
	FindRecent(ctx context.Context, limit int) ([]domain.Transaction, error)
}

type UserRepo interface {
	FindByID(ctx context.Context, id int) (*domain.User, error)
}

type Service struct {
	txnRepo  TransactionRepo
	userRepo UserRepo
	cache    *redis.Client
}

// New builds the feed service. cache may be nil, the feed then renders from
// the database on every request.
func New(txnRepo TransactionRepo, userRepo UserRepo, cache *redis.Client) *Service {
	return &Service{txnRepo: txnRepo, userRepo: userRepo, cache: cache}
}

// Recent returns the latest public activity: settled withdrawals, approved
// premium upgrades and completed task rewards. Results are cached briefly,
// and a cache outage degrades to a direct database read.
func (s *Service) Recent(ctx context.Context) ([]Item, error) {
	if items, ok := s.fromCache(ctx); ok {
		return items, nil
	}

	txns, err := s.txnRepo.FindRecent(ctx, scanLimit)
	if err != nil {
		zap.L().Error("can't fetch recent transactions: ", zap.Error(err))
		return nil, err
	}

	var visible []domain.Transaction
	for _, txn := range txns {
		if isPublic(txn) {
			visible = append(visible, txn)
			if len(visible) == FeedSize {
				break
			}
		}
	}

	names, err := s.resolveNames(ctx, visible)
	if err != nil {
		return nil, err
	}

	items := make([]Item, 0, len(visible))
	for _, txn := range visible {
		items = append(items, Item{
			UserName:  names[txn.UserID],
			Action:    actionFor(txn),
			Amount:    txn.Amount,
			CreatedAt: txn.CreatedAt,
		})
	}

	s.toCache(ctx, items)
	return items, nil
}

func isPublic(txn domain.Transaction) bool {
	switch txn.Kind {
	case domain.TxnKindWithdrawal:
		return txn.Status == domain.TxnStatusApproved
	case domain.TxnKindPayment:
		return txn.Status == domain.TxnStatusApproved
	case domain.TxnKindTask:
		return txn.Status == domain.TxnStatusCompleted
	default:
		return false
	}
}

func actionFor(txn domain.Transaction) string {
	switch txn.Kind {
	case domain.TxnKindWithdrawal:
		return "Withdrawal"
	case domain.TxnKindPayment:
		return "Premium Upgrade"
	default:
		return txn.Description
	}
}

// resolveNames fans out one lookup per distinct user.
func (s *Service) resolveNames(ctx context.Context, txns []domain.Transaction) (map[int]string, error) {
	ids := make(map[int]struct{}, len(txns))
	for _, txn := range txns {
		ids[txn.UserID] = struct{}{}
	}

	var mu sync.Mutex
	names := make(map[int]string, len(ids))

	g, ctx := errgroup.WithContext(ctx)
	for id := range ids {
		g.Go(func() error {
			user, err := s.userRepo.FindByID(ctx, id)
			if err != nil {
				return err
			}
			name := "TaskPay User"
			if user != nil {
				name = user.Name
			}
			mu.Lock()
			names[id] = name
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		zap.L().Error("can't resolve feed user names: ", zap.Error(err))
		return nil, err
	}
	return names, nil
}

func (s *Service) fromCache(ctx context.Context) ([]Item, bool) {
	if s.cache == nil {
		return nil, false
	}
	raw, err := s.cache.Get(ctx, cacheKey).Bytes()
	if err != nil {
		if err != redis.Nil {
			zap.L().Warn("feed cache read failed", zap.Error(err))
		}
		return nil, false
	}
	var items []Item
	if err := json.Unmarshal(raw, &items); err != nil {
		zap.L().Warn("feed cache entry corrupt", zap.Error(err))
		return nil, false
	}
	return items, true
}

func (s *Service) toCache(ctx context.Context, items []Item) {
	if s.cache == nil {
		return
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, cacheKey, raw, cacheTTL).Err(); err != nil {
		zap.L().Warn("feed cache write failed", zap.Error(err))
	}
}
