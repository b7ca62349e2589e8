package repository

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spec-kit/travel-support-desk/internal/domain"
)

const (
	ticketDetailKeyPrefix = "ticket:detail:"
	ticketListKey         = "ticket:list:all"
	ticketListGenKey      = "ticket:list:gen"

	// Cache entries are hashes: "v" holds the version, "d" the JSON payload.
	cacheVersionField = "v"
	cacheDataField    = "d"

	defaultTicketCacheTTL = 5 * time.Minute
)

// storeIfNewer writes a detail entry unless the cached one has a higher
// version (UpdatedAt in microseconds).
var storeIfNewer = redis.NewScript(`
local current = redis.call('HGET', KEYS[1], 'v')
if current and tonumber(current) > tonumber(ARGV[1]) then
  return 0
end
redis.call('HSET', KEYS[1], 'v', ARGV[1], 'd', ARGV[2])
redis.call('PEXPIRE', KEYS[1], ARGV[3])
return 1
`)

// storeIfCurrent writes the list entry only if no write happened since the
// generation in ARGV[1] was read.
var storeIfCurrent = redis.NewScript(`
local gen = redis.call('GET', KEYS[2]) or '0'
if gen ~= ARGV[1] then
  return 0
end
redis.call('HSET', KEYS[1], 'v', ARGV[1], 'd', ARGV[2])
redis.call('PEXPIRE', KEYS[1], ARGV[3])
return 1
`)

// CachedTicketRepository wraps a TicketRepository with a Redis read-through
// cache. Detail entries are versioned by UpdatedAt so a slow reader can never
// replace a newer record; the list entry is tied to a generation counter that
// every write bumps. Cache failures fall back to the wrapped repository.
type CachedTicketRepository struct {
	repo   TicketRepository
	cache  *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewCachedTicketRepository creates a CachedTicketRepository.
func NewCachedTicketRepository(repo TicketRepository, cache *redis.Client, ttl time.Duration, logger *zap.Logger) *CachedTicketRepository {
	if ttl <= 0 {
		ttl = defaultTicketCacheTTL
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CachedTicketRepository{repo: repo, cache: cache, ttl: ttl, logger: logger}
}

func (r *CachedTicketRepository) Create(ctx context.Context, ticket *domain.Ticket) error {
	if err := r.repo.Create(ctx, ticket); err != nil {
		return err
	}
	r.bumpListGeneration(ctx)
	return nil
}

func (r *CachedTicketRepository) GetByID(ctx context.Context, id string) (*domain.Ticket, error) {
	key := ticketDetailKeyPrefix + id
	var cached domain.Ticket
	if r.loadDetail(ctx, key, &cached) {
		return &cached, nil
	}

	ticket, err := r.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	r.storeDetail(ctx, ticket)
	return ticket, nil
}

func (r *CachedTicketRepository) ListAll(ctx context.Context) ([]domain.Ticket, error) {
	gen, cached, ok := r.loadList(ctx)
	if ok {
		return cached, nil
	}

	tickets, err := r.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	if gen != "" {
		r.storeList(ctx, gen, tickets)
	}
	return tickets, nil
}

func (r *CachedTicketRepository) UpdateStatus(ctx context.Context, id string, status domain.TicketStatus) (*domain.Ticket, error) {
	ticket, err := r.repo.UpdateStatus(ctx, id, status)
	if err != nil {
		return nil, err
	}
	r.storeDetail(ctx, ticket)
	r.bumpListGeneration(ctx)
	return ticket, nil
}

func (r *CachedTicketRepository) loadDetail(ctx context.Context, key string, dst *domain.Ticket) bool {
	raw, err := r.cache.HGet(ctx, key, cacheDataField).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			r.logger.Warn("ticket cache read failed", zap.String("key", key), zap.Error(err))
		}
		return false
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		r.logger.Warn("ticket cache entry corrupt", zap.String("key", key), zap.Error(err))
		return false
	}
	return true
}

func (r *CachedTicketRepository) storeDetail(ctx context.Context, ticket *domain.Ticket) {
	key := ticketDetailKeyPrefix + ticket.ID
	raw, err := json.Marshal(ticket)
	if err != nil {
		return
	}
	version := strconv.FormatInt(ticket.UpdatedAt.UnixMicro(), 10)
	if err := storeIfNewer.Run(ctx, r.cache, []string{key}, version, raw, r.ttl.Milliseconds()).Err(); err != nil {
		r.logger.Warn("ticket cache write failed", zap.String("key", key), zap.Error(err))
	}
}

// loadList returns the current generation and, when the cached list belongs
// to it, the list itself. An empty generation means the cache is unreachable.
func (r *CachedTicketRepository) loadList(ctx context.Context) (string, []domain.Ticket, bool) {
	var genCmd *redis.StringCmd
	var entryCmd *redis.SliceCmd
	_, err := r.cache.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		genCmd = pipe.Get(ctx, ticketListGenKey)
		entryCmd = pipe.HMGet(ctx, ticketListKey, cacheVersionField, cacheDataField)
		return nil
	})
	if err != nil && !errors.Is(err, redis.Nil) {
		r.logger.Warn("ticket cache read failed", zap.String("key", ticketListKey), zap.Error(err))
		return "", nil, false
	}

	gen, err := genCmd.Result()
	if errors.Is(err, redis.Nil) {
		gen = "0"
	} else if err != nil {
		return "", nil, false
	}

	entry := entryCmd.Val()
	if len(entry) != 2 {
		return gen, nil, false
	}
	version, _ := entry[0].(string)
	data, _ := entry[1].(string)
	if version != gen || data == "" {
		return gen, nil, false
	}
	var tickets []domain.Ticket
	if err := json.Unmarshal([]byte(data), &tickets); err != nil {
		r.logger.Warn("ticket cache entry corrupt", zap.String("key", ticketListKey), zap.Error(err))
		return gen, nil, false
	}
	return gen, tickets, true
}

func (r *CachedTicketRepository) storeList(ctx context.Context, gen string, tickets []domain.Ticket) {
	raw, err := json.Marshal(tickets)
	if err != nil {
		return
	}
	keys := []string{ticketListKey, ticketListGenKey}
	if err := storeIfCurrent.Run(ctx, r.cache, keys, gen, raw, r.ttl.Milliseconds()).Err(); err != nil {
		r.logger.Warn("ticket cache write failed", zap.String("key", ticketListKey), zap.Error(err))
	}
}

func (r *CachedTicketRepository) bumpListGeneration(ctx context.Context) {
	if err := r.cache.Incr(ctx, ticketListGenKey).Err(); err != nil {
		r.logger.Warn("ticket cache invalidation failed", zap.String("key", ticketListGenKey), zap.Error(err))
	}
}
