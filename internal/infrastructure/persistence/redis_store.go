package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"card_tracker/internal/domain"
	"card_tracker/pkg/errcodes"
)

const (
	redisKeyPrefix       = "card-tracker:collection:"
	redisMaxUpdateTrials = 25
)

var errUpdateContention = errors.New("collections kept changing during update")

// RedisStore хранит каждую коллекцию одним JSON значением. Update использует
// оптимистичную транзакцию WATCH/MULTI и повторяется при конфликте.
type RedisStore struct {
	client redis.UniversalClient
	prefix string
}

func NewRedisStore(client redis.UniversalClient) *RedisStore {
	return &RedisStore{
		client: client,
		prefix: redisKeyPrefix,
	}
}

func (s *RedisStore) WithPrefix(prefix string) *RedisStore {
	s.prefix = prefix
	return s
}

func (s *RedisStore) key(collection string) string {
	return s.prefix + collection
}

func (s *RedisStore) Get(ctx context.Context, collection string) (Documents, error) {
	return s.get(ctx, s.client, collection)
}

func (s *RedisStore) Put(ctx context.Context, collection string, docs Documents) error {
	body, err := encodeDocuments(docs)
	if err != nil {
		return err
	}

	if err = s.client.Set(ctx, s.key(collection), body, 0).Err(); err != nil {
		return domain.WrapError(err, errcodes.StoreUnavailable, "failed to write collection")
	}

	return nil
}

func (s *RedisStore) Update(ctx context.Context, collections []string, fn func(map[string]Documents) error) error {
	keys := make([]string, 0, len(collections))
	for _, c := range collections {
		keys = append(keys, s.key(c))
	}

	var fnErr error

	txf := func(tx *redis.Tx) error {
		working := make(map[string]Documents, len(collections))

		for _, c := range collections {
			docs, err := s.get(ctx, tx, c)
			if err != nil {
				return err
			}

			working[c] = docs
		}

		if err := fn(working); err != nil {
			fnErr = err
			return err
		}

		bodies := make(map[string][]byte, len(collections))

		for _, c := range collections {
			body, err := encodeDocuments(working[c])
			if err != nil {
				return err
			}

			bodies[c] = body
		}

		_, err := tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			for c, body := range bodies {
				pipe.Set(ctx, s.key(c), body, 0)
			}

			return nil
		})

		return err //nolint:wrapcheck // redis.TxFailedErr is checked by the caller
	}

	for i := 0; i < redisMaxUpdateTrials; i++ {
		fnErr = nil

		err := s.client.Watch(ctx, txf, keys...)

		switch {
		case err == nil:
			return nil
		case fnErr != nil:
			return fnErr
		case errors.Is(err, redis.TxFailedErr):
			logger(ctx).Debug("redis update conflict, retrying", "attempt", i+1)
			continue
		case domain.IsAppError(err):
			return err
		default:
			return domain.WrapError(err, errcodes.StoreUnavailable, "failed to update collections")
		}
	}

	return domain.WrapError(errUpdateContention, errcodes.StoreUnavailable, "failed to update collections")
}

func (s *RedisStore) get(ctx context.Context, cmd redis.Cmdable, collection string) (Documents, error) {
	body, err := cmd.Get(ctx, s.key(collection)).Bytes()
	if errors.Is(err, redis.Nil) {
		return Documents{}, nil
	}

	if err != nil {
		return nil, domain.WrapError(err, errcodes.StoreUnavailable, "failed to read collection")
	}

	docs := Documents{}
	if err = json.Unmarshal(body, &docs); err != nil {
		return nil, domain.WrapError(err, errcodes.StoreCorrupted, "failed to decode collection")
	}

	return docs, nil
}

func encodeDocuments(docs Documents) ([]byte, error) {
	if docs == nil {
		docs = Documents{}
	}

	body, err := json.Marshal(docs)
	if err != nil {
		return nil, domain.WrapError(fmt.Errorf("json.Marshal: %w", err), errcodes.InternalServerError, "failed to encode collection")
	}

	return body, nil
}
