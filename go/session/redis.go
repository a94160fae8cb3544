package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	redigo "github.com/gomodule/redigo/redis"
	"github.com/pkg/errors"

	plog "github.com/kodekoding/slackmate/go/log"
)

const (
	defaultPrefixKey = "slackmate:"
	teamsKey         = "teams"
	currentTeamKey   = "current_team"
)

type (
	// Handler hands out redis connections, *redigo.Pool satisfies it
	Handler interface {
		Get() redigo.Conn
		GetContext(context.Context) (redigo.Conn, error)
	}

	RedisOptions func(*RedisCfg)

	RedisCfg struct {
		Address   string `yaml:"address"`
		Timeout   int    `yaml:"timeout"`
		MaxIdle   int    `yaml:"max_idle"`
		MaxActive int    `yaml:"max_active"`
		Password  string `yaml:"password"`
		Username  string `yaml:"username"`
		PrefixKey string `yaml:"prefix_key"`
		MaxRetry  int    `yaml:"max_retry"`
	}

	// Redis keeps teams in a redis hash so several processes share one session
	Redis struct {
		Pool      Handler
		prefixKey string
		maxRetry  int
		retryWait time.Duration
	}

	actualRedisActionFn func(conn redigo.Conn) (any, error)
)

// KEYS[1] teams hash, KEYS[2] current team pointer, ARGV[1] team id.
// Both reply 0 when the team is not stored.
var (
	selectTeamScript = redigo.NewScript(2, `
if redis.call('HEXISTS', KEYS[1], ARGV[1]) == 0 then return 0 end
redis.call('SET', KEYS[2], ARGV[1])
return 1`)

	logoutTeamScript = redigo.NewScript(2, `
if redis.call('HDEL', KEYS[1], ARGV[1]) == 0 then return 0 end
if redis.call('GET', KEYS[2]) == ARGV[1] then redis.call('DEL', KEYS[2]) end
return 1`)
)

func WithAddress(address string) RedisOptions {
	return func(cfg *RedisCfg) {
		cfg.Address = address
	}
}

func WithTimeout(timeout int) RedisOptions {
	return func(cfg *RedisCfg) {
		cfg.Timeout = timeout
	}
}

func WithMaxActive(maxActive int) RedisOptions {
	return func(cfg *RedisCfg) {
		cfg.MaxActive = maxActive
	}
}

func WithMaxIdle(maxIdle int) RedisOptions {
	return func(cfg *RedisCfg) {
		cfg.MaxIdle = maxIdle
	}
}

func WithMaxRetry(maxRetry int) RedisOptions {
	return func(cfg *RedisCfg) {
		cfg.MaxRetry = maxRetry
	}
}

func WithPassword(password string) RedisOptions {
	return func(cfg *RedisCfg) {
		cfg.Password = password
	}
}

func WithUsername(username string) RedisOptions {
	return func(cfg *RedisCfg) {
		cfg.Username = username
	}
}

func WithPrefixKey(prefix string) RedisOptions {
	return func(cfg *RedisCfg) {
		cfg.PrefixKey = prefix
	}
}

// NewPool builds a redigo pool from cfg
func NewPool(cfg RedisCfg) *redigo.Pool {
	return &redigo.Pool{
		MaxIdle:     cfg.MaxIdle,
		MaxActive:   cfg.MaxActive,
		IdleTimeout: time.Duration(cfg.Timeout) * time.Second,
		Dial: func() (redigo.Conn, error) {
			var dialOpts []redigo.DialOption

			if cfg.Password != "" {
				dialOpts = append(dialOpts, redigo.DialPassword(cfg.Password))
			}
			if cfg.Username != "" {
				dialOpts = append(dialOpts, redigo.DialUsername(cfg.Username))
			}

			return redigo.Dial("tcp", cfg.Address, dialOpts...)
		},
		TestOnBorrow: func(c redigo.Conn, t time.Time) error {
			_, err := redigo.String(c.Do("PING"))
			return err
		},
	}
}

// NewRedis wraps pool into a session store
func NewRedis(pool Handler, options ...RedisOptions) *Redis {
	var cfg RedisCfg
	for _, opt := range options {
		opt(&cfg)
	}

	prefixKey := cfg.PrefixKey
	if prefixKey == "" {
		prefixKey = defaultPrefixKey
	}
	maxRetry := cfg.MaxRetry
	if maxRetry == 0 {
		maxRetry = 10
	}

	return &Redis{
		Pool:      pool,
		prefixKey: prefixKey,
		maxRetry:  maxRetry,
		retryWait: time.Second,
	}
}

// Ping checks the connection
func (r *Redis) Ping(ctx context.Context) error {
	_, err := r.wrapWithRetries(ctx, func(conn redigo.Conn) (any, error) {
		return redigo.String(conn.Do("PING"))
	})
	return err
}

func (r *Redis) key(name string) string {
	return fmt.Sprintf("%s%s", r.prefixKey, name)
}

func (r *Redis) wrapWithRetries(ctx context.Context, actualFn actualRedisActionFn) (any, error) {
	log := plog.Ctx(ctx)
	for i := 0; i < r.maxRetry; i++ {
		conn, err := r.Pool.GetContext(ctx)
		if err != nil {
			if errors.Is(err, redigo.ErrPoolExhausted) {
				log.Warn().Int("counter", i+1).Msg("[SESSION][REDIS] Connection pool exhausted, retrying...")
				select {
				case <-ctx.Done():
					return nil, ctx.Err()
				case <-time.After(r.retryWait):
				}
				continue
			}
			return nil, errors.Wrap(err, "slackmate.go.session.redis.GetContext")
		}

		result, err := actualFn(conn)
		_ = conn.Close()
		return result, err
	}

	errFailedAfterRetry := fmt.Errorf("failed to get connection pool after %d retries", r.maxRetry)
	return nil, errors.Wrap(errFailedAfterRetry, "slackmate.go.session.redis.WrapRetry")
}

func (r *Redis) CurrentTeam(ctx context.Context) (string, error) {
	result, err := r.wrapWithRetries(ctx, func(conn redigo.Conn) (any, error) {
		return redigo.String(conn.Do("GET", r.key(currentTeamKey)))
	})
	if errors.Is(err, redigo.ErrNil) {
		return "", ErrNoCurrentTeam
	}
	if err != nil {
		return "", errors.Wrap(err, "slackmate.go.session.redis.CurrentTeam")
	}
	return result.(string), nil
}

func (r *Redis) Team(ctx context.Context, id string) (Team, error) {
	result, err := r.wrapWithRetries(ctx, func(conn redigo.Conn) (any, error) {
		return redigo.Bytes(conn.Do("HGET", r.key(teamsKey), id))
	})
	if errors.Is(err, redigo.ErrNil) {
		return Team{}, ErrTeamNotFound
	}
	if err != nil {
		return Team{}, errors.Wrap(err, "slackmate.go.session.redis.Team")
	}

	var team Team
	if err = json.Unmarshal(result.([]byte), &team); err != nil {
		return Team{}, errors.Wrap(err, "slackmate.go.session.redis.Team.Unmarshal")
	}
	return team, nil
}

// Add stores the team; it becomes current when nothing is selected yet
func (r *Redis) Add(ctx context.Context, team Team) error {
	value, err := json.Marshal(team)
	if err != nil {
		return errors.Wrap(err, "slackmate.go.session.redis.Add.Marshal")
	}

	_, err = r.wrapWithRetries(ctx, func(conn redigo.Conn) (any, error) {
		if _, err := conn.Do("HSET", r.key(teamsKey), team.ID, value); err != nil {
			return nil, err
		}
		return conn.Do("SET", r.key(currentTeamKey), team.ID, "NX")
	})
	if err != nil {
		return errors.Wrap(err, "slackmate.go.session.redis.Add")
	}
	return nil
}

func (r *Redis) SetCurrentTeam(ctx context.Context, id string) error {
	return r.runTeamScript(ctx, selectTeamScript, id, "slackmate.go.session.redis.SetCurrentTeam")
}

// Logout removes the team and clears the current pointer when it pointed at it
func (r *Redis) Logout(ctx context.Context, id string) error {
	return r.runTeamScript(ctx, logoutTeamScript, id, "slackmate.go.session.redis.Logout")
}

// runTeamScript runs script atomically against the teams hash and the current pointer
func (r *Redis) runTeamScript(ctx context.Context, script *redigo.Script, id, op string) error {
	result, err := r.wrapWithRetries(ctx, func(conn redigo.Conn) (any, error) {
		return redigo.Int(script.Do(conn, r.key(teamsKey), r.key(currentTeamKey), id))
	})
	if err != nil {
		return errors.Wrap(err, op)
	}
	if result.(int) == 0 {
		return ErrTeamNotFound
	}
	return nil
}
