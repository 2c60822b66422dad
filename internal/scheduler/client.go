package scheduler

import (
	"context"
	"crypto/tls"
	"fmt"
	"time"

	"leadrouting_backend/platform/config"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"
)

const taskTimeout = 2 * time.Minute

type Client struct {
	client *asynq.Client
	queue  string
}

// DispatchScheduler queues notification fan-outs for the worker.
type DispatchScheduler interface {
	EnqueueNotificationDispatch(ctx context.Context, payload NotificationDispatchPayload) error
}

// CallbackScheduler queues agent call-backs for the worker.
type CallbackScheduler interface {
	EnqueueAgentCallback(ctx context.Context, payload AgentCallbackPayload) error
}

func NewClient(cfg config.SchedulerConfig) (*Client, error) {
	redisURL := cfg.GetRedisURL()
	if redisURL == "" {
		return nil, fmt.Errorf("redis url not configured")
	}

	opt, err := redisClientOpt(redisURL, cfg.GetRedisTLSInsecure())
	if err != nil {
		return nil, err
	}

	return &Client{
		client: asynq.NewClient(opt),
		queue:  queueName(cfg),
	}, nil
}

func (c *Client) Close() error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Close()
}

// EnqueueNotificationDispatch queues a fan-out. Dispatch never retries, so
// the task runs at most once.
func (c *Client) EnqueueNotificationDispatch(ctx context.Context, payload NotificationDispatchPayload) error {
	if c == nil || c.client == nil {
		return fmt.Errorf("scheduler client not configured")
	}

	task, err := NewNotificationDispatchTask(payload)
	if err != nil {
		return err
	}

	_, err = c.client.EnqueueContext(ctx, task, asynq.Queue(c.queue), asynq.MaxRetry(0), asynq.Timeout(taskTimeout))
	return err
}

// EnqueueAgentCallback queues a call to the agent's phone.
func (c *Client) EnqueueAgentCallback(ctx context.Context, payload AgentCallbackPayload) error {
	if c == nil || c.client == nil {
		return fmt.Errorf("scheduler client not configured")
	}

	task, err := NewAgentCallbackTask(payload)
	if err != nil {
		return err
	}

	_, err = c.client.EnqueueContext(ctx, task, asynq.Queue(c.queue), asynq.MaxRetry(0), asynq.Timeout(taskTimeout))
	return err
}

func queueName(cfg config.SchedulerConfig) string {
	if queue := cfg.GetAsynqQueueName(); queue != "" {
		return queue
	}
	return "default"
}

func redisClientOpt(redisURL string, tlsInsecure bool) (asynq.RedisClientOpt, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return asynq.RedisClientOpt{}, err
	}

	var tlsConfig *tls.Config
	if opt.TLSConfig != nil {
		clone := opt.TLSConfig.Clone()
		if tlsInsecure {
			clone.InsecureSkipVerify = true
		}
		tlsConfig = clone
	} else if tlsInsecure {
		tlsConfig = &tls.Config{InsecureSkipVerify: true}
	}

	return asynq.RedisClientOpt{
		Addr:      opt.Addr,
		Password:  opt.Password,
		DB:        opt.DB,
		TLSConfig: tlsConfig,
	}, nil
}

var (
	_ DispatchScheduler = (*Client)(nil)
	_ CallbackScheduler = (*Client)(nil)
)
