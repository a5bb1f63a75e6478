package cron

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"vacancy/config"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

const TypeCheckInDigest = "checkin:digest"

// DigestSender pushes the check-in list to a chat.
type DigestSender interface {
	SendCheckInDigest(ctx context.Context, chatID int64) error
}

// DigestPayload is the body of a TypeCheckInDigest task.
type DigestPayload struct {
	ChatID int64 `json:"chatId"`
}

func NewDigestTask(chatID int64) (*asynq.Task, error) {
	payload, err := json.Marshal(DigestPayload{ChatID: chatID})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeCheckInDigest, payload, asynq.MaxRetry(3), asynq.Timeout(time.Minute)), nil
}

// HandleDigestTask sends the digest described by the task payload.
func HandleDigestTask(sender DigestSender, logger *zap.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p DigestPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			logger.Error("Invalid digest payload", zap.Error(err))
			return fmt.Errorf("invalid digest payload: %v: %w", err, asynq.SkipRetry)
		}
		if p.ChatID == 0 {
			logger.Warn("Digest task without chat id, skipping")
			return nil
		}

		logger.Info("Sending check-in digest", zap.Int64("chatId", p.ChatID))
		if err := sender.SendCheckInDigest(ctx, p.ChatID); err != nil {
			logger.Error("Failed to send check-in digest", zap.Int64("chatId", p.ChatID), zap.Error(err))
			return err
		}
		return nil
	}
}

// DigestWorker enqueues the daily check-in digest on a cron schedule and
// processes it from the Redis-backed queue.
type DigestWorker struct {
	server    *asynq.Server
	scheduler *asynq.Scheduler
	mux       *asynq.ServeMux
	logger    *zap.Logger
}

func NewDigestWorker(cfg *config.Config, sender DigestSender, logger *zap.Logger) (*DigestWorker, error) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisQueueDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 2,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeCheckInDigest, HandleDigestTask(sender, logger))

	scheduler := asynq.NewScheduler(redisOpts, &asynq.SchedulerOpts{Location: cfg.Location()})
	task, err := NewDigestTask(cfg.DigestChatID)
	if err != nil {
		return nil, err
	}
	entryID, err := scheduler.Register(cfg.DigestCron, task)
	if err != nil {
		return nil, fmt.Errorf("invalid digest schedule %q: %w", cfg.DigestCron, err)
	}
	logger.Info("Check-in digest scheduled", zap.String("cron", cfg.DigestCron), zap.String("entryId", entryID))

	return &DigestWorker{server: srv, scheduler: scheduler, mux: mux, logger: logger}, nil
}

// Start runs the worker and the scheduler in the background, retrying the
// worker with a growing delay while Redis is unreachable.
func (w *DigestWorker) Start() {
	go func() {
		w.logger.Info("Starting digest worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			err := w.server.Start(w.mux)
			if err == nil {
				break
			}
			w.logger.Warn("Digest worker failed to start",
				zap.Int("attempt", attempts), zap.Int("maxAttempts", maxAttempts), zap.Error(err))
			if attempts == maxAttempts {
				w.logger.Error("Digest worker gave up after max retry attempts")
				return
			}
			time.Sleep(time.Duration(attempts*2) * time.Second)
		}

		if err := w.scheduler.Start(); err != nil {
			w.logger.Error("Digest scheduler failed to start", zap.Error(err))
		}
	}()
}

func (w *DigestWorker) Shutdown() {
	w.scheduler.Shutdown()
	w.server.Shutdown()
}
