// Package worker drains the email job queue and runs periodic maintenance.
package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/hamishnash1-tech/City-Uni-Club/internal/models"
	"github.com/hamishnash1-tech/City-Uni-Club/pkg/mailer"
	"github.com/hamishnash1-tech/City-Uni-Club/pkg/queue"
)

// Sender delivers a rendered email. *mailer.SES implements it.
type Sender interface {
	Send(ctx context.Context, msg mailer.Message) error
}

// JobQueue is the queue surface the processor uses. *queue.Queue implements it.
type JobQueue interface {
	Dequeue(ctx context.Context) (*queue.Job, error)
	Retry(ctx context.Context, job *queue.Job) error
}

// DeliveryLog records delivery attempts. *emaillogs.Repository implements it.
type DeliveryLog interface {
	Record(ctx context.Context, l *models.EmailLog) error
}

// EmailProcessor renders and sends queued email jobs.
type EmailProcessor struct {
	sender  Sender
	queue   JobQueue
	log     DeliveryLog
	baseURL string
	backoff time.Duration
	logger  *zap.Logger
}

// SetDeliveryLog makes the processor record every attempt.
func (p *EmailProcessor) SetDeliveryLog(l DeliveryLog) { p.log = l }

// NewEmailProcessor creates an email processor. baseURL is the web app origin
// used in password reset links.
func NewEmailProcessor(sender Sender, q JobQueue, baseURL string, logger *zap.Logger) *EmailProcessor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EmailProcessor{sender: sender, queue: q, baseURL: baseURL, backoff: queue.RetryBackoff, logger: logger}
}

// Process executes one email job.
func (p *EmailProcessor) Process(ctx context.Context, job *queue.Job) error {
	var payload queue.EmailPayload
	if err := json.Unmarshal(job.Payload, &payload); err != nil {
		return fmt.Errorf("unmarshal payload: %w", err)
	}
	if payload.RecipientEmail == "" {
		return fmt.Errorf("job %s has no recipient", job.ID)
	}

	var (
		msg mailer.Message
		err error
	)
	switch job.Type {
	case queue.JobTypePasswordReset:
		msg, err = renderPasswordReset(p.baseURL, payload)
	case queue.JobTypeLoiSubmitted:
		msg, err = renderLoiSubmitted(payload)
	default:
		return fmt.Errorf("unknown job type: %s", job.Type)
	}
	if err != nil {
		p.record(ctx, job, payload.RecipientEmail, "", err)
		return err
	}
	if err := p.sender.Send(ctx, msg); err != nil {
		p.record(ctx, job, msg.To, msg.Subject, err)
		return fmt.Errorf("send: %w", err)
	}
	p.record(ctx, job, msg.To, msg.Subject, nil)
	p.logger.Info("email job completed", zap.String("job_id", job.ID), zap.String("type", string(job.Type)))
	return nil
}

func (p *EmailProcessor) record(ctx context.Context, job *queue.Job, to, subject string, sendErr error) {
	if p.log == nil {
		return
	}
	entry := &models.EmailLog{
		JobID:          job.ID,
		EmailType:      string(job.Type),
		RecipientEmail: to,
		Status:         models.EmailSent,
		Attempt:        job.Attempt,
	}
	if subject != "" {
		entry.Subject = &subject
	}
	if e, ok := p.sender.(interface{ Enabled() bool }); ok && !e.Enabled() {
		entry.Status = models.EmailSkipped
	}
	if sendErr != nil {
		msg := sendErr.Error()
		entry.Status = models.EmailFailed
		entry.ErrorMessage = &msg
	}
	if err := p.log.Record(ctx, entry); err != nil {
		p.logger.Warn("record email log failed", zap.String("job_id", job.ID), zap.Error(err))
	}
}

// Run starts the worker loop: dequeue, process, retry on error.
func (p *EmailProcessor) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			p.logger.Info("email worker stopping")
			return
		default:
		}

		job, err := p.queue.Dequeue(ctx)
		if err != nil {
			if ctx.Err() != nil {
				continue
			}
			p.logger.Warn("dequeue error", zap.Error(err))
			p.sleep(ctx)
			continue
		}
		if job == nil {
			continue
		}

		p.logger.Debug("processing job", zap.String("job_id", job.ID), zap.String("type", string(job.Type)))
		if err := p.Process(ctx, job); err != nil {
			p.logger.Error("job failed", zap.String("job_id", job.ID), zap.Int("attempt", job.Attempt), zap.Error(err))
			if reErr := p.queue.Retry(ctx, job); reErr != nil {
				p.logger.Error("retry enqueue failed", zap.Error(reErr))
			}
			p.sleep(ctx)
		}
	}
}

func (p *EmailProcessor) sleep(ctx context.Context) {
	t := time.NewTimer(p.backoff)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}
