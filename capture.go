package main

import (
	"context"
	"strings"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/zeromicro/go-zero/core/logx"

	"github.com/CedricFinance/thought_catcher/model"
	"github.com/CedricFinance/thought_catcher/parser"
)

type ThoughtWriter interface {
	CreateThought(ctx context.Context, thought model.Thought) error
}

type ThoughtNotifier interface {
	ThoughtCaptured(ctx context.Context, message model.SMS, thought model.Thought) error
}

// Capture turns inbound SMS into thoughts written to Writer. Notifier is
// optional and only told about thoughts that were written.
type Capture struct {
	Parser   *parser.Parser
	Writer   ThoughtWriter
	Notifier ThoughtNotifier
}

func (c *Capture) Handle(ctx context.Context, message model.SMS) error {
	text := strings.TrimSpace(message.Body)
	if text == "" {
		return ErrNoMessage
	}

	logger := logx.WithContext(ctx).WithFields(
		logx.Field("request_id", requestID(ctx)),
		logx.Field("from", message.From),
	)

	thought := c.Parser.Parse(text)

	if err := c.Writer.CreateThought(ctx, thought); err != nil {
		logger.Errorw("failed to write thought", logx.Field("error", err.Error()))
		return err
	}

	logger.Infow("thought captured",
		logx.Field("name", thought.Name),
		logx.Field("tags", thought.Tags),
		logx.Field("status", thought.Status),
		logx.Field("due_date", thought.DueDate),
	)

	if c.Notifier != nil {
		if err := c.Notifier.ThoughtCaptured(ctx, message, thought); err != nil {
			logger.Errorw("failed to notify", logx.Field("error", err.Error()))
		}
	}

	return nil
}

func requestID(ctx context.Context) string {
	if id := middleware.GetReqID(ctx); id != "" {
		return id
	}
	return uuid.NewString()
}
