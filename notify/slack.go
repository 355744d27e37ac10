// Package notify announces captured thoughts on Slack.
package notify

import (
	"context"
	"fmt"

	"github.com/CedricFinance/thought_catcher/messages"
	"github.com/CedricFinance/thought_catcher/model"
	"github.com/slack-go/slack"
)

// SlackNotifier posts to a Slack incoming webhook.
type SlackNotifier struct {
	webhookURL string
}

func NewSlackNotifier(webhookURL string) *SlackNotifier {
	return &SlackNotifier{webhookURL: webhookURL}
}

func (n *SlackNotifier) ThoughtCaptured(ctx context.Context, message model.SMS, thought model.Thought) error {
	msg := messages.ThoughtCapturedMessage(message, thought)

	err := slack.PostWebhookContext(ctx, n.webhookURL, &slack.WebhookMessage{
		Text:   messages.ThoughtCapturedText(thought),
		Blocks: &msg.Blocks,
	})
	if err != nil {
		return fmt.Errorf("failed to post slack notification: %w", err)
	}

	return nil
}
