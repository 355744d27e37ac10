package messages

import (
	"fmt"
	"strings"

	"github.com/CedricFinance/thought_catcher/model"
	"github.com/slack-go/slack"
)

func ThoughtCapturedMessage(message model.SMS, thought model.Thought) slack.Message {
	blocks := []slack.Block{thoughtMessageBlock(message, thought)}

	if details := thoughtDetails(thought); len(details) > 0 {
		blocks = append(blocks, slack.NewContextBlock(
			"details",
			slack.NewTextBlockObject(
				slack.MarkdownType,
				strings.Join(details, " | "),
				false,
				false,
			),
		))
	}

	return slack.NewBlockMessage(blocks...)
}

// ThoughtCapturedText is the plain text fallback shown in notifications.
func ThoughtCapturedText(thought model.Thought) string {
	if thought.Name == "" {
		return "New thought captured"
	}
	return fmt.Sprintf("New thought: %s", thought.Name)
}

func thoughtMessageBlock(message model.SMS, thought model.Thought) *slack.SectionBlock {
	name := thought.Name
	if name == "" {
		name = "_untitled_"
	}

	return slack.NewSectionBlock(
		slack.NewTextBlockObject(
			slack.MarkdownType,
			fmt.Sprintf(":memo: *New thought from:* %s\n%s", message.From, name),
			false,
			false,
		),
		nil,
		nil,
	)
}

func thoughtDetails(thought model.Thought) []string {
	var details []string

	if len(thought.Tags) > 0 {
		details = append(details, fmt.Sprintf(":label: %s", generateTagList(thought.Tags)))
	}

	if thought.Status != "" {
		details = append(details, fmt.Sprintf("*Status*: %s", thought.Status))
	}

	if thought.HasDueDate() {
		details = append(details, fmt.Sprintf(":date: %s", thought.DueDate))
	}

	return details
}

func generateTagList(tags []string) string {
	references := make([]string, len(tags))

	for i, tag := range tags {
		references[i] = fmt.Sprintf("`#%s`", tag)
	}

	return strings.Join(references, " ")
}
