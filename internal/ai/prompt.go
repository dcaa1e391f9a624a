package ai

import (
	"fmt"
	"strings"

	"github.com/shinyyama/message-board/internal/model"
)

const replyPrompt = `You are the moderator of a small public message board.
Write a short, friendly reply to the visitor message below.

Rules:

* Reply in the same language the visitor used.
* Two or three sentences at most. No greeting line, no signature.
* Do not promise anything you cannot know (dates, refunds, features).
* If earlier moderator replies exist, do not repeat them.
* Output only the reply text.`

const maxDraftRunes = 500

func buildReplyPrompt(msg *model.Message) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("Nickname: %s\nTitle: %s\nMessage:\n%s\n", msg.Nickname, msg.Title, msg.Content))
	if msg.HasReply() {
		b.WriteString("\nEarlier moderator replies:\n")
		for _, r := range msg.Reply {
			b.WriteString("- ")
			b.WriteString(r)
			b.WriteString("\n")
		}
	}
	return b.String()
}

// cleanDraft trims model output down to a single reply body.
func cleanDraft(text string) string {
	text = strings.TrimSpace(text)
	text = strings.Trim(text, "\"“”")
	text = strings.TrimSpace(text)
	runes := []rune(text)
	if len(runes) > maxDraftRunes {
		text = string(runes[:maxDraftRunes])
	}
	return text
}
