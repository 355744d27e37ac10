package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/zeromicro/go-zero/core/logx"
)

const noMessageReply = "No message sent"

// ErrNoMessage is returned by a Handler when the inbound message has no text.
var ErrNoMessage = errors.New("no message sent")

// WebhookHandler adapts a provider webhook to a Handler working on decoded
// messages. Parser decodes the request, Handler processes the message and
// Reply renders its outcome for the provider.
type WebhookHandler[T any] struct {
	Parser  func(r *http.Request) (T, error)
	Handler func(ctx context.Context, message T) error
	Reply   func(w http.ResponseWriter, err error)
}

func (h WebhookHandler[T]) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	message, err := h.Parser(r)
	if err != nil {
		logx.WithContext(ctx).Errorf("failed to parse webhook: %v", err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	err = h.Handler(ctx, message)
	if errors.Is(err, ErrNoMessage) {
		http.Error(w, noMessageReply, http.StatusBadRequest)
		return
	}

	reply := h.Reply
	if reply == nil {
		reply = PlainReply
	}
	reply(w, err)
}

// PlainReply answers with an empty body on success and "Error: <message>"
// otherwise. Both are sent with a 200 so the provider does not retry.
func PlainReply(w http.ResponseWriter, err error) {
	if err == nil {
		w.WriteHeader(http.StatusOK)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, errorReply(err))
}

func errorReply(err error) string {
	return fmt.Sprintf("Error: %s", err.Error())
}
