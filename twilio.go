package main

import (
	"fmt"
	"io"
	"net/http"

	"github.com/CedricFinance/thought_catcher/model"
	"github.com/twilio/twilio-go/twiml"
	"github.com/zeromicro/go-zero/core/logx"
)

func ParseTwilioSMS(r *http.Request) (model.SMS, error) {
	err := r.ParseForm()
	if err != nil {
		return model.SMS{}, fmt.Errorf("failed to parse request form data: %w", err)
	}

	message := model.SMS{
		Body: r.FormValue("Body"),
		From: r.FormValue("From"),
	}

	return message, nil
}

// TwimlReply answers with an empty TwiML response on success, or with a
// message sending "Error: <message>" back to the sender.
func TwimlReply(w http.ResponseWriter, err error) {
	var verbs []twiml.Element
	if err != nil {
		verbs = append(verbs, &twiml.MessagingMessage{Body: errorReply(err)})
	}

	body, twimlErr := twiml.Messages(verbs)
	if twimlErr != nil {
		logx.Errorf("failed to render TwiML: %v", twimlErr)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/xml")
	w.WriteHeader(http.StatusOK)
	io.WriteString(w, body)
}
