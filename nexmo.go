package main

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/CedricFinance/thought_catcher/model"
)

type nexmoIncomingSms struct {
	Type string `json:"type"`
	From string `json:"msisdn"`
	To   string `json:"to"`
	Text string `json:"text"`
}

// ParseNexmoSMS accepts both delivery methods of Nexmo inbound webhooks: a
// JSON body on POST and query parameters on GET.
func ParseNexmoSMS(r *http.Request) (model.SMS, error) {
	var incomingSms nexmoIncomingSms

	if r.Method == http.MethodGet {
		query := r.URL.Query()
		incomingSms = nexmoIncomingSms{
			Type: query.Get("type"),
			From: query.Get("msisdn"),
			To:   query.Get("to"),
			Text: query.Get("text"),
		}
	} else {
		err := json.NewDecoder(r.Body).Decode(&incomingSms)
		if err != nil {
			return model.SMS{}, fmt.Errorf("failed to parse request body: %w", err)
		}
	}

	message := model.SMS{
		Body: incomingSms.Text,
		From: incomingSms.From,
	}

	return message, nil
}
