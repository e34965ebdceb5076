package model

import (
	"encoding/json"
	"strconv"
)

// WebhookRequest is the fulfillment request sent by the conversational
// platform (Dialogflow ES webhook format).
type WebhookRequest struct {
	ResponseID                  string          `json:"responseId,omitempty"`
	Session                     string          `json:"session" validate:"required"`
	QueryResult                 QueryResult     `json:"queryResult"`
	OriginalDetectIntentRequest OriginalRequest `json:"originalDetectIntentRequest"`
}

type QueryResult struct {
	QueryText      string         `json:"queryText,omitempty"`
	Parameters     map[string]any `json:"parameters,omitempty"`
	Intent         QueryIntent    `json:"intent"`
	OutputContexts []Context      `json:"outputContexts,omitempty"`
}

type QueryIntent struct {
	Name        string `json:"name,omitempty"`
	DisplayName string `json:"displayName"`
}

// OriginalRequest carries the payload of the messaging platform that
// delivered the user's message.
type OriginalRequest struct {
	Source  string  `json:"source,omitempty"`
	Payload Payload `json:"payload"`
}

type Payload struct {
	Data PayloadData `json:"data"`
}

// PayloadData holds the sender of either a Messenger or a Telegram update.
type PayloadData struct {
	Sender *MessengerSender `json:"sender,omitempty"`
	From   *TelegramSender  `json:"from,omitempty"`
}

type MessengerSender struct {
	ID string `json:"id"`
}

type TelegramSender struct {
	ID       int64  `json:"id"`
	Username string `json:"username,omitempty"`
}

// Context is a named conversational context. LifespanCount is always
// serialised: a zero lifespan is how a context is terminated.
type Context struct {
	Name          string          `json:"name"`
	LifespanCount int             `json:"lifespanCount"`
	Parameters    json.RawMessage `json:"parameters,omitempty"`
}

// WebhookResponse is the fulfillment reply returned to the platform.
type WebhookResponse struct {
	FulfillmentMessages []Message `json:"fulfillmentMessages"`
	OutputContexts      []Context `json:"outputContexts,omitempty"`
}

// Message is one fulfillment message; exactly one field is set.
type Message struct {
	Text         *Text         `json:"text,omitempty"`
	QuickReplies *QuickReplies `json:"quickReplies,omitempty"`
}

type Text struct {
	Text []string `json:"text"`
}

type QuickReplies struct {
	Title        string   `json:"title"`
	QuickReplies []string `json:"quickReplies"`
}

func TextMessage(text ...string) Message {
	return Message{Text: &Text{Text: text}}
}

func QuickReplyMessage(title string, options ...string) Message {
	return Message{QuickReplies: &QuickReplies{Title: title, QuickReplies: options}}
}

// SenderID returns the platform id of the user who sent the message.
func (r WebhookRequest) SenderID() (string, error) {
	data := r.OriginalDetectIntentRequest.Payload.Data
	if data.Sender != nil && data.Sender.ID != "" {
		return data.Sender.ID, nil
	}
	if data.From != nil && data.From.ID != 0 {
		return strconv.FormatInt(data.From.ID, 10), nil
	}
	return "", ErrMissingSender
}

// TicketClaim returns the ticket number the user typed, normalised.
func (q QueryResult) TicketClaim() string {
	return NormalizeTicket(q.Parameters["number"])
}
