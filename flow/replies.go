package flow

import (
	"EventWebhook/model"
	"fmt"
)

const (
	welcomeText       = "Welcome %s, we would like to ask you a few questions."
	nothingToAskText  = "There is nothing to ask you right now."
	rejectionText     = "Sorry! It seems like you're not one of the participant."
	detailsText       = "Here are all the details of event:"
	thankYouText      = "Thank you"
	startOverText     = "Please send us your ticket number to get started."
	notUnderstoodText = "Sorry, I didn't get that."
	fallbackText      = "Sorry, something went wrong. Please try again later."
)

var answerOptions = []string{"Yes", "No"}

func ask(question string) model.Message {
	return model.QuickReplyMessage(question, answerOptions...)
}

func welcome(name string) model.Message {
	return model.TextMessage(fmt.Sprintf(welcomeText, name))
}

func reply(msgs ...model.Message) model.WebhookResponse {
	return model.WebhookResponse{FulfillmentMessages: msgs}
}

// Rejection is the reply to an unknown participant or a wrong ticket.
func Rejection() model.WebhookResponse {
	return reply(model.TextMessage(rejectionText))
}

// StartOver asks the user to begin again. A non-empty session also drops
// whatever questionnaire context the platform still holds for it.
func StartOver(session string) model.WebhookResponse {
	r := reply(model.TextMessage(startOverText))
	if session != "" {
		r.OutputContexts = []model.Context{EndSession(session)}
	}
	return r
}

func NotUnderstood() model.WebhookResponse {
	return reply(model.TextMessage(notUnderstoodText))
}

// Fallback is returned when an external call fails.
func Fallback() model.WebhookResponse {
	return reply(model.TextMessage(fallbackText))
}
