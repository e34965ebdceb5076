package model

// Session is the questionnaire state echoed back by the conversational
// platform inside the askingquestion context on every turn.
type Session struct {
	CurrentQuestion int    `json:"currentQuestion" validate:"gte=0"`
	Answers         []bool `json:"answers"`
	ParticipantID   string `json:"participantId" validate:"required"`

	// Snapshots kept in groups mode so later turns need no datastore reads.
	Participant *Participant `json:"user,omitempty"`
	Groups      []Group      `json:"groups,omitempty"`
}
