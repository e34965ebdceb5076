// Package flow runs the yes/no questionnaire. All state lives in the
// askingquestion context that the platform echoes back on every turn, so
// each operation is a pure transition from (session, input) to
// (reply, next session).
package flow

import (
	"EventWebhook/model"
	"errors"
	"fmt"

	"github.com/samber/lo"
)

// Mode selects where the questions come from.
type Mode string

const (
	// ModeGroups asks one question per group the participant is enrolled in.
	ModeGroups Mode = "groups"
	// ModeStatic asks a fixed list of questions.
	ModeStatic Mode = "static"
)

// DefaultLifespan is the number of turns a live questionnaire context survives.
const DefaultLifespan = 10

// ErrGroupMismatch is returned by Start when groups and participation differ in length.
var ErrGroupMismatch = errors.New("groups do not match participation")

// Engine advances questionnaire sessions for one question mode.
type Engine struct {
	mode      Mode
	questions []string
	lifespan  int
}

// Option configures an Engine.
type Option func(*Engine)

// WithLifespan sets the lifespan of live questionnaire contexts. Non-positive values are ignored.
func WithLifespan(turns int) Option {
	return func(e *Engine) {
		if turns > 0 {
			e.lifespan = turns
		}
	}
}

// NewEngine creates an engine. questions is only used in ModeStatic.
func NewEngine(mode Mode, questions []string, opts ...Option) *Engine {
	e := &Engine{
		mode:      mode,
		questions: questions,
		lifespan:  DefaultLifespan,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Engine) Mode() Mode {
	return e.mode
}

// Outcome is the result of one Advance step. Session is the state carried
// into the next turn and is nil once the questionnaire is finished, in which
// case Completion holds what has to be persisted.
type Outcome struct {
	Response   model.WebhookResponse
	Session    *model.Session
	Completion *Completion
}

// Completion is the final record of a finished questionnaire.
type Completion struct {
	ParticipantID string
	Answers       []bool
	// Participation is nil in ModeStatic.
	Participation []model.Participation
}

// Questions returns the question prompts for s, in order.
func (e *Engine) Questions(s model.Session) []string {
	if e.mode == ModeStatic {
		return e.questions
	}
	return lo.Map(s.Groups, func(g model.Group, _ int) string {
		return fmt.Sprintf("Would you join %s?", g.GroupName)
	})
}

// Admits reports whether claim is the ticket stored for p.
func (e *Engine) Admits(p *model.Participant, claim string) bool {
	return p != nil && claim != "" && p.Ticket() == claim
}

// Start opens a questionnaire for p if claim matches its ticket. groups must
// be aligned with p.Participation in ModeGroups and is ignored otherwise.
func (e *Engine) Start(session, name, claim string, p *model.Participant, groups []model.Group) (model.WebhookResponse, error) {
	if !e.Admits(p, claim) {
		return Rejection(), nil
	}

	s := model.Session{
		CurrentQuestion: 0,
		Answers:         []bool{},
		ParticipantID:   p.ID,
	}
	if e.mode == ModeGroups {
		if len(groups) != len(p.Participation) {
			return model.WebhookResponse{}, fmt.Errorf("%w: %d groups for %d participations",
				ErrGroupMismatch, len(groups), len(p.Participation))
		}
		snapshot := *p
		s.Participant = &snapshot
		s.Groups = groups
	}

	questions := e.Questions(s)
	if len(questions) == 0 {
		return reply(welcome(name), model.TextMessage(nothingToAskText)), nil
	}

	c, err := EncodeSession(session, s, e.lifespan)
	if err != nil {
		return model.WebhookResponse{}, err
	}
	r := reply(welcome(name), ask(questions[0]))
	r.OutputContexts = []model.Context{c}
	return r, nil
}

// Advance records answer for the current question and either asks the next
// one or finishes the questionnaire.
func (e *Engine) Advance(session string, s model.Session, answer bool) (Outcome, error) {
	if e.mode == ModeGroups && s.Participant == nil {
		return Outcome{}, fmt.Errorf("%w: no participant snapshot", ErrCorruptSession)
	}
	questions := e.Questions(s)
	i := s.CurrentQuestion
	if i < 0 || i >= len(questions) || len(s.Answers) != i {
		return Outcome{}, fmt.Errorf("%w: question %d of %d with %d answers",
			ErrCorruptSession, i, len(questions), len(s.Answers))
	}

	answers := make([]bool, i+1)
	copy(answers, s.Answers)
	answers[i] = answer

	next := i + 1
	if next < len(questions) {
		s.CurrentQuestion = next
		s.Answers = answers
		c, err := EncodeSession(session, s, e.lifespan)
		if err != nil {
			return Outcome{}, err
		}
		r := reply(ask(questions[next]))
		r.OutputContexts = []model.Context{c}
		return Outcome{Response: r, Session: &s}, nil
	}

	completion := e.complete(s, answers)
	var r model.WebhookResponse
	if e.mode == ModeGroups {
		r = reply(Summary(s.Groups, answers)...)
	} else {
		r = reply(model.TextMessage(thankYouText))
	}
	r.OutputContexts = []model.Context{EndSession(session)}
	return Outcome{Response: r, Completion: &completion}, nil
}

func (e *Engine) complete(s model.Session, answers []bool) Completion {
	c := Completion{
		ParticipantID: s.ParticipantID,
		Answers:       answers,
	}
	if e.mode == ModeGroups && s.Participant != nil {
		c.Participation = lo.Map(s.Participant.Participation, func(p model.Participation, i int) model.Participation {
			p.Attend = answers[i]
			return p
		})
	}
	return c
}
