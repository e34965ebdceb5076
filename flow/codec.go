package flow

import (
	"EventWebhook/model"
	"encoding/json"
	"errors"
	"fmt"
	"math"

	"github.com/go-playground/validator/v10"
	"github.com/samber/lo"
)

const contextSuffix = "/contexts/askingquestion"

var (
	ErrNoSession      = errors.New("no askingquestion context in request")
	ErrCorruptSession = errors.New("askingquestion context is corrupt")
)

var validate = validator.New()

// ContextName returns the name of the questionnaire context for a session.
func ContextName(session string) string {
	return session + contextSuffix
}

// wireSession is model.Session as it comes back from the platform, which
// stores parameters as a protobuf Struct and may echo integers as doubles.
type wireSession struct {
	CurrentQuestion *float64           `json:"currentQuestion"`
	Answers         []bool             `json:"answers"`
	ParticipantID   string             `json:"participantId"`
	Participant     *model.Participant `json:"user"`
	Groups          []model.Group      `json:"groups"`
}

// EncodeSession builds the live questionnaire context carrying s. The
// platform replaces contexts wholesale, so every field is always written.
func EncodeSession(session string, s model.Session, lifespan int) (model.Context, error) {
	if s.Answers == nil {
		s.Answers = []bool{}
	}
	params, err := json.Marshal(s)
	if err != nil {
		return model.Context{}, fmt.Errorf("error encoding session: %w", err)
	}
	return model.Context{
		Name:          ContextName(session),
		LifespanCount: lifespan,
		Parameters:    params,
	}, nil
}

// EndSession returns the questionnaire context with a zero lifespan, which
// makes the platform drop it.
func EndSession(session string) model.Context {
	return model.Context{Name: ContextName(session), LifespanCount: 0}
}

// FindSession locates and decodes the questionnaire context of req.
func FindSession(req model.WebhookRequest) (model.Session, error) {
	name := ContextName(req.Session)
	c, ok := lo.Find(req.QueryResult.OutputContexts, func(c model.Context) bool {
		return c.Name == name
	})
	if !ok {
		return model.Session{}, ErrNoSession
	}
	return DecodeSession(c)
}

// DecodeSession parses and validates the parameters of a questionnaire context.
func DecodeSession(c model.Context) (model.Session, error) {
	if len(c.Parameters) == 0 {
		return model.Session{}, fmt.Errorf("%w: no parameters", ErrCorruptSession)
	}

	var w wireSession
	if err := json.Unmarshal(c.Parameters, &w); err != nil {
		return model.Session{}, fmt.Errorf("%w: %v", ErrCorruptSession, err)
	}
	if w.CurrentQuestion == nil {
		return model.Session{}, fmt.Errorf("%w: currentQuestion missing", ErrCorruptSession)
	}
	if index := *w.CurrentQuestion; index != math.Trunc(index) || index > math.MaxInt32 {
		return model.Session{}, fmt.Errorf("%w: currentQuestion %v is not an index", ErrCorruptSession, index)
	}

	s := model.Session{
		CurrentQuestion: int(*w.CurrentQuestion),
		Answers:         w.Answers,
		ParticipantID:   w.ParticipantID,
		Participant:     w.Participant,
		Groups:          w.Groups,
	}
	if s.Answers == nil {
		s.Answers = []bool{}
	}
	if err := validate.Struct(s); err != nil {
		return model.Session{}, fmt.Errorf("%w: %v", ErrCorruptSession, err)
	}
	if len(s.Answers) != s.CurrentQuestion {
		return model.Session{}, fmt.Errorf("%w: %d answers at question %d", ErrCorruptSession, len(s.Answers), s.CurrentQuestion)
	}
	if s.Participant != nil && len(s.Participant.Participation) != len(s.Groups) {
		return model.Session{}, fmt.Errorf("%w: %d groups for %d participations",
			ErrCorruptSession, len(s.Groups), len(s.Participant.Participation))
	}
	return s, nil
}
