package handler

import (
	"EventWebhook/flow"
	"EventWebhook/model"
	"EventWebhook/repo"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"
)

var validate = validator.New()

// WebhookHandler fulfils the getTicket, yes and no intents.
type WebhookHandler struct {
	identity repo.IdentityResolver
	store    repo.ParticipantStore
	engine   *flow.Engine
	log      zerolog.Logger

	// in-flight answer writes
	writes sync.WaitGroup
}

func NewWebhookHandler(
	identity repo.IdentityResolver,
	store repo.ParticipantStore,
	engine *flow.Engine,
	log zerolog.Logger,
) *WebhookHandler {
	return &WebhookHandler{
		identity: identity,
		store:    store,
		engine:   engine,
		log:      log,
	}
}

func (h *WebhookHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req model.WebhookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log.Warn().Err(err).Msg("error decoding webhook request")
		writeJSON(w, r, http.StatusBadRequest, map[string]string{"error": "invalid webhook request"})
		return
	}

	writeJSON(w, r, http.StatusOK, h.Handle(r.Context(), req))
}

// Handle dispatches req on its intent. It always produces a reply: failures
// are logged and answered with a generic message.
func (h *WebhookHandler) Handle(ctx context.Context, req model.WebhookRequest) model.WebhookResponse {
	displayName := req.QueryResult.Intent.DisplayName
	if err := validate.Struct(req); err != nil {
		h.log.Warn().Err(err).Str("intent", displayName).Msg("invalid webhook request")
		return flow.NotUnderstood()
	}

	var (
		resp model.WebhookResponse
		err  error
	)
	intent := model.ParseIntent(displayName)
	switch intent {
	case model.IntentGetTicket:
		resp, err = h.getTicket(ctx, req)
	case model.IntentYes:
		resp, err = h.answer(ctx, req, true)
	case model.IntentNo:
		resp, err = h.answer(ctx, req, false)
	default:
		h.log.Info().Str("intent", displayName).Str("session", req.Session).Msg("unrecognized intent")
		return flow.NotUnderstood()
	}

	if err != nil {
		h.log.Error().Err(err).Stringer("intent", intent).Str("session", req.Session).Msg("error handling intent")
		return flow.Fallback()
	}
	return resp
}

func (h *WebhookHandler) getTicket(ctx context.Context, req model.WebhookRequest) (model.WebhookResponse, error) {
	senderID, err := req.SenderID()
	if err != nil {
		return model.WebhookResponse{}, err
	}

	name, err := h.identity.ResolveName(ctx, senderID)
	if err != nil {
		return model.WebhookResponse{}, fmt.Errorf("error resolving sender %s: %w", senderID, err)
	}

	participant, err := h.store.FindParticipantByName(ctx, name)
	if errors.Is(err, model.ErrParticipantDoesNotExist) {
		h.log.Info().Str("name", name).Msg("participant not found")
		return flow.Rejection(), nil
	} else if err != nil {
		return model.WebhookResponse{}, fmt.Errorf("error finding participant: %w", err)
	}

	claim := req.QueryResult.TicketClaim()
	if !h.engine.Admits(participant, claim) {
		h.log.Info().Str("participant_id", participant.ID).Msg("ticket mismatch")
		return flow.Rejection(), nil
	}

	var groups []model.Group
	if h.engine.Mode() == flow.ModeGroups {
		groups, err = h.store.FetchGroups(ctx, participant.GroupIDs())
		if err != nil {
			return model.WebhookResponse{}, fmt.Errorf("error fetching groups for %s: %w", participant.ID, err)
		}
	}

	return h.engine.Start(req.Session, name, claim, participant, groups)
}

func (h *WebhookHandler) answer(ctx context.Context, req model.WebhookRequest, answer bool) (model.WebhookResponse, error) {
	session, err := flow.FindSession(req)
	if errors.Is(err, flow.ErrNoSession) {
		return flow.StartOver(""), nil
	} else if err != nil {
		h.log.Warn().Err(err).Str("session", req.Session).Msg("dropping session")
		return flow.StartOver(req.Session), nil
	}

	outcome, err := h.engine.Advance(req.Session, session, answer)
	if errors.Is(err, flow.ErrCorruptSession) {
		h.log.Warn().Err(err).Str("session", req.Session).Msg("dropping session")
		return flow.StartOver(req.Session), nil
	} else if err != nil {
		return model.WebhookResponse{}, err
	}

	if outcome.Completion != nil {
		h.persist(ctx, *outcome.Completion)
	}
	return outcome.Response, nil
}

// persist writes a completed questionnaire without holding up the reply.
// Failures are only logged.
func (h *WebhookHandler) persist(ctx context.Context, c flow.Completion) {
	ctx = context.WithoutCancel(ctx)
	h.writes.Add(1)
	go func() {
		defer h.writes.Done()
		if err := h.store.SaveAnswers(ctx, c.ParticipantID, c.Answers, c.Participation); err != nil {
			h.log.Error().Err(err).Str("participant_id", c.ParticipantID).Msg("error saving answers")
			return
		}
		h.log.Info().Str("participant_id", c.ParticipantID).Msg("answers saved")
	}()
}

// Wait blocks until every answer write started so far has finished.
func (h *WebhookHandler) Wait() {
	h.writes.Wait()
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		hlog.FromRequest(r).Debug().Err(err).Msg("error writing response")
	}
}
