package handler

import (
	"EventWebhook/flow"
	"EventWebhook/mocks"
	"EventWebhook/model"
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const testSession = "projects/p/agent/sessions/s1"

func ana() *model.Participant {
	return &model.Participant{
		ID:           "u1",
		FacebookName: "Ana",
		TicketID:     int64(1234),
		Participation: []model.Participation{
			{GroupID: "alpha"},
			{GroupID: "beta"},
		},
	}
}

func groups() []model.Group {
	return []model.Group{
		{ID: "alpha", GroupName: "Alpha", Members: []model.Contact{{Name: "Max", FacebookLink: "fb.com/max"}}},
		{ID: "beta", GroupName: "Beta", Members: []model.Contact{{Name: "Zoe", FacebookLink: "fb.com/zoe"}}},
	}
}

func webhookRequest(intent string, params map[string]any, contexts ...model.Context) model.WebhookRequest {
	return model.WebhookRequest{
		Session: testSession,
		QueryResult: model.QueryResult{
			Parameters:     params,
			Intent:         model.QueryIntent{DisplayName: intent},
			OutputContexts: contexts,
		},
		OriginalDetectIntentRequest: model.OriginalRequest{
			Source:  "facebook",
			Payload: model.Payload{Data: model.PayloadData{Sender: &model.MessengerSender{ID: "psid-1"}}},
		},
	}
}

// post sends req through the router the way the platform would, and decodes
// the reply.
func post(t *testing.T, h *WebhookHandler, req model.WebhookRequest) model.WebhookResponse {
	t.Helper()
	body, err := json.Marshal(req)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	NewRouter(h, zerolog.Nop()).ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/webhook", bytes.NewReader(body)))
	require.Equal(t, http.StatusOK, w.Code)

	var resp model.WebhookResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	return resp
}

func firstText(resp model.WebhookResponse) string {
	if len(resp.FulfillmentMessages) == 0 || resp.FulfillmentMessages[0].Text == nil {
		return ""
	}
	return resp.FulfillmentMessages[0].Text.Text[0]
}

func TestWebhookHandler_GetTicket(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	identity := mocks.NewMockIdentityResolver(ctrl)
	store := mocks.NewMockParticipantStore(ctrl)
	h := NewWebhookHandler(identity, store, flow.NewEngine(flow.ModeGroups, nil), zerolog.Nop())

	t.Run("should start the questionnaire when the ticket matches", func(t *testing.T) {
		req := require.New(t)
		identity.EXPECT().ResolveName(gomock.Any(), "psid-1").Return("Ana", nil)
		store.EXPECT().FindParticipantByName(gomock.Any(), "Ana").Return(ana(), nil)
		store.EXPECT().FetchGroups(gomock.Any(), []string{"alpha", "beta"}).Return(groups(), nil)

		resp := post(t, h, webhookRequest("getTicket", map[string]any{"number": 1234}))

		req.Equal("Welcome Ana, we would like to ask you a few questions.", firstText(resp))
		req.Equal("Would you join Alpha?", resp.FulfillmentMessages[1].QuickReplies.Title)
		req.Len(resp.OutputContexts, 1)
		s, err := flow.DecodeSession(resp.OutputContexts[0])
		req.NoError(err)
		req.Equal(0, s.CurrentQuestion)
		req.Empty(s.Answers)
	})

	t.Run("should reject a wrong ticket without reading groups", func(t *testing.T) {
		req := require.New(t)
		identity.EXPECT().ResolveName(gomock.Any(), "psid-1").Return("Ana", nil)
		store.EXPECT().FindParticipantByName(gomock.Any(), "Ana").Return(ana(), nil)
		store.EXPECT().FetchGroups(gomock.Any(), gomock.Any()).Times(0)

		resp := post(t, h, webhookRequest("getTicket", map[string]any{"number": 9999}))

		req.Equal(flow.Rejection(), resp)
	})

	t.Run("should reject an unknown participant", func(t *testing.T) {
		req := require.New(t)
		identity.EXPECT().ResolveName(gomock.Any(), "psid-1").Return("Bob", nil)
		store.EXPECT().FindParticipantByName(gomock.Any(), "Bob").Return(nil, model.ErrParticipantDoesNotExist)

		resp := post(t, h, webhookRequest("getTicket", map[string]any{"number": 1234}))

		req.Equal(flow.Rejection(), resp)
	})

	t.Run("should fall back when the identity lookup fails", func(t *testing.T) {
		req := require.New(t)
		identity.EXPECT().ResolveName(gomock.Any(), "psid-1").Return("", errors.New("graph down"))

		resp := post(t, h, webhookRequest("getTicket", map[string]any{"number": 1234}))

		req.Equal(flow.Fallback(), resp)
	})

	t.Run("should fall back when the datastore fails", func(t *testing.T) {
		req := require.New(t)
		identity.EXPECT().ResolveName(gomock.Any(), "psid-1").Return("Ana", nil)
		store.EXPECT().FindParticipantByName(gomock.Any(), "Ana").Return(nil, errors.New("unavailable"))

		resp := post(t, h, webhookRequest("getTicket", map[string]any{"number": 1234}))

		req.Equal(flow.Fallback(), resp)
	})

	t.Run("should fall back without a sender", func(t *testing.T) {
		req := require.New(t)
		r := webhookRequest("getTicket", map[string]any{"number": 1234})
		r.OriginalDetectIntentRequest = model.OriginalRequest{}

		resp := post(t, h, r)

		req.Equal(flow.Fallback(), resp)
	})
}

func TestWebhookHandler_Answers(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	identity := mocks.NewMockIdentityResolver(ctrl)
	store := mocks.NewMockParticipantStore(ctrl)
	h := NewWebhookHandler(identity, store, flow.NewEngine(flow.ModeGroups, nil), zerolog.Nop())

	start, err := flow.EncodeSession(testSession, model.Session{
		Answers:       []bool{},
		ParticipantID: "u1",
		Participant:   ana(),
		Groups:        groups(),
	}, flow.DefaultLifespan)
	require.NoError(t, err)

	t.Run("should ask the next question", func(t *testing.T) {
		req := require.New(t)

		resp := post(t, h, webhookRequest("yes", nil, start))

		req.Equal("Would you join Beta?", resp.FulfillmentMessages[0].QuickReplies.Title)
		s, err := flow.DecodeSession(resp.OutputContexts[0])
		req.NoError(err)
		req.Equal(1, s.CurrentQuestion)
		req.Equal([]bool{true}, s.Answers)
	})

	t.Run("should persist and close the session on the last answer", func(t *testing.T) {
		req := require.New(t)
		last, err := flow.EncodeSession(testSession, model.Session{
			CurrentQuestion: 1,
			Answers:         []bool{true},
			ParticipantID:   "u1",
			Participant:     ana(),
			Groups:          groups(),
		}, flow.DefaultLifespan)
		req.NoError(err)

		store.EXPECT().
			SaveAnswers(gomock.Any(), "u1", []bool{true, false}, []model.Participation{
				{GroupID: "alpha", Attend: true},
				{GroupID: "beta", Attend: false},
			}).
			Return(nil).
			Times(1)

		resp := post(t, h, webhookRequest("no", nil, last))
		h.Wait()

		req.Equal([]model.Context{flow.EndSession(testSession)}, resp.OutputContexts)
		req.Len(resp.FulfillmentMessages, 3)
		req.True(strings.Contains(resp.FulfillmentMessages[1].Text.Text[0], "Group Name: Alpha"))
	})

	t.Run("should still reply when saving fails", func(t *testing.T) {
		req := require.New(t)
		last, err := flow.EncodeSession(testSession, model.Session{
			CurrentQuestion: 1,
			Answers:         []bool{false},
			ParticipantID:   "u1",
			Participant:     ana(),
			Groups:          groups(),
		}, flow.DefaultLifespan)
		req.NoError(err)

		store.EXPECT().SaveAnswers(gomock.Any(), "u1", gomock.Any(), gomock.Any()).Return(errors.New("write failed"))

		resp := post(t, h, webhookRequest("yes", nil, last))
		h.Wait()

		req.Equal(0, resp.OutputContexts[0].LifespanCount)
	})

	t.Run("should ask to start over without a session", func(t *testing.T) {
		req := require.New(t)

		resp := post(t, h, webhookRequest("yes", nil))

		req.Equal(flow.StartOver(""), resp)
		req.Empty(resp.OutputContexts)
	})

	t.Run("should drop a corrupt session", func(t *testing.T) {
		req := require.New(t)
		corrupt := model.Context{
			Name:          flow.ContextName(testSession),
			LifespanCount: 5,
			Parameters:    json.RawMessage(`{"currentQuestion":3,"answers":[],"participantId":"u1"}`),
		}

		resp := post(t, h, webhookRequest("no", nil, corrupt))

		req.Equal(flow.StartOver(testSession), resp)
	})
}

func TestWebhookHandler_Router(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h := NewWebhookHandler(
		mocks.NewMockIdentityResolver(ctrl),
		mocks.NewMockParticipantStore(ctrl),
		flow.NewEngine(flow.ModeStatic, []string{"Q?"}),
		zerolog.Nop(),
	)

	t.Run("should answer unknown intents", func(t *testing.T) {
		resp := post(t, h, webhookRequest("Default Welcome Intent", nil))
		require.Equal(t, flow.NotUnderstood(), resp)
	})

	t.Run("should answer requests without a session", func(t *testing.T) {
		r := webhookRequest("yes", nil)
		r.Session = ""
		resp := post(t, h, r)
		require.Equal(t, flow.NotUnderstood(), resp)
	})

	t.Run("should refuse malformed json", func(t *testing.T) {
		w := httptest.NewRecorder()
		NewRouter(h, zerolog.Nop()).ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader("{")))
		require.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("should report health", func(t *testing.T) {
		w := httptest.NewRecorder()
		NewRouter(h, zerolog.Nop()).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
		require.Equal(t, http.StatusOK, w.Code)
		require.JSONEq(t, `{"status":"ok"}`, w.Body.String())
	})

	t.Run("should not accept GET on the webhook", func(t *testing.T) {
		w := httptest.NewRecorder()
		NewRouter(h, zerolog.Nop()).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/webhook", nil))
		require.Equal(t, http.StatusMethodNotAllowed, w.Code)
	})
}

func TestWriteJSON_LogsEncodeFailure(t *testing.T) {
	req := require.New(t)
	var buf bytes.Buffer
	logger := zerolog.New(&buf).Level(zerolog.DebugLevel)

	r := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	r = r.WithContext(logger.WithContext(r.Context()))
	w := httptest.NewRecorder()

	writeJSON(w, r, http.StatusOK, map[string]any{"bad": make(chan int)})

	req.Contains(buf.String(), `"level":"debug"`)
	req.Contains(buf.String(), "error writing response")
}
