//go:generate go run go.uber.org/mock/mockgen -source=interfaces.go -destination=../mocks/mock_repo.go -package=mocks
package repo

import (
	"EventWebhook/model"
	"context"
)

// IdentityResolver turns a messaging platform sender id into the user's
// display name.
type IdentityResolver interface {
	ResolveName(ctx context.Context, senderID string) (string, error)
}

// ParticipantStore is the datastore the webhook reads participants and
// groups from and writes final answers to.
type ParticipantStore interface {
	FindParticipantByName(ctx context.Context, name string) (*model.Participant, error)
	FetchGroups(ctx context.Context, groupIDs []string) ([]model.Group, error)
	SaveAnswers(ctx context.Context, participantID string, answers []bool, participation []model.Participation) error
}
