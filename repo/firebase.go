package repo

import (
	"EventWebhook/model"
	"context"
	"errors"
	"fmt"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
)

const (
	usersCollection  = "users"
	groupsCollection = "groups"

	DefaultNameField = "facebookName"
)

// FirestoreConnector struct to hold the Firestore client
type FirestoreConnector struct {
	client    *firestore.Client
	nameField string
}

// NewFirestoreConnector creates a new Firestore connector. An empty
// serviceAccountKeyPath falls back to application default credentials.
func NewFirestoreConnector(ctx context.Context, serviceAccountKeyPath, projectID, nameField string) (*FirestoreConnector, error) {
	var opts []option.ClientOption
	if serviceAccountKeyPath != "" {
		opts = append(opts, option.WithCredentialsFile(serviceAccountKeyPath))
	}

	var config *firebase.Config
	if projectID != "" {
		config = &firebase.Config{ProjectID: projectID}
	}
	app, err := firebase.NewApp(ctx, config, opts...)
	if err != nil {
		return nil, fmt.Errorf("error initializing Firebase app: %w", err)
	}

	client, err := app.Firestore(ctx)
	if err != nil {
		return nil, fmt.Errorf("error getting Firestore client: %w", err)
	}

	if nameField == "" {
		nameField = DefaultNameField
	}
	return &FirestoreConnector{
		client:    client,
		nameField: nameField,
	}, nil
}

// FindParticipantByName returns the first participant whose name field
// equals name exactly.
func (fc *FirestoreConnector) FindParticipantByName(ctx context.Context, name string) (*model.Participant, error) {
	iter := fc.client.Collection(usersCollection).
		Where(fc.nameField, "==", name).
		Limit(1).
		Documents(ctx)
	defer iter.Stop()

	doc, err := iter.Next()
	if errors.Is(err, iterator.Done) {
		return nil, fmt.Errorf("%w: %q", model.ErrParticipantDoesNotExist, name)
	}
	if err != nil {
		return nil, fmt.Errorf("error querying participant: %w", err)
	}

	var participant model.Participant
	if err := doc.DataTo(&participant); err != nil {
		return nil, fmt.Errorf("error decoding participant %s: %w", doc.Ref.ID, err)
	}
	participant.ID = doc.Ref.ID
	return &participant, nil
}

// FetchGroups reads groups in one batch. The result is aligned with groupIDs.
func (fc *FirestoreConnector) FetchGroups(ctx context.Context, groupIDs []string) ([]model.Group, error) {
	if len(groupIDs) == 0 {
		return []model.Group{}, nil
	}

	refs := make([]*firestore.DocumentRef, len(groupIDs))
	for i, id := range groupIDs {
		refs[i] = fc.client.Collection(groupsCollection).Doc(id)
	}

	docs, err := fc.client.GetAll(ctx, refs)
	if err != nil {
		return nil, fmt.Errorf("error reading groups: %w", err)
	}

	groups := make([]model.Group, len(docs))
	for i, doc := range docs {
		if !doc.Exists() {
			return nil, fmt.Errorf("%w: %s", model.ErrGroupDoesNotExist, groupIDs[i])
		}
		if err := doc.DataTo(&groups[i]); err != nil {
			return nil, fmt.Errorf("error decoding group %s: %w", groupIDs[i], err)
		}
		groups[i].ID = doc.Ref.ID
	}
	return groups, nil
}

// SaveAnswers writes the final answers of a participant, and the updated
// participation when it is not nil.
func (fc *FirestoreConnector) SaveAnswers(ctx context.Context, participantID string, answers []bool, participation []model.Participation) error {
	updates := []firestore.Update{{Path: "answers", Value: answers}}
	if participation != nil {
		updates = append(updates, firestore.Update{Path: "participation", Value: participation})
	}

	_, err := fc.client.Collection(usersCollection).Doc(participantID).Update(ctx, updates)
	if err != nil {
		return fmt.Errorf("error saving answers for %s: %w", participantID, err)
	}
	return nil
}

// Close closes the Firestore client
func (fc *FirestoreConnector) Close() error {
	return fc.client.Close()
}
