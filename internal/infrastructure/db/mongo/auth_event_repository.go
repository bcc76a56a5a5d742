package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/shopfront/storefront/internal/core/domain"
)

const (
	authEventsCollection = "auth_events"
	// authEventRetention bounds how long audit entries are kept.
	authEventRetention = 180 * 24 * time.Hour
)

// AuthEventRepository appends authentication audit entries to the
// auth_events collection.
type AuthEventRepository struct {
	coll *mongo.Collection
	now  func() time.Time
}

// NewAuthEventRepository creates a new AuthEventRepository.
func NewAuthEventRepository(db *mongo.Database) *AuthEventRepository {
	return &AuthEventRepository{coll: db.Collection(authEventsCollection), now: time.Now}
}

type authEventDoc struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	Type       string             `bson:"type"`
	Email      string             `bson:"email"`
	AccountID  int64              `bson:"account_id,omitempty"`
	RemoteIP   string             `bson:"remote_ip,omitempty"`
	ActorID    int64              `bson:"actor_id,omitempty"`
	OccurredAt time.Time          `bson:"occurred_at"`
	RecordedAt time.Time          `bson:"recorded_at"`
}

func newAuthEventDoc(e *domain.AuthEvent, recordedAt time.Time) authEventDoc {
	occurred := e.OccurredAt
	if occurred.IsZero() {
		occurred = recordedAt
	}
	return authEventDoc{
		Type:       string(e.Type),
		Email:      e.Email,
		AccountID:  e.AccountID,
		RemoteIP:   e.RemoteIP,
		ActorID:    e.ActorID,
		OccurredAt: occurred.UTC(),
		RecordedAt: recordedAt.UTC(),
	}
}

// Insert persists a single audit entry.
func (r *AuthEventRepository) Insert(ctx context.Context, event *domain.AuthEvent) error {
	if _, err := r.coll.InsertOne(ctx, newAuthEventDoc(event, r.now())); err != nil {
		return fmt.Errorf("insert auth event: %w", err)
	}
	return nil
}

// EnsureIndexes creates the lookup indexes and the retention TTL index on the
// auth_events collection.
func (r *AuthEventRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "email", Value: 1}, {Key: "occurred_at", Value: -1}}},
		{Keys: bson.D{{Key: "type", Value: 1}, {Key: "occurred_at", Value: -1}}},
		{
			Keys:    bson.D{{Key: "recorded_at", Value: 1}},
			Options: options.Index().SetExpireAfterSeconds(int32(authEventRetention.Seconds())),
		},
	}
	if _, err := r.coll.Indexes().CreateMany(ctx, indexes); err != nil {
		return fmt.Errorf("ensure auth event indexes: %w", err)
	}
	return nil
}
