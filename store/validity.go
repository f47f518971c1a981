package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/bitmark-inc/immunity-api/schema"
)

var (
	ErrSnapshotNotFound = fmt.Errorf("no validity snapshot for the person")
)

// ValiditySnapshot keeps the last computed validity ranges of each person.
type ValiditySnapshot interface {
	ReplacePersonValidity(personID uuid.UUID, ranges []schema.ValidityRange, computedAt time.Time) error
	GetPersonValidity(personID uuid.UUID) ([]schema.ValiditySnapshot, error)
}

// validityCollection is the part of the mongo collection a snapshot
// replacement writes through.
type validityCollection interface {
	InsertMany(ctx context.Context, documents []interface{}, opts ...*options.InsertManyOptions) (*mongo.InsertManyResult, error)
	DeleteMany(ctx context.Context, filter interface{}, opts ...*options.DeleteOptions) (*mongo.DeleteResult, error)
}

// ReplacePersonValidity stores the given ranges of a person and drops the
// previously stored ones afterwards. A person without ranges has no
// snapshot afterwards.
func (m mongoDB) ReplacePersonValidity(personID uuid.UUID, ranges []schema.ValidityRange, computedAt time.Time) error {
	c := m.client.Database(m.database).Collection(schema.ValidityCollection)
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	return replaceSnapshot(ctx, c, personID, ranges, computedAt)
}

// replaceSnapshot writes the new revision before deleting the older ones,
// so a failed write keeps the previous snapshot.
func replaceSnapshot(ctx context.Context, c validityCollection, personID uuid.UUID, ranges []schema.ValidityRange, computedAt time.Time) error {
	key := personID.String()
	revision := uuid.New().String()

	if len(ranges) > 0 {
		docs := make([]interface{}, 0, len(ranges))
		for _, r := range ranges {
			docs = append(docs, schema.ValiditySnapshot{
				ValidityRange: r,
				PersonKey:     key,
				Revision:      revision,
				ComputedAt:    computedAt.Unix(),
			})
		}

		if _, err := c.InsertMany(ctx, docs); err != nil {
			log.WithFields(log.Fields{
				"prefix":    mongoLogPrefix,
				"person_id": key,
				"ranges":    len(ranges),
				"error":     err,
			}).Error("insert validity snapshot")
			return err
		}
	}

	if _, err := c.DeleteMany(ctx, bson.M{
		"person_key": key,
		"revision":   bson.M{"$ne": revision},
	}); err != nil {
		log.WithFields(log.Fields{
			"prefix":    mongoLogPrefix,
			"person_id": key,
			"error":     err,
		}).Error("delete previous validity snapshot")
		return err
	}

	log.WithFields(log.Fields{
		"prefix":    mongoLogPrefix,
		"person_id": key,
		"ranges":    len(ranges),
	}).Debug("stored validity snapshot")

	return nil
}

// GetPersonValidity returns the stored ranges of a person ordered by start.
func (m mongoDB) GetPersonValidity(personID uuid.UUID) ([]schema.ValiditySnapshot, error) {
	c := m.client.Database(m.database).Collection(schema.ValidityCollection)
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	query := bson.M{"person_key": personID.String()}
	opts := options.Find().SetSort(bson.D{{Key: "start", Value: 1}, {Key: "end", Value: 1}})

	cur, err := c.Find(ctx, query, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	snapshots := make([]schema.ValiditySnapshot, 0)
	for cur.Next(ctx) {
		var s schema.ValiditySnapshot
		if err := cur.Decode(&s); err != nil {
			return nil, err
		}
		snapshots = append(snapshots, s)
	}

	if err := cur.Err(); err != nil {
		return nil, err
	}

	if len(snapshots) == 0 {
		return nil, ErrSnapshotNotFound
	}

	return snapshots, nil
}
