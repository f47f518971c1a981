package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/bitmark-inc/immunity-api/schema"
)

type fakeValidityCollection struct {
	mock.Mock
}

func (f *fakeValidityCollection) InsertMany(ctx context.Context, documents []interface{}, opts ...*options.InsertManyOptions) (*mongo.InsertManyResult, error) {
	args := f.Called(documents)
	result, _ := args.Get(0).(*mongo.InsertManyResult)
	return result, args.Error(1)
}

func (f *fakeValidityCollection) DeleteMany(ctx context.Context, filter interface{}, opts ...*options.DeleteOptions) (*mongo.DeleteResult, error) {
	args := f.Called(filter)
	result, _ := args.Get(0).(*mongo.DeleteResult)
	return result, args.Error(1)
}

var snapshotPersonID = uuid.MustParse("0f6b3c0e-7d0c-4c59-9d7e-6a5c2b1d0003")

func snapshotRanges() []schema.ValidityRange {
	return []schema.ValidityRange{
		{
			PersonID: snapshotPersonID,
			ShotID:   uuid.MustParse("0f6b3c0e-7d0c-4c59-9d7e-6a5c2b1d0a03"),
			Rule:     schema.RuleComboThreshold,
			Start:    time.Date(2021, 3, 1, 0, 0, 0, 0, time.UTC),
			End:      time.Date(2022, 3, 1, 0, 0, 0, 0, time.UTC),
		},
	}
}

func TestReplaceSnapshotKeepsPreviousOnInsertFailure(t *testing.T) {
	c := new(fakeValidityCollection)
	c.On("InsertMany", mock.Anything).Return(nil, errors.New("write concern timeout"))

	err := replaceSnapshot(context.Background(), c, snapshotPersonID, snapshotRanges(), time.Now())
	assert.EqualError(t, err, "write concern timeout")

	c.AssertNumberOfCalls(t, "InsertMany", 1)
	c.AssertNotCalled(t, "DeleteMany", mock.Anything)
}

func TestReplaceSnapshotDeletesOlderRevisions(t *testing.T) {
	c := new(fakeValidityCollection)

	var revision string
	c.On("InsertMany", mock.Anything).Run(func(args mock.Arguments) {
		docs := args.Get(0).([]interface{})
		if assert.Len(t, docs, 1) {
			doc := docs[0].(schema.ValiditySnapshot)
			assert.Equal(t, snapshotPersonID.String(), doc.PersonKey)
			assert.Equal(t, int64(1620000000), doc.ComputedAt)
			revision = doc.Revision
		}
	}).Return(&mongo.InsertManyResult{}, nil)
	c.On("DeleteMany", mock.Anything).Return(&mongo.DeleteResult{}, nil)

	err := replaceSnapshot(context.Background(), c, snapshotPersonID, snapshotRanges(), time.Unix(1620000000, 0))
	assert.NoError(t, err)

	assert.NotEmpty(t, revision)
	c.AssertCalled(t, "DeleteMany", bson.M{
		"person_key": snapshotPersonID.String(),
		"revision":   bson.M{"$ne": revision},
	})
}

func TestReplaceSnapshotWithoutRanges(t *testing.T) {
	c := new(fakeValidityCollection)
	c.On("DeleteMany", mock.Anything).Return(&mongo.DeleteResult{DeletedCount: 2}, nil)

	err := replaceSnapshot(context.Background(), c, snapshotPersonID, nil, time.Now())
	assert.NoError(t, err)

	c.AssertNotCalled(t, "InsertMany", mock.Anything)
	c.AssertNumberOfCalls(t, "DeleteMany", 1)
}
