package store

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/bitmark-inc/immunity-api/schema"
)

type ValiditySnapshotTestSuite struct {
	suite.Suite
	connURI      string
	testDBName   string
	mongoClient  *mongo.Client
	testDatabase *mongo.Database
	personID     uuid.UUID
}

func NewValiditySnapshotTestSuite(connURI, dbName string) *ValiditySnapshotTestSuite {
	return &ValiditySnapshotTestSuite{
		connURI:    connURI,
		testDBName: dbName,
		personID:   uuid.MustParse("0f6b3c0e-7d0c-4c59-9d7e-6a5c2b1d0001"),
	}
}

func (s *ValiditySnapshotTestSuite) SetupSuite() {
	if s.connURI == "" || s.testDBName == "" {
		s.T().Fatal("invalid test suite configuration")
	}

	opts := options.Client().ApplyURI(s.connURI)
	mongoClient, err := mongo.NewClient(opts)
	if nil != err {
		s.T().Fatalf("create mongo client with error: %s", err)
	}

	if err = mongoClient.Connect(context.Background()); nil != err {
		s.T().Fatalf("connect mongo database with error: %s", err.Error())
	}

	s.mongoClient = mongoClient
	s.testDatabase = mongoClient.Database(s.testDBName)

	// make sure the test suite is run with a clean environment
	if err := s.CleanMongoDB(); err != nil {
		s.T().Fatal(err)
	}
	schema.NewMongoDBIndexer(s.connURI, s.testDBName).IndexAll()
}

// CleanMongoDB drop the whole test mongodb
func (s *ValiditySnapshotTestSuite) CleanMongoDB() error {
	return s.testDatabase.Drop(context.Background())
}

func (s *ValiditySnapshotTestSuite) TearDownSuite() {
	_ = s.CleanMongoDB()
	_ = s.mongoClient.Disconnect(context.Background())
}

func (s *ValiditySnapshotTestSuite) ranges(shotID uuid.UUID, starts ...string) []schema.ValidityRange {
	ranges := make([]schema.ValidityRange, 0, len(starts))
	for _, start := range starts {
		t, err := time.Parse("2006-01-02", start)
		s.Require().NoError(err)
		ranges = append(ranges, schema.ValidityRange{
			PersonID: s.personID,
			ShotID:   shotID,
			Rule:     schema.RulePerTypeDoubleDose,
			Start:    t,
			End:      t.AddDate(1, 0, 0),
		})
	}
	return ranges
}

func (s *ValiditySnapshotTestSuite) TestReplacePersonValidity() {
	store := NewMongoStore(s.mongoClient, s.testDBName)
	shotID := uuid.MustParse("0f6b3c0e-7d0c-4c59-9d7e-6a5c2b1d0a01")
	computedAt := time.Unix(1620000000, 0)

	err := store.ReplacePersonValidity(s.personID, s.ranges(shotID, "2021-06-01", "2021-02-01"), computedAt)
	s.NoError(err)

	snapshots, err := store.GetPersonValidity(s.personID)
	s.NoError(err)
	s.Len(snapshots, 2)
	s.Equal("2021-02-01", snapshots[0].Start.UTC().Format("2006-01-02"))
	s.Equal(shotID, snapshots[0].ShotID)
	s.Equal(s.personID, snapshots[0].PersonID)
	s.Equal(computedAt.Unix(), snapshots[0].ComputedAt)

	err = store.ReplacePersonValidity(s.personID, s.ranges(shotID, "2021-09-01"), computedAt)
	s.NoError(err)

	count, err := s.testDatabase.Collection(schema.ValidityCollection).CountDocuments(context.Background(), bson.M{
		"person_key": s.personID.String(),
	})
	s.NoError(err)
	s.Equal(int64(1), count)
}

func (s *ValiditySnapshotTestSuite) TestEmptySnapshot() {
	store := NewMongoStore(s.mongoClient, s.testDBName)
	other := uuid.MustParse("0f6b3c0e-7d0c-4c59-9d7e-6a5c2b1d0002")

	s.NoError(store.ReplacePersonValidity(other, nil, time.Now()))

	_, err := store.GetPersonValidity(other)
	s.Equal(ErrSnapshotNotFound, err)
}

func TestValiditySnapshotTestSuite(t *testing.T) {
	connURI := os.Getenv("IMMUNITY_TEST_MONGO")
	if connURI == "" {
		t.Skip("IMMUNITY_TEST_MONGO is not set")
	}
	suite.Run(t, NewValiditySnapshotTestSuite(connURI, "immunity-test-db"))
}
