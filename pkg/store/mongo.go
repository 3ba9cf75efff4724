package store

import (
	"context"
	stderrors "errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/matzehuels/techradar/pkg/errors"
)

// Collection is the MongoDB collection radars are saved in.
const Collection = "radars"

// MongoStore keeps records in a MongoDB collection.
type MongoStore struct {
	client      *mongo.Client
	coll        *mongo.Collection
	LoadTimeout time.Duration // Default: DefaultLoadTimeout
}

// NewMongoStore connects to uri and uses the radars collection of database.
func NewMongoStore(ctx context.Context, uri, database string) (*MongoStore, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "connect to mongodb")
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "ping mongodb")
	}
	return &MongoStore{
		client:      client,
		coll:        client.Database(database).Collection(Collection),
		LoadTimeout: DefaultLoadTimeout,
	}, nil
}

// Save upserts rec.
func (s *MongoStore) Save(ctx context.Context, rec *Record) error {
	if rec == nil {
		return errors.New(errors.ErrCodeInvalidInput, "nil record")
	}
	prepare(rec)
	if rec.ID == "" {
		return errors.New(errors.ErrCodeInvalidInput, "record has neither id nor repo url")
	}
	_, err := s.coll.ReplaceOne(ctx, bson.M{"_id": rec.ID}, rec, options.Replace().SetUpsert(true))
	return err
}

// Load finds a record by ID within the load timeout.
func (s *MongoStore) Load(ctx context.Context, id string) (*Record, error) {
	timeout := s.LoadTimeout
	if timeout <= 0 {
		timeout = DefaultLoadTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var rec Record
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&rec)
	switch {
	case stderrors.Is(err, mongo.ErrNoDocuments):
		return nil, nil
	case stderrors.Is(err, context.DeadlineExceeded):
		return nil, errors.Wrap(errors.ErrCodeTimeout, err, "load radar %s timed out after %s", id, timeout)
	case err != nil:
		return nil, err
	}
	return &rec, nil
}

// Delete removes a record.
func (s *MongoStore) Delete(ctx context.Context, id string) error {
	_, err := s.coll.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

// List returns summaries, most recently saved first.
func (s *MongoStore) List(ctx context.Context) ([]Summary, error) {
	opts := options.Find().
		SetProjection(bson.M{"matrix": 0}).
		SetSort(bson.D{{Key: "savedAt", Value: -1}, {Key: "_id", Value: 1}})
	cur, err := s.coll.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, err
	}
	out := []Summary{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Close disconnects the client.
func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

var _ Store = (*MongoStore)(nil)
