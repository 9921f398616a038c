// Package mongo stores tasks in a MongoDB collection.
package mongo

import (
	"context"
	stderrors "errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	driver "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.mongodb.org/mongo-driver/x/mongo/driver/connstring"

	"task-manager/internal/domain"
	"task-manager/internal/errors"
	"task-manager/internal/store"
)

const (
	DefaultDatabase   = "taskmanager"
	DefaultCollection = "tasks"

	disconnectTimeout = 5 * time.Second
)

// Store implements store.Store on a MongoDB collection
type Store struct {
	client     *driver.Client
	coll       *driver.Collection
	database   string
	collection string
	clock      store.Clock
}

var _ store.Store = (*Store)(nil)

// Option configures a Store
type Option func(*Store)

// WithClock overrides the time source used for timestamps
func WithClock(clock store.Clock) Option {
	return func(s *Store) {
		s.clock = clock
	}
}

// WithDatabase overrides the database named in the connection string
func WithDatabase(name string) Option {
	return func(s *Store) {
		s.database = name
	}
}

// Connect dials uri, pings the primary and ensures the collection indexes exist.
// The database is taken from the URI path and defaults to DefaultDatabase.
func Connect(ctx context.Context, uri, collection string, opts ...Option) (*Store, error) {
	cs, err := connstring.ParseAndValidate(uri)
	if err != nil {
		return nil, errors.NewStoreError("parse connection string", err)
	}

	s := &Store{
		database:   cs.Database,
		collection: collection,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.database == "" {
		s.database = DefaultDatabase
	}
	if s.collection == "" {
		s.collection = DefaultCollection
	}

	client, err := driver.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, errors.NewStoreError("connect", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		client.Disconnect(context.Background())
		return nil, errors.NewStoreError("connect", err)
	}

	s.client = client
	s.coll = client.Database(s.database).Collection(s.collection)

	if err := s.ensureIndexes(ctx); err != nil {
		client.Disconnect(context.Background())
		return nil, err
	}
	return s, nil
}

func (s *Store) ensureIndexes(ctx context.Context) error {
	_, err := s.coll.Indexes().CreateOne(ctx, driver.IndexModel{
		Keys: bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}},
	})
	if err != nil {
		return errors.NewStoreError("create indexes", err)
	}
	return nil
}

// Database returns the name of the database in use
func (s *Store) Database() string {
	return s.database
}

// Close disconnects from the server
func (s *Store) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), disconnectTimeout)
	defer cancel()
	return s.client.Disconnect(ctx)
}

// Ping checks the primary is reachable
func (s *Store) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx, readpref.Primary()); err != nil {
		return errors.NewStoreError("ping", err)
	}
	return nil
}

// List retrieves all tasks, newest first
func (s *Store) List(ctx context.Context) ([]domain.Task, error) {
	findOpts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}})

	cursor, err := s.coll.Find(ctx, bson.D{}, findOpts)
	if err != nil {
		return nil, errors.NewStoreError("list tasks", err)
	}

	var docs []taskDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, errors.NewStoreError("decode tasks", err)
	}

	tasks := make([]domain.Task, 0, len(docs))
	for _, doc := range docs {
		tasks = append(tasks, doc.toDomain())
	}
	return tasks, nil
}

// Create inserts a new task
func (s *Store) Create(ctx context.Context, newTask domain.NewTask) (domain.Task, error) {
	if err := store.RequireTitle(newTask.Title); err != nil {
		return domain.Task{}, err
	}

	doc := newDocument(primitive.NewObjectID(), newTask, s.clock.Now())
	if _, err := s.coll.InsertOne(ctx, doc); err != nil {
		return domain.Task{}, errors.NewStoreError("create task", err)
	}
	return doc.toDomain(), nil
}

// Get retrieves a task by id
func (s *Store) Get(ctx context.Context, id string) (domain.Task, error) {
	oid, err := parseID(id)
	if err != nil {
		return domain.Task{}, err
	}

	var doc taskDocument
	if err := s.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		return domain.Task{}, s.findError("get task", id, err)
	}
	return doc.toDomain(), nil
}

// Update applies patch and returns the stored record
func (s *Store) Update(ctx context.Context, id string, patch domain.TaskPatch) (domain.Task, error) {
	oid, err := parseID(id)
	if err != nil {
		return domain.Task{}, err
	}
	if err := store.CheckPatch(patch); err != nil {
		return domain.Task{}, err
	}

	updateOpts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	result := s.coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, updateDocument(patch, s.clock.Now()), updateOpts)

	var doc taskDocument
	if err := result.Decode(&doc); err != nil {
		return domain.Task{}, s.findError("update task", id, err)
	}
	return doc.toDomain(), nil
}

// Delete deletes a task by id
func (s *Store) Delete(ctx context.Context, id string) error {
	oid, err := parseID(id)
	if err != nil {
		return err
	}

	result, err := s.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return errors.NewStoreError("delete task", err)
	}
	if result.DeletedCount == 0 {
		return errors.NewNotFoundError(store.ResourceTask, id)
	}
	return nil
}

func (s *Store) findError(operation, id string, err error) error {
	if stderrors.Is(err, driver.ErrNoDocuments) {
		return errors.NewNotFoundError(store.ResourceTask, id)
	}
	return errors.NewStoreError(operation, err)
}
