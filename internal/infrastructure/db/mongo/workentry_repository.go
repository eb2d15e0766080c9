package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/workledger/timesheet-service/internal/core/domain"
	"github.com/workledger/timesheet-service/internal/core/ports"
)

const collectionWorkEntries = "work_entries"

// WorkEntryRepository persists work entries in MongoDB.
type WorkEntryRepository struct {
	col *mongo.Collection
}

func NewWorkEntryRepository(db *mongo.Database) *WorkEntryRepository {
	return &WorkEntryRepository{col: db.Collection(collectionWorkEntries)}
}

// Insert stores a new work entry, assigning a fresh ObjectID-based id.
func (r *WorkEntryRepository) Insert(ctx context.Context, e *domain.WorkEntry) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if e.ID == "" {
		e.ID = primitive.NewObjectID().Hex()
	}
	_, err := r.col.InsertOne(ctx, e)
	return err
}

// Update replaces the stored document for the entry's id.
func (r *WorkEntryRepository) Update(ctx context.Context, e *domain.WorkEntry) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": e.ID}, e)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.NewNotFoundError("WorkEntry", "id", e.ID)
	}
	return nil
}

// FindByID retrieves one work entry by id.
func (r *WorkEntryRepository) FindByID(ctx context.Context, id string) (*domain.WorkEntry, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var e domain.WorkEntry
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&e)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.NewNotFoundError("WorkEntry", "id", id)
		}
		return nil, err
	}
	return &e, nil
}

// FindAll returns one page of entries plus the total count.
func (r *WorkEntryRepository) FindAll(ctx context.Context, page ports.PageRequest) ([]*domain.WorkEntry, int64, error) {
	return r.findPaged(ctx, bson.M{}, page)
}

// FindByDateRange matches work_date in [start, end] inclusive.
func (r *WorkEntryRepository) FindByDateRange(ctx context.Context, start, end time.Time, page ports.PageRequest) ([]*domain.WorkEntry, int64, error) {
	filter := bson.M{"work_date": bson.M{"$gte": start, "$lte": end}}
	return r.findPaged(ctx, filter, page)
}

// FindByStatus returns one page of entries with the given status.
func (r *WorkEntryRepository) FindByStatus(ctx context.Context, status domain.Status, page ports.PageRequest) ([]*domain.WorkEntry, int64, error) {
	return r.findPaged(ctx, bson.M{"status": status}, page)
}

// FindByWorkDate returns all entries for one exact calendar date, newest first.
func (r *WorkEntryRepository) FindByWorkDate(ctx context.Context, date time.Time) ([]*domain.WorkEntry, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := r.col.Find(ctx, bson.M{"work_date": date}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var entries []*domain.WorkEntry
	if err := cur.All(ctx, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// Delete removes one work entry by id.
func (r *WorkEntryRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domain.NewNotFoundError("WorkEntry", "id", id)
	}
	return nil
}

// SumHoursInRange aggregates hours_spent over work_date in [start, end]
// inclusive. No matching documents yields 0.
func (r *WorkEntryRepository) SumHoursInRange(ctx context.Context, start, end time.Time) (float64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"work_date": bson.M{"$gte": start, "$lte": end}}}},
		{{Key: "$group", Value: bson.M{"_id": nil, "total": bson.M{"$sum": "$hours_spent"}}}},
	}

	cur, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, err
	}
	defer cur.Close(ctx)

	var results []struct {
		Total float64 `bson:"total"`
	}
	if err := cur.All(ctx, &results); err != nil {
		return 0, err
	}
	if len(results) == 0 {
		return 0, nil
	}
	return results[0].Total, nil
}

// EnsureIndexes creates the indexes the query paths rely on.
func (r *WorkEntryRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "work_date", Value: 1}}},
		{Keys: bson.D{{Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}

func (r *WorkEntryRepository) findPaged(ctx context.Context, filter bson.M, page ports.PageRequest) ([]*domain.WorkEntry, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	total, err := r.col.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	sortField := page.SortField
	if sortField == "" {
		sortField = "work_date"
	}
	order := -1
	if page.SortAsc {
		order = 1
	}

	opts := options.Find().
		SetSort(bson.D{{Key: sortField, Value: order}}).
		SetSkip(int64(page.Offset())).
		SetLimit(int64(page.Size))

	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cur.Close(ctx)

	var entries []*domain.WorkEntry
	if err := cur.All(ctx, &entries); err != nil {
		return nil, 0, err
	}
	return entries, total, nil
}
