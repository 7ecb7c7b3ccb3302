package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/timecardhq/timecard-api/internal/core/domain"
	"github.com/timecardhq/timecard-api/internal/core/ports"
)

const collectionEntries = "time_entries"

// dateLayout is how work dates are persisted. Date-only strings compare
// lexically in the same order as calendar dates, which keeps range filters
// timezone-proof.
const dateLayout = "2006-01-02"

// EntryRepository implements ports.EntryRepository on MongoDB. Every write is
// a single filtered statement; the status precondition travels inside the
// filter so the document-level atomicity of UpdateOne/DeleteOne provides the
// compare-and-swap the engine relies on.
type EntryRepository struct {
	col *mongo.Collection
}

func NewEntryRepository(db *mongo.Database) *EntryRepository {
	return &EntryRepository{col: db.Collection(collectionEntries)}
}

type entryDoc struct {
	ID          string    `bson:"_id"`
	OwnerID     string    `bson:"owner_id"`
	WorkDate    string    `bson:"work_date"`
	Hours       float64   `bson:"hours"`
	Note        string    `bson:"note,omitempty"`
	ProjectID   string    `bson:"project_id,omitempty"`
	PeriodID    string    `bson:"time_period_id,omitempty"`
	Status      string    `bson:"status"`
	ManagerNote string    `bson:"manager_note,omitempty"`
	CreatedAt   time.Time `bson:"created_at"`
}

func toEntryDoc(e *domain.TimeEntry) entryDoc {
	return entryDoc{
		ID:          e.ID,
		OwnerID:     e.OwnerID,
		WorkDate:    e.WorkDate.Format(dateLayout),
		Hours:       e.Hours,
		Note:        e.Note,
		ProjectID:   e.ProjectID,
		PeriodID:    e.PeriodID,
		Status:      string(e.Status),
		ManagerNote: e.ManagerNote,
		CreatedAt:   e.CreatedAt.UTC(),
	}
}

func fromEntryDoc(d entryDoc) *domain.TimeEntry {
	workDate, _ := time.ParseInLocation(dateLayout, d.WorkDate, time.UTC)
	return &domain.TimeEntry{
		ID:          d.ID,
		OwnerID:     d.OwnerID,
		WorkDate:    workDate,
		Hours:       d.Hours,
		Note:        d.Note,
		ProjectID:   d.ProjectID,
		PeriodID:    d.PeriodID,
		Status:      domain.EntryStatus(d.Status),
		ManagerNote: d.ManagerNote,
		CreatedAt:   d.CreatedAt,
	}
}

// Insert persists a new entry document.
func (r *EntryRepository) Insert(ctx context.Context, e *domain.TimeEntry) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.col.InsertOne(ctx, toEntryDoc(e))
	return err
}

func (r *EntryRepository) FindByID(ctx context.Context, id string) (*domain.TimeEntry, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var d entryDoc
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&d); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrEntryNotFound
		}
		return nil, err
	}
	return fromEntryDoc(d), nil
}

func patchToSet(patch ports.EntryPatch) bson.M {
	set := bson.M{"status": string(patch.Status)}
	if patch.ManagerNote != "" {
		set["manager_note"] = patch.ManagerNote
	}
	return set
}

// ConditionalUpdate applies patch only while the status precondition (and the
// optional owner scope) still holds. The returned count is how many rows the
// store actually transitioned: 0 means the precondition was gone by commit time.
func (r *EntryRepository) ConditionalUpdate(ctx context.Context, id string, ownerID string, expected domain.EntryStatus, patch ports.EntryPatch) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"_id": id, "status": string(expected)}
	if ownerID != "" {
		filter["owner_id"] = ownerID
	}

	res, err := r.col.UpdateOne(ctx, filter, bson.M{"$set": patchToSet(patch)})
	if err != nil {
		return 0, err
	}
	return res.ModifiedCount, nil
}

// ConditionalBulkUpdate compare-and-swaps each listed entry individually and
// returns the ids that transitioned. Per-document updates keep every row's
// guard atomic; a multi-document UpdateMany would report only a count and
// could not tell the caller which ids were skipped.
func (r *EntryRepository) ConditionalBulkUpdate(ctx context.Context, ids []string, expected domain.EntryStatus, patch ports.EntryPatch) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, bulkTimeout)
	defer cancel()

	set := bson.M{"$set": patchToSet(patch)}
	affected := make([]string, 0, len(ids))
	for _, id := range ids {
		res, err := r.col.UpdateOne(ctx, bson.M{"_id": id, "status": string(expected)}, set)
		if err != nil {
			return affected, err
		}
		if res.ModifiedCount > 0 {
			affected = append(affected, id)
		}
	}
	return affected, nil
}

// Delete removes the entry only while it is owned by ownerID and still in one
// of the allowed states.
func (r *EntryRepository) Delete(ctx context.Context, id string, ownerID string, allowed []domain.EntryStatus) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	statuses := make([]string, len(allowed))
	for i, s := range allowed {
		statuses[i] = string(s)
	}

	res, err := r.col.DeleteOne(ctx, bson.M{
		"_id":      id,
		"owner_id": ownerID,
		"status":   bson.M{"$in": statuses},
	})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// List returns a page of entries matching filter plus the total count,
// newest first.
func (r *EntryRepository) List(ctx context.Context, filter ports.EntryFilter) ([]*domain.TimeEntry, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := bson.M{}
	if filter.OwnerID != "" {
		query["owner_id"] = filter.OwnerID
	}
	if filter.Status != "" {
		query["status"] = filter.Status
	}
	if filter.PeriodID != "" {
		query["time_period_id"] = filter.PeriodID
	}
	if filter.ProjectID != "" {
		query["project_id"] = filter.ProjectID
	}
	dateRange := bson.M{}
	if !filter.DateFrom.IsZero() {
		dateRange["$gte"] = filter.DateFrom.Format(dateLayout)
	}
	if !filter.DateTo.IsZero() {
		dateRange["$lte"] = filter.DateTo.Format(dateLayout)
	}
	if len(dateRange) > 0 {
		query["work_date"] = dateRange
	}

	total, err := r.col.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64((filter.Page - 1) * filter.Limit)).
		SetLimit(int64(filter.Limit))

	cur, err := r.col.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cur.Close(ctx)

	var entries []*domain.TimeEntry
	for cur.Next(ctx) {
		var d entryDoc
		if err := cur.Decode(&d); err != nil {
			return nil, 0, err
		}
		entries = append(entries, fromEntryDoc(d))
	}
	return entries, total, cur.Err()
}

// Summarize aggregates one owner's hours per status over a work date range.
func (r *EntryRepository) Summarize(ctx context.Context, ownerID string, from, to time.Time) (map[domain.EntryStatus]float64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{
			"owner_id": ownerID,
			"work_date": bson.M{
				"$gte": from.Format(dateLayout),
				"$lte": to.Format(dateLayout),
			},
		}}},
		{{Key: "$group", Value: bson.M{
			"_id":   "$status",
			"total": bson.M{"$sum": "$hours"},
		}}},
	}

	cur, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := make(map[domain.EntryStatus]float64)
	for cur.Next(ctx) {
		var row struct {
			Status string  `bson:"_id"`
			Total  float64 `bson:"total"`
		}
		if err := cur.Decode(&row); err != nil {
			return nil, err
		}
		out[domain.EntryStatus(row.Status)] = row.Total
	}
	return out, cur.Err()
}

// EnsureIndexes creates the indexes backing the approval queue and dashboards.
func (r *EntryRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "owner_id", Value: 1}, {Key: "work_date", Value: 1}}},
		{Keys: bson.D{{Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "time_period_id", Value: 1}}},
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
