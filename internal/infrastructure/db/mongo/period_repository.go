package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/timecardhq/timecard-api/internal/core/domain"
)

const collectionPeriods = "time_periods"

// PeriodRepository implements the read-only period registry. Periods are
// seeded out of band; the engine never writes here.
type PeriodRepository struct {
	col *mongo.Collection
}

func NewPeriodRepository(db *mongo.Database) *PeriodRepository {
	return &PeriodRepository{col: db.Collection(collectionPeriods)}
}

type periodDoc struct {
	ID           string `bson:"_id"`
	Label        string `bson:"period_name"`
	StartDate    string `bson:"start_date"`
	EndDate      string `bson:"end_date"`
	DeadlineDate string `bson:"deadline_date"`
	PaydayDate   string `bson:"payday_date"`
	Year         int    `bson:"year"`
	Sequence     int    `bson:"period_number"`
}

func fromPeriodDoc(d periodDoc) *domain.TimePeriod {
	parse := func(s string) time.Time {
		t, _ := time.ParseInLocation(dateLayout, s, time.UTC)
		return t
	}
	return &domain.TimePeriod{
		ID:           d.ID,
		Label:        d.Label,
		StartDate:    parse(d.StartDate),
		EndDate:      parse(d.EndDate),
		DeadlineDate: parse(d.DeadlineDate),
		PaydayDate:   parse(d.PaydayDate),
		Year:         d.Year,
		Sequence:     d.Sequence,
	}
}

func (r *PeriodRepository) FindByID(ctx context.Context, id string) (*domain.TimePeriod, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var d periodDoc
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&d); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrPeriodNotFound
		}
		return nil, err
	}
	return fromPeriodDoc(d), nil
}

// FindForDate returns the period whose window contains d.
func (r *PeriodRepository) FindForDate(ctx context.Context, d time.Time) (*domain.TimePeriod, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	day := d.Format(dateLayout)
	filter := bson.M{
		"start_date": bson.M{"$lte": day},
		"end_date":   bson.M{"$gte": day},
	}

	var doc periodDoc
	if err := r.col.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrPeriodNotFound
		}
		return nil, err
	}
	return fromPeriodDoc(doc), nil
}

// List returns periods ordered by start date, optionally scoped to a year.
func (r *PeriodRepository) List(ctx context.Context, year int) ([]*domain.TimePeriod, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{}
	if year > 0 {
		filter["year"] = year
	}

	opts := options.Find().SetSort(bson.D{{Key: "start_date", Value: 1}})
	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var periods []*domain.TimePeriod
	for cur.Next(ctx) {
		var d periodDoc
		if err := cur.Decode(&d); err != nil {
			return nil, err
		}
		periods = append(periods, fromPeriodDoc(d))
	}
	return periods, cur.Err()
}

// EnsureIndexes creates the date range index used by FindForDate.
func (r *PeriodRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "start_date", Value: 1}, {Key: "end_date", Value: 1}}},
		{Keys: bson.D{{Key: "year", Value: 1}, {Key: "period_number", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
