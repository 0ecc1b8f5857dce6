package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/posyandu/lansia-health/internal/core/domain"
	"github.com/posyandu/lansia-health/internal/core/ports"
)

const checkupsCollection = "checkups"

type CheckupRepository struct {
	coll *mongo.Collection
}

func NewCheckupRepository(db *mongo.Database) *CheckupRepository {
	return &CheckupRepository{coll: db.Collection(checkupsCollection)}
}

type mongoCheckup struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	ProfileID   string             `bson:"profile_id"`
	CheckedAt   time.Time          `bson:"checked_at"`
	Systolic    int                `bson:"systolic"`
	Diastolic   int                `bson:"diastolic"`
	WeightKg    float64            `bson:"weight_kg"`
	HeightCm    float64            `bson:"height_cm"`
	BloodSugar  *float64           `bson:"blood_sugar,omitempty"`
	Cholesterol *float64           `bson:"cholesterol,omitempty"`
	UricAcid    *float64           `bson:"uric_acid,omitempty"`
	Notes       string             `bson:"notes,omitempty"`
	RecordedBy  string             `bson:"recorded_by"`
	CreatedAt   time.Time          `bson:"created_at"`
}

func (r *CheckupRepository) Create(ctx context.Context, c *domain.Checkup) (*domain.Checkup, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoCheckup{
		ProfileID:   c.ProfileID,
		CheckedAt:   c.CheckedAt,
		Systolic:    c.Systolic,
		Diastolic:   c.Diastolic,
		WeightKg:    c.WeightKg,
		HeightCm:    c.HeightCm,
		BloodSugar:  c.BloodSugar,
		Cholesterol: c.Cholesterol,
		UricAcid:    c.UricAcid,
		Notes:       c.Notes,
		RecordedBy:  c.RecordedBy,
		CreatedAt:   c.CreatedAt,
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, err
	}

	created := *c
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *CheckupRepository) FindByID(ctx context.Context, id string) (*domain.Checkup, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrCheckupNotFound
	}

	var mc mongoCheckup
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&mc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrCheckupNotFound
		}
		return nil, err
	}
	return mc.toDomain(), nil
}

func (r *CheckupRepository) List(ctx context.Context, filter ports.ListCheckupsFilter) ([]*domain.Checkup, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := bson.M{"profile_id": filter.ProfileID}
	dateRange := bson.M{}
	if !filter.DateFrom.IsZero() {
		dateRange["$gte"] = filter.DateFrom
	}
	if !filter.DateTo.IsZero() {
		dateRange["$lte"] = filter.DateTo
	}
	if len(dateRange) > 0 {
		query["checked_at"] = dateRange
	}

	total, err := r.coll.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "checked_at", Value: -1}}).
		SetSkip(int64((filter.Page - 1) * filter.Limit)).
		SetLimit(int64(filter.Limit))

	cur, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cur.Close(ctx)

	var checkups []*domain.Checkup
	for cur.Next(ctx) {
		var mc mongoCheckup
		if err := cur.Decode(&mc); err != nil {
			return nil, 0, err
		}
		checkups = append(checkups, mc.toDomain())
	}
	if err := cur.Err(); err != nil {
		return nil, 0, err
	}
	return checkups, total, nil
}

// AggregateMonth computes the monthly report in a single pipeline.
func (r *CheckupRepository) AggregateMonth(ctx context.Context, year, month int) (*ports.MonthlyReport, error) {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	from := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0)

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{
			"checked_at": bson.M{"$gte": from, "$lt": to},
		}}},
		{{Key: "$group", Value: bson.M{
			"_id":            nil,
			"checkup_count":  bson.M{"$sum": 1},
			"profiles":       bson.M{"$addToSet": "$profile_id"},
			"avg_systolic":   bson.M{"$avg": "$systolic"},
			"avg_diastolic":  bson.M{"$avg": "$diastolic"},
			"avg_bloodsugar": bson.M{"$avg": "$blood_sugar"},
			"hypertensive": bson.M{"$sum": bson.M{
				"$cond": bson.A{bson.M{"$gte": bson.A{"$systolic", 140}}, 1, 0},
			}},
		}}},
	}

	cur, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	report := &ports.MonthlyReport{Year: year, Month: month}
	if cur.Next(ctx) {
		var row struct {
			CheckupCount  int64    `bson:"checkup_count"`
			Profiles      []string `bson:"profiles"`
			AvgSystolic   float64  `bson:"avg_systolic"`
			AvgDiastolic  float64  `bson:"avg_diastolic"`
			AvgBloodSugar float64  `bson:"avg_bloodsugar"`
			Hypertensive  int64    `bson:"hypertensive"`
		}
		if err := cur.Decode(&row); err != nil {
			return nil, err
		}
		report.CheckupCount = row.CheckupCount
		report.ProfilesSeen = int64(len(row.Profiles))
		report.AvgSystolic = row.AvgSystolic
		report.AvgDiastolic = row.AvgDiastolic
		report.AvgBloodSugar = row.AvgBloodSugar
		report.HypertensiveHits = row.Hypertensive
	}
	if err := cur.Err(); err != nil {
		return nil, err
	}
	return report, nil
}

// EnsureIndexes creates indexes used by per-profile listing and the monthly
// aggregation match stage.
func (r *CheckupRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "profile_id", Value: 1}, {Key: "checked_at", Value: -1}}},
		{Keys: bson.D{{Key: "checked_at", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}

func (mc *mongoCheckup) toDomain() *domain.Checkup {
	return &domain.Checkup{
		ID:          mc.ID.Hex(),
		ProfileID:   mc.ProfileID,
		CheckedAt:   mc.CheckedAt,
		Systolic:    mc.Systolic,
		Diastolic:   mc.Diastolic,
		WeightKg:    mc.WeightKg,
		HeightCm:    mc.HeightCm,
		BloodSugar:  mc.BloodSugar,
		Cholesterol: mc.Cholesterol,
		UricAcid:    mc.UricAcid,
		Notes:       mc.Notes,
		RecordedBy:  mc.RecordedBy,
		CreatedAt:   mc.CreatedAt,
	}
}
