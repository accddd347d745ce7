package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/worktime-stats/internal/domain/stats"
	"github.com/cmlabs-hris/worktime-stats/internal/pkg/database"
	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const MonthlyStatsCollection = "monthly_stats"

type monthlyStatsDocument struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	EmployeeID string             `bson:"employee_id"`
	Year       int                `bson:"year"`
	Month      int                `bson:"month"`

	RegularHours     primitive.Decimal128 `bson:"regular_hours"`
	EarlyHours       primitive.Decimal128 `bson:"early_hours"`
	OvertimeHours    primitive.Decimal128 `bson:"overtime_hours"`
	NightHours       primitive.Decimal128 `bson:"night_hours"`
	HolidayHours     primitive.Decimal128 `bson:"holiday_hours"`
	TotalWorkMinutes int                  `bson:"total_work_minutes"`

	WorkDays          int `bson:"work_days"`
	LateDays          int `bson:"late_days"`
	EarlyLeaveDays    int `bson:"early_leave_days"`
	AbsentDays        int `bson:"absent_days"`
	AnnualLeaveDays   int `bson:"annual_leave_days"`
	MorningHalfDays   int `bson:"morning_half_days"`
	AfternoonHalfDays int `bson:"afternoon_half_days"`

	SkippedRecordCount    int       `bson:"skipped_record_count"`
	AttendanceHash        string    `bson:"attendance_hash"`
	AttendanceRecordCount int       `bson:"attendance_record_count"`
	LastCalculatedAt      time.Time `bson:"last_calculated_at"`

	CreatedAt time.Time `bson:"created_at"`
	UpdatedAt time.Time `bson:"updated_at"`
}

type monthlyStatsRepository struct {
	db   *database.MongoDB
	coll *mongo.Collection
}

// NewMonthlyStatsRepository returns a document-backed stats store and makes
// sure the (employee_id, year, month) unique index exists.
func NewMonthlyStatsRepository(ctx context.Context, db *database.MongoDB) (stats.Repository, error) {
	coll := db.Database.Collection(MonthlyStatsCollection)

	_, err := coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "employee_id", Value: 1},
			{Key: "year", Value: 1},
			{Key: "month", Value: 1},
		},
		Options: options.Index().SetUnique(true).SetName("employee_period_unique"),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create monthly stats index: %w", err)
	}

	return &monthlyStatsRepository{db: db, coll: coll}, nil
}

func periodFilter(employeeID string, year, month int) bson.D {
	return bson.D{
		{Key: "employee_id", Value: employeeID},
		{Key: "year", Value: year},
		{Key: "month", Value: month},
	}
}

// Ping implements stats.Repository.
func (r *monthlyStatsRepository) Ping(ctx context.Context) error {
	return r.db.Ping(ctx)
}

// FindOne implements stats.Repository.
func (r *monthlyStatsRepository) FindOne(ctx context.Context, employeeID string, year, month int) (*stats.MonthlyStats, error) {
	var doc monthlyStatsDocument
	err := r.coll.FindOne(ctx, periodFilter(employeeID, year, month)).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get monthly stats: %w", err)
	}

	s, err := fromDocument(doc)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Upsert implements stats.Repository.
func (r *monthlyStatsRepository) Upsert(ctx context.Context, s stats.MonthlyStats) (bool, error) {
	doc, err := toDocument(s)
	if err != nil {
		return false, err
	}
	now := time.Now().UTC()

	update := bson.D{
		{Key: "$set", Value: bson.D{
			{Key: "regular_hours", Value: doc.RegularHours},
			{Key: "early_hours", Value: doc.EarlyHours},
			{Key: "overtime_hours", Value: doc.OvertimeHours},
			{Key: "night_hours", Value: doc.NightHours},
			{Key: "holiday_hours", Value: doc.HolidayHours},
			{Key: "total_work_minutes", Value: doc.TotalWorkMinutes},
			{Key: "work_days", Value: doc.WorkDays},
			{Key: "late_days", Value: doc.LateDays},
			{Key: "early_leave_days", Value: doc.EarlyLeaveDays},
			{Key: "absent_days", Value: doc.AbsentDays},
			{Key: "annual_leave_days", Value: doc.AnnualLeaveDays},
			{Key: "morning_half_days", Value: doc.MorningHalfDays},
			{Key: "afternoon_half_days", Value: doc.AfternoonHalfDays},
			{Key: "skipped_record_count", Value: doc.SkippedRecordCount},
			{Key: "attendance_hash", Value: doc.AttendanceHash},
			{Key: "attendance_record_count", Value: doc.AttendanceRecordCount},
			{Key: "last_calculated_at", Value: doc.LastCalculatedAt},
			{Key: "updated_at", Value: now},
		}},
		{Key: "$setOnInsert", Value: bson.D{
			{Key: "created_at", Value: now},
		}},
	}

	filter := periodFilter(s.EmployeeID, s.Year, s.Month)
	opts := options.Update().SetUpsert(true)

	res, err := r.coll.UpdateOne(ctx, filter, update, opts)
	if mongo.IsDuplicateKeyError(err) {
		// a concurrent upsert inserted the key first; this one now matches it
		res, err = r.coll.UpdateOne(ctx, filter, update, opts)
	}
	if err != nil {
		return false, fmt.Errorf("failed to upsert monthly stats: %w", err)
	}
	return res.UpsertedCount > 0, nil
}

// ListByMonth implements stats.Repository.
func (r *monthlyStatsRepository) ListByMonth(ctx context.Context, year, month int) ([]stats.MonthlyStats, error) {
	filter := bson.D{{Key: "year", Value: year}, {Key: "month", Value: month}}
	cur, err := r.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "employee_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to list monthly stats: %w", err)
	}

	var docs []monthlyStatsDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode monthly stats: %w", err)
	}

	result := make([]stats.MonthlyStats, 0, len(docs))
	for _, doc := range docs {
		s, err := fromDocument(doc)
		if err != nil {
			return nil, err
		}
		result = append(result, s)
	}
	return result, nil
}

func toDocument(s stats.MonthlyStats) (monthlyStatsDocument, error) {
	doc := monthlyStatsDocument{
		EmployeeID:            s.EmployeeID,
		Year:                  s.Year,
		Month:                 s.Month,
		TotalWorkMinutes:      s.TotalWorkMinutes,
		WorkDays:              s.WorkDays,
		LateDays:              s.LateDays,
		EarlyLeaveDays:        s.EarlyLeaveDays,
		AbsentDays:            s.AbsentDays,
		AnnualLeaveDays:       s.AnnualLeaveDays,
		MorningHalfDays:       s.MorningHalfDays,
		AfternoonHalfDays:     s.AfternoonHalfDays,
		SkippedRecordCount:    s.SkippedRecordCount,
		AttendanceHash:        s.AttendanceHash,
		AttendanceRecordCount: s.AttendanceRecordCount,
		LastCalculatedAt:      s.LastCalculatedAt,
		CreatedAt:             s.CreatedAt,
		UpdatedAt:             s.UpdatedAt,
	}
	if s.ID != "" {
		id, err := primitive.ObjectIDFromHex(s.ID)
		if err != nil {
			return monthlyStatsDocument{}, fmt.Errorf("invalid monthly stats id %q: %w", s.ID, err)
		}
		doc.ID = id
	}

	fields := []struct {
		dst *primitive.Decimal128
		src decimal.Decimal
	}{
		{&doc.RegularHours, s.RegularHours},
		{&doc.EarlyHours, s.EarlyHours},
		{&doc.OvertimeHours, s.OvertimeHours},
		{&doc.NightHours, s.NightHours},
		{&doc.HolidayHours, s.HolidayHours},
	}
	for _, f := range fields {
		d, err := primitive.ParseDecimal128(f.src.StringFixed(2))
		if err != nil {
			return monthlyStatsDocument{}, fmt.Errorf("failed to encode hours %s: %w", f.src, err)
		}
		*f.dst = d
	}

	return doc, nil
}

func fromDocument(doc monthlyStatsDocument) (stats.MonthlyStats, error) {
	s := stats.MonthlyStats{
		EmployeeID:            doc.EmployeeID,
		Year:                  doc.Year,
		Month:                 doc.Month,
		TotalWorkMinutes:      doc.TotalWorkMinutes,
		WorkDays:              doc.WorkDays,
		LateDays:              doc.LateDays,
		EarlyLeaveDays:        doc.EarlyLeaveDays,
		AbsentDays:            doc.AbsentDays,
		AnnualLeaveDays:       doc.AnnualLeaveDays,
		MorningHalfDays:       doc.MorningHalfDays,
		AfternoonHalfDays:     doc.AfternoonHalfDays,
		SkippedRecordCount:    doc.SkippedRecordCount,
		AttendanceHash:        doc.AttendanceHash,
		AttendanceRecordCount: doc.AttendanceRecordCount,
		LastCalculatedAt:      doc.LastCalculatedAt,
		CreatedAt:             doc.CreatedAt,
		UpdatedAt:             doc.UpdatedAt,
	}
	if !doc.ID.IsZero() {
		s.ID = doc.ID.Hex()
	}

	fields := []struct {
		dst *decimal.Decimal
		src primitive.Decimal128
	}{
		{&s.RegularHours, doc.RegularHours},
		{&s.EarlyHours, doc.EarlyHours},
		{&s.OvertimeHours, doc.OvertimeHours},
		{&s.NightHours, doc.NightHours},
		{&s.HolidayHours, doc.HolidayHours},
	}
	for _, f := range fields {
		d, err := decimal.NewFromString(f.src.String())
		if err != nil {
			return stats.MonthlyStats{}, fmt.Errorf("failed to decode hours %s: %w", f.src, err)
		}
		*f.dst = d
	}

	return s, nil
}
