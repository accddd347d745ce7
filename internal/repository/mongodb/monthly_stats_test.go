package mongodb

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/cmlabs-hris/worktime-stats/internal/domain/stats"
	"github.com/cmlabs-hris/worktime-stats/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleStats(employeeID string) stats.MonthlyStats {
	return stats.MonthlyStats{
		EmployeeID:            employeeID,
		Year:                  2031,
		Month:                 3,
		RegularHours:          decimal.RequireFromString("152.5"),
		EarlyHours:            decimal.RequireFromString("3.25"),
		OvertimeHours:         decimal.RequireFromString("12.33"),
		NightHours:            decimal.RequireFromString("4"),
		HolidayHours:          decimal.Zero,
		TotalWorkMinutes:      10250,
		WorkDays:              20,
		LateDays:              2,
		AbsentDays:            1,
		SkippedRecordCount:    1,
		AttendanceHash:        "abc123",
		AttendanceRecordCount: 23,
		LastCalculatedAt:      time.Date(2031, time.April, 1, 2, 0, 0, 0, time.UTC),
	}
}

func TestDocumentConversion_KeepsHourPrecision(t *testing.T) {
	doc, err := toDocument(sampleStats("emp-a"))
	require.NoError(t, err)
	assert.Equal(t, "152.50", doc.RegularHours.String())
	assert.Equal(t, "0.00", doc.HolidayHours.String())

	back, err := fromDocument(doc)
	require.NoError(t, err)
	assert.Equal(t, "152.50", back.RegularHours.StringFixed(2))
	assert.Equal(t, "12.33", back.OvertimeHours.StringFixed(2))
	assert.Equal(t, "4.00", back.NightHours.StringFixed(2))
	assert.Empty(t, back.ID)
}

func TestDocumentConversion_RejectsBadID(t *testing.T) {
	s := sampleStats("emp-a")
	s.ID = "not-an-object-id"
	_, err := toDocument(s)
	assert.Error(t, err)
}

func openTestMongo(t *testing.T) *database.MongoDB {
	t.Helper()

	uri := os.Getenv("TEST_MONGODB_URI")
	if uri == "" {
		t.Skip("TEST_MONGODB_URI not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := database.NewMongoDB(ctx, uri, "worktime_stats_test_"+uuid.NewString()[:8], 4)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = db.Database.Drop(context.Background())
		_ = db.Close(context.Background())
	})
	return db
}

func TestMonthlyStatsRepository_Mongo(t *testing.T) {
	db := openTestMongo(t)
	ctx := context.Background()

	repo, err := NewMonthlyStatsRepository(ctx, db)
	require.NoError(t, err)
	require.NoError(t, repo.Ping(ctx))

	got, err := repo.FindOne(ctx, "emp-a", 2031, 3)
	require.NoError(t, err)
	assert.Nil(t, got)

	s := sampleStats("emp-a")
	inserted, err := repo.Upsert(ctx, s)
	require.NoError(t, err)
	assert.True(t, inserted)

	s.AttendanceHash = "def456"
	inserted, err = repo.Upsert(ctx, s)
	require.NoError(t, err)
	assert.False(t, inserted)

	got, err = repo.FindOne(ctx, "emp-a", 2031, 3)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.NotEmpty(t, got.ID)
	assert.Equal(t, "def456", got.AttendanceHash)
	assert.Equal(t, "152.50", got.RegularHours.StringFixed(2))
	assert.Equal(t, 20, got.WorkDays)

	_, err = repo.Upsert(ctx, sampleStats("emp-0"))
	require.NoError(t, err)

	list, err := repo.ListByMonth(ctx, 2031, 3)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "emp-0", list[0].EmployeeID)
	assert.Equal(t, "emp-a", list[1].EmployeeID)
}
