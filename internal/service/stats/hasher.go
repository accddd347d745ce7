package stats

import (
	"cmp"
	"encoding/hex"
	"slices"
	"strings"

	"github.com/cmlabs-hris/worktime-stats/internal/domain/attendance"
	"golang.org/x/crypto/blake2b"
)

const hashFormatVersion = "v1"

// Hash digests an employee's month of attendance. The digest is independent
// of input order and changes whenever any field that feeds classification or
// status counting changes.
func Hash(records []attendance.Record) string {
	lines := make([]string, 0, len(records))
	for _, rec := range records {
		lines = append(lines, canonicalLine(rec))
	}
	slices.SortFunc(lines, cmp.Compare[string])

	var b strings.Builder
	b.WriteString(hashFormatVersion)
	b.WriteByte('\n')
	for _, l := range lines {
		b.WriteString(l)
		b.WriteByte('\n')
	}

	sum := blake2b.Sum256([]byte(b.String()))
	return hex.EncodeToString(sum[:])
}

func canonicalLine(rec attendance.Record) string {
	holiday := "0"
	if rec.IsHoliday {
		holiday = "1"
	}
	return strings.Join([]string{
		rec.EmployeeID,
		rec.Date.Format("2006-01-02"),
		rec.CheckIn,
		rec.CheckOut,
		string(rec.Status),
		string(rec.ShiftType),
		string(rec.SalaryType),
		holiday,
	}, "|")
}
