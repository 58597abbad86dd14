package analytics

import (
	"time"

	"github.com/noah-isme/attendance-insights-api/internal/models"
)

// ComputeSnapshot runs the full filter -> aggregate -> trend pipeline over a
// raw record collection. It returns nil only when the input collection is
// empty before any filtering; a collection emptied by preset-range filtering
// yields a non-nil snapshot with TotalCount 0 so callers can distinguish "no
// data at all" from "nothing matched".
func ComputeSnapshot(records []models.AttendanceRecord, recordType models.RecordType, opts FilterOptions, now time.Time) *models.AnalyticsSnapshot {
	if len(records) == 0 {
		return nil
	}
	filtered := FilterRecords(records, opts, now)
	snapshot := Summarize(filtered, recordType)
	snapshot.Trends = CalculateTrends(snapshot)
	return &snapshot
}
