package analytics

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/noah-isme/attendance-insights-api/internal/models"
)

// Summarize reduces a filtered collection into an AnalyticsSnapshot without
// trends. Rates are clamped to [0, 100] and every division is guarded: a zero
// denominator yields 0, never NaN.
func Summarize(records []models.AttendanceRecord, recordType models.RecordType) models.AnalyticsSnapshot {
	snapshot := models.AnalyticsSnapshot{
		Type:        recordType,
		TotalCount:  len(records),
		Departments: make(map[string]models.DepartmentStat),
	}

	type deptAcc struct {
		code      string
		count     int
		rateTotal float64
	}
	departments := make(map[string]*deptAcc)
	riskCounts := make(map[models.RiskLevel]int)

	for _, record := range records {
		snapshot.AttendedTotal += record.Attended
		snapshot.AbsentTotal += record.Absent
		snapshot.LateTotal += record.Late
		snapshot.ClassesTotal += record.TotalClasses

		acc, ok := departments[record.Department]
		if !ok {
			acc = &deptAcc{code: departmentCode(record)}
			departments[record.Department] = acc
		}
		acc.count++
		acc.rateTotal += clampRate(record.AttendanceRate, 100)

		level := record.RiskLevel
		if !level.Valid() {
			level = models.RiskNone
		}
		riskCounts[level]++
	}

	snapshot.AttendanceRate = ratio(snapshot.AttendedTotal, snapshot.ClassesTotal)
	snapshot.LateRate = clampRate(ratio(snapshot.LateTotal, snapshot.ClassesTotal), maxLateRate)

	for name, acc := range departments {
		rate := 0.0
		if acc.count > 0 {
			rate = clampRate(acc.rateTotal/float64(acc.count), 100)
		}
		snapshot.Departments[name] = models.DepartmentStat{
			Name:           name,
			Code:           acc.code,
			Count:          acc.count,
			AttendanceRate: rate,
		}
	}

	for _, level := range models.RiskLevelOrder() {
		count := riskCounts[level]
		if count == 0 {
			continue
		}
		snapshot.RiskLevels = append(snapshot.RiskLevels, models.RiskBucket{
			Level: level,
			Count: count,
			Color: level.Color(),
		})
	}
	sort.SliceStable(snapshot.RiskLevels, func(i, j int) bool {
		return snapshot.RiskLevels[i].Level.LessSevere(snapshot.RiskLevels[j].Level)
	})

	return snapshot
}

// maxLateRate is the display ceiling for late rates; the chart layer renders
// them on a narrower axis than attendance rates.
const maxLateRate = 25.0

func departmentCode(record models.AttendanceRecord) string {
	if record.DepartmentCode != "" {
		return record.DepartmentCode
	}
	// Fallback: initials of the department label.
	var b strings.Builder
	for _, word := range strings.Fields(record.Department) {
		first, _ := utf8.DecodeRuneInString(word)
		b.WriteRune(unicode.ToUpper(first))
	}
	return b.String()
}

// ratio returns part/whole as a percentage, 0 when whole is 0.
func ratio(part, whole int) float64 {
	if whole <= 0 {
		return 0
	}
	return clampRate(float64(part)/float64(whole)*100, 100)
}

func clampRate(value, max float64) float64 {
	if value < 0 {
		return 0
	}
	if value > max {
		return max
	}
	return value
}
