package analytics

import (
	"log/slog"
	"math"
	"sort"
	"strconv"
	"time"

	"github.com/sebastian-gm/hr-data-insights/pkg/contracts/domain"
)

// DefaultMinimumAge is the aggregate-view age filter: records with a derived
// age below this (age absent passes) are excluded from every view.
const DefaultMinimumAge = 18

// Age band edges and labels used by the distribution views. The final band
// is open-ended.
var (
	ageBandBounds = []int{18, 25, 35, 45, 55, 65}
	ageBandLabels = []string{"18-24", "25-34", "35-44", "45-54", "55-64", "65+"}
)

// CountRow is one group-by bucket: a key and how many employees fall in it.
type CountRow struct {
	Key           string `json:"key"`
	EmployeeCount int    `json:"employee_count"`
}

// AgeGenderRow is one bucket of the age-band x gender cross-tab.
type AgeGenderRow struct {
	AgeBand       string `json:"age_band"`
	Gender        string `json:"gender"`
	EmployeeCount int    `json:"employee_count"`
}

// DepartmentGenderRow is one bucket of the department x gender cross-tab.
type DepartmentGenderRow struct {
	Department    string `json:"department"`
	Gender        string `json:"gender"`
	EmployeeCount int    `json:"employee_count"`
}

// AgeDistribution summarizes the age spread of the workforce.
type AgeDistribution struct {
	Youngest int        `json:"youngest"`
	Oldest   int        `json:"oldest"`
	ByDecade []CountRow `json:"by_decade"`
	ByBand   []CountRow `json:"by_band"`
}

// TurnoverRow is one department's headcount and turnover summary.
type TurnoverRow struct {
	Department      string  `json:"department"`
	TotalHeadcount  int     `json:"total_headcount"`
	TerminatedCount int     `json:"terminated_count"`
	ActiveCount     int     `json:"active_count"`
	TurnoverRate    float64 `json:"turnover_rate"`
}

// TenureRow is one department's average terminated tenure.
type TenureRow struct {
	Department      string  `json:"department"`
	AvgTenureYears  float64 `json:"avg_tenure_years"`
	TerminatedCount int     `json:"terminated_count"`
}

// TrendRow is one calendar year of the headcount trend.
type TrendRow struct {
	Year             int      `json:"year"`
	Hires            int      `json:"hires"`
	Terminations     int      `json:"terminations"`
	NetChange        int      `json:"net_change"`
	NetChangePercent *float64 `json:"net_change_percent,omitempty"`
}

// Report bundles every aggregate view over one canonical table.
type Report struct {
	GenderBreakdown              []CountRow            `json:"gender_breakdown"`
	RaceBreakdown                []CountRow            `json:"race_breakdown"`
	AgeDistribution              *AgeDistribution      `json:"age_distribution"`
	AgeGenderBreakdown           []AgeGenderRow        `json:"age_gender_breakdown"`
	LocationDistribution         []CountRow            `json:"location_distribution"`
	LocationStateDistribution    []CountRow            `json:"location_state_distribution"`
	JobTitleDistribution         []CountRow            `json:"jobtitle_distribution"`
	DepartmentGenderDistribution []DepartmentGenderRow `json:"department_gender_distribution"`
	AverageTerminatedTenure      *float64              `json:"average_terminated_tenure,omitempty"`
	DepartmentTurnover           []TurnoverRow         `json:"department_turnover"`
	DepartmentTenureDistribution []TenureRow           `json:"department_tenure_distribution"`
	HeadcountTrend               []TrendRow            `json:"headcount_trend"`
}

// Analyzer computes the aggregate views the BI layer consumes. Every view is
// a pure group-by over the canonical table filtered to adult employees;
// "terminated" always means a termination date on or before the reference
// date, so future-dated terminations count as active.
type Analyzer struct {
	logger     *slog.Logger
	minimumAge int
}

// Config holds configuration options for the Analyzer.
type Config struct {
	MinimumAge int // Aggregate-view age filter; 0 means DefaultMinimumAge
}

// NewAnalyzer creates an analyzer with the given configuration.
func NewAnalyzer(logger *slog.Logger, config Config) *Analyzer {
	if logger == nil {
		logger = slog.Default()
	}
	if config.MinimumAge <= 0 {
		config.MinimumAge = DefaultMinimumAge
	}
	return &Analyzer{
		logger:     logger,
		minimumAge: config.MinimumAge,
	}
}

// Generate computes every view over the canonical table.
func (a *Analyzer) Generate(records []domain.EmployeeRecord, asOf time.Time) *Report {
	adults := a.filterAdults(records)
	a.logger.Debug("generating analytics report",
		slog.Int("record_count", len(records)),
		slog.Int("adult_count", len(adults)))

	return &Report{
		GenderBreakdown:              countBy(adults, func(e *domain.EmployeeRecord) string { return e.Gender }, byKey),
		RaceBreakdown:                countBy(adults, func(e *domain.EmployeeRecord) string { return e.Race }, byCountDesc),
		AgeDistribution:              a.ageDistribution(adults),
		AgeGenderBreakdown:           a.ageGenderBreakdown(adults),
		LocationDistribution:         countBy(adults, func(e *domain.EmployeeRecord) string { return e.Location }, byCountDesc),
		LocationStateDistribution:    countBy(adults, func(e *domain.EmployeeRecord) string { return e.LocationState }, byCountDesc),
		JobTitleDistribution:         countBy(adults, func(e *domain.EmployeeRecord) string { return e.JobTitle }, byCountDesc),
		DepartmentGenderDistribution: a.departmentGenderDistribution(adults),
		AverageTerminatedTenure:      a.averageTerminatedTenure(adults, asOf),
		DepartmentTurnover:           a.departmentTurnover(adults, asOf),
		DepartmentTenureDistribution: a.departmentTenureDistribution(adults, asOf),
		HeadcountTrend:               a.headcountTrend(adults, asOf),
	}
}

// filterAdults applies the aggregate-view age filter. Records without a
// derived age stay in: absence is not evidence of being underage.
func (a *Analyzer) filterAdults(records []domain.EmployeeRecord) []domain.EmployeeRecord {
	adults := make([]domain.EmployeeRecord, 0, len(records))
	for _, record := range records {
		if record.Adult(a.minimumAge) {
			adults = append(adults, record)
		}
	}
	return adults
}

type sortOrder int

const (
	byKey sortOrder = iota
	byCountDesc
)

// countBy groups records by a string key. Absent keys bucket under "".
func countBy(records []domain.EmployeeRecord, key func(*domain.EmployeeRecord) string, order sortOrder) []CountRow {
	counts := make(map[string]int)
	for i := range records {
		counts[key(&records[i])]++
	}

	rows := make([]CountRow, 0, len(counts))
	for k, n := range counts {
		rows = append(rows, CountRow{Key: k, EmployeeCount: n})
	}
	sort.Slice(rows, func(i, j int) bool {
		if order == byCountDesc && rows[i].EmployeeCount != rows[j].EmployeeCount {
			return rows[i].EmployeeCount > rows[j].EmployeeCount
		}
		return rows[i].Key < rows[j].Key
	})
	return rows
}

// ageBand returns the distribution label for an age at or above the minimum.
func ageBand(age int) string {
	for i := len(ageBandBounds) - 1; i >= 0; i-- {
		if age >= ageBandBounds[i] {
			return ageBandLabels[i]
		}
	}
	return ageBandLabels[0]
}

func (a *Analyzer) ageDistribution(adults []domain.EmployeeRecord) *AgeDistribution {
	dist := &AgeDistribution{
		Youngest: math.MaxInt,
		Oldest:   math.MinInt,
	}
	decades := make(map[string]int)
	bands := make(map[string]int)
	aged := 0

	for i := range adults {
		if adults[i].Age == nil {
			continue
		}
		age := *adults[i].Age
		aged++
		if age < dist.Youngest {
			dist.Youngest = age
		}
		if age > dist.Oldest {
			dist.Oldest = age
		}
		decades[decadeLabel(age)]++
		bands[ageBand(age)]++
	}
	if aged == 0 {
		return &AgeDistribution{}
	}

	dist.ByDecade = mapToRows(decades)
	dist.ByBand = mapToRows(bands)
	return dist
}

func decadeLabel(age int) string {
	return strconv.Itoa((age/10)*10) + "s"
}

func mapToRows(counts map[string]int) []CountRow {
	rows := make([]CountRow, 0, len(counts))
	for k, n := range counts {
		rows = append(rows, CountRow{Key: k, EmployeeCount: n})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Key < rows[j].Key })
	return rows
}

func (a *Analyzer) ageGenderBreakdown(adults []domain.EmployeeRecord) []AgeGenderRow {
	type bucket struct{ band, gender string }
	counts := make(map[bucket]int)
	for i := range adults {
		if adults[i].Age == nil {
			continue
		}
		counts[bucket{band: ageBand(*adults[i].Age), gender: adults[i].Gender}]++
	}

	rows := make([]AgeGenderRow, 0, len(counts))
	for b, n := range counts {
		rows = append(rows, AgeGenderRow{AgeBand: b.band, Gender: b.gender, EmployeeCount: n})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].AgeBand != rows[j].AgeBand {
			return rows[i].AgeBand < rows[j].AgeBand
		}
		return rows[i].Gender < rows[j].Gender
	})
	return rows
}

func (a *Analyzer) departmentGenderDistribution(adults []domain.EmployeeRecord) []DepartmentGenderRow {
	type bucket struct{ department, gender string }
	counts := make(map[bucket]int)
	for i := range adults {
		counts[bucket{department: adults[i].Department, gender: adults[i].Gender}]++
	}

	rows := make([]DepartmentGenderRow, 0, len(counts))
	for b, n := range counts {
		rows = append(rows, DepartmentGenderRow{Department: b.department, Gender: b.gender, EmployeeCount: n})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Department != rows[j].Department {
			return rows[i].Department < rows[j].Department
		}
		return rows[i].Gender < rows[j].Gender
	})
	return rows
}

// averageTerminatedTenure computes the mean years between hire and
// termination over terminated employees, rounded to two decimals. Nil when
// nobody has terminated yet.
func (a *Analyzer) averageTerminatedTenure(adults []domain.EmployeeRecord, asOf time.Time) *float64 {
	var totalDays float64
	count := 0
	for i := range adults {
		record := &adults[i]
		if !record.Terminated(asOf) || record.HireDate == nil {
			continue
		}
		totalDays += record.TermDate.Sub(*record.HireDate).Hours() / 24
		count++
	}
	if count == 0 {
		return nil
	}
	avg := math.Round(totalDays/float64(count)/365.25*100) / 100
	return &avg
}

func (a *Analyzer) departmentTurnover(adults []domain.EmployeeRecord, asOf time.Time) []TurnoverRow {
	type tally struct{ total, terminated int }
	counts := make(map[string]*tally)
	for i := range adults {
		record := &adults[i]
		t := counts[record.Department]
		if t == nil {
			t = &tally{}
			counts[record.Department] = t
		}
		t.total++
		if record.Terminated(asOf) {
			t.terminated++
		}
	}

	rows := make([]TurnoverRow, 0, len(counts))
	for department, t := range counts {
		rows = append(rows, TurnoverRow{
			Department:      department,
			TotalHeadcount:  t.total,
			TerminatedCount: t.terminated,
			ActiveCount:     t.total - t.terminated,
			TurnoverRate:    float64(t.terminated) / float64(t.total),
		})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].TurnoverRate != rows[j].TurnoverRate {
			return rows[i].TurnoverRate > rows[j].TurnoverRate
		}
		return rows[i].Department < rows[j].Department
	})
	return rows
}

func (a *Analyzer) departmentTenureDistribution(adults []domain.EmployeeRecord, asOf time.Time) []TenureRow {
	type tally struct {
		days  float64
		count int
	}
	counts := make(map[string]*tally)
	for i := range adults {
		record := &adults[i]
		if !record.Terminated(asOf) || record.HireDate == nil {
			continue
		}
		t := counts[record.Department]
		if t == nil {
			t = &tally{}
			counts[record.Department] = t
		}
		t.days += record.TermDate.Sub(*record.HireDate).Hours() / 24
		t.count++
	}

	rows := make([]TenureRow, 0, len(counts))
	for department, t := range counts {
		rows = append(rows, TenureRow{
			Department:      department,
			AvgTenureYears:  math.Round(t.days/float64(t.count)/365.25*10) / 10,
			TerminatedCount: t.count,
		})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Department < rows[j].Department })
	return rows
}

// headcountTrend tallies hires and terminations per calendar year and the
// resulting net change. Percent change is relative to that year's hires and
// omitted when there were none.
func (a *Analyzer) headcountTrend(adults []domain.EmployeeRecord, asOf time.Time) []TrendRow {
	hires := make(map[int]int)
	terms := make(map[int]int)
	years := make(map[int]bool)

	for i := range adults {
		record := &adults[i]
		if record.HireDate != nil {
			year := record.HireDate.Year()
			hires[year]++
			years[year] = true
		}
		if record.Terminated(asOf) {
			year := record.TermDate.Year()
			terms[year]++
			years[year] = true
		}
	}

	ordered := make([]int, 0, len(years))
	for year := range years {
		ordered = append(ordered, year)
	}
	sort.Ints(ordered)

	rows := make([]TrendRow, 0, len(ordered))
	for _, year := range ordered {
		row := TrendRow{
			Year:         year,
			Hires:        hires[year],
			Terminations: terms[year],
			NetChange:    hires[year] - terms[year],
		}
		if row.Hires > 0 {
			pct := math.Round(float64(row.NetChange)/float64(row.Hires)*100*100) / 100
			row.NetChangePercent = &pct
		}
		rows = append(rows, row)
	}
	return rows
}
