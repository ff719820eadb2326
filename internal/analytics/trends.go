package analytics

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

const isoDate = "2006-01-02"

// TrendSummary compares revenue between the trailing week and the week
// before it. Weeks are "now minus N days" windows over calendar dates, not
// Monday-anchored calendar weeks.
type TrendSummary struct {
	RevenueGrowth       decimal.Decimal `json:"revenueGrowth"`
	CurrentWeekRevenue  decimal.Decimal `json:"currentWeekRevenue"`
	PreviousWeekRevenue decimal.Decimal `json:"previousWeekRevenue"`
}

// Trends partitions reports into current week (date >= now-7d) and previous
// week (now-14d <= date < now-7d) and derives week-over-week growth as a
// percentage rounded to two decimals. Growth off a zero base is defined as
// zero rather than surfacing an infinite ratio.
func Trends(reports []Report, now time.Time) TrendSummary {
	weekAgo := now.AddDate(0, 0, -7)
	twoWeeksAgo := now.AddDate(0, 0, -14)

	current := decimal.Zero
	previous := decimal.Zero
	for _, r := range reports {
		switch {
		case !r.Date.Before(weekAgo):
			current = current.Add(r.TotalSales)
		case !r.Date.Before(twoWeeksAgo):
			previous = previous.Add(r.TotalSales)
		}
	}

	summary := TrendSummary{
		RevenueGrowth:       decimal.Zero,
		CurrentWeekRevenue:  current,
		PreviousWeekRevenue: previous,
	}
	if previous.IsPositive() {
		summary.RevenueGrowth = current.Sub(previous).Div(previous).Mul(oneHundred).Round(2)
	}
	return summary
}

// DayBucket aggregates one calendar day for charting.
type DayBucket struct {
	Date      string          `json:"date"`
	Revenue   decimal.Decimal `json:"revenue"`
	Tips      decimal.Decimal `json:"tips"`
	Customers int             `json:"customers"`
	Reports   int             `json:"reports"`
}

// RevenueByDay buckets reports by ISO calendar date, summing revenue, tips,
// customers and report count. Buckets come back sorted ascending by date;
// the fixed-width ISO key makes the lexicographic sort a date sort.
func RevenueByDay(reports []Report) []DayBucket {
	buckets := make(map[string]*DayBucket)
	for _, r := range reports {
		key := r.Date.Format(isoDate)
		bucket, ok := buckets[key]
		if !ok {
			bucket = &DayBucket{Date: key, Revenue: decimal.Zero, Tips: decimal.Zero}
			buckets[key] = bucket
		}
		bucket.Revenue = bucket.Revenue.Add(r.TotalSales)
		bucket.Tips = bucket.Tips.Add(r.TipCount)
		bucket.Customers += r.CustomerCount
		bucket.Reports++
	}

	out := make([]DayBucket, 0, len(buckets))
	for _, bucket := range buckets {
		out = append(out, *bucket)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}
