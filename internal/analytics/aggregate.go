package analytics

import (
	"math"

	"github.com/shopspring/decimal"
)

var oneHundred = decimal.NewFromInt(100)

// TotalRevenue sums total sales across reports.
func TotalRevenue(reports []Report) decimal.Decimal {
	total := decimal.Zero
	for _, r := range reports {
		total = total.Add(r.TotalSales)
	}
	return total
}

// AverageTips returns total tips divided by report count, zero for no reports.
func AverageTips(reports []Report) decimal.Decimal {
	if len(reports) == 0 {
		return decimal.Zero
	}
	total := decimal.Zero
	for _, r := range reports {
		total = total.Add(r.TipCount)
	}
	return total.Div(decimal.NewFromInt(int64(len(reports))))
}

// AvgPrepCompletion averages the per-report prep score across reports and
// rounds to the nearest whole percent. Empty input yields zero.
func AvgPrepCompletion(reports []Report) int {
	if len(reports) == 0 {
		return 0
	}
	var sum float64
	for _, r := range reports {
		sum += prepScore(r)
	}
	return int(math.Round(sum / float64(len(reports))))
}

// SalesBreakdown splits revenue into cash and card shares. Both percentages
// are zero when there is no revenue to divide by.
type SalesBreakdown struct {
	Cash           decimal.Decimal `json:"cash"`
	Card           decimal.Decimal `json:"card"`
	CashPercentage int             `json:"cashPercentage"`
	CardPercentage int             `json:"cardPercentage"`
}

// BreakdownSales sums cash and card sales independently and derives rounded
// percentage shares of total revenue.
func BreakdownSales(reports []Report) SalesBreakdown {
	cash := decimal.Zero
	card := decimal.Zero
	for _, r := range reports {
		cash = cash.Add(r.CashSales)
		card = card.Add(r.CardSales)
	}

	breakdown := SalesBreakdown{Cash: cash, Card: card}

	total := TotalRevenue(reports)
	if total.IsZero() {
		return breakdown
	}

	breakdown.CashPercentage = int(cash.Mul(oneHundred).Div(total).Round(0).IntPart())
	breakdown.CardPercentage = int(card.Mul(oneHundred).Div(total).Round(0).IntPart())
	return breakdown
}

// TillVariance is ending minus starting till amount for one report. The sign
// carries meaning: negative is a shortage, positive an overage.
func TillVariance(r Report) decimal.Decimal {
	return r.EndingAmount.Sub(r.StartingAmount)
}

// TaskCompletion is the completion rate for one checklist task.
type TaskCompletion struct {
	Key        string `json:"key"`
	Completed  int    `json:"completed"`
	Percentage int    `json:"percentage"`
}

// PrepTaskCompletion computes, for each task key, how many reports checked it
// off and the rounded share of all reports. Empty input yields 0% per task.
func PrepTaskCompletion(reports []Report, taskKeys []string) []TaskCompletion {
	out := make([]TaskCompletion, 0, len(taskKeys))
	for _, key := range taskKeys {
		count := 0
		for _, r := range reports {
			if r.PrepTasks[key] {
				count++
			}
		}
		completion := TaskCompletion{Key: key, Completed: count}
		if len(reports) > 0 {
			completion.Percentage = int(math.Round(100 * float64(count) / float64(len(reports))))
		}
		out = append(out, completion)
	}
	return out
}

// ManagerPerformance is the per-manager rollup across a report set.
type ManagerPerformance struct {
	ManagerID         string          `json:"managerId"`
	ManagerName       string          `json:"managerName"`
	Reports           int             `json:"reports"`
	Revenue           decimal.Decimal `json:"revenue"`
	AvgPrepCompletion int             `json:"avgPrepCompletion"`
}

// ManagerStats groups reports by submitting manager. Groups are emitted in
// order of first appearance in the input.
func ManagerStats(reports []Report) []ManagerPerformance {
	type accumulator struct {
		name      string
		reports   int
		revenue   decimal.Decimal
		prepTotal float64
	}

	order := make([]string, 0)
	groups := make(map[string]*accumulator)

	for _, r := range reports {
		acc, ok := groups[r.ManagerID]
		if !ok {
			acc = &accumulator{name: r.ManagerName, revenue: decimal.Zero}
			groups[r.ManagerID] = acc
			order = append(order, r.ManagerID)
		}
		acc.reports++
		acc.revenue = acc.revenue.Add(r.TotalSales)
		acc.prepTotal += prepScore(r)
	}

	out := make([]ManagerPerformance, 0, len(order))
	for _, id := range order {
		acc := groups[id]
		out = append(out, ManagerPerformance{
			ManagerID:         id,
			ManagerName:       acc.name,
			Reports:           acc.reports,
			Revenue:           acc.revenue,
			AvgPrepCompletion: int(math.Round(acc.prepTotal / float64(acc.reports))),
		})
	}
	return out
}
