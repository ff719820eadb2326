package handler

import (
	"bytes"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/microcosm-cc/bluemonday"
	"github.com/shopspring/decimal"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"

	"github.com/vanyanv/restaurant-dashboard/internal/db"
	"github.com/vanyanv/restaurant-dashboard/internal/service"
)

var (
	markdownEngine = goldmark.New(
		goldmark.WithExtensions(extension.GFM, extension.Linkify),
		goldmark.WithRendererOptions(html.WithHardWraps(), html.WithXHTML()),
	)
	sanitizer = bluemonday.UGCPolicy()
)

type reportPayload struct {
	StoreID string `json:"storeId" binding:"required"`
	Date    string `json:"date" binding:"required"`
	Shift   string `json:"shift" binding:"required,oneof=MORNING EVENING BOTH"`

	StartingAmount *decimal.Decimal `json:"startingAmount"`
	EndingAmount   *decimal.Decimal `json:"endingAmount"`
	TotalSales     *decimal.Decimal `json:"totalSales"`
	CashSales      *decimal.Decimal `json:"cashSales"`
	CardSales      *decimal.Decimal `json:"cardSales"`
	TipCount       *decimal.Decimal `json:"tipCount"`
	CashTips       *decimal.Decimal `json:"cashTips"`

	MorningPrepCompleted int `json:"morningPrepCompleted" binding:"min=0,max=100"`
	EveningPrepCompleted int `json:"eveningPrepCompleted" binding:"min=0,max=100"`

	PrepMeat           bool `json:"prepMeat"`
	PrepSauce          bool `json:"prepSauce"`
	PrepOnionsSliced   bool `json:"prepOnionsSliced"`
	PrepOnionsDiced    bool `json:"prepOnionsDiced"`
	PrepTomatoesSliced bool `json:"prepTomatoesSliced"`
	PrepLettuce        bool `json:"prepLettuce"`

	CustomerCount *int   `json:"customerCount"`
	Notes         string `json:"notes"`
}

func decimalOrZero(d *decimal.Decimal) decimal.Decimal {
	if d == nil {
		return decimal.Zero
	}
	return *d
}

func anyNegative(amounts ...*decimal.Decimal) bool {
	for _, d := range amounts {
		if d != nil && d.IsNegative() {
			return true
		}
	}
	return false
}

func parseReportDate(raw string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, raw)
}

// SubmitReport upserts a daily report for a store, date and shift.
func (a *API) SubmitReport(c *gin.Context) {
	scope, _ := scopeFrom(c)

	var payload reportPayload
	if !bindJSON(c, &payload, "storeId, date and a valid shift are required") {
		return
	}

	date, err := parseReportDate(payload.Date)
	if err != nil {
		respondError(c, http.StatusBadRequest, "date must be YYYY-MM-DD or RFC3339")
		return
	}

	if anyNegative(payload.StartingAmount, payload.EndingAmount, payload.TotalSales,
		payload.CashSales, payload.CardSales, payload.TipCount, payload.CashTips) {
		respondError(c, http.StatusBadRequest, "money amounts must not be negative")
		return
	}

	customerCount := 0
	if payload.CustomerCount != nil {
		customerCount = *payload.CustomerCount
	}

	report, created, err := a.reports.Submit(scope, service.ReportInput{
		StoreID:              payload.StoreID,
		Date:                 date,
		Shift:                db.Shift(payload.Shift),
		StartingAmount:       decimalOrZero(payload.StartingAmount),
		EndingAmount:         decimalOrZero(payload.EndingAmount),
		TotalSales:           decimalOrZero(payload.TotalSales),
		CashSales:            decimalOrZero(payload.CashSales),
		CardSales:            decimalOrZero(payload.CardSales),
		TipCount:             decimalOrZero(payload.TipCount),
		CashTips:             decimalOrZero(payload.CashTips),
		MorningPrepCompleted: payload.MorningPrepCompleted,
		EveningPrepCompleted: payload.EveningPrepCompleted,
		PrepMeat:             payload.PrepMeat,
		PrepSauce:            payload.PrepSauce,
		PrepOnionsSliced:     payload.PrepOnionsSliced,
		PrepOnionsDiced:      payload.PrepOnionsDiced,
		PrepTomatoesSliced:   payload.PrepTomatoesSliced,
		PrepLettuce:          payload.PrepLettuce,
		CustomerCount:        customerCount,
		Notes:                payload.Notes,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidShift):
			respondError(c, http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrReportAccessDenied):
			respondError(c, http.StatusForbidden, err.Error())
		default:
			a.log.WithError(err).Error("submit report failed")
			respondError(c, http.StatusInternalServerError, "could not save report")
		}
		return
	}

	a.metrics.RecordReportSubmitted(string(report.Shift), created)

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	c.JSON(status, gin.H{"report": report, "created": created})
}

// ListReports returns reports visible to the caller, filtered by the
// storeId, date, shift and limit query parameters.
func (a *API) ListReports(c *gin.Context) {
	scope, _ := scopeFrom(c)

	filter := service.ReportFilter{
		StoreID: c.Query("storeId"),
		Shift:   db.Shift(c.Query("shift")),
		Limit:   parseIntQuery(c, "limit", 0),
	}
	if raw := c.Query("date"); raw != "" {
		date, err := parseReportDate(raw)
		if err != nil {
			respondError(c, http.StatusBadRequest, "date must be YYYY-MM-DD or RFC3339")
			return
		}
		filter.Date = &date
	}
	if filter.Shift != "" && !db.ValidShift(filter.Shift) {
		respondError(c, http.StatusBadRequest, "invalid shift")
		return
	}

	reports, err := a.reports.List(scope, filter)
	if err != nil {
		if errors.Is(err, service.ErrReportAccessDenied) {
			respondError(c, http.StatusForbidden, err.Error())
			return
		}
		a.log.WithError(err).Error("list reports failed")
		respondError(c, http.StatusInternalServerError, "could not list reports")
		return
	}
	c.JSON(http.StatusOK, reports)
}

type activityEntry struct {
	ReportID    string    `json:"reportId"`
	StoreName   string    `json:"storeName"`
	ManagerName string    `json:"managerName"`
	Date        string    `json:"date"`
	Shift       db.Shift  `json:"shift"`
	NotesHTML   string    `json:"notesHtml,omitempty"`
	SubmittedAt time.Time `json:"submittedAt"`
}

// RecentActivity returns the latest submissions with notes rendered from
// markdown to sanitized HTML.
func (a *API) RecentActivity(c *gin.Context) {
	scope, _ := scopeFrom(c)

	reports, err := a.reports.Recent(scope, c.Query("storeId"), parseIntQuery(c, "limit", 10))
	if err != nil {
		a.log.WithError(err).Error("recent activity failed")
		respondError(c, http.StatusInternalServerError, "could not load recent activity")
		return
	}

	entries := make([]activityEntry, 0, len(reports))
	for _, r := range reports {
		entries = append(entries, activityEntry{
			ReportID:    r.ID,
			StoreName:   r.Store.Name,
			ManagerName: r.Manager.Name,
			Date:        r.Date.Format("2006-01-02"),
			Shift:       r.Shift,
			NotesHTML:   renderNotes(r.Notes),
			SubmittedAt: r.CreatedAt,
		})
	}
	c.JSON(http.StatusOK, entries)
}

func renderNotes(notes string) string {
	if strings.TrimSpace(notes) == "" {
		return ""
	}
	var buf bytes.Buffer
	if err := markdownEngine.Convert([]byte(notes), &buf); err != nil {
		return sanitizer.Sanitize(notes)
	}
	return sanitizer.Sanitize(buf.String())
}
