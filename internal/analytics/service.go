package analytics

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"snow-tracker/internal/dataset"
	"snow-tracker/internal/models"
)

var (
	// ErrInvalidFilter is returned for a resort outside the known enumeration.
	ErrInvalidFilter = errors.New("invalid resort filter")
	// ErrInvalidRange is returned when the start date is after the end date.
	ErrInvalidRange = errors.New("invalid date range")
	// ErrInvalidDate is returned by ParseDate for unparseable input.
	ErrInvalidDate = errors.New("invalid date")
)

const dateLayout = "2006-01-02"

// Service derives the filtered dashboard metrics from an immutable dataset.
type Service struct {
	data      *dataset.Dataset
	resorts   []string
	known     map[string]struct{}
	unitPrice decimal.Decimal
}

// NewService creates a new analytics service. resorts is the enumeration of
// selectable resorts; it may include resorts that have no rows in data.
func NewService(data *dataset.Dataset, resorts []string, unitPrice int64) *Service {
	known := make(map[string]struct{}, len(resorts))
	ordered := make([]string, 0, len(resorts))
	for _, r := range resorts {
		if _, dup := known[r]; dup {
			continue
		}
		known[r] = struct{}{}
		ordered = append(ordered, r)
	}
	if data == nil {
		data = &dataset.Dataset{}
	}
	return &Service{
		data:      data,
		resorts:   ordered,
		known:     known,
		unitPrice: decimal.NewFromInt(unitPrice),
	}
}

// BookingPoint is one entry of the bookings time series
type BookingPoint struct {
	Date     string `json:"date"`
	Bookings int    `json:"bookings"`
}

// UserPoint is one entry of the new-vs-returning users time series
type UserPoint struct {
	Date           string `json:"date"`
	NewUsers       int    `json:"new_users"`
	ReturningUsers int    `json:"returning_users"`
}

// Metrics contains the three result sets for one filter
type Metrics struct {
	Resort        string          `json:"resort"`
	StartDate     string          `json:"start_date"`
	EndDate       string          `json:"end_date"`
	BookingSeries []BookingPoint  `json:"booking_series"`
	RevenueTotal  decimal.Decimal `json:"revenue_total"`
	UserSeries    []UserPoint     `json:"user_series"`
}

// RevenueSummary is revenue aggregated for a single resort
type RevenueSummary struct {
	Resort  string          `json:"resort"`
	Revenue decimal.Decimal `json:"revenue"`
}

// Resorts returns the selectable resorts in configuration order.
func (s *Service) Resorts() []string {
	out := make([]string, len(s.resorts))
	copy(out, s.resorts)
	return out
}

// UnitPrice returns the per-booking price used for revenue.
func (s *Service) UnitPrice() decimal.Decimal {
	return s.unitPrice
}

// Dataset exposes the backing tables for read-only listings.
func (s *Service) Dataset() *dataset.Dataset {
	return s.data
}

// DefaultRange returns the dataset coverage used when the caller does not pick dates.
func (s *Service) DefaultRange() (time.Time, time.Time) {
	return s.data.DateRange()
}

// ComputeMetrics filters bookings and user activity to resort and the inclusive
// [start, end] calendar range and derives the bookings series, the revenue total
// and the users series.
func (s *Service) ComputeMetrics(resort string, start, end time.Time) (*Metrics, error) {
	if _, ok := s.known[resort]; !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidFilter, resort)
	}
	start, end = dataset.Day(start), dataset.Day(end)
	if start.After(end) {
		return nil, fmt.Errorf("%w: start %s is after end %s", ErrInvalidRange, start.Format(dateLayout), end.Format(dateLayout))
	}

	inRange := func(recResort string, date time.Time) bool {
		if recResort != resort {
			return false
		}
		d := dataset.Day(date)
		return !d.Before(start) && !d.After(end)
	}

	var bookings []models.BookingRecord
	for _, b := range s.data.Bookings {
		if inRange(b.Resort, b.Date) {
			bookings = append(bookings, b)
		}
	}
	sort.SliceStable(bookings, func(i, j int) bool {
		return dataset.Day(bookings[i].Date).Before(dataset.Day(bookings[j].Date))
	})

	var users []models.UserActivityRecord
	for _, u := range s.data.Users {
		if inRange(u.Resort, u.Date) {
			users = append(users, u)
		}
	}
	sort.SliceStable(users, func(i, j int) bool {
		return dataset.Day(users[i].Date).Before(dataset.Day(users[j].Date))
	})

	result := &Metrics{
		Resort:        resort,
		StartDate:     start.Format(dateLayout),
		EndDate:       end.Format(dateLayout),
		BookingSeries: make([]BookingPoint, 0, len(bookings)),
		UserSeries:    make([]UserPoint, 0, len(users)),
	}

	var total int64
	for _, b := range bookings {
		total += int64(b.Bookings)
		result.BookingSeries = append(result.BookingSeries, BookingPoint{
			Date:     b.Date.Format(dateLayout),
			Bookings: b.Bookings,
		})
	}
	result.RevenueTotal = decimal.NewFromInt(total).Mul(s.unitPrice)

	for _, u := range users {
		result.UserSeries = append(result.UserSeries, UserPoint{
			Date:           u.Date.Format(dateLayout),
			NewUsers:       u.NewUsers,
			ReturningUsers: u.ReturningUsers,
		})
	}

	return result, nil
}

// RevenueByResort sums bookings per resort over the whole dataset and prices
// them, ordered by resort name.
func (s *Service) RevenueByResort() []RevenueSummary {
	totals := make(map[string]int64)
	var order []string
	for _, b := range s.data.Bookings {
		if _, ok := totals[b.Resort]; !ok {
			order = append(order, b.Resort)
		}
		totals[b.Resort] += int64(b.Bookings)
	}
	sort.Strings(order)

	out := make([]RevenueSummary, 0, len(order))
	for _, r := range order {
		out = append(out, RevenueSummary{
			Resort:  r,
			Revenue: decimal.NewFromInt(totals[r]).Mul(s.unitPrice),
		})
	}
	return out
}

// ParseDate accepts a calendar date (2006-01-02) or a date-time as sent by
// date pickers, and returns the calendar date in UTC.
func ParseDate(value string) (time.Time, error) {
	for _, layout := range []string{dateLayout, "2006-01-02T15:04:05", time.RFC3339} {
		if t, err := time.Parse(layout, value); err == nil {
			return dataset.Day(t), nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, value)
}
