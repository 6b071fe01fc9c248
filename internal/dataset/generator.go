package dataset

import (
	"math/rand"
	"time"

	"snow-tracker/internal/models"
)

var DefaultResorts = []string{"Bear Mountain", "Lake Tahoe", "Alpine Ridge"}

// Options controls the shape of a generated dataset. Zero values fall back to defaults.
type Options struct {
	StartDate time.Time
	Days      int
	Resorts   []string
	// Seed fixes the illustrative values. Zero seeds from the clock.
	Seed int64
}

// Dataset holds every table the dashboard reads. It is never mutated after Generate returns.
type Dataset struct {
	Bookings     []models.BookingRecord
	Users        []models.UserActivityRecord
	Reservations []models.ReservationRecord
	Lifts        []models.LiftStatus
	Incidents    []models.IncidentRecord
	Summary      models.DashboardSummary
}

// Generate builds the mocked tables. Rows are resort-major: every date of the
// first resort, then every date of the second, and so on.
func Generate(opts Options) *Dataset {
	start := opts.StartDate
	if start.IsZero() {
		start = time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC)
	}
	start = Day(start)

	days := opts.Days
	if days <= 0 {
		days = 10
	}

	resorts := opts.Resorts
	if len(resorts) == 0 {
		resorts = DefaultResorts
	}

	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	dates := make([]time.Time, days)
	for i := range dates {
		dates[i] = start.AddDate(0, 0, i)
	}

	ds := &Dataset{
		Bookings: make([]models.BookingRecord, 0, days*len(resorts)),
		Users:    make([]models.UserActivityRecord, 0, days*len(resorts)),
	}

	for _, resort := range resorts {
		for _, date := range dates {
			ds.Bookings = append(ds.Bookings, models.BookingRecord{
				Date:     date,
				Resort:   resort,
				Bookings: between(rng, 100, 250),
			})
		}
	}

	// Drawn after all bookings so the booking values for a seed do not depend on this table.
	for _, resort := range resorts {
		for _, date := range dates {
			ds.Users = append(ds.Users, models.UserActivityRecord{
				Date:           date,
				Resort:         resort,
				NewUsers:       between(rng, 20, 60),
				ReturningUsers: between(rng, 50, 90),
			})
		}
	}

	ds.Reservations = reservations()
	ds.Lifts = lifts()
	ds.Incidents = incidents(start)
	ds.Summary = models.DashboardSummary{
		LiftReservationsToday: 220,
		RevenueToday:          15000,
		ActiveSnowyMountains:  18,
		RoadClosures:          3,
	}

	return ds
}

// DateRange returns the first and last booking dates, or zero times for an empty dataset.
func (d *Dataset) DateRange() (time.Time, time.Time) {
	var first, last time.Time
	for i, b := range d.Bookings {
		if i == 0 || b.Date.Before(first) {
			first = b.Date
		}
		if i == 0 || b.Date.After(last) {
			last = b.Date
		}
	}
	return first, last
}

// Day truncates t to its calendar date in UTC. Times carrying another offset
// are converted to UTC first.
func Day(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// between returns an int in [lo, hi).
func between(rng *rand.Rand, lo, hi int) int {
	return lo + rng.Intn(hi-lo)
}

func reservations() []models.ReservationRecord {
	return []models.ReservationRecord{
		{Seq: 1, ID: "#12345", User: "John D.", Resort: "Bear Mountain", TimeSlot: "10:00–11:00 AM", Status: models.ReservationConfirmed, PaymentStatus: models.PaymentPaid},
		{Seq: 2, ID: "#12346", User: "Alice B.", Resort: "Lake Tahoe", TimeSlot: "1:00–2:00 PM", Status: models.ReservationPending, PaymentStatus: models.PaymentUnpaid},
		{Seq: 3, ID: "#12347", User: "Mark S.", Resort: "Alpine Ridge", TimeSlot: "3:00–4:00 PM", Status: models.ReservationCancelled, PaymentStatus: models.PaymentRefunded},
	}
}

func lifts() []models.LiftStatus {
	return []models.LiftStatus{
		{Lift: "Lift A", Status: models.LiftOperational},
		{Lift: "Lift B", Status: models.LiftMaintenance},
		{Lift: "Lift C", Status: models.LiftDown},
	}
}

func incidents(start time.Time) []models.IncidentRecord {
	entries := []struct {
		description string
		status      string
	}{
		{"Lift Failure", models.IncidentResolved},
		{"Power Outage", models.IncidentPending},
		{"Network Downtime", models.IncidentResolved},
		{"Weather Delay", models.IncidentOngoing},
		{"Equipment Check", models.IncidentResolved},
	}

	out := make([]models.IncidentRecord, 0, len(entries))
	for i, e := range entries {
		out = append(out, models.IncidentRecord{
			Date:        start.AddDate(0, 0, i),
			Description: e.description,
			Status:      e.status,
		})
	}
	return out
}
