package models

import "time"

// BookingRecord is one (date, resort) booking count. The pair is unique within a dataset.
type BookingRecord struct {
	Date     time.Time `json:"date"`
	Resort   string    `json:"resort"`
	Bookings int       `json:"bookings"`
}

// UserActivityRecord is keyed the same way as BookingRecord.
type UserActivityRecord struct {
	Date           time.Time `json:"date"`
	Resort         string    `json:"resort"`
	NewUsers       int       `json:"new_users"`
	ReturningUsers int       `json:"returning_users"`
}

// DashboardSummary holds the headline figures shown above the charts.
type DashboardSummary struct {
	LiftReservationsToday int   `json:"lift_reservations_today"`
	RevenueToday          int64 `json:"revenue_today"`
	ActiveSnowyMountains  int   `json:"active_snowy_mountains"`
	RoadClosures          int   `json:"road_closures"`
}
