package models

import "time"

const (
	LiftOperational = "Operational"
	LiftMaintenance = "Maintenance"
	LiftDown        = "Down"

	IncidentResolved = "Resolved"
	IncidentPending  = "Pending"
	IncidentOngoing  = "Ongoing"
)

type LiftStatus struct {
	Lift   string `json:"lift"`
	Status string `json:"status"`
}

type IncidentRecord struct {
	Date        time.Time `json:"date"`
	Description string    `json:"incident"`
	Status      string    `json:"status"`
}

type RoadClosure struct {
	ID       int    `json:"id"`
	Location string `json:"location"`
	Status   string `json:"status"`
	Details  string `json:"details"`
}
