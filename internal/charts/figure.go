// Package charts turns dashboard result sets into Plotly figure specifications.
package charts

import (
	"fmt"

	"snow-tracker/internal/analytics"
	"snow-tracker/internal/models"
)

// Figure is a Plotly figure: a list of traces and a layout.
type Figure struct {
	Data   []Trace `json:"data"`
	Layout Layout  `json:"layout"`
}

type Trace struct {
	Type   string   `json:"type"`
	Mode   string   `json:"mode,omitempty"`
	Name   string   `json:"name,omitempty"`
	X      []any    `json:"x"`
	Y      []any    `json:"y"`
	Base   []any    `json:"base,omitempty"`
	Orient string   `json:"orientation,omitempty"`
	Marker *Marker  `json:"marker,omitempty"`
	Text   []string `json:"text,omitempty"`
}

type Marker struct {
	Color string `json:"color,omitempty"`
}

type Layout struct {
	Title Title `json:"title"`
	XAxis Axis  `json:"xaxis"`
	YAxis Axis  `json:"yaxis"`
}

type Title struct {
	Text string `json:"text"`
}

type Axis struct {
	Title Title  `json:"title"`
	Type  string `json:"type,omitempty"`
}

var statusColors = map[string]string{
	models.LiftOperational: "#2ca02c",
	models.LiftMaintenance: "#ff7f0e",
	models.LiftDown:        "#d62728",
	models.IncidentPending: "#ff7f0e",
	models.IncidentOngoing: "#d62728",
}

func colorFor(status string) string {
	if c, ok := statusColors[status]; ok {
		return c
	}
	return "#1f77b4"
}

// BookingsFigure plots the bookings series as a line.
func BookingsFigure(m *analytics.Metrics) Figure {
	x := make([]any, 0, len(m.BookingSeries))
	y := make([]any, 0, len(m.BookingSeries))
	for _, p := range m.BookingSeries {
		x = append(x, p.Date)
		y = append(y, p.Bookings)
	}
	return Figure{
		Data: []Trace{{Type: "scatter", Mode: "lines", Name: "Bookings", X: x, Y: y}},
		Layout: Layout{
			Title: Title{Text: fmt.Sprintf("Bookings Over Time - %s", m.Resort)},
			XAxis: Axis{Title: Title{Text: "Date"}},
			YAxis: Axis{Title: Title{Text: "Bookings"}},
		},
	}
}

// RevenueFigure plots the filtered revenue total as a single bar.
func RevenueFigure(m *analytics.Metrics) Figure {
	return Figure{
		Data: []Trace{{
			Type: "bar",
			Name: "Revenue",
			X:    []any{m.Resort},
			Y:    []any{m.RevenueTotal.InexactFloat64()},
		}},
		Layout: Layout{
			Title: Title{Text: fmt.Sprintf("Revenue - %s", m.Resort)},
			XAxis: Axis{Title: Title{Text: "Resort"}},
			YAxis: Axis{Title: Title{Text: "Revenue"}},
		},
	}
}

// UsersFigure plots new and returning users as two lines on one axis.
func UsersFigure(m *analytics.Metrics) Figure {
	x := make([]any, 0, len(m.UserSeries))
	newUsers := make([]any, 0, len(m.UserSeries))
	returning := make([]any, 0, len(m.UserSeries))
	for _, p := range m.UserSeries {
		x = append(x, p.Date)
		newUsers = append(newUsers, p.NewUsers)
		returning = append(returning, p.ReturningUsers)
	}
	return Figure{
		Data: []Trace{
			{Type: "scatter", Mode: "lines", Name: "New Users", X: x, Y: newUsers},
			{Type: "scatter", Mode: "lines", Name: "Returning Users", X: x, Y: returning},
		},
		Layout: Layout{
			Title: Title{Text: fmt.Sprintf("New vs Returning Users - %s", m.Resort)},
			XAxis: Axis{Title: Title{Text: "Date"}},
			YAxis: Axis{Title: Title{Text: "value"}},
		},
	}
}

// LiftStatusFigure draws one unit bar per lift, one trace per status so the legend groups them.
func LiftStatusFigure(lifts []models.LiftStatus) Figure {
	var traces []Trace
	index := make(map[string]int)
	for _, l := range lifts {
		i, ok := index[l.Status]
		if !ok {
			i = len(traces)
			index[l.Status] = i
			traces = append(traces, Trace{Type: "bar", Name: l.Status, Marker: &Marker{Color: colorFor(l.Status)}})
		}
		traces[i].X = append(traces[i].X, l.Lift)
		traces[i].Y = append(traces[i].Y, 1)
	}
	return Figure{
		Data: traces,
		Layout: Layout{
			Title: Title{Text: "Lift Operational Status"},
			XAxis: Axis{Title: Title{Text: "Lift"}},
			YAxis: Axis{Title: Title{Text: "Status Count"}},
		},
	}
}

// IncidentTimelineFigure draws each incident as a one-day horizontal bar on a date axis.
func IncidentTimelineFigure(incidents []models.IncidentRecord) Figure {
	var traces []Trace
	index := make(map[string]int)
	const dayMillis = 24 * 60 * 60 * 1000
	for _, inc := range incidents {
		i, ok := index[inc.Status]
		if !ok {
			i = len(traces)
			index[inc.Status] = i
			traces = append(traces, Trace{Type: "bar", Orient: "h", Name: inc.Status, Marker: &Marker{Color: colorFor(inc.Status)}})
		}
		traces[i].Base = append(traces[i].Base, inc.Date.Format("2006-01-02"))
		traces[i].X = append(traces[i].X, dayMillis)
		traces[i].Y = append(traces[i].Y, inc.Description)
	}
	return Figure{
		Data: traces,
		Layout: Layout{
			Title: Title{Text: "Maintenance and Incident Logs"},
			XAxis: Axis{Title: Title{Text: "Date"}, Type: "date"},
			YAxis: Axis{Title: Title{Text: "Incident"}},
		},
	}
}

// Dashboard bundles every figure the dashboard page draws.
type Dashboard struct {
	Bookings  Figure `json:"bookings"`
	Revenue   Figure `json:"revenue"`
	Users     Figure `json:"users"`
	Lifts     Figure `json:"lifts"`
	Incidents Figure `json:"incidents"`
}

func BuildDashboard(m *analytics.Metrics, lifts []models.LiftStatus, incidents []models.IncidentRecord) Dashboard {
	return Dashboard{
		Bookings:  BookingsFigure(m),
		Revenue:   RevenueFigure(m),
		Users:     UsersFigure(m),
		Lifts:     LiftStatusFigure(lifts),
		Incidents: IncidentTimelineFigure(incidents),
	}
}
