package models

// ResortInfo is one entry of the public resort list.
type ResortInfo struct {
	Name string  `json:"name"`
	Lat  float64 `json:"lat"`
	Lon  float64 `json:"lon"`
}
