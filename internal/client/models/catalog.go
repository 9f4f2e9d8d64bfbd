package models

import "encoding/json"

// Province is a region used to label hosts and tours.
type Province struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Host offers one or more bnb stays.
type Host struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	ProvinceID  string `json:"province_id,omitempty"`
	Phone       string `json:"phone,omitempty"`
	Email       string `json:"email,omitempty"`
}

// Bnb is a bookable stay.
type Bnb struct {
	ID          string  `json:"id"`
	HostID      string  `json:"host_id"`
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	ProvinceID  string  `json:"province_id,omitempty"`
	Price       float64 `json:"price,omitempty"`
	Rooms       int     `json:"rooms,omitempty"`
}

// Tour is a guided trip.
type Tour struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description,omitempty"`
	ProvinceID  string  `json:"province_id,omitempty"`
	Price       float64 `json:"price,omitempty"`
	Duration    string  `json:"duration,omitempty"`
}

// HostDetails aggregates what the host details view shows.
type HostDetails struct {
	Host      *Host
	Bnbs      []*Bnb
	Provinces map[string]string
}

// TourDetails aggregates what the tour details view shows.
type TourDetails struct {
	Tour      *Tour
	Provinces map[string]string
}

// ProvinceNames indexes provinces by id.
func ProvinceNames(ps []*Province) map[string]string {
	m := make(map[string]string, len(ps))
	for _, p := range ps {
		if p == nil {
			continue
		}
		m[p.ID] = p.Name
	}
	return m
}

// DecodeData unmarshals an envelope's data payload into T. A missing payload
// yields the zero value.
func DecodeData[T any](raw json.RawMessage) (T, error) {
	var v T
	if len(raw) == 0 || string(raw) == "null" {
		return v, nil
	}
	err := json.Unmarshal(raw, &v)
	return v, err
}

// Compact drops nil entries from vs, reusing its backing array.
func Compact[T any](vs []*T) []*T {
	out := vs[:0]
	for _, v := range vs {
		if v != nil {
			out = append(out, v)
		}
	}
	return out
}
