package server

import (
	"encoding/json"
	"fmt"

	"github.com/vk/stagefinder/internal/config"
	"github.com/vk/stagefinder/internal/parts"
)

// Query is the payload of a `find` event.
type Query struct {
	Payload     float64     `json:"payload"`
	Phases      []Phase     `json:"phases"`
	Route       *Route      `json:"route,omitempty"`
	Preferences Preferences `json:"preferences"`
}

type Phase struct {
	DeltaV          float64 `json:"delta_v"`
	MinAcceleration float64 `json:"min_acceleration"`
	Pressure        float64 `json:"pressure"`
}

type Route struct {
	From          string  `json:"from"`
	To            string  `json:"to"`
	PlaneChange   bool    `json:"plane_change"`
	GravityMargin float64 `json:"gravity_margin"`
}

type Preferences struct {
	PreferredSize  string `json:"preferred_size"`
	Gimbal         int    `json:"gimbal"`
	Boosters       bool   `json:"boosters"`
	Generators     bool   `json:"generators"`
	ShortEngines   bool   `json:"short_engines"`
	Monopropellant bool   `json:"monopropellant"`
	DeltaVTieBreak bool   `json:"delta_v_tie_break"`
	Cheapest       bool   `json:"cheapest"`
	ShowAll        bool   `json:"show_all"`
}

// decodeQuery converts the decoded event argument into a Query. Socket.io
// hands over JSON already parsed into maps, so it is encoded once more and
// decoded into the typed struct.
func decodeQuery(arg any) (*Query, error) {
	data, err := json.Marshal(arg)
	if err != nil {
		return nil, fmt.Errorf("failed to encode query: %w", err)
	}
	var q Query
	if err := json.Unmarshal(data, &q); err != nil {
		return nil, fmt.Errorf("malformed query: %w", err)
	}
	return &q, nil
}

// mission translates the query into the format-agnostic model.
func (q *Query) mission() (*config.Mission, error) {
	m := &config.Mission{Name: "query", Payload: q.Payload}
	for _, ph := range q.Phases {
		m.Phases = append(m.Phases, config.Phase(ph))
	}
	if q.Route != nil {
		r := config.Route(*q.Route)
		m.Route = &r
	}
	p := q.Preferences
	m.Preferences = config.Preferences{
		Gimbal:         p.Gimbal,
		Boosters:       p.Boosters,
		Generators:     p.Generators,
		ShortEngines:   p.ShortEngines,
		Monopropellant: p.Monopropellant,
		DeltaVTieBreak: p.DeltaVTieBreak,
		Cheapest:       p.Cheapest,
		ShowAll:        p.ShowAll,
	}
	if p.PreferredSize != "" {
		size, err := parts.ParseRadialSize(p.PreferredSize)
		if err != nil {
			return nil, err
		}
		m.Preferences.PreferredSize = size
	}
	if p.Gimbal < 0 || p.Gimbal > 2 {
		return nil, fmt.Errorf("gimbal must be 0, 1 or 2, got %d", p.Gimbal)
	}
	return m, nil
}
