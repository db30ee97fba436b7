package report

import (
	"fmt"
	"io"

	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/gocty"
	ctyjson "github.com/zclconf/go-cty/cty/json"

	"github.com/vk/stagefinder/internal/design"
)

// Result is the JSON document of a search.
type Result struct {
	Warnings []string `cty:"warnings"`
	Designs  []Design `cty:"designs"`
}

// Design is the JSON form of a design.
type Design struct {
	Name            string    `cty:"name"`
	Engine          string    `cty:"engine"`
	EngineCount     int       `cty:"engine_count"`
	Size            string    `cty:"size"`
	Propellant      string    `cty:"propellant"`
	Mass            float64   `cty:"mass"`
	Cost            float64   `cty:"cost"`
	PropellantUnits float64   `cty:"propellant_units"`
	FullTankMass    float64   `cty:"full_tank_mass"`
	Tanks           []Tank    `cty:"tanks"`
	Booster         string    `cty:"booster"`
	BoosterCount    int       `cty:"booster_count"`
	ThrottleLimit   float64   `cty:"throttle_limit"`
	RequiredTech    []string  `cty:"required_tech"`
	Features        []string  `cty:"features"`
	Best            bool      `cty:"best"`
	Notes           []string  `cty:"notes"`
	Trajectory      []Segment `cty:"trajectory"`
}

// Tank is a number of identical tanks.
type Tank struct {
	Name  string `cty:"name"`
	Count int    `cty:"count"`
}

// Segment is one row of the simulated flight.
type Segment struct {
	Phase             int     `cty:"phase"`
	DeltaV            float64 `cty:"delta_v"`
	Pressure          float64 `cty:"pressure"`
	StartAcceleration float64 `cty:"start_acceleration"`
	EndAcceleration   float64 `cty:"end_acceleration"`
	StartMass         float64 `cty:"start_mass"`
	EndMass           float64 `cty:"end_mass"`
	Solid             bool    `cty:"solid"`
}

// NewResult converts designs into their JSON form.
func NewResult(designs []*design.Design, warnings []string) Result {
	r := Result{Warnings: append([]string{}, warnings...), Designs: make([]Design, 0, len(designs))}
	for _, d := range designs {
		r.Designs = append(r.Designs, newDesign(d))
	}
	return r
}

func newDesign(d *design.Design) Design {
	out := Design{
		Name:            d.Name(),
		Engine:          d.Engine.Name,
		EngineCount:     d.EngineCount,
		Size:            d.Size.String(),
		Propellant:      d.Propellant.String(),
		Mass:            d.Mass(),
		Cost:            d.Cost(),
		PropellantUnits: d.PropellantUnits(),
		FullTankMass:    d.Fuel,
		Tanks:           make([]Tank, 0, len(d.Tanks)),
		BoosterCount:    d.BoosterCount,
		ThrottleLimit:   d.ThrottleLimit,
		RequiredTech:    make([]string, 0, d.RequiredTech.Len()),
		Features:        append([]string{}, d.Features.Strings()...),
		Best:            d.Best,
		Notes:           append([]string{}, d.Notes...),
		Trajectory:      make([]Segment, 0, len(d.Trajectory)),
	}
	if d.Booster != nil {
		out.Booster = d.Booster.Name
	}
	for _, u := range d.Tanks {
		out.Tanks = append(out.Tanks, Tank{Name: u.Tank.Name, Count: u.Count})
	}
	for _, n := range d.RequiredTech.Nodes() {
		out.RequiredTech = append(out.RequiredTech, n.String())
	}
	for _, s := range d.Trajectory {
		out.Trajectory = append(out.Trajectory, Segment{
			Phase:             s.Phase + 1,
			DeltaV:            s.DeltaV,
			Pressure:          s.Pressure,
			StartAcceleration: s.StartAccel,
			EndAcceleration:   s.EndAccel,
			StartMass:         s.StartMass,
			EndMass:           s.EndMass,
			Solid:             s.Solid,
		})
	}
	return out
}

// ToCtyValue converts the result into a cty value.
func (r Result) ToCtyValue() (cty.Value, error) {
	ty, err := gocty.ImpliedType(r)
	if err != nil {
		return cty.NilVal, fmt.Errorf("unable to infer cty.Type: %w", err)
	}
	return gocty.ToCtyValue(r, ty)
}

// MarshalJSON renders the result as a JSON object.
func (r Result) MarshalJSON() ([]byte, error) {
	val, err := r.ToCtyValue()
	if err != nil {
		return nil, err
	}
	return ctyjson.Marshal(val, val.Type())
}

// WriteJSON writes the result of a search as a single JSON document.
func WriteJSON(w io.Writer, designs []*design.Design, warnings []string) error {
	data, err := NewResult(designs, warnings).MarshalJSON()
	if err != nil {
		return err
	}
	data = append(data, '\n')
	_, err = w.Write(data)
	return err
}
