package hcl_adapter

// fileRoot is used to decode all possible top-level blocks from any file.
type fileRoot struct {
	Missions         []*Mission `hcl:"mission,block"`
	Engines          []*Engine  `hcl:"engine,block"`
	Tanks            []*Tank    `hcl:"tank,block"`
	Boosters         []*Booster `hcl:"booster,block"`
	Mounts           []*Mount   `hcl:"mount,block"`
	AtomicTankFactor *float64   `hcl:"atomic_tank_factor,optional"`
}

func (r *fileRoot) hasParts() bool {
	return len(r.Engines) > 0 || len(r.Tanks) > 0 || len(r.Boosters) > 0 ||
		len(r.Mounts) > 0 || r.AtomicTankFactor != nil
}

// --- Mission Schemas ---

// Mission represents a `mission` block.
type Mission struct {
	Name        string       `hcl:"name,label"`
	Payload     float64      `hcl:"payload"`
	Phases      []*Phase     `hcl:"phase,block"`
	Route       *Route       `hcl:"route,block"`
	Preferences *Preferences `hcl:"preferences,block"`
}

// Phase represents a `phase` block within a mission.
type Phase struct {
	DeltaV          float64 `hcl:"delta_v"`
	MinAcceleration float64 `hcl:"min_acceleration,optional"`
	Pressure        float64 `hcl:"pressure,optional"`
}

// Route represents a `route` block within a mission.
type Route struct {
	From          string  `hcl:"from"`
	To            string  `hcl:"to"`
	PlaneChange   bool    `hcl:"plane_change,optional"`
	GravityMargin float64 `hcl:"gravity_margin,optional"`
}

// Preferences represents a `preferences` block within a mission.
type Preferences struct {
	PreferredSize  string `hcl:"preferred_size,optional"`
	Gimbal         int    `hcl:"gimbal,optional"`
	Boosters       bool   `hcl:"boosters,optional"`
	Generators     bool   `hcl:"generators,optional"`
	ShortEngines   bool   `hcl:"short_engines,optional"`
	Monopropellant bool   `hcl:"monopropellant,optional"`
	DeltaVTieBreak bool   `hcl:"delta_v_tie_break,optional"`
	Cheapest       bool   `hcl:"cheapest,optional"`
	ShowAll        bool   `hcl:"show_all,optional"`
}

// --- Catalog Schemas ---

// Engine represents an `engine` block.
type Engine struct {
	Name               string  `hcl:"name,label"`
	Size               string  `hcl:"size"`
	Propellant         string  `hcl:"propellant,optional"`
	Cost               float64 `hcl:"cost"`
	Mass               float64 `hcl:"mass"`
	IspAtm             float64 `hcl:"isp_atm"`
	IspVac             float64 `hcl:"isp_vac"`
	Thrust             float64 `hcl:"thrust"`
	Gimbal             float64 `hcl:"gimbal,optional"`
	Tech               string  `hcl:"tech,optional"`
	Generator          bool    `hcl:"generator,optional"`
	Length             int     `hcl:"length,optional"`
	EmptyFraction      float64 `hcl:"empty_fraction,optional"`
	IntegratedTankMass float64 `hcl:"integrated_tank_mass,optional"`
}

// Tank represents a `tank` block.
type Tank struct {
	Name          string  `hcl:"name,label"`
	Size          string  `hcl:"size"`
	Propellant    string  `hcl:"propellant,optional"`
	Cost          float64 `hcl:"cost"`
	FullMass      float64 `hcl:"full_mass"`
	EmptyFraction float64 `hcl:"empty_fraction,optional"`
	Tech          string  `hcl:"tech,optional"`
}

// Booster represents a `booster` block.
type Booster struct {
	Name      string  `hcl:"name,label"`
	Cost      float64 `hcl:"cost"`
	FullMass  float64 `hcl:"full_mass"`
	EmptyMass float64 `hcl:"empty_mass"`
	IspAtm    float64 `hcl:"isp_atm"`
	IspVac    float64 `hcl:"isp_vac"`
	Thrust    float64 `hcl:"thrust"`
	Tech      string  `hcl:"tech,optional"`
}

// Mount represents a `mount` block. The label is "stack" or "radial".
type Mount struct {
	Kind string  `hcl:"kind,label"`
	Note string  `hcl:"note"`
	Mass float64 `hcl:"mass"`
	Cost float64 `hcl:"cost"`
	Tech string  `hcl:"tech,optional"`
}
