package design

// Feature is a criterion on which a frontier design is best.
type Feature uint16

const (
	FeatureMass Feature = 1 << iota
	FeatureCost
	FeatureLowRequirements
	FeatureGimbal
	FeatureShortEngine
	FeatureMonopropellant
	FeatureGenerator
	FeatureRadialSize
)

var allFeatures = []Feature{
	FeatureMass,
	FeatureCost,
	FeatureLowRequirements,
	FeatureGimbal,
	FeatureShortEngine,
	FeatureMonopropellant,
	FeatureGenerator,
	FeatureRadialSize,
}

func (f Feature) String() string {
	switch f {
	case FeatureMass:
		return "mass"
	case FeatureCost:
		return "cost"
	case FeatureLowRequirements:
		return "low_requirements"
	case FeatureGimbal:
		return "gimbal"
	case FeatureShortEngine:
		return "short_engine"
	case FeatureMonopropellant:
		return "monopropellant"
	case FeatureGenerator:
		return "generator"
	case FeatureRadialSize:
		return "radial_size"
	}
	return "unknown"
}

// Features is a set of Feature values.
type Features uint16

func (fs *Features) add(f Feature) {
	*fs |= Features(f)
}

// Has reports whether f is in the set.
func (fs Features) Has(f Feature) bool {
	return fs&Features(f) != 0
}

// List returns the members in declaration order.
func (fs Features) List() []Feature {
	var out []Feature
	for _, f := range allFeatures {
		if fs.Has(f) {
			out = append(out, f)
		}
	}
	return out
}

// Strings returns the names of the members in declaration order.
func (fs Features) Strings() []string {
	list := fs.List()
	out := make([]string, len(list))
	for i, f := range list {
		out[i] = f.String()
	}
	return out
}
