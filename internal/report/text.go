package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/mitchellh/go-wordwrap"

	"github.com/vk/stagefinder/internal/config"
	"github.com/vk/stagefinder/internal/design"
	"github.com/vk/stagefinder/internal/parts"
)

const (
	lineWidth = 70
	markYes   = "      ✔ "
	markNo    = "\t"
)

// Request describes what was searched for.
type Request struct {
	Profile     design.Profile
	Preferences config.Preferences
	Warnings    []string
}

// WriteText prints the prologue (unless quiet) and every design.
func WriteText(w io.Writer, req Request, designs []*design.Design, quiet bool) error {
	var b strings.Builder
	if !quiet {
		writePrologue(&b, req)
	}
	for _, d := range designs {
		writeDesign(&b, d)
	}
	if !quiet && len(designs) == 0 {
		b.WriteString("Sorry, nothing found. Change constraints and try again.\n")
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func fill(b *strings.Builder, s string) {
	b.WriteString(wordwrap.WrapString(s, lineWidth))
	b.WriteByte('\n')
}

func writePrologue(b *strings.Builder, req Request) {
	p, prefs := req.Profile, req.Preferences
	if prefs.ShowAll {
		fill(b, "Printing all designs (i.e. engine and tank combinations) fulfilling these requirements:")
	} else {
		fill(b, "Printing the best (and only the best!) designs (i.e. engine and tank combinations) fulfilling these requirements:")
	}
	fmt.Fprintf(b, "- Payload: %.0f kg.\n", p.Payload)
	b.WriteString("- Flight phases: ")
	for i := range p.DeltaV {
		sep := "; "
		if i == len(p.DeltaV)-1 {
			sep = "."
		}
		fmt.Fprintf(b, "%.0f m/s, %.1f m/s², %.2f atm%s", p.DeltaV[i], p.MinAcceleration[i], p.Pressure[i], sep)
	}
	b.WriteByte('\n')
	if prefs.PreferredSize != 0 {
		fmt.Fprintf(b, "- Preferred size: %s.\n", strings.ToLower(prefs.PreferredSize.String()))
	} else {
		b.WriteString("- Preferred size: none.\n")
	}
	switch prefs.Gimbal {
	case 0:
		b.WriteString("- You do not need engine with thrust vectoring.\n")
	case 1:
		b.WriteString("- You prefer engines with thrust vectoring.\n")
	default:
		b.WriteString("- You prefer engines with the best thrust vectoring.\n")
	}
	if !prefs.Boosters {
		b.WriteString("- Solid fuel boosters must not be added to the ship.\n")
	}
	if !prefs.Generators {
		b.WriteString("- You do not need engine generating electric power.\n")
	}
	if !prefs.ShortEngines {
		b.WriteString("- You do not care about length of engine.\n")
	}
	if prefs.Monopropellant {
		b.WriteString("- You prefer engines using monopropellant.\n")
	}
	for _, w := range req.Warnings {
		fill(b, "WARNING: "+w)
	}
	fill(b, "Note that these options heavily influence which engine choices are shown to you. "+
		"If these aren't your constraints, consult stagefinder --help and try again.")
	b.WriteByte('\n')
}

func mark(d *design.Design, f design.Feature) string {
	if d.Features.Has(f) {
		return markYes
	}
	return markNo
}

// strutNames are the landing struts an engine of the given length fits.
var strutNames = []string{
	"LT-05 Micro Landing Struts",
	"LT-1 Landing Struts",
	"LT-2 Landing Struts",
}

func writeDesign(b *strings.Builder, d *design.Design) {
	b.WriteString(d.Name())
	b.WriteByte('\n')
	fmt.Fprintf(b, "%sTotal Mass: %.0f kg (including payload and full tanks)\n", mark(d, design.FeatureMass), d.Mass())
	fmt.Fprintf(b, "%sCost: %.0f\n", mark(d, design.FeatureCost), d.Cost())

	propMark := markNo
	if d.Propellant == parts.Monopropellant {
		propMark = mark(d, design.FeatureMonopropellant)
	}
	fmt.Fprintf(b, "%s%s: %.0f units (%.0f kg full tank mass)\n", propMark, d.Propellant, d.PropellantUnits(), d.Fuel)
	if len(d.Tanks) > 0 {
		tanks := make([]string, 0, len(d.Tanks))
		for _, u := range d.Tanks {
			tanks = append(tanks, fmt.Sprintf("%d * %s", u.Count, u.Tank.Name))
		}
		fmt.Fprintf(b, "\tTanks: %s\n", strings.Join(tanks, ", "))
	}
	fmt.Fprintf(b, "%sRequires: %s\n", mark(d, design.FeatureLowRequirements), d.RequiredTech)
	fmt.Fprintf(b, "%sRadial size: %s\n", mark(d, design.FeatureRadialSize), d.Size)
	if d.Engine.Gimbal != 0 {
		fmt.Fprintf(b, "%sGimbal: %.1f °\n", mark(d, design.FeatureGimbal), d.Engine.Gimbal)
	}
	if d.Engine.Generator {
		fmt.Fprintf(b, "%sEngine generates electricity\n", mark(d, design.FeatureGenerator))
	}
	if l := d.Engine.Length; l >= 0 && l < len(strutNames) {
		fmt.Fprintf(b, "%sEngine is short enough to be used with %s\n", mark(d, design.FeatureShortEngine), strutNames[l])
	}
	for _, n := range d.Notes {
		fmt.Fprintf(b, "\t%s\n", n)
	}
	b.WriteString("\tPerformance:\n")
	for i, s := range d.Trajectory {
		pressure := "vacuum  "
		if s.Pressure > 0 {
			pressure = fmt.Sprintf("%.2f atm", s.Pressure)
		}
		solid := " "
		if s.Solid {
			solid = "*"
		}
		fmt.Fprintf(b, "\t %s%d:  %4.0f m/s @ %s  %5.2f m/s² - %5.2f m/s²  %5.1f t - %5.1f t\n",
			solid, i+1, s.DeltaV, pressure, s.StartAccel, s.EndAccel, s.StartMass/1000, s.EndMass/1000)
	}
}
