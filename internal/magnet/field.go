package magnet

import "github.com/vovakirdan/polarity/internal/core"

// Force returns the force a single pole exerts on a point. Positive poles
// pull the point toward the pole, negative poles push it away, with
// magnitude k*strength/d². A pole at distance <= eps exerts nothing.
func Force(at core.Vec, pole Pole, k, eps float64) core.Vec {
	d := pole.Cell.Vec().Sub(at)
	dist := d.Len()
	if dist <= eps {
		return core.Vec{}
	}
	mag := pole.Charge.Sign() * k * pole.Strength / (dist * dist)
	return d.Scale(mag / dist)
}

// NetForce sums the force of every pole on a point.
func NetForce(at core.Vec, poles []Pole, k, eps float64) core.Vec {
	var f core.Vec
	for _, p := range poles {
		f = f.Add(Force(at, p, k, eps))
	}
	return f
}

// Field evaluates the net force including power-up modifiers.
type Field struct {
	ForceConstant float64
	Epsilon       float64
	BoostFactor   float64
}

// NewField builds a Field from the tuning constants.
func NewField(p Params) Field {
	return Field{
		ForceConstant: p.ForceConstant,
		Epsilon:       p.Epsilon,
		BoostFactor:   p.BoostFactor,
	}
}

// At returns the net force on a point. Modifiers scale the total after
// summation, never individual poles.
func (f Field) At(at core.Vec, poles []Pole, effects Effects) core.Vec {
	total := NetForce(at, poles, f.ForceConstant, f.Epsilon)
	if effects.Has(PowerUpMagneticBoost) {
		total = total.Scale(f.BoostFactor)
	}
	return total
}
