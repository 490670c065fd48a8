package equations

import "math"

// ComponentSet is one manufacturable (Lr, Cr, Lm) combination.
type ComponentSet struct {
	Lr float64
	Cr float64
	Lm float64
}

// gridOptions returns the floor and ceil neighbors of val on the given grid,
// collapsed to a single option when val already lands on the grid.
func gridOptions(val, step float64) []float64 {
	d := val / step
	lower := math.Floor(d) * step
	upper := math.Ceil(d) * step
	if lower == upper {
		return []float64{lower}
	}
	return []float64{lower, upper}
}

// Discretize maps ideal tank components onto the manufacturable grid,
// returning the Cartesian product of the floor/ceil neighbors of each value.
// At most eight combinations; fewer when a value is already on grid.
func Discretize(lr, cr, lm, lStep, cStep float64) []ComponentSet {
	lrOpts := gridOptions(lr, lStep)
	crOpts := gridOptions(cr, cStep)
	lmOpts := gridOptions(lm, lStep)

	sets := make([]ComponentSet, 0, len(lrOpts)*len(crOpts)*len(lmOpts))
	for _, lrV := range lrOpts {
		for _, crV := range crOpts {
			for _, lmV := range lmOpts {
				sets = append(sets, ComponentSet{Lr: lrV, Cr: crV, Lm: lmV})
			}
		}
	}
	return sets
}
