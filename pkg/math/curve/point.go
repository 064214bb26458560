package curve

// InGroup returns true if all points are non-nil and belong to group.
func InGroup(group Curve, points ...Point) bool {
	for _, p := range points {
		if p == nil || p.Curve().Name() != group.Name() {
			return false
		}
	}
	return true
}

// Sum returns the sum of all points, or the identity of group if there are none.
func Sum(group Curve, points ...Point) Point {
	out := group.NewPoint()
	for _, p := range points {
		out = out.Add(p)
	}
	return out
}
