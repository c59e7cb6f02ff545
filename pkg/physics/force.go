// pkg/physics/force.go
package physics

// forceCandidates is the fixed compass of discretized gravity vectors:
// the zero vector plus the eight unit-component directions. Enumeration
// order is part of the contract -- ties in the quantizer resolve to the
// first candidate, so (0,0) wins when the position sits on the attractor.
var forceCandidates = [9]GridVector{
	{0, 0},
	{-1, 0},
	{1, 0},
	{0, 1},
	{0, -1},
	{-1, -1},
	{-1, 1},
	{1, 1},
	{1, -1},
}

// QuantizeForce returns the compass vector that pulls pos hardest toward
// the attractor: the candidate offset whose application leaves the
// smallest squared displacement to the attractor. With gravity disabled
// the force is always zero. Pure and deterministic for identical inputs.
func QuantizeForce(pos, attractor GridVector, gravityEnabled bool) GridVector {
	if !gravityEnabled {
		return GridVector{}
	}
	best := forceCandidates[0]
	bestDist := attractor.Sub(pos.Add(best)).LengthSquared()
	for _, candidate := range forceCandidates[1:] {
		dist := attractor.Sub(pos.Add(candidate)).LengthSquared()
		if dist < bestDist {
			best = candidate
			bestDist = dist
		}
	}
	return best
}
