// pkg/physics/vector.go
package physics

import "math"

// GridVector is a 2D vector with integer components in grid space.
// Grid space is the logical N x N play grid; positions, velocities, and
// forces are all GridVectors.
type GridVector struct {
	X int
	Y int
}

// Add returns the sum of two grid vectors
func (v GridVector) Add(other GridVector) GridVector {
	return GridVector{
		X: v.X + other.X,
		Y: v.Y + other.Y,
	}
}

// Sub returns the difference between two grid vectors
func (v GridVector) Sub(other GridVector) GridVector {
	return GridVector{
		X: v.X - other.X,
		Y: v.Y - other.Y,
	}
}

// Scale multiplies the vector by an integer scalar
func (v GridVector) Scale(factor int) GridVector {
	return GridVector{
		X: v.X * factor,
		Y: v.Y * factor,
	}
}

// Neg returns the vector pointing the opposite way
func (v GridVector) Neg() GridVector {
	return GridVector{X: -v.X, Y: -v.Y}
}

// LengthSquared returns magnitude squared. Comparisons stay in integer
// arithmetic, which is all the force quantizer needs.
func (v GridVector) LengthSquared() int {
	return v.X*v.X + v.Y*v.Y
}

// IsZero reports whether both components are zero
func (v GridVector) IsZero() bool {
	return v.X == 0 && v.Y == 0
}

// ToVector2D converts the grid vector to a float vector
func (v GridVector) ToVector2D() Vector2D {
	return Vector2D{X: float64(v.X), Y: float64(v.Y)}
}

// Vector2D represents a 2D vector with float64 components. Pixel-space
// coordinates on the render surface use Vector2D.
type Vector2D struct {
	X float64
	Y float64
}

// Add returns the sum of two vectors
func (v Vector2D) Add(other Vector2D) Vector2D {
	return Vector2D{
		X: v.X + other.X,
		Y: v.Y + other.Y,
	}
}

// Sub returns the difference between two vectors
func (v Vector2D) Sub(other Vector2D) Vector2D {
	return Vector2D{
		X: v.X - other.X,
		Y: v.Y - other.Y,
	}
}

// Scale multiplies the vector by a scalar value
func (v Vector2D) Scale(factor float64) Vector2D {
	return Vector2D{
		X: v.X * factor,
		Y: v.Y * factor,
	}
}

// Length returns the magnitude of the vector
func (v Vector2D) Length() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y)
}

// LengthSquared returns magnitude squared (optimization for comparisons)
func (v Vector2D) LengthSquared() float64 {
	return v.X*v.X + v.Y*v.Y
}

// Normalize returns a unit vector in the same direction.
// A zero vector normalizes to the zero vector: degenerate geometry
// renders as a point, it never divides by zero.
func (v Vector2D) Normalize() Vector2D {
	length := v.Length()
	if length == 0 {
		return Vector2D{}
	}
	return Vector2D{
		X: v.X / length,
		Y: v.Y / length,
	}
}

// Perp returns the vector rotated a quarter turn. Arrow heads are built
// from the direction vector and its perpendicular.
func (v Vector2D) Perp() Vector2D {
	return Vector2D{X: -v.Y, Y: v.X}
}
