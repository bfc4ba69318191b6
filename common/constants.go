package common

const (
	BaseWidth  = 1280
	BaseHeight = 720

	// Gravity is the default downward acceleration in pixels per tick per
	// 60 milliseconds.
	Gravity = 9.51

	// AirDensity feeds the drag-equilibrium terminal velocity formula.
	AirDensity = 1.225

	DefaultDrag       = 0.00001
	DefaultMoveFactor = 0.5
	DefaultTickRate   = 120

	// ContactTolerance is the band around each edge inside which a resting
	// contact still counts as touching.
	ContactTolerance = 1.0

	// ViewportMargin extends the visible region on each axis for culling.
	ViewportMargin = 100.0
)
