package physics

// Positioned is anything that occupies a cell on a structure's block grid.
// Only the minimum corner is used for distance calculations.
type Positioned interface {
	Min() Vec3i
}

// SizeClass is the grid scale a structure is built on.
type SizeClass uint8

const (
	SizeSmall SizeClass = iota
	SizeLarge
)

func (s SizeClass) String() string {
	switch s {
	case SizeSmall:
		return "small"
	case SizeLarge:
		return "large"
	default:
		return "unknown"
	}
}

// ParseSizeClass accepts "small" and "large".
func ParseSizeClass(s string) (SizeClass, bool) {
	switch s {
	case "small":
		return SizeSmall, true
	case "large":
		return SizeLarge, true
	default:
		return SizeSmall, false
	}
}

// Block edge lengths in world units.
const (
	SmallBlockSize = 0.5
	LargeBlockSize = 2.5
)

// BlockSize returns the world-space edge length of one grid cell.
// Unknown classes fall back to the small grid.
func BlockSize(s SizeClass) float64 {
	if s == SizeLarge {
		return LargeBlockSize
	}
	return SmallBlockSize
}
