package em3071x

// Distance is a normalized proximity value where 0 means no object detected
// and 255 means the object is at the closest measurable range.
type Distance uint8

const (
	// DistanceFar is reported when the raw reading reaches the high threshold
	DistanceFar Distance = 0
	// DistanceNear is reported when the raw reading drops to the low threshold
	DistanceNear Distance = 255
)

// ComputeDistance maps a raw proximity reading onto the 0-255 distance scale
// using the low and high thresholds.  Thresholds are not checked for order.
func ComputeDistance(raw uint8, low, high uint16) Distance {

	r := uint16(raw)

	if r >= high {
		return DistanceFar
	}

	if r <= low {
		return DistanceNear
	}

	return Distance(255 - raw)
}
