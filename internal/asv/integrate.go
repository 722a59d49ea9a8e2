package asv

// ClampTo constrains value into [-limit, +limit].
func ClampTo(value, limit float64) float64 {
	if value > limit {
		return limit
	}
	if value < -limit {
		return -limit
	}
	return value
}

// AxisStep advances one axis over dt under constant acceleration a, starting
// at velocity v with |v| <= limit. If the velocity bound is reached before dt
// expires, the rest of the interval is travelled at the bound.
// Returns (displacement, end velocity).
func AxisStep(v, a, dt, limit float64) (float64, float64) {
	switch {
	case a > 0:
		tSat := (limit - v) / a
		if tSat > dt {
			return v*dt + 0.5*a*dt*dt, v + a*dt
		}
		return (v+limit)*tSat/2 + limit*(dt-tSat), limit
	case a < 0:
		tSat := (-limit - v) / a
		if tSat > dt {
			return v*dt + 0.5*a*dt*dt, v + a*dt
		}
		return (v-limit)*tSat/2 - limit*(dt-tSat), -limit
	default:
		return v * dt, v
	}
}
