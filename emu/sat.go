package emu

// satRange clamps val to [min, max], recording saturation in *sat.
func satRange(val, min, max int64, sat *bool) int64 {
	if val > max {
		*sat = true
		return max
	}
	if val < min {
		*sat = true
		return min
	}
	return val
}

// saddOverflow returns a+b and whether the signed addition overflowed.
func saddOverflow(a, b int64) (int64, bool) {
	r := a + b
	return r, (a^r)&(b^r) < 0
}

// ssubOverflow returns a-b and whether the signed subtraction overflowed.
func ssubOverflow(a, b int64) (int64, bool) {
	r := a - b
	return r, (a^b)&(a^r) < 0
}

// sqrshl shifts the bits-wide signed value src (sign-extended into an
// int32) left by shift; negative shifts shift right, with rounding when
// round is set. When satp is non-nil, out-of-range results clamp to the
// signed range for that width and *satp records the saturation. Results
// wider than bits bits are truncated by the caller.
func sqrshl(src int32, shift int8, bits int, round bool, satp *bool) int32 {
	switch {
	case int(shift) <= -bits:
		// Rounding the sign bit always produces 0.
		if round {
			return 0
		}
		return src >> 31
	case shift < 0:
		if round {
			src >>= -shift - 1
			return src>>1 + src&1
		}
		return src >> -shift
	case int(shift) < bits:
		val := src << shift
		if bits == 32 {
			if satp == nil || val>>shift == src {
				return val
			}
		} else {
			extval := val << (32 - bits) >> (32 - bits)
			if satp == nil || val == extval {
				return extval
			}
		}
	default:
		if satp == nil || src == 0 {
			return 0
		}
	}

	*satp = true
	limit := int32(uint32(1) << (bits - 1))
	if src >= 0 {
		return limit - 1
	}
	return limit
}

// uqrshl is the unsigned counterpart of sqrshl: src is the bits-wide
// unsigned value zero-extended into a uint32.
func uqrshl(src uint32, shift int8, bits int, round bool, satp *bool) uint32 {
	rnd := 0
	if round {
		rnd = 1
	}
	switch {
	case int(shift) <= -(bits + rnd):
		return 0
	case shift < 0:
		if round {
			src >>= -shift - 1
			return src>>1 + src&1
		}
		return src >> -shift
	case int(shift) < bits:
		val := src << shift
		if bits == 32 {
			if satp == nil || val>>shift == src {
				return val
			}
		} else {
			extval := val & (1<<bits - 1)
			if satp == nil || val == extval {
				return extval
			}
		}
	default:
		if satp == nil || src == 0 {
			return 0
		}
	}

	*satp = true
	return uint32(1)<<bits - 1
}
