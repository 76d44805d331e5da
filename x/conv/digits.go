package conv

// FillDigits writes the base-10 digits of n into buf, least significant
// digit first, zero-padding to len(buf). Digits beyond len(buf) are
// truncated; the caller decides the saturation policy before rendering.
// No allocations; no fmt/strconv dependency.
func FillDigits(buf []uint8, n uint32) {
	for i := range buf {
		buf[i] = uint8(n % 10)
		n /= 10
	}
}
