package eval

// defaultAlignment is applied to operators that leave Alignment at its zero
// value. Normally set once at startup from config.Config.DefaultAlignment;
// 1 (no constraint) until then.
var defaultAlignment = 1

// SetDefaultAlignment overrides the alignment used for operators that don't
// declare their own (Alignment == 0). n <= 0 is ignored.
func SetDefaultAlignment(n int) {
	if n > 0 {
		defaultAlignment = n
	}
}

// alignmentFor resolves an operator's effective alignment: its own
// declared value, or the configured default when it left Alignment unset.
func alignmentFor(opAlignment int) int {
	if opAlignment != 0 {
		return opAlignment
	}
	return defaultAlignment
}

// alignPadding computes how many bytes must be skipped so that pos+padding
// is a multiple of alignment. alignment <= 1 means "no alignment
// constraint".
func alignPadding(pos, alignment int) int {
	if alignment <= 1 {
		return 0
	}
	rem := pos % alignment
	if rem == 0 {
		return 0
	}
	return alignment - rem
}
