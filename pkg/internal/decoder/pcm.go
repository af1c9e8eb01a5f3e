package decoder

// MidCode is the codec zero-scale code.
const MidCode uint16 = 0x8000

// ToCode maps a signed PCM sample into the unsigned codec domain.
func ToCode(s int16) uint16 {
	if s < 0 {
		return MidCode - uint16(-int32(s))
	}
	return MidCode + uint16(s)
}

// FromCode is the inverse of ToCode.
func FromCode(code uint16) int16 {
	return int16(int32(code) - int32(MidCode))
}
