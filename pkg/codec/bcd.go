package codec

import (
	"fmt"
	"math"
	"strconv"

	dberr "flexdb/pkg/error"
)

var powersOf10 = [...]int64{
	1, 10, 100, 1_000, 10_000, 100_000, 1_000_000, 10_000_000, 100_000_000,
	1_000_000_000, 10_000_000_000, 100_000_000_000, 1_000_000_000_000,
	10_000_000_000_000, 100_000_000_000_000, 1_000_000_000_000_000,
	10_000_000_000_000_000, 100_000_000_000_000_000, 1_000_000_000_000_000_000,
}

// UnpackedDigit decodes a single unpacked BCD byte. The low nibble is the
// digit, capped at 9. A zero high nibble marks the digit as negative.
func UnpackedDigit(b byte) int64 {
	digit := min(9, int64(b&0x0F))
	if b>>4 == 0 {
		return -digit
	}
	return digit
}

// PackedDigit decodes a packed BCD byte at positional weight place:
// low nibble * 10^place + high nibble * 10^(place+1), each nibble capped at 9.
// A result that does not fit in an int64 decodes to 0.
func PackedDigit(b byte, place int) int64 {
	low, ok := scaled(min(9, int64(b&0x0F)), place)
	if !ok {
		return 0
	}
	high, ok := scaled(min(9, int64(b>>4)), place+1)
	if !ok {
		return 0
	}
	sum, ok := addInt64(low, high)
	if !ok {
		return 0
	}
	return sum
}

// Int decodes a BCD integer.
//
//   - 0 bytes: BCD_DECODING_ERROR
//   - 1 byte: PackedDigit at weight 0
//   - 2 bytes: raw little-endian int16
//   - more: when signed, the leading byte only carries the sign (high nibble 0
//     means negative) and the remaining bytes are packed digits, most
//     significant first. Unsigned values use every byte as digits.
func Int(data []byte, signed bool) (int64, error) {
	switch len(data) {
	case 0:
		return 0, dberr.BCDDecoding("cannot decode an integer from an empty buffer")
	case 1:
		return PackedDigit(data[0], 0), nil
	case 2:
		return int64(int16(uint16(data[0]) | uint16(data[1])<<8)), nil
	}

	sign := int64(1)
	digits := data
	if signed {
		if data[0]>>4 == 0 {
			sign = -1
		}
		digits = data[1:]
	}

	var value int64
	place := 0
	for i := len(digits) - 1; i >= 0; i-- {
		var ok bool
		value, ok = addInt64(value, PackedDigit(digits[i], place))
		if !ok {
			return 0, dberr.BCDDecoding("value of %d packed bytes overflows int64", len(digits))
		}
		place += 2
	}

	return value * sign, nil
}

// Float decodes a BCD fixed-point number whose last scale bytes hold the
// fractional part. The integer part is decoded signed, the fractional part
// unsigned, and the two are joined as "int.frac" before parsing.
func Float(data []byte, scale int) (float64, error) {
	if scale == 0 {
		v, err := Int(data, true)
		return float64(v), err
	}
	if scale < 0 || scale >= len(data) {
		return 0, dberr.BCDDecoding("scale %d is invalid for a %d-byte number", scale, len(data))
	}

	split := len(data) - scale
	whole, err := Int(data[:split], true)
	if err != nil {
		return 0, err
	}
	frac, err := Int(data[split:], false)
	if err != nil {
		return 0, err
	}
	if frac < 0 {
		frac = -frac
	}

	composed := fmt.Sprintf("%d.%d", whole, frac)
	value, err := strconv.ParseFloat(composed, 64)
	if err != nil {
		return 0, dberr.BCDDecoding("unparsable decimal %q", composed).WithCause(err)
	}
	return value, nil
}

func scaled(digit int64, place int) (int64, bool) {
	if digit == 0 {
		return 0, true
	}
	if place < 0 || place >= len(powersOf10) {
		return 0, false
	}
	p := powersOf10[place]
	if digit > math.MaxInt64/p {
		return 0, false
	}
	return digit * p, true
}

func addInt64(a, b int64) (int64, bool) {
	sum := a + b
	if (b > 0 && sum < a) || (b < 0 && sum > a) {
		return 0, false
	}
	return sum, true
}
