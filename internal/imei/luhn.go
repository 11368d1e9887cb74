// Package imei validates 15-digit device identifiers with the Luhn checksum.
package imei

// Length is the number of digits in a well-formed IMEI.
const Length = 15

// Valid reports whether s is a well-formed IMEI: exactly 15 decimal digits
// whose Luhn checksum is divisible by 10. It never fails; malformed input
// simply returns false.
func Valid(s string) bool {
	if len(s) != Length {
		return false
	}

	// Digits at positions sharing parity with len%2 are doubled, counting
	// from the most significant digit. For 15 digits that is every second
	// digit starting at index 1, leaving the final check digit untouched.
	parity := Length % 2
	sum := 0
	for i := 0; i < Length; i++ {
		c := s[i]
		if c < '0' || c > '9' {
			return false
		}
		d := int(c - '0')
		if i%2 == parity {
			d *= 2
			if d > 9 {
				d -= 9
			}
		}
		sum += d
	}

	return sum%10 == 0
}
