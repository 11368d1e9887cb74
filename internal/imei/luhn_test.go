package imei

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValid(t *testing.T) {
	t.Run("accepts known-good identifiers", func(t *testing.T) {
		for _, s := range []string{
			"490154203237518",
			"356938035643809",
			"000000000000000",
		} {
			assert.True(t, Valid(s), s)
		}
	})

	t.Run("rejects a bad check digit", func(t *testing.T) {
		assert.True(t, Valid("490154203237518"))
		for _, s := range []string{
			"490154203237510",
			"490154203237519",
			"123456789012345",
		} {
			assert.False(t, Valid(s), s)
		}
	})

	t.Run("rejects wrong lengths", func(t *testing.T) {
		for _, s := range []string{
			"",
			"4901542032375",
			"49015420323751",
			"4901542032375188",
		} {
			assert.False(t, Valid(s), s)
		}
	})

	t.Run("rejects non-digit input without panicking", func(t *testing.T) {
		for _, s := range []string{
			"49015420323751x",
			"4901542O3237518", // letter O, not zero
			"49015 420323751",
			"-90154203237518",
			"имей5643809", // multi-byte runes, 15 bytes total
		} {
			assert.False(t, Valid(s), s)
		}
	})

	t.Run("is deterministic", func(t *testing.T) {
		for i := 0; i < 3; i++ {
			assert.True(t, Valid("356938035643809"))
			assert.False(t, Valid("356938035643808"))
		}
	})
}
