package workorders

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRomanMonth(t *testing.T) {
	assert.Equal(t, "I", RomanMonth(time.January))
	assert.Equal(t, "V", RomanMonth(time.May))
	assert.Equal(t, "IX", RomanMonth(time.September))
	assert.Equal(t, "XII", RomanMonth(time.December))
}

func TestFormatNumber(t *testing.T) {
	may := time.Date(2024, time.May, 6, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "SPK/V/2024/003", FormatNumber(may, 3))

	dec := time.Date(2025, time.December, 31, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "SPK/XII/2025/120", FormatNumber(dec, 120))
}

func TestFormDeadlineParsing(t *testing.T) {
	spk := SPKForm{ProjectID: 1, DeveloperID: 2, Deadline: "2024-06-01"}.Model(SPK{})
	if assert.NotNil(t, spk.Deadline) {
		assert.Equal(t, 2024, spk.Deadline.Year())
	}

	spk = SPKForm{ProjectID: 1, DeveloperID: 2, Deadline: "01/06/2024"}.Model(SPK{})
	assert.Nil(t, spk.Deadline, "unparseable deadlines are dropped")
}
