package record

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPredicate_Equals(t *testing.T) {
	r := New("Ticket", "id-1")
	r.Set("storeCode", "S1")
	r.Set("priority", 2)
	r.Set("open", true)

	assert.True(t, Equals("storeCode", "S1").Match(r))
	assert.False(t, Equals("storeCode", "S2").Match(r))
	assert.True(t, Equals("priority", 2).Match(r))
	assert.True(t, Equals("open", true).Match(r))
	assert.False(t, Equals("open", false).Match(r))
	assert.False(t, Equals("missing", "S1").Match(r))
}

func TestPredicate_EqualsNullField(t *testing.T) {
	r := New("Ticket", "id-1")
	r.Clear("storeCode")

	assert.False(t, Equals("storeCode", "S1").Match(r), "null never equals a value")
}

func TestPredicate_Contains(t *testing.T) {
	r := New("Task", "id-1")
	r.Set("stores", []string{"S1", "S3"})

	assert.True(t, Contains("stores", "S1").Match(r))
	assert.True(t, Contains("stores", "S3").Match(r))
	assert.False(t, Contains("stores", "S2").Match(r))
	assert.False(t, Contains("missing", "S1").Match(r))

	// Scalar fields never satisfy a membership test.
	r.Set("storeCode", "S1")
	assert.False(t, Contains("storeCode", "S1").Match(r))
}

func TestPredicate_Between(t *testing.T) {
	day := func(d string) time.Time {
		parsed, err := time.Parse("2006-01-02", d)
		assert.NoError(t, err)
		return parsed.UTC()
	}

	r := New("StoreReport", "id-1")
	r.SetTime("date", day("2026-03-15"))

	assert.True(t, Between("date", day("2026-03-01"), day("2026-03-31")).Match(r))
	assert.True(t, Between("date", day("2026-03-15"), day("2026-03-15")).Match(r), "bounds are inclusive")
	assert.False(t, Between("date", day("2026-04-01"), day("2026-04-30")).Match(r))
	assert.False(t, Between("missing", day("2026-03-01"), day("2026-03-31")).Match(r))
}
