package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlotMapBookAndRelease(t *testing.T) {
	m := SlotMap{}

	assert.False(t, m.Booked("10_5_2024", "10:00 AM"))

	m.Book("10_5_2024", "10:00 AM")
	m.Book("10_5_2024", "11:00 AM")
	assert.True(t, m.Booked("10_5_2024", "10:00 AM"))
	assert.False(t, m.Booked("11_5_2024", "10:00 AM"))

	m.Release("10_5_2024", "10:00 AM")
	assert.False(t, m.Booked("10_5_2024", "10:00 AM"))
	assert.Equal(t, []string{"11:00 AM"}, m["10_5_2024"])

	// releasing a slot that is already gone changes nothing
	m.Release("10_5_2024", "10:00 AM")
	assert.Equal(t, []string{"11:00 AM"}, m["10_5_2024"])
}

func TestSlotMapCloneIsDeep(t *testing.T) {
	m := SlotMap{"10_5_2024": {"10:00 AM"}}
	clone := m.Clone()

	clone.Book("10_5_2024", "11:00 AM")
	assert.Equal(t, []string{"10:00 AM"}, m["10_5_2024"])
}

func TestSlotMapScanValue(t *testing.T) {
	m := SlotMap{"10_5_2024": {"10:00 AM", "11:00 AM"}}

	value, err := m.Value()
	require.NoError(t, err)

	var scanned SlotMap
	require.NoError(t, scanned.Scan(value))
	assert.Equal(t, m, scanned)

	var fromNil SlotMap
	require.NoError(t, fromNil.Scan(nil))
	assert.NotNil(t, fromNil)
	assert.Empty(t, fromNil)
}
