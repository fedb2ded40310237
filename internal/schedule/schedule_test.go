// ABOUTME: Tests for dense/sparse schedule conversion
// ABOUTME: Covers round-trip, the empty-active-day collapse, and storage JSON shape

package schedule

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func denseWith(days map[string]DaySchedule) Dense {
	dense := Empty()
	for day, ds := range days {
		dense[day] = ds
	}
	return dense
}

func TestEncode_IncludesActiveDaysWithBlocks(t *testing.T) {
	dense := denseWith(map[string]DaySchedule{
		"lunes": {Active: true, Blocks: []Block{{Inicio: "08:00", Fin: "17:00"}}},
	})

	sparse := Encode(dense)

	require.Len(t, sparse, 1)
	assert.Equal(t, []Block{{Inicio: "08:00", Fin: "17:00"}}, sparse["lunes"])
}

func TestEncode_OmitsInactiveDays(t *testing.T) {
	dense := denseWith(map[string]DaySchedule{
		"lunes":  {Active: true, Blocks: []Block{{Inicio: "08:00", Fin: "17:00"}}},
		"martes": {Active: false, Blocks: []Block{}},
	})

	sparse := Encode(dense)

	_, hasLunes := sparse["lunes"]
	_, hasMartes := sparse["martes"]
	assert.True(t, hasLunes)
	assert.False(t, hasMartes, "inactive day must be omitted")
}

func TestEncode_OmitsActiveDayWithoutBlocks(t *testing.T) {
	dense := denseWith(map[string]DaySchedule{
		"jueves": {Active: true, Blocks: []Block{}},
	})

	sparse := Encode(dense)

	assert.Empty(t, sparse, "active day with no blocks is not representable in storage")
}

func TestEncode_PreservesBlockOrder(t *testing.T) {
	blocks := []Block{
		{Inicio: "14:00", Fin: "18:00"},
		{Inicio: "08:00", Fin: "12:00"},
	}
	dense := denseWith(map[string]DaySchedule{
		"viernes": {Active: true, Blocks: blocks},
	})

	sparse := Encode(dense)

	assert.Equal(t, blocks, sparse["viernes"], "authoring order is kept, not sorted")
}

func TestEncode_DoesNotValidateTimes(t *testing.T) {
	// Start after end passes through unchanged
	dense := denseWith(map[string]DaySchedule{
		"sabado": {Active: true, Blocks: []Block{{Inicio: "20:00", Fin: "08:00"}}},
	})

	sparse := Encode(dense)

	assert.Equal(t, []Block{{Inicio: "20:00", Fin: "08:00"}}, sparse["sabado"])
}

func TestDecode_AbsentDaysComeBackInactive(t *testing.T) {
	sparse := Sparse{
		"lunes": {{Inicio: "09:00", Fin: "13:00"}},
	}

	dense := Decode(sparse)

	require.Len(t, dense, len(Days), "every day key must be present after decode")
	assert.True(t, dense["lunes"].Active)
	assert.Equal(t, []Block{{Inicio: "09:00", Fin: "13:00"}}, dense["lunes"].Blocks)
	for _, day := range Days {
		if day == "lunes" {
			continue
		}
		assert.False(t, dense[day].Active, day)
		assert.Empty(t, dense[day].Blocks, day)
	}
}

func TestRoundTrip_HoldsWhenActiveDaysHaveBlocks(t *testing.T) {
	dense := denseWith(map[string]DaySchedule{
		"lunes":     {Active: true, Blocks: []Block{{Inicio: "08:00", Fin: "12:00"}, {Inicio: "14:00", Fin: "18:00"}}},
		"miercoles": {Active: true, Blocks: []Block{{Inicio: "10:00", Fin: "16:00"}}},
		"domingo":   {Active: false, Blocks: []Block{}},
	})

	assert.Equal(t, dense, Decode(Encode(dense)))
}

func TestRoundTrip_ActiveEmptyDayCollapsesToInactive(t *testing.T) {
	dense := denseWith(map[string]DaySchedule{
		"martes": {Active: true, Blocks: []Block{}},
	})

	got := Decode(Encode(dense))

	assert.False(t, got["martes"].Active, "documented non-round-trip case")
	assert.Empty(t, got["martes"].Blocks)
}

func TestMarshalSparse_OmitsEmptyDays(t *testing.T) {
	sparse := Sparse{
		"lunes":  {{Inicio: "08:00", Fin: "17:00"}},
		"martes": {},
	}

	data, err := MarshalSparse(sparse)
	require.NoError(t, err)

	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Contains(t, raw, "lunes")
	assert.NotContains(t, raw, "martes", "empty array must never be emitted")
}

func TestMarshalSparse_EmptyScheduleIsEmptyObject(t *testing.T) {
	data, err := MarshalSparse(Sparse{})
	require.NoError(t, err)
	assert.JSONEq(t, `{}`, string(data))
}

func TestUnmarshalSparse_RoundTripsStorageJSON(t *testing.T) {
	input := `{"lunes":[{"inicio":"08:00","fin":"17:00"}],"viernes":[{"inicio":"09:00","fin":"14:00"}]}`

	sparse, err := UnmarshalSparse([]byte(input))
	require.NoError(t, err)

	require.Len(t, sparse, 2)
	assert.Equal(t, []Block{{Inicio: "08:00", Fin: "17:00"}}, sparse["lunes"])
	assert.Equal(t, []Block{{Inicio: "09:00", Fin: "14:00"}}, sparse["viernes"])
}

func TestUnmarshalSparse_RejectsUnknownDay(t *testing.T) {
	_, err := UnmarshalSparse([]byte(`{"monday":[{"inicio":"08:00","fin":"17:00"}]}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown day")
}

func TestUnmarshalSparse_RejectsEmptyBlockList(t *testing.T) {
	_, err := UnmarshalSparse([]byte(`{"lunes":[]}`))
	require.Error(t, err)
}

func TestUnmarshalSparse_EmptyInput(t *testing.T) {
	sparse, err := UnmarshalSparse(nil)
	require.NoError(t, err)
	assert.Empty(t, sparse)
}
