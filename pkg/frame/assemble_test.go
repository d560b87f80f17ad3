package frame

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/junzis/opensky-go/pkg/opensky"
)

func historyColumns() []ColumnDesc {
	return []ColumnDesc{
		{Name: "time", EngineType: "bigint"},
		{Name: "icao24", EngineType: "varchar"},
		{Name: "lat", EngineType: "double"},
		{Name: "onground", EngineType: "boolean"},
	}
}

func TestAssemble_TypeMapping(t *testing.T) {
	rows := [][]any{
		{json.Number("1735725600"), "485a32", json.Number("52.3"), false},
		{json.Number("1735725610"), "485a33", json.Number("52.4"), true},
	}

	f, err := Assemble(historyColumns(), rows)
	require.NoError(t, err)

	require.Equal(t, 2, f.NumRows())
	require.Equal(t, []string{"time", "icao24", "lat", "onground"}, f.ColumnNames())

	timeCol := f.Column("time")
	require.Equal(t, Int, timeCol.Type)
	assert.Equal(t, int64(1735725600), timeCol.Ints[0])

	latCol := f.Column("lat")
	require.Equal(t, Float, latCol.Type)
	assert.InDelta(t, 52.4, latCol.Floats[1], 1e-9)

	assert.Equal(t, String, f.Column("icao24").Type)
	assert.Equal(t, "485a33", f.Column("icao24").Strings[1])

	assert.Equal(t, Bool, f.Column("onground").Type)
	assert.True(t, f.Column("onground").Bools[1])
}

func TestAssemble_Nulls(t *testing.T) {
	rows := [][]any{
		{nil, nil, nil, nil},
		{json.Number("10"), "485a32", json.Number("1.5"), true},
	}

	f, err := Assemble(historyColumns(), rows)
	require.NoError(t, err)

	for _, name := range []string{"time", "icao24", "lat", "onground"} {
		col := f.Column(name)
		assert.False(t, col.Valid[0], "column %s row 0 should be null", name)
		assert.True(t, col.Valid[1], "column %s row 1 should be set", name)
		assert.Nil(t, col.Value(0))
	}
}

func TestAssemble_UnconvertibleCellBecomesNull(t *testing.T) {
	cols := []ColumnDesc{{Name: "lat", EngineType: "double"}}
	f, err := Assemble(cols, [][]any{{"not-a-number"}})
	require.NoError(t, err)

	assert.False(t, f.Column("lat").Valid[0])
}

func TestAssemble_FractionalIntegerBecomesNull(t *testing.T) {
	cols := []ColumnDesc{{Name: "time", EngineType: "bigint"}}
	f, err := Assemble(cols, [][]any{
		{json.Number("1735725600")},
		{json.Number("12.5")},
	})
	require.NoError(t, err)

	col := f.Column("time")
	assert.Equal(t, int64(1735725600), col.Value(0))
	assert.False(t, col.Valid[1], "fractional value must not be truncated")
}

func TestAssemble_NonStringScalarRendersText(t *testing.T) {
	cols := []ColumnDesc{{Name: "squawk", EngineType: "varchar"}}
	f, err := Assemble(cols, [][]any{{json.Number("7700")}, {true}})
	require.NoError(t, err)

	assert.Equal(t, "7700", f.Column("squawk").Strings[0])
	assert.Equal(t, "true", f.Column("squawk").Strings[1])
}

func TestAssemble_ParameterizedTypeTags(t *testing.T) {
	cols := []ColumnDesc{
		{Name: "callsign", EngineType: "varchar(8)"},
		{Name: "hour", EngineType: "bigint"},
	}
	f, err := Assemble(cols, [][]any{{"KLM1234 ", json.Number("1735725600")}})
	require.NoError(t, err)

	assert.Equal(t, String, f.Column("callsign").Type)
	assert.Equal(t, Int, f.Column("hour").Type)
}

func TestAssemble_EmptyResultUsesTrajectorySchema(t *testing.T) {
	// Empty results ignore the declared columns and expose the full
	// fixed trajectory column set.
	f, err := Assemble([]ColumnDesc{{Name: "whatever", EngineType: "double"}}, nil)
	require.NoError(t, err)

	assert.Equal(t, 0, f.NumRows())
	assert.Equal(t, opensky.TrajectoryColumns, f.ColumnNames())
}

func TestAssemble_ShortRow(t *testing.T) {
	f, err := Assemble(historyColumns(), [][]any{{json.Number("1")}})
	require.NoError(t, err)

	assert.True(t, f.Column("time").Valid[0])
	assert.False(t, f.Column("lat").Valid[0])
}

func TestFrame_RowRendering(t *testing.T) {
	rows := [][]any{{json.Number("1735725600"), "485a32", json.Number("52.3"), nil}}
	f, err := Assemble(historyColumns(), rows)
	require.NoError(t, err)

	assert.Equal(t, []string{"1735725600", "485a32", "52.3", ""}, f.Row(0))
}
