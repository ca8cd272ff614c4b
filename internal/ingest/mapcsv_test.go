package ingest

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cg-zhou/agv-monitor/internal/core"
)

func TestReadMapCSV_ParsesAllKinds(t *testing.T) {
	csv := "type,name,x,y,pitch\n" +
		"StartPoint,SP01,2,5,\n" +
		"EndPoint,EP01,18,5,\n" +
		"Agv,AGV01,3,5,0\n"

	elements, err := ReadMapCSV(strings.NewReader(csv), "map_data.csv")
	require.NoError(t, err)
	require.Len(t, elements, 3)

	require.Equal(t, core.StartPoint, elements[0].Kind)
	require.Equal(t, core.Point{X: 2, Y: 5}, elements[0].Position())
	require.Nil(t, elements[0].Pitch)

	require.Equal(t, core.AgvElement, elements[2].Kind)
	require.NotNil(t, elements[2].Pitch)
	require.Equal(t, core.Right, *elements[2].Pitch)
}

func TestReadMapCSV_RejectsWrongHeader(t *testing.T) {
	csv := "kind,name,x,y,pitch\nStartPoint,SP01,2,5,\n"
	_, err := ReadMapCSV(strings.NewReader(csv), "map_data.csv")
	require.Error(t, err)
	var pe *core.ParseError
	require.ErrorAs(t, err, &pe)
}

func TestReadMapCSV_RejectsAgvRowMissingPitch(t *testing.T) {
	csv := "type,name,x,y,pitch\nAgv,AGV01,3,5,\n"
	_, err := ReadMapCSV(strings.NewReader(csv), "map_data.csv")
	require.Error(t, err)
}

func TestReadMapCSV_RejectsUnknownKind(t *testing.T) {
	csv := "type,name,x,y,pitch\nWaypoint,W01,3,5,\n"
	_, err := ReadMapCSV(strings.NewReader(csv), "map_data.csv")
	require.Error(t, err)
}

func TestReadMapCSV_RejectsInvalidPitch(t *testing.T) {
	csv := "type,name,x,y,pitch\nAgv,AGV01,3,5,45\n"
	_, err := ReadMapCSV(strings.NewReader(csv), "map_data.csv")
	require.Error(t, err)
}
