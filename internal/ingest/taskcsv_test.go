package ingest

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cg-zhou/agv-monitor/internal/core"
)

func taskElements() []core.MapElement {
	return []core.MapElement{
		{Kind: core.StartPoint, Name: "SP01", X: 2, Y: 5},
		{Kind: core.EndPoint, Name: "EP01", X: 18, Y: 5},
	}
}

func TestReadTaskCSV_ParsesRowsInOrder(t *testing.T) {
	csv := "id,start_point,end_point,priority,remaining_time\n" +
		"0,SP01,EP01,High,120\n" +
		"1,SP01,EP01,Normal,None\n"

	tasks, err := ReadTaskCSV(strings.NewReader(csv), "task_csv.csv", taskElements())
	require.NoError(t, err)
	require.Len(t, tasks, 2)

	require.Equal(t, core.TaskID(0), tasks[0].ID)
	require.Equal(t, core.High, tasks[0].Priority)
	require.NotNil(t, tasks[0].Deadline)
	require.Equal(t, 120, *tasks[0].Deadline)
	require.Equal(t, 0, tasks[0].Seq())

	require.Equal(t, core.Normal, tasks[1].Priority)
	require.Nil(t, tasks[1].Deadline)
	require.Equal(t, 1, tasks[1].Seq())

	require.Equal(t, core.Point{X: 2, Y: 5}, tasks[0].StartPosition)
	require.Equal(t, core.Point{X: 18, Y: 5}, tasks[0].EndPosition)
}

func TestReadTaskCSV_LegacyPriorityMapsToNormal(t *testing.T) {
	csv := "id,start_point,end_point,priority,remaining_time\n" +
		"0,SP01,EP01,Medium,\n"

	tasks, err := ReadTaskCSV(strings.NewReader(csv), "task_csv.csv", taskElements())
	require.NoError(t, err)
	require.Equal(t, core.Normal, tasks[0].Priority)
}

func TestReadTaskCSV_RejectsUnknownStartPoint(t *testing.T) {
	csv := "id,start_point,end_point,priority,remaining_time\n" +
		"0,SP99,EP01,Normal,\n"
	_, err := ReadTaskCSV(strings.NewReader(csv), "task_csv.csv", taskElements())
	require.Error(t, err)
}

func TestReadTaskCSV_RejectsInvalidRemainingTime(t *testing.T) {
	csv := "id,start_point,end_point,priority,remaining_time\n" +
		"0,SP01,EP01,Normal,soon\n"
	_, err := ReadTaskCSV(strings.NewReader(csv), "task_csv.csv", taskElements())
	require.Error(t, err)
}
