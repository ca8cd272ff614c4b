// Command agvvalidate independently checks a recorded trajectory CSV against
// a map and task list, reporting every violation spec.md §4.8 names.
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/cg-zhou/agv-monitor/internal/core"
	"github.com/cg-zhou/agv-monitor/internal/ingest"
	"github.com/cg-zhou/agv-monitor/internal/record"
	"github.com/cg-zhou/agv-monitor/internal/validate"
)

func main() {
	app := &cli.App{
		Name:  "agvvalidate",
		Usage: "validate a recorded AGV trajectory against its map and task list",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "map", Required: true, Usage: "map_data.csv path"},
			&cli.StringFlag{Name: "tasks", Required: true, Usage: "task_csv.csv path"},
			&cli.StringFlag{Name: "trajectory", Required: true, Usage: "recorded trajectory CSV path"},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func run(c *cli.Context) error {
	elements, err := readMap(c.String("map"))
	if err != nil {
		return err
	}
	tasks, err := readTasks(c.String("tasks"), elements)
	if err != nil {
		return err
	}
	trajectory, err := readTrajectory(c.String("trajectory"))
	if err != nil {
		return err
	}

	var startPoints, endPoints []core.MapElement
	for _, e := range elements {
		switch e.Kind {
		case core.StartPoint:
			startPoints = append(startPoints, e)
		case core.EndPoint:
			endPoints = append(endPoints, e)
		}
	}

	results := validate.Validate(startPoints, endPoints, tasks, trajectory)
	if len(results) == 0 {
		fmt.Println("trajectory valid: zero violations")
		return nil
	}

	fatal := false
	for _, r := range results {
		fmt.Println(r.String())
		fatal = fatal || r.Fatal
	}
	fmt.Printf("%d violation(s) found\n", len(results))

	if fatal {
		return cli.Exit("fatal violation found (task sequence or coverage mismatch)", 1)
	}
	return cli.Exit("", 1)
}

func readMap(path string) ([]core.MapElement, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ingest.ReadMapCSV(f, path)
}

func readTasks(path string, elements []core.MapElement) ([]*core.Task, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ingest.ReadTaskCSV(f, path, elements)
}

func readTrajectory(path string) ([]record.Row, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ingest.ReadTrajectoryCSV(f, path)
}
