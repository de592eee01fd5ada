package layout_test

import (
	"fmt"

	"github.com/fernvale/mosaic/pkg/layout"
)

func ExamplePartition() {
	items := []layout.Item{
		{ID: "a", AspectRatio: 1.0},
		{ID: "b", AspectRatio: 1.0},
		{ID: "c", AspectRatio: 1.0},
	}

	rows, err := layout.Partition(items, layout.Config{})
	if err != nil {
		panic(err)
	}

	for _, row := range rows {
		fmt.Printf("row [%d,%d) aggregate %.1f\n", row.Start, row.End(), row.Aggregate)
	}
	// Output:
	// row [0,2) aggregate 2.0
	// row [2,3) aggregate 1.0
}

func ExampleMeasure() {
	row := layout.Row{
		Items: []layout.Item{
			{ID: "a", AspectRatio: 1.0},
			{ID: "b", AspectRatio: 1.0},
			{ID: "c", AspectRatio: 1.0},
		},
		Aggregate: 3.0,
	}

	geo, err := layout.Measure(row, 301, 1, layout.DefaultBand)
	if err != nil {
		panic(err)
	}

	fmt.Println("height:", geo.Height)
	for _, item := range geo.Items {
		fmt.Printf("width %d at left %d\n", item.Width, item.Left)
	}
	// Output:
	// height: 100
	// width 99 at left 0
	// width 100 at left 100
	// width 100 at left 201
}

func ExampleCrop() {
	// A panoramic image in an overflowing single-item row: the visible
	// region narrows to the band maximum, centered horizontally.
	rect, err := layout.Crop(5.0, layout.DefaultBand, 1000, 200)
	if err != nil {
		panic(err)
	}

	fmt.Printf("x=%.0f y=%.0f w=%.0f h=%.0f\n", rect.X, rect.Y, rect.W, rect.H)
	// Output:
	// x=140 y=0 w=720 h=200
}

func ExampleCompute() {
	items := []layout.Item{
		{ID: "a", AspectRatio: 1.5},
		{ID: "b", AspectRatio: 1.0},
		{ID: "c", AspectRatio: 0.75},
	}

	result, err := layout.Compute(items, 960, layout.Config{BorderSize: 1})
	if err != nil {
		panic(err)
	}

	for i, row := range result.Rows {
		fmt.Printf("row %d: %d item(s), %dpx tall\n", i, len(row.Items), row.Geometry.Height)
	}
	// Output:
	// row 0: 2 item(s), 384px tall
	// row 1: 1 item(s), 534px tall
}
