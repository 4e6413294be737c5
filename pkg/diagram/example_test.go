package diagram_test

import (
	"fmt"
	"os"

	"github.com/matzehuels/vnav/pkg/diagram"
	"github.com/matzehuels/vnav/pkg/drawing"
)

func ExampleParse() {
	raw := []byte(`[
		{"id": "fix", "type": "At", "color": "#000000", "x": 10, "y": 20,
		 "showGuideLine": false, "guideLine": {"dash": "solid", "strokeWidth": 1, "vertical": true}},
		{"id": "leg", "type": "PathLine", "color": "#000000", "dash": "solid", "strokeWidth": 2,
		 "start": {"connected": true, "anchorId": "fix", "topOfBetween": false, "startOfPathLine": false},
		 "end": {"connected": true, "anchorId": "gone", "topOfBetween": false, "startOfPathLine": false}},
		{"id": "plane", "type": "Plane", "color": "#000000", "x": 0, "y": 0, "size": 24}
	]`)

	res := diagram.Parse(raw)
	fmt.Println("drawings:", res.Drawings.IDs())
	for _, e := range res.Errors {
		fmt.Println(e)
	}
	// Output:
	// drawings: [fix]
	// There was an error with drawing 2: must have required property "rotation"
	// Drawing "leg" was removed because its end point is anchored to "gone", which does not exist
}

func ExampleWrite() {
	m := drawing.Map{}
	m.Put(drawing.NewDefault(drawing.TypeHorizontalGridLine, "ground", ""))

	if err := diagram.Write(os.Stdout, m); err != nil {
		fmt.Println(err)
	}
	// Output:
	// [
	//   {
	//     "id": "ground",
	//     "type": "HorizontalGridLine",
	//     "color": "#000000",
	//     "y": 0,
	//     "dash": "dotted",
	//     "strokeWidth": 1
	//   }
	// ]
}
