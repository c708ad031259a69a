// seehuhn.de/go/sketch - stroke geometry for a note-taking canvas
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

// Command export writes the drag scenarios to testdata/drags.json, for
// checking other implementations of the selection engine against the
// same expectations.
package main

import (
	"encoding/json"
	"maps"
	"os"
	"slices"

	"seehuhn.de/go/sketch/testcases"
)

func main() {
	out := struct {
		SelectionMin float64    `json:"selection_min"`
		Drags        []jsonDrag `json:"drags"`
	}{
		SelectionMin: testcases.SelectionMin,
	}

	for _, category := range slices.Sorted(maps.Keys(testcases.All)) {
		for _, tc := range testcases.All[category] {
			out.Drags = append(out.Drags, toJSON(category, tc))
		}
	}

	if err := os.MkdirAll("testdata", 0755); err != nil {
		panic(err)
	}
	f, err := os.Create("testdata/drags.json")
	if err != nil {
		panic(err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		panic(err)
	}
}

type jsonDrag struct {
	Name      string     `json:"name"`
	Handle    string     `json:"handle"`
	Selection [4]float64 `json:"selection"`
	Delta     [2]float64 `json:"delta"`
	Scale     float64    `json:"scale"`
	Want      [4]float64 `json:"want"`
}

func toJSON(category string, tc testcases.Drag) jsonDrag {
	return jsonDrag{
		Name:   category + "_" + tc.Name,
		Handle: tc.Handle,
		Selection: [4]float64{
			tc.Selection.Mins.X, tc.Selection.Mins.Y,
			tc.Selection.Maxs.X, tc.Selection.Maxs.Y,
		},
		Delta: [2]float64{tc.Delta.X, tc.Delta.Y},
		Scale: tc.Scale,
		Want: [4]float64{
			tc.Want.Mins.X, tc.Want.Mins.Y,
			tc.Want.Maxs.X, tc.Want.Maxs.Y,
		},
	}
}
