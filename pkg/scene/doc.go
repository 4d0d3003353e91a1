// Package scene reads s-expression scene files and evaluates movement bounds
// for them.
//
// # Format
//
// A file holds any number of scene forms. Comments run from ';' or '#' to the
// end of the line.
//
//	(scene "wide"
//	  (viewport 100 100)          ; required for useful bounds
//	  (movement_area 80 80)       ; defaults to the viewport
//	  (content 200 100)
//	  (gravity "center")          ; any gravity.Parse expression
//	  (fit outside)               ; inside | outside
//	  (overscroll 10 10)
//	  (min_zoom 0.5) (max_zoom 4) (overzoom 2)
//	  (state (x 0) (y 0) (zoom 1) (rotation 45))
//	  (place)                     ; move the state to its gravity position
//	  (union 5 5)                 ; grow the bounds
//	  (probe 10 20))              ; restrict a point
//
// Unions and probes run in file order, so a probe sees the unions above it.
//
// # Usage
//
//	scenes, err := scene.ParseFile("scenes.sexp")
//	if err != nil {
//		return err
//	}
//	for _, sc := range scenes {
//		res := sc.Evaluate()
//		fmt.Println(res.Scene, res.Bounds, res.External)
//	}
package scene
