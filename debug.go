package textmation

// globalDebug enables tree shape warnings on Add and render timings. Only
// read and written from the rendering goroutine.
var globalDebug bool

// SetDebugMode enables or disables debug mode. When enabled, Add warns about
// deep trees and very wide elements and each Render logs its draw count and
// elapsed time, all through Logger.
func SetDebugMode(enabled bool) {
	globalDebug = enabled
}

// debugMaxTreeDepth is the depth above which Add warns.
const debugMaxTreeDepth = 32

func debugCheckTreeDepth(e Element) {
	depth := 0
	for p, ok := e, true; ok; p, ok = p.Parent() {
		depth++
	}
	if depth > debugMaxTreeDepth {
		Logger().Warn("tree depth exceeds threshold",
			"element", e.String(), "depth", depth, "threshold", debugMaxTreeDepth)
	}
}

// debugMaxChildCount is the child count above which Add warns.
const debugMaxChildCount = 1000

func debugCheckChildCount(e Element) {
	if n := e.NumChildren(); n > debugMaxChildCount {
		Logger().Warn("element has many children",
			"element", e.String(), "children", n, "threshold", debugMaxChildCount)
	}
}
