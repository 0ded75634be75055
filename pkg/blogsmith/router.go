package blogsmith

// Route is the discrete outcome of the branch decision.
type Route string

// Route labels. The pipeline has exactly one choice point, after the
// content step.
const (
	// RouteTranslate sends execution to the translation step.
	RouteTranslate Route = "translate"
	// RouteEnd terminates the run.
	RouteEnd Route = "end"
)

// RouterFunc decides the route from the state as it stands after the
// content step. Routers are pure: no model calls, no side effects.
type RouterFunc func(state State) Route

// ShouldTranslate is the pipeline's only routing decision: translate when
// a non-blank target language was requested, otherwise end.
func ShouldTranslate(state State) Route {
	if state.WantsTranslation() {
		return RouteTranslate
	}
	return RouteEnd
}
