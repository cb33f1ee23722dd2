package app

// Route is the decision taken by the normality gate
type Route int

const (
	// RouteHalt stops the pipeline with a non-normal verdict
	RouteHalt Route = iota
	// RouteProceed continues to the mean comparison
	RouteProceed
)

func (r Route) String() string {
	switch r {
	case RouteHalt:
		return "halt"
	case RouteProceed:
		return "proceed"
	default:
		return "unknown"
	}
}

// RouteNormality halts iff pNormal < threshold. A p-value equal to the threshold proceeds.
func RouteNormality(pNormal, threshold float64) Route {
	if pNormal < threshold {
		return RouteHalt
	}
	return RouteProceed
}
