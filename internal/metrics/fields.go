package metrics

// Metric attribute keys shared by every instrument.
const (
	AttrMethod   = "method"
	AttrPath     = "path"
	AttrStatus   = "status"
	AttrProvider = "provider"
	AttrDivision = "division"
	AttrMatch    = "match"
	AttrOutcome  = "outcome"
)
