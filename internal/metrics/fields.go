package metrics

// Attribute keys shared by all instruments.
const (
	AttrMethod   = "method"
	AttrPath     = "path"
	AttrStatus   = "status"
	AttrUpstream = "upstream"
	AttrCache    = "cache"
	AttrResult   = "result"
	AttrJoin     = "join"
)

// Player resolution outcomes.
const (
	ResolutionFound       = "found"
	ResolutionNotFound    = "not_found"
	ResolutionInvalidName = "invalid_name"
	ResolutionError       = "error"
)
