package query

// paramDef describes a declared parameter of a query kind. Parameters not
// declared here are treated as scalars and passed through untouched.
type paramDef struct {
	// query marks the parameter value as a sub-query (or list of them).
	query bool
	// multi marks the parameter as a list of sub-queries. Multi-valued
	// parameters are always stored as concrete []Query slices.
	multi bool
}

// kindRegistry maps every known query kind to its declared parameters.
// Kinds with no sub-query parameters map to nil.
var kindRegistry = map[string]map[string]paramDef{
	"bool": {
		"must":     {query: true, multi: true},
		"filter":   {query: true, multi: true},
		"should":   {query: true, multi: true},
		"must_not": {query: true, multi: true},
	},
	"boosting": {
		"positive": {query: true},
		"negative": {query: true},
	},
	"constant_score": {
		"filter": {query: true},
	},
	"dis_max": {
		"queries": {query: true, multi: true},
	},
	"function_score": {
		"query":  {query: true},
		"filter": {query: true},
	},
	"has_child": {
		"query": {query: true},
	},
	"has_parent": {
		"query": {query: true},
	},
	"nested": {
		"query": {query: true},
	},
	"pinned": {
		"organic": {query: true},
	},
	"script_score": {
		"query": {query: true},
	},
	"span_first": {
		"match": {query: true},
	},
	"span_multi": {
		"match": {query: true},
	},

	"combined_fields":     nil,
	"distance_feature":    nil,
	"exists":              nil,
	"fuzzy":               nil,
	"geo_bounding_box":    nil,
	"geo_distance":        nil,
	"geo_polygon":         nil,
	"geo_shape":           nil,
	"ids":                 nil,
	"intervals":           nil,
	"knn":                 nil,
	"match":               nil,
	"match_all":           nil,
	"match_bool_prefix":   nil,
	"match_none":          nil,
	"match_phrase":        nil,
	"match_phrase_prefix": nil,
	"more_like_this":      nil,
	"multi_match":         nil,
	"parent_id":           nil,
	"percolate":           nil,
	"prefix":              nil,
	"query_string":        nil,
	"range":               nil,
	"rank_feature":        nil,
	"regexp":              nil,
	"script":              nil,
	"shape":               nil,
	"simple_query_string": nil,
	"span_near":           nil,
	"span_or":             nil,
	"span_term":           nil,
	"term":                nil,
	"terms":               nil,
	"terms_set":           nil,
	"text_expansion":      nil,
	"wildcard":            nil,
	"wrapper":             nil,
}

// Register makes a query kind known to the factory. params declares which
// parameter names hold sub-queries; multi names hold lists of sub-queries.
// Registering an existing kind replaces its declaration.
func Register(kind string, params, multi []string) {
	defs := make(map[string]paramDef)
	for _, p := range params {
		defs[p] = paramDef{query: true}
	}
	for _, p := range multi {
		defs[p] = paramDef{query: true, multi: true}
	}
	if len(defs) == 0 {
		kindRegistry[kind] = nil
		return
	}
	kindRegistry[kind] = defs
}

// Known reports whether a query kind is registered.
func Known(kind string) bool {
	_, ok := kindRegistry[kind]
	return ok
}

func paramDefFor(kind, name string) (paramDef, bool) {
	defs := kindRegistry[kind]
	if defs == nil {
		return paramDef{}, false
	}
	def, ok := defs[name]
	return def, ok
}
