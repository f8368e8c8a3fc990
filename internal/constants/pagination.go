package constants

// Listing Query Parameters
const (
	QueryParamPage   = "page"
	QueryParamLimit  = "limit"
	QueryParamSearch = "search"
	QueryParamSort   = "sort"
	QueryParamStatus = "applicationStatus"
	QueryParamType   = "workType"
)

// Default Listing Values (as strings for query parsing)
const (
	DefaultPage   = "1"
	DefaultLimit  = "10"
	DefaultSearch = ""
)

// Pagination Limits (as integers for validation)
const (
	MinPage  = 1
	MinLimit = 1
	MaxLimit = 100
)

// Filter wildcard accepted for applicationStatus and workType
const FilterAll = "all"
