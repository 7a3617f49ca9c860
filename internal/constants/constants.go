package constants

// Context keys
const (
	ContextKeyClaims   = "claims"
	ContextKeyUsername = "username"
	ContextKeyRole     = "role"
)

// Pagination
const (
	MinPageSize     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Auth
const (
	MinPasswordLength = 8
	TokenIssuer       = "creator-review-api"
)

// Video constraints
const (
	MaxInsightImages = 3
	MinRating        = 1
	MaxRating        = 5
)

// Login rate limiting
const (
	LoginRateRequests = 10
	LoginRateBurst    = 5
)
