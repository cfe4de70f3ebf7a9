package constants

const (
	// Environment constants
	EnvDevelopment = "development"
	EnvTest        = "test"
	EnvProduction  = "production"

	// Default pagination
	DefaultPage     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100

	// HTTP Headers
	HeaderContentType   = "Content-Type"
	HeaderAuthorization = "Authorization"
	HeaderXRequestID    = "X-Request-ID"
	HeaderXDeviceID     = "X-Device-ID"

	// Cookie carrying the minted device identifier for clients that
	// don't send the header themselves.
	CookieDeviceID = "courtside_device_id"

	// Context keys
	ContextKeyAccountID = "account_id"
	ContextKeyIsAdmin   = "is_admin"
	ContextKeyDeviceID  = "device_id"
	ContextKeyRequestID = "request_id"

	// Database table names (owned by this subsystem)
	TableGrants             = "grants"
	TableDeviceBans         = "device_bans"
	TableAccountBans        = "account_bans"
	TableDeviceAssociations = "device_associations"
	TableRedemptionCodes    = "redemption_codes"

	// Catalog table names (written by the external admin CMS, read-only here)
	TablePackages         = "packages"
	TableCourses          = "courses"
	TableAgeGroups        = "age_groups"
	TablePlayerCards      = "player_cards"
	TableTrainingMonths   = "training_months"
	TableTrainingDays     = "training_days"
	TableVideos           = "videos"
	TablePackageAgeGroups = "package_age_groups"

	// Default policy values
	DefaultDeviceLimit = 3
	DefaultCodeLength  = 12

	// Error messages
	ErrMsgInternalServerError = "Internal server error occurred"
	ErrMsgResourceNotFound    = "Resource not found"
	ErrMsgUnauthorized        = "Unauthorized access"
	ErrMsgForbidden           = "Access forbidden"
	ErrMsgValidationFailed    = "Validation failed"
)
