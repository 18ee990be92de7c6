package config

import "time"

// Environment variable names.
const (
	EnvDataSource           = "DATA_SOURCE"
	EnvFetchTimeout         = "FETCH_TIMEOUT"
	EnvWatchSource          = "WATCH_SOURCE"
	EnvEngagementThreshold  = "ENGAGEMENT_THRESHOLD"
	EnvRoundedRatioCompare  = "ROUNDED_RATIO_COMPARE"
	EnvDesktopNotifications = "DESKTOP_NOTIFICATIONS"
	EnvTopN                 = "TOP_N"
	EnvLogLevel             = "LOG_LEVEL"
	EnvLogFile              = "LOG_FILE"
)

// Default values
const (
	defaultDataSource          = "./data/namespace_activity.csv"
	defaultFetchTimeout        = 30 * time.Second
	defaultEngagementThreshold = 100.0
	defaultTopN                = 15
	defaultLogLevel            = "info"

	// appDirName is the per-user directory under ~/.config.
	appDirName = "nad"
)
