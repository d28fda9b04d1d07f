package config

import "time"

// Default constants for application configuration
const (
	DefaultLogLevel    = "info"
	DefaultJSONLog     = false
	DefaultFormat      = "yaml"
	DefaultPagesDir    = "cache/pages"
	DefaultItemsDir    = "cache/items"
	DefaultPagesGlob   = "*.html"
	DefaultWorkers     = 0 // auto-tune
	MaxWorkers         = 64
	DefaultCacheSize   = 512
	DefaultLenient     = false
	DefaultEvalTimeout = 50 * time.Millisecond
	DefaultMetricsAddr = ""
	MaxEvalTimeout     = 5 * time.Second
)
