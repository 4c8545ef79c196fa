// Configuration and settings types
package types

// Config represents the complete application configuration
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Platform PlatformConfig `mapstructure:"platform"`
	Query    QueryConfig    `mapstructure:"query"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// ServerConfig holds process-level settings
type ServerConfig struct {
	DataPath string `mapstructure:"data_path"`
}

// PlatformConfig identifies the platform that receives review zaps
type PlatformConfig struct {
	Pubkey     string  `mapstructure:"pubkey"`
	ZapAmounts []int64 `mapstructure:"zap_amounts"`
}

// QueryConfig holds relay query settings
type QueryConfig struct {
	Relays                []string `mapstructure:"relays"`
	TimeoutSeconds        int      `mapstructure:"timeout_seconds"`
	ListingTimeoutSeconds int      `mapstructure:"listing_timeout_seconds"`
	ListingLimit          int      `mapstructure:"listing_limit"`
	ReviewLimit           int      `mapstructure:"review_limit"`
	ReceiptLimit          int      `mapstructure:"receipt_limit"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Output string `mapstructure:"output"`
}

// Amounts returns the configured zap denominations, falling back to the defaults
func (p PlatformConfig) Amounts() ZapAmounts {
	if len(p.ZapAmounts) == 0 {
		return DefaultZapAmounts
	}
	return ZapAmounts(p.ZapAmounts)
}
