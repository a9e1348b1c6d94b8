package sitepub

import "github.com/goliatone/go-sitepub/internal/runtimeconfig"

var (
	ErrSitePostPathInvalid      = runtimeconfig.ErrSitePostPathInvalid
	ErrSitemapChangeFreqInvalid = runtimeconfig.ErrSitemapChangeFreqInvalid
	ErrSitemapPriorityInvalid   = runtimeconfig.ErrSitemapPriorityInvalid
	ErrNotifyEndpointInvalid    = runtimeconfig.ErrNotifyEndpointInvalid
	ErrNotifyRateInvalid        = runtimeconfig.ErrNotifyRateInvalid
	ErrMarkdownPatternRequired  = runtimeconfig.ErrMarkdownPatternRequired
	ErrMarkdownFilterUnknown    = runtimeconfig.ErrMarkdownFilterUnknown
	ErrLoggingProviderRequired  = runtimeconfig.ErrLoggingProviderRequired
	ErrLoggingProviderUnknown   = runtimeconfig.ErrLoggingProviderUnknown
	ErrLoggingLevelInvalid      = runtimeconfig.ErrLoggingLevelInvalid
	ErrLoggingFormatInvalid     = runtimeconfig.ErrLoggingFormatInvalid
)

type (
	Config         = runtimeconfig.Config
	SiteConfig     = runtimeconfig.SiteConfig
	SitemapConfig  = runtimeconfig.SitemapConfig
	NotifyConfig   = runtimeconfig.NotifyConfig
	BaiduConfig    = runtimeconfig.BaiduConfig
	IndexNowConfig = runtimeconfig.IndexNowConfig
	GoogleConfig   = runtimeconfig.GoogleConfig
	MarkdownConfig = runtimeconfig.MarkdownConfig
	CommandsConfig = runtimeconfig.CommandsConfig
	LoggingConfig  = runtimeconfig.LoggingConfig
)

func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}

// LoadConfig layers an optional YAML file, .env files and SITEPUB_*
// environment variables over the defaults.
func LoadConfig(path string, envFiles ...string) (Config, error) {
	return runtimeconfig.Load(path, envFiles...)
}
