package wizard

import (
	"strings"

	"github.com/deep-archive/setup/internal/config"
)

// BuildConfig creates a Config from the wizard result. Everything the wizard
// does not ask about keeps its built-in default.
func BuildConfig(result *Result) *config.Config {
	cfg := config.Default()

	if order, ok := findTransportOrder(result.TransportOrder); ok {
		cfg.Transports = append([]string(nil), order.Transports...)
	}

	if result.UsesMirror() {
		cfg.S3Mirror = config.S3Mirror{
			Endpoint:  strings.TrimSpace(result.Endpoint),
			Bucket:    strings.TrimSpace(result.Bucket),
			Prefix:    strings.TrimSpace(result.Prefix),
			Region:    strings.TrimSpace(result.Region),
			PathStyle: result.PathStyle,
		}
		if cfg.S3Mirror.Region == "" {
			cfg.S3Mirror.Region = config.DefaultRegion
		}
	}

	return cfg
}
