package wizard

import (
	"context"
	"net/url"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/deep-archive/setup/internal/config"
)

// runTransportGroup prompts for the transport preference.
func runTransportGroup(ctx context.Context, result *Result) error {
	result.TransportOrder = TransportOrders[0].Key() // default

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Download Order").
				Description("The first available transport fetches every model").
				Options(TransportOrdersToOptions()...).
				Value(&result.TransportOrder),
		).Title("Transports"),
	).RunWithContext(ctx)
}

// runMirrorGroup prompts for the S3 mirror location. Credentials are not
// asked for; they are read from the environment at run time.
func runMirrorGroup(ctx context.Context, result *Result) error {
	result.Region = config.DefaultRegion // default

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Endpoint").
				Description("S3-compatible endpoint URL").
				Placeholder("https://s3.example.com").
				Value(&result.Endpoint).
				Validate(validateEndpoint),
			huh.NewInput().
				Title("Bucket").
				Value(&result.Bucket).
				Validate(validateBucket),
			huh.NewInput().
				Title("Prefix (Optional)").
				Description("Objects are looked up as <prefix>/<model file name>").
				Value(&result.Prefix),
			huh.NewInput().
				Title("Region").
				Value(&result.Region),
			huh.NewConfirm().
				Title("Path-style addressing?").
				Description("Required by MinIO and most self-hosted gateways").
				Value(&result.PathStyle),
		).Title("S3 Mirror"),
	).RunWithContext(ctx)
}

// validateEndpoint accepts absolute http and https URLs.
func validateEndpoint(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return errEndpointRequired
	}
	u, err := url.Parse(s)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return errEndpointInvalid
	}
	return nil
}

func validateBucket(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return errBucketRequired
	}
	if strings.ContainsAny(s, "/ ") {
		return errBucketInvalid
	}
	return nil
}
