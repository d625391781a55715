package wizard

import (
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/deep-archive/setup/internal/config"
)

// TransportOrderOption is a preset transport preference.
type TransportOrderOption struct {
	Transports  []string
	Description string
}

// TransportOrders lists the preferences offered by the wizard. The first one
// matches the built-in default.
var TransportOrders = []TransportOrderOption{
	{
		Transports:  []string{config.TransportCurl, config.TransportWget},
		Description: "Public model URLs",
	},
	{
		Transports:  []string{config.TransportWget, config.TransportCurl},
		Description: "Public model URLs, wget first",
	},
	{
		Transports:  []string{config.TransportS3, config.TransportCurl, config.TransportWget},
		Description: "S3 mirror, public URLs when the mirror is not configured",
	},
	{
		Transports:  []string{config.TransportCurl, config.TransportWget, config.TransportS3},
		Description: "Public URLs, S3 mirror only without curl and wget",
	},
}

// Key returns the value used for the option in forms.
func (o TransportOrderOption) Key() string {
	return strings.Join(o.Transports, ",")
}

// UsesMirror reports whether the preference includes the S3 mirror.
func (o TransportOrderOption) UsesMirror() bool {
	for _, t := range o.Transports {
		if t == config.TransportS3 {
			return true
		}
	}
	return false
}

// TransportOrdersToOptions converts TransportOrders to huh options.
func TransportOrdersToOptions() []huh.Option[string] {
	opts := make([]huh.Option[string], len(TransportOrders))
	for i, o := range TransportOrders {
		opts[i] = huh.NewOption(strings.Join(o.Transports, ", ")+" - "+o.Description, o.Key())
	}
	return opts
}

// findTransportOrder returns the preset with the given key.
func findTransportOrder(key string) (TransportOrderOption, bool) {
	for _, o := range TransportOrders {
		if o.Key() == key {
			return o, true
		}
	}
	return TransportOrderOption{}, false
}
