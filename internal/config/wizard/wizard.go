package wizard

import (
	"context"
	"fmt"
)

// Result holds the answers from the interactive wizard.
type Result struct {
	// TransportOrder is the Key of the chosen TransportOrderOption.
	TransportOrder string

	// Mirror location, only asked for when the order includes s3.
	Endpoint  string
	Bucket    string
	Prefix    string
	Region    string
	PathStyle bool
}

// UsesMirror reports whether the chosen transport order includes s3.
func (r *Result) UsesMirror() bool {
	order, ok := findTransportOrder(r.TransportOrder)
	return ok && order.UsesMirror()
}

// Run runs the interactive configuration wizard.
// The context is used for cancellation support (e.g., Ctrl+C).
func Run(ctx context.Context) (*Result, error) {
	result := &Result{}

	if err := runTransportGroup(ctx, result); err != nil {
		return nil, fmt.Errorf("transports: %w", err)
	}

	if result.UsesMirror() {
		if err := runMirrorGroup(ctx, result); err != nil {
			return nil, fmt.Errorf("s3 mirror: %w", err)
		}
	}

	return result, nil
}
