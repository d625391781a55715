package wizard

import "errors"

// Validation errors for the interactive wizard.
var (
	errEndpointRequired = errors.New("endpoint is required")
	errEndpointInvalid  = errors.New("endpoint must be an http or https URL")
	errBucketRequired   = errors.New("bucket is required")
	errBucketInvalid    = errors.New("bucket must not contain slashes or spaces")
)
