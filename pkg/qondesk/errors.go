package qondesk

import "errors"

// ErrNotConfigured is returned when the integration is used before a
// project key and project ID have been saved.
var ErrNotConfigured = errors.New("qonversion integration not configured")
