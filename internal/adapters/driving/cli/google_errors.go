package cli

import (
	"fmt"

	"github.com/custodia-labs/autoanswer-cli/internal/adapters/driven/google"
)

// withGoogleHint adds the next step for a failed Google Forms or Docs read.
// what names the resource, "form" or "document".
func withGoogleHint(err error, what string) error {
	switch {
	case err == nil:
		return nil
	case google.IsUnauthorized(err):
		return fmt.Errorf("%w\nSign in again: run 'autoanswer settings google-login'", err)
	case google.IsForbidden(err), google.IsNotFound(err):
		return fmt.Errorf("%w\nCheck the %s ID and that it is shared with your Google account", err, what)
	case google.IsRateLimited(err):
		return fmt.Errorf("%w\nGoogle is rate limiting requests, wait a minute and try again", err)
	}
	return err
}
