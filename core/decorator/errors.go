package decorator

import "fmt"

// DocsURL points at the resource options documentation referenced from
// configuration errors.
const DocsURL = "https://github.com/artpar/admingate#resource-options"

// ConfigurationError reports a user-supplied property path that does
// not resolve to any known or synthesizable property of a resource.
//
// It is raised at registry build time when ordering overrides are
// validated, or at query time for ad-hoc key lookups. It is never
// recovered internally; hosts should surface it before serving.
type ConfigurationError struct {
	// Resource is the display name of the offending resource.
	Resource string

	// Path is the property path that failed to resolve.
	Path string
}

// Error implements the error interface.
func (e *ConfigurationError) Error() string {
	return fmt.Sprintf(
		"there is no property %q on resource %q; check your resource options (see %s)",
		e.Path, e.Resource, DocsURL,
	)
}
