package links

import "errors"

var (
	// ErrRecordNotFound reports an explicit single link lookup that matched nothing.
	ErrRecordNotFound = errors.New("links: record not found")
	// ErrNoCurrentLink reports a record accessor used outside a link context.
	ErrNoCurrentLink = errors.New("links: no current link")
	// ErrRepositoryRequired is returned when the service has no link repository.
	ErrRepositoryRequired = errors.New("links: link repository is required")
)
