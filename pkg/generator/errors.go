package generator

import "errors"

// Error kinds surfaced during resolution. Drivers match these with
// errors.Is to decide between skipping one item and failing the run.
var (
	// ErrMissingID marks an operation without an operationId.
	ErrMissingID = errors.New("operation is missing an operationId")
	// ErrInvalidValue marks a schema or response that is empty where a
	// value is required.
	ErrInvalidValue = errors.New("invalid schema value")
	// ErrUnsupported marks a schema shape the resolver cannot model.
	ErrUnsupported = errors.New("unsupported schema shape")
	// ErrStatusCode marks a response key with no canonical status name.
	ErrStatusCode = errors.New("failed to canonicalize status code")
	// ErrResolve marks a reference that could not be resolved.
	ErrResolve = errors.New("failed to resolve reference")
	// ErrParameter marks an operation parameter without a usable schema.
	ErrParameter = errors.New("failed to resolve parameter")
)
