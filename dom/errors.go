package dom

import "github.com/pkg/errors"

// DOMException names from https://webidl.spec.whatwg.org/#idl-DOMException-error-names
var (
	ErrHierarchyRequest = errors.New("HierarchyRequestError")
	ErrNotFound         = errors.New("NotFoundError")
	ErrNotSupported     = errors.New("NotSupportedError")
	ErrInvalidState     = errors.New("InvalidStateError")
	ErrSyntax           = errors.New("SyntaxError")
	ErrReadOnly         = errors.New("NoModificationAllowedError")
)
