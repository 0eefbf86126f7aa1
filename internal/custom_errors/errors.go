package custom_errors

import "errors"

// Transport errors
var (
	ErrTransport        = errors.New("post service request failed")
	ErrMalformedPost    = errors.New("malformed post in service response")
	ErrImageUnsupported = errors.New("image attachments are not supported by this transport")
)

// Page errors
var (
	ErrFetch            = errors.New("failed to load posts")
	ErrValidation       = errors.New("draft validation failed")
	ErrCreate           = errors.New("failed to create post")
	ErrSubmitInProgress = errors.New("post submission already in progress")
	ErrFormNotOpen      = errors.New("create form is not open")
	ErrControllerClosed = errors.New("page controller is closed")
)

var ErrPreviewNotFound = errors.New("preview not found")
