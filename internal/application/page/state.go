package page

type LoadState int

const (
	LoadLoading LoadState = iota
	LoadLoaded
	LoadFailed
)

func (s LoadState) String() string {
	switch s {
	case LoadLoading:
		return "loading"
	case LoadLoaded:
		return "loaded"
	case LoadFailed:
		return "load_failed"
	default:
		return "unknown"
	}
}

type ModalState int

const (
	ModalClosed ModalState = iota
	ModalOpen
)

func (s ModalState) String() string {
	if s == ModalOpen {
		return "open"
	}
	return "closed"
}

type SubmissionState int

const (
	SubmissionIdle SubmissionState = iota
	SubmissionSubmitting
)

func (s SubmissionState) String() string {
	if s == SubmissionSubmitting {
		return "submitting"
	}
	return "idle"
}

// User-visible messages.
const (
	MessageLoading        = "Loading Page..."
	MessageLoadFailed     = "Failed to load posts"
	MessageValidation     = "Please fill in title and content."
	MessageCreateFailed   = "Error creating post. Please try again."
	MessageSubmitInFlight = "Your post is still being submitted."
)
