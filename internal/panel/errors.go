package panel

import "errors"

var (
	// ErrEmptyURL is returned when a task is requested without a URL.
	ErrEmptyURL = errors.New("please enter a URL")
	// ErrNoAlbumsSelected is returned when creating artist tasks with nothing checked.
	ErrNoAlbumsSelected = errors.New("select at least one album")
	// ErrNoMetadata is returned by selection handlers when the loaded metadata
	// does not match the operation, e.g. toggling a track while an artist is shown.
	ErrNoMetadata = errors.New("no matching metadata loaded")
	// ErrEmptyMetadata is returned when the service answers a preview request
	// without a body.
	ErrEmptyMetadata = errors.New("empty metadata response")
)

// Alerted wraps an error that has already been shown to the user through UI.Alert.
type Alerted struct {
	Err error
}

func (e *Alerted) Error() string { return e.Err.Error() }

func (e *Alerted) Unwrap() error { return e.Err }

// IsAlerted reports whether err was already shown to the user.
func IsAlerted(err error) bool {
	var a *Alerted
	return errors.As(err, &a)
}
