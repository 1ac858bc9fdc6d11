package marketplace

import "errors"

type Category string

const (
	Success Category = "success"
	Failure Category = "error"
)

// ErrAlreadyAuthenticated is returned to a logged-in principal that tries to
// log in or register again.
var ErrAlreadyAuthenticated = errors.New("already authenticated")

// Outcome is the user-facing result of an action. Err is nil on success and
// otherwise one of the expected domain errors.
type Outcome struct {
	Message  string   `json:"message"`
	Category Category `json:"category"`
	Err      error    `json:"-"`
}

func (o Outcome) OK() bool { return o.Err == nil }

func success(msg string) Outcome {
	return Outcome{Message: msg, Category: Success}
}

func failure(err error, msg string) Outcome {
	return Outcome{Message: msg, Category: Failure, Err: err}
}
