// Package dberr defines an error type that carries a hint for the client,
// which the wire frontend forwards in the Hint field of an ErrorResponse.
package dberr

type Error struct {
	Err  error
	Hint string
}

func (e Error) Error() string {
	return e.Err.Error()
}

func (e Error) Unwrap() error {
	return e.Err
}
