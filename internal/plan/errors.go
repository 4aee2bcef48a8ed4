package plan

import "errors"

var (
	ErrNameCollision = errors.New("target name collision")
	ErrInvalidName   = errors.New("invalid target name")
	ErrMissingSource = errors.New("missing source definition")
)
