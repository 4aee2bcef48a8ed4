package build

import "errors"

var (
	ErrBuild               = errors.New("build failed")
	ErrCommandFailed       = errors.New("command failed")
	ErrFileSystemOperation = errors.New("file system operation failed")
	ErrOutputLocked        = errors.New("output directory locked by another run")
)
