package service

import "errors"

var (
	ErrMazeNotFound   = errors.New("maze not found")
	ErrPresetNotFound = errors.New("preset not found")
	ErrInvalidPreset  = errors.New("invalid preset")
)
