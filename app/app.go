package app

import (
	"errors"
)

const Version = "v0.1.0"

var (
	ErrEngineInit   = errors.New("gui engine failed to initialize")
	ErrViewInit     = errors.New("gui engine view failed to initialize")
	ErrWindowCreate = errors.New("native window creation failed")
	ErrNoWindow     = errors.New("native window is not available")
)

// State is the lifecycle stage of a Window.
type State int8

const (
	StateUninitialized State = iota
	StateCreated
	StateVisible // first frame rendered, window shown
	StateDestroyed
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateCreated:
		return "created"
	case StateVisible:
		return "visible"
	case StateDestroyed:
		return "destroyed"
	default:
		return "unknown"
	}
}

type Point struct {
	X, Y int32
}

type Size struct {
	Width, Height int32
}

type Rect struct {
	Left, Top, Right, Bottom int32
}

func (r Rect) Width() int32 {
	return r.Right - r.Left
}

func (r Rect) Height() int32 {
	return r.Bottom - r.Top
}
