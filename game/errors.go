package game

import "errors"

var (
	ErrRoomNotFound = errors.New("room-not-found")
	ErrRoomFull     = errors.New("room-full")
	ErrAlreadyIn    = errors.New("already-in-room")
)

var ErrSendBufferFull = errors.New("send-buffer-full")

var (
	ErrEvaluationPanic = errors.New("evaluation-panic")
	ErrNoScorer        = errors.New("no-scorer")
)
