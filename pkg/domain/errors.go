package domain

import "errors"

// ErrScriptNotFound is returned when a script id cannot be found in a store.
var ErrScriptNotFound = errors.New("script not found")

// ErrAlreadyPlaying is returned when Play is called on a player that is mid-script.
var ErrAlreadyPlaying = errors.New("player is already playing a script")

// ErrTargetNotSpawned is returned when an action refers to an actor that is not on stage.
var ErrTargetNotSpawned = errors.New("target not spawned")

// ErrUnknownStyle is returned when a move names a style with no motion curve.
var ErrUnknownStyle = errors.New("unknown move style")

// ErrUnknownEffect is returned when a react action names an effect with no implementation.
var ErrUnknownEffect = errors.New("unknown effect")

// ErrUnknownKind is returned when an action kind has no handler.
var ErrUnknownKind = errors.New("unknown action kind")

// ErrSoundUnavailable is returned when an sfx action references a sound the host cannot play.
var ErrSoundUnavailable = errors.New("sound unavailable")
