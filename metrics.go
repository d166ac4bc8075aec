package loom

import (
	"time"
)

type ResolveHook func(name string, duration time.Duration, err error)

type RegisterHook func(name string, strategy Strategy)
