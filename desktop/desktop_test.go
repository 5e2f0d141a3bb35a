package desktop

import (
	"KindleShot/advance"
	"KindleShot/probe"
	"KindleShot/session"
)

var (
	_ advance.Input   = Desktop{}
	_ session.Screen  = Desktop{}
	_ session.Focuser = Desktop{}
	_ probe.Pointer   = Desktop{}
	_ probe.Sampler   = Desktop{}
)
