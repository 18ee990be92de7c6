package services

import "github.com/gen2brain/beeep"

// notify sends a desktop notification. Replaced in tests.
var notify = func(title, body string) error {
	return beeep.Notify(title, body, "")
}
