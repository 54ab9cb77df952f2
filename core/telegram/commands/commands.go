// Package commands declares the metadata attached to registered bot commands.
package commands

import (
	tele "gopkg.in/telebot.v4"
)

// Command pairs a handler with the metadata the registry needs to route it
// and advertise it to Telegram.
type Command struct {
	Handler     tele.HandlerFunc
	Description string
	AdminOnly   bool
	Hidden      bool
	Aliases     []string
}

// Visible reports whether the command should be advertised in the Telegram
// command menu.
func (c Command) Visible() bool {
	return !c.Hidden && !c.AdminOnly
}
