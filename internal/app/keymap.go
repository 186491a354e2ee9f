package app

import (
	"github.com/dshills/code4food/internal/pet"
	"github.com/dshills/code4food/internal/renderer/backend"
)

// CommandQuit exits the application.
const CommandQuit = "code4food.quit"

// keymap binds control keys to commands.
var keymap = map[backend.Key]string{
	backend.KeyCtrlA: pet.CommandAdopt,
	backend.KeyCtrlW: pet.CommandSwitch,
	backend.KeyCtrlP: pet.CommandSpeak,
	backend.KeyCtrlQ: CommandQuit,
	backend.KeyCtrlC: CommandQuit,
}

// KeyHelp lists the bindings for the help line.
func KeyHelp() string {
	return "^A adopt  ^W switch  ^P speak  ^Q quit"
}
