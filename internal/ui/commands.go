package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/bz888/naeyla/internal/api"
)

type command struct {
	name    string
	aliases []string
	usage   string
	help    string
	run     func(u *UI, args []string)
}

// commands is filled in init because /help lists the table itself.
var commands []command

func init() {
	commands = []command{
		{
			name:  "help",
			usage: "/help",
			help:  "Display this help message",
			run:   func(u *UI, _ []string) { u.listHelp() },
		},
		{
			name:  "mode",
			usage: "/mode <companion|advisor|guardian>",
			help:  "Switch personality (or press F1-F3)",
			run:   (*UI).switchMode,
		},
		{
			name:  "health",
			usage: "/health",
			help:  "Check whether the backend is up",
			run:   func(u *UI, _ []string) { go u.reportHealth() },
		},
		{
			name:  "debug",
			usage: "/debug",
			help:  "Toggle the debug console",
			run:   func(u *UI, _ []string) { u.toggleDebugConsole() },
		},
		{
			name:    "bye",
			aliases: []string{"quit", "exit"},
			usage:   "/bye",
			help:    "Exit the application",
			run:     func(u *UI, _ []string) { u.quit() },
		},
	}
}

// parseCommand splits "/name arg..." input. Anything that does not start
// with a known command name is a chat message.
func parseCommand(input string) (name string, args []string, ok bool) {
	fields := strings.Fields(input)
	if len(fields) == 0 || !strings.HasPrefix(fields[0], "/") {
		return "", nil, false
	}

	cmd, found := lookupCommand(strings.TrimPrefix(fields[0], "/"))
	if !found {
		return "", nil, false
	}
	return cmd.name, fields[1:], true
}

func lookupCommand(name string) (command, bool) {
	name = strings.ToLower(name)
	for _, cmd := range commands {
		if cmd.name == name {
			return cmd, true
		}
		for _, alias := range cmd.aliases {
			if alias == name {
				return cmd, true
			}
		}
	}
	return command{}, false
}

func (u *UI) runCommand(name string, args []string) {
	cmd, ok := lookupCommand(name)
	if !ok {
		return
	}
	u.localLog.Info("running command", "command", cmd.name, "args", args)
	cmd.run(u, args)
}

func (u *UI) listHelp() {
	u.note(helpText())
}

func helpText() string {
	var b strings.Builder
	b.WriteString("Here are some commands you can use:\n")
	for _, cmd := range commands {
		fmt.Fprintf(&b, "- %s: %s\n", cmd.usage, cmd.help)
	}
	b.WriteString("Press Enter to send, Alt+Enter for a new line, Esc to scroll the conversation.")
	return b.String()
}

func (u *UI) switchMode(args []string) {
	if len(args) != 1 {
		u.note("Usage: /mode <companion|advisor|guardian>")
		return
	}
	if _, ok := api.ParseMode(strings.ToLower(args[0])); !ok {
		u.note(fmt.Sprintf("Unknown mode %q, using %s", args[0], api.DefaultMode))
	}
	mode := u.controller.SelectMode(strings.ToLower(args[0]))
	u.note("Mode: " + modeTitle(mode))
}

func (u *UI) reportHealth() {
	if u.health == nil {
		return
	}
	ctx, cancel := context.WithTimeout(u.ctx, 10*time.Second)
	defer cancel()

	health, err := u.health.Health(ctx)
	if err != nil {
		u.localLog.Warn("health check failed", "error", err)
		u.note("Backend unreachable: " + err.Error())
		return
	}
	u.note(fmt.Sprintf("Backend %s, model %s", health.Status, health.Model))
}
