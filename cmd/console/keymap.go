package main

import (
	"sort"

	"github.com/jwebster45206/tactics-console/pkg/menu"
)

// buildShortcuts maps keys to the commands bound to them, in menu order.
// Overrides (command id -> key) replace the catalog's default shortcut.
// Ids in overrides that name no command are returned sorted.
func buildShortcuts(cmds []menu.Command, overrides map[string]string) (map[string][]menu.CommandID, []string) {
	known := make(map[menu.CommandID]bool, len(cmds))
	for _, cmd := range cmds {
		known[cmd.ID] = true
	}

	var unknown []string
	for id := range overrides {
		if !known[menu.CommandID(id)] {
			unknown = append(unknown, id)
		}
	}
	sort.Strings(unknown)

	shortcuts := make(map[string][]menu.CommandID)
	for _, cmd := range cmds {
		key := cmd.Shortcut
		if override, ok := overrides[string(cmd.ID)]; ok {
			key = override
		}
		if key == "" {
			continue
		}
		shortcuts[key] = append(shortcuts[key], cmd.ID)
	}
	return shortcuts, unknown
}
