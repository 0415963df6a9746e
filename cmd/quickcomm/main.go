package main

import (
	"os"
	"strings"

	"quickcomm/internal/cli"
	"quickcomm/internal/model"
)

// shortcutFor maps a bare route ref to the command it stands for:
// "places/Gym" → phrases, "places" → categories.
func shortcutFor(tok string) (string, bool) {
	r, err := model.ParseRoute(tok)
	if err != nil {
		return "", false
	}
	switch r.(type) {
	case model.Category:
		return "phrases", true
	case model.ScopeList:
		return "categories", true
	}
	return "", false
}

// rewriteRouteShortcutArgs turns `quickcomm places/Gym` into
// `quickcomm phrases places/Gym`. Cobra treats the first positional as a
// subcommand, so argv is rewritten before parsing. Persistent flags may come
// first, so the first positional is searched for, not just argv[1].
func rewriteRouteShortcutArgs(argv []string) []string {
	if len(argv) < 2 {
		return argv
	}

	valueFlags := map[string]bool{
		"--dir":    true,
		"--format": true,
	}

	insert := func(i int, cmd string) []string {
		out := make([]string, 0, len(argv)+1)
		out = append(out, argv[:i]...)
		out = append(out, cmd)
		return append(out, argv[i:]...)
	}

	for i := 1; i < len(argv); i++ {
		a := strings.TrimSpace(argv[i])
		if a == "" {
			continue
		}
		if a == "--" {
			if i+1 < len(argv) {
				if cmd, ok := shortcutFor(argv[i+1]); ok {
					return insert(i+1, cmd)
				}
			}
			return argv
		}
		if strings.HasPrefix(a, "-") {
			if !strings.Contains(a, "=") && valueFlags[a] {
				i++
			}
			continue
		}
		if cmd, ok := shortcutFor(a); ok {
			return insert(i, cmd)
		}
		return argv
	}
	return argv
}

func main() {
	os.Args = rewriteRouteShortcutArgs(os.Args)

	cmd := cli.NewRootCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
