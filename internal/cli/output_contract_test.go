package cli

import (
	"encoding/json"
	"testing"
)

func TestOutputContract_JSONEnvelope_DefaultSuite(t *testing.T) {
	dir := isolate(t)
	to := t.TempDir()

	mustEnv := func(args ...string) map[string]any {
		t.Helper()
		args = append([]string{"--dir", dir}, args...)
		stdout, stderr, err := runCLI(t, args)
		if err != nil {
			t.Fatalf("command failed: quickcomm %v\nerr: %v\nstderr:\n%s\nstdout:\n%s", args, err, string(stderr), string(stdout))
		}
		var env map[string]any
		if err := json.Unmarshal(stdout, &env); err != nil {
			t.Fatalf("unmarshal stdout as json envelope: %v\nstdout:\n%s\nargs: %v", err, string(stdout), args)
		}
		if _, ok := env["data"]; !ok {
			t.Fatalf("expected JSON envelope to contain data key; got: %v\nstdout:\n%s", env, string(stdout))
		}
		if meta, ok := env["meta"]; ok && meta != nil {
			if _, ok := meta.(map[string]any); !ok {
				t.Fatalf("expected meta to be object; got %T", meta)
			}
		}
		if hints, ok := env["_hints"]; ok && hints != nil {
			if _, ok := hints.([]any); !ok {
				t.Fatalf("expected _hints to be list; got %T", hints)
			}
		}
		return env
	}

	mustEnv("categories")
	mustEnv("categories", "places")
	mustEnv("phrases", "activities/Exam")
	mustEnv("all")
	mustEnv("search", "quiet room")
	mustEnv("favorites", "toggle", "I need a minute.")
	mustEnv("favorites", "list")
	mustEnv("favorites", "pinned", "--n", "3")
	mustEnv("custom", "add", "--route", "places/Library", "--text", "Is this seat free?")
	mustEnv("custom", "list", "--route", "places/Library")
	mustEnv("custom", "edit", "--route", "places/Library", "--index", "0", "--text", "Is this seat taken?")
	mustEnv("custom", "delete", "--route", "places/Library", "--index", "0")
	mustEnv("select", "Give me a second.", "--route", "places/Hall")
	mustEnv("another")
	mustEnv("state", "show")
	mustEnv("state", "path")
	mustEnv("events", "list")
	mustEnv("stats")
	mustEnv("config", "show")
	mustEnv("config", "path")
	mustEnv("publish", "sheet", "--to", to)
	mustEnv("doctor")
	mustEnv("docs")
	mustEnv("docs", "usage")
	mustEnv("version")
}
