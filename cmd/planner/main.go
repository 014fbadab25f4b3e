package main

import (
	"os"
	"strings"

	"github.com/google/uuid"

	"workshop-planner/internal/cli"
)

func isWorkshopID(s string) bool {
	_, err := uuid.Parse(strings.TrimSpace(s))
	return err == nil
}

// rewriteWorkshopShortcut turns `planner <workshop-id>` into
// `planner workshops show <workshop-id>`. Persistent flags may come first, so
// the first positional token is located rather than assumed to be argv[1].
func rewriteWorkshopShortcut(argv []string) []string {
	if len(argv) < 2 {
		return argv
	}
	valueFlags := map[string]bool{
		"--dir":    true,
		"--format": true,
	}

	insert := func(at int) []string {
		out := make([]string, 0, len(argv)+2)
		out = append(out, argv[:at]...)
		out = append(out, "workshops", "show")
		return append(out, argv[at:]...)
	}

	for i := 1; i < len(argv); i++ {
		a := strings.TrimSpace(argv[i])
		switch {
		case a == "":
			continue
		case a == "--":
			if i+1 < len(argv) && isWorkshopID(argv[i+1]) {
				return insert(i + 1)
			}
			return argv
		case strings.HasPrefix(a, "-"):
			if !strings.Contains(a, "=") && valueFlags[a] {
				i++
			}
			continue
		case isWorkshopID(a):
			return insert(i)
		default:
			return argv
		}
	}
	return argv
}

func main() {
	os.Args = rewriteWorkshopShortcut(os.Args)

	cmd := cli.NewRootCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
