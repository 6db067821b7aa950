// Package cli maps makegen's positional arguments onto a build.Invocation.
package cli

import (
	"fmt"

	"makegen/internal/build"
)

// ExitUsage is the exit status for a wrong argument count.
const ExitUsage = 1

// UsageError reports a wrong number of positional arguments. Argv is the
// full command line including the program name.
type UsageError struct {
	Argv []string
}

func (e *UsageError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("Error executing makegen\nArgs %v %d", e.Argv, len(e.Argv))
}

// ParseArgs accepts either
//
//	<app_name> <manifest_file_name>
//	<app_name> <appdir> <manifest_file_name>
//
// args excludes the program name; argv0 is only used for the error message.
func ParseArgs(argv0 string, args []string) (build.Invocation, error) {
	switch len(args) {
	case 2:
		return build.Invocation{AppName: args[0], AppDir: ".", ManifestName: args[1]}, nil
	case 3:
		return build.Invocation{AppName: args[0], AppDir: args[1], ManifestName: args[2]}, nil
	default:
		argv := append([]string{argv0}, args...)
		return build.Invocation{}, &UsageError{Argv: argv}
	}
}
