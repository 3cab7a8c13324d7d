package listing

import (
	"strings"

	"github.com/morozRed/mdtree/internal/diag"
)

// flags of tree that take the following word as their value
var valueFlags = map[string]bool{
	"-L":          true,
	"-P":          true,
	"-I":          true,
	"-o":          true,
	"-H":          true,
	"-T":          true,
	"--charset":   true,
	"--filelimit": true,
	"--timefmt":   true,
	"--sort":      true,
	"--gitfile":   true,
	"--hintro":    true,
	"--houtro":    true,
}

// Positionals returns the arguments that are not flags or flag values.
func Positionals(args []string) []string {
	var out []string
	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch {
		case arg == "--":
			return append(out, args[i+1:]...)
		case valueFlags[arg]:
			i++
		case strings.HasPrefix(arg, "-") && len(arg) > 1:
		default:
			out = append(out, arg)
		}
	}
	return out
}

// RootArgument returns the single path the listing is rooted at, "." when
// none is given.
func RootArgument(args []string) (string, error) {
	positionals := Positionals(args)
	switch len(positionals) {
	case 0:
		return ".", nil
	case 1:
		return positionals[0], nil
	default:
		return "", diag.Errorf(diag.KindMultiplePathsUnsupported,
			"annotations need a single listing path, got %d (%s)", len(positionals), strings.Join(positionals, ", "))
	}
}
