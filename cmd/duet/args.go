package duetcmder

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// twoLetterShorthands maps the -m1/-m2 short forms to their long flags.
// pflag only understands single-letter shorthands, so these are rewritten
// before cobra sees them.
var twoLetterShorthands = map[string]string{
	"-m1": "--model1",
	"-m2": "--model2",
}

// NormalizeArgs rewrites -m1 and -m2 (including the -m1=value form) to
// --model1 and --model2. An argument consumed as the value of one of cmd's
// flags is left alone, so "duet -t -m1" keeps "-m1" as the topic. Arguments
// after a bare "--" are left untouched.
func NormalizeArgs(cmd *cobra.Command, args []string) []string {
	out := make([]string, 0, len(args))
	expectValue := false
	for i, arg := range args {
		if expectValue {
			out = append(out, arg)
			expectValue = false
			continue
		}

		if arg == "--" {
			out = append(out, args[i:]...)
			break
		}

		name, value, hasValue := strings.Cut(arg, "=")
		if long, ok := twoLetterShorthands[name]; ok {
			if hasValue {
				out = append(out, long+"="+value)
			} else {
				out = append(out, long)
				expectValue = true
			}
			continue
		}

		out = append(out, arg)
		expectValue = !hasValue && takesValue(cmd, arg)
	}
	return out
}

// takesValue reports whether arg names one of cmd's flags that consumes the
// next argument. Bool flags carry a NoOptDefVal and never do.
func takesValue(cmd *cobra.Command, arg string) bool {
	var f *pflag.Flag
	switch {
	case strings.HasPrefix(arg, "--"):
		name := arg[2:]
		if f = cmd.Flags().Lookup(name); f == nil {
			f = cmd.PersistentFlags().Lookup(name)
		}
	case len(arg) == 2 && arg[0] == '-' && arg[1] != '-':
		short := arg[1:]
		if f = cmd.Flags().ShorthandLookup(short); f == nil {
			f = cmd.PersistentFlags().ShorthandLookup(short)
		}
	}
	return f != nil && f.NoOptDefVal == ""
}
