package config

import (
	"flag"
	"fmt"
	"os"

	"github.com/agbru/polycalc/internal/ui"
)

// setCustomUsage installs a colored usage screen on fs.
func setCustomUsage(fs *flag.FlagSet) {
	fs.Usage = func() {
		// NO_COLOR applies even before the theme is initialized.
		t := ui.GetCurrentTheme()
		if _, ok := os.LookupEnv("NO_COLOR"); ok {
			t = ui.NoColorTheme
		}

		out := fs.Output()

		fmt.Fprintf(out, "\n%sPolynomial Calculator%s\n", t.Bold, t.Reset)
		fmt.Fprintf(out, "Exact single-variable polynomial algebra over the rationals.\n\n")
		fmt.Fprintf(out, "%sUsage:%s\n  %s [flags] [op] <polynomial> [<polynomial>]\n\n", t.Warning, t.Reset, fs.Name())
		fmt.Fprintf(out, "%sExamples:%s\n", t.Warning, t.Reset)
		fmt.Fprintf(out, "  %s mul \"x - 1\" \"x + 1\"\n", fs.Name())
		fmt.Fprintf(out, "  %s -strategy linear pow \"x + 1\" 10\n", fs.Name())
		fmt.Fprintf(out, "  %s -batch jobs.txt -workers 4\n\n", fs.Name())
		fmt.Fprintf(out, "%sFlags:%s\n", t.Warning, t.Reset)

		fs.VisitAll(func(f *flag.Flag) {
			name, usage := flag.UnquoteUsage(f)
			flagSig := "-" + f.Name
			if len(name) > 0 {
				flagSig += " " + name
			}
			fmt.Fprintf(out, "  %s%-25s%s %s", t.Primary, flagSig, t.Reset, usage)
			if f.DefValue != "" && f.DefValue != "0" && f.DefValue != "false" {
				fmt.Fprintf(out, " %s(default %s)%s", t.Secondary, f.DefValue, t.Reset)
			}
			fmt.Fprintln(out)
		})
		fmt.Fprintln(out)
	}
}
