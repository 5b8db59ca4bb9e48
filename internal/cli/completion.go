package cli

import (
	"fmt"
	"io"
	"strings"
)

// completionFlag describes one command-line flag for completion scripts.
type completionFlag struct {
	name   string   // long name, without dashes
	short  string   // one-letter alias, or ""
	desc   string   // help text
	values []string // suggested values; nil for a boolean flag
	file   bool     // the value is a path
}

// completionFlags mirrors the flags registered by package config.
var completionFlags = []completionFlag{
	{name: "help", short: "h", desc: "Show help message"},
	{name: "version", short: "V", desc: "Show version information"},
	{name: "op", desc: "Operation to apply", values: []string{}},
	{name: "strategy", desc: "Exponentiation strategy", values: []string{"binary", "linear"}},
	{name: "max-degree", desc: "Maximum result degree", values: []string{"0", "64", "1024", "16384"}},
	{name: "max-exponent", desc: "Maximum pow exponent", values: []string{"0", "64", "1024", "16384"}},
	{name: "timeout", desc: "Maximum execution time", values: []string{"10s", "1m", "5m"}},
	{name: "json", desc: "Output in JSON format"},
	{name: "quiet", short: "q", desc: "Quiet mode for scripts"},
	{name: "verbose", short: "v", desc: "Display long polynomials in full"},
	{name: "details", short: "d", desc: "Display degree and term count"},
	{name: "no-color", desc: "Disable colored output"},
	{name: "theme", desc: "Color theme", values: []string{"dark", "light", "none"}},
	{name: "server", desc: "Start HTTP server mode"},
	{name: "port", desc: "Server port", values: []string{"8080", "3000", "5000", "9000"}},
	{name: "interactive", short: "i", desc: "Start interactive REPL mode"},
	{name: "batch", desc: "Batch file of 'op: a ; b' lines", file: true},
	{name: "workers", desc: "Concurrent batch evaluations", values: []string{"1", "2", "4", "8"}},
	{name: "output", short: "o", desc: "Output file path", file: true},
	{name: "completion", desc: "Generate completion script", values: []string{"bash", "zsh", "fish", "powershell"}},
	{name: "log-level", desc: "Diagnostic log level", values: []string{"debug", "info", "warn", "error", "disabled"}},
}

// GenerateCompletion writes a completion script for shell. The operation
// names complete both the first positional argument and the -op flag.
//
// Parameters:
//   - out: The writer receiving the script.
//   - shell: "bash", "zsh", "fish" or "powershell" ("ps").
//   - operations: The registered operation names.
//
// Returns:
//   - error: An error if the shell is not supported or writing fails.
func GenerateCompletion(out io.Writer, shell string, operations []string) error {
	var script string
	switch shell {
	case "bash":
		script = bashCompletion(operations)
	case "zsh":
		script = zshCompletion(operations)
	case "fish":
		script = fishCompletion(operations)
	case "powershell", "ps":
		script = powerShellCompletion(operations)
	default:
		return fmt.Errorf("unsupported shell: %s (accepted values: bash, zsh, fish, powershell)", shell)
	}
	_, err := io.WriteString(out, script)
	return err
}

// valuesFor returns the suggested values of f, substituting the operation
// names for -op.
func valuesFor(f completionFlag, operations []string) []string {
	if f.name == "op" {
		return operations
	}
	return f.values
}

func bashCompletion(operations []string) string {
	var opts []string
	var cases strings.Builder
	for _, f := range completionFlags {
		names := []string{"-" + f.name}
		if f.short != "" {
			names = append(names, "-"+f.short)
		}
		opts = append(opts, names...)
		switch {
		case f.file:
			fmt.Fprintf(&cases, "        %s)\n            COMPREPLY=( $(compgen -f -- \"${cur}\") )\n            return 0\n            ;;\n", strings.Join(names, "|"))
		case f.values != nil:
			fmt.Fprintf(&cases, "        %s)\n            COMPREPLY=( $(compgen -W \"%s\" -- \"${cur}\") )\n            return 0\n            ;;\n",
				strings.Join(names, "|"), strings.Join(valuesFor(f, operations), " "))
		}
	}

	return fmt.Sprintf(`# Bash completion script for polycalc
# Add this to your ~/.bashrc or ~/.bash_completion

_polycalc_completions() {
    local cur prev
    COMPREPLY=()
    cur="${COMP_WORDS[COMP_CWORD]}"
    prev="${COMP_WORDS[COMP_CWORD-1]}"

    case "${prev}" in
%s    esac

    if [[ "${cur}" == -* ]]; then
        COMPREPLY=( $(compgen -W "%s" -- "${cur}") )
        return 0
    fi
    if [[ ${COMP_CWORD} -eq 1 ]]; then
        COMPREPLY=( $(compgen -W "%s" -- "${cur}") )
    fi
}

complete -F _polycalc_completions polycalc
`, cases.String(), strings.Join(opts, " "), strings.Join(operations, " "))
}

func zshCompletion(operations []string) string {
	var b strings.Builder
	b.WriteString("#compdef polycalc\n\n# Zsh completion script for polycalc\n# Add this to your ~/.zshrc or place in $fpath\n\n_polycalc() {\n    _arguments -s \\\n")
	for _, f := range completionFlags {
		spec := fmt.Sprintf("'-%s[%s]", f.name, f.desc)
		if f.short != "" {
			spec = fmt.Sprintf("'(-%s -%s)'{-%s,-%s}'[%s]", f.short, f.name, f.short, f.name, f.desc)
		}
		switch {
		case f.file:
			spec += ":file:_files"
		case f.values != nil:
			spec += fmt.Sprintf(":%s:(%s)", f.name, strings.Join(valuesFor(f, operations), " "))
		}
		b.WriteString("        " + spec + "' \\\n")
	}
	fmt.Fprintf(&b, "        '1:operation:(%s)' \\\n        '*:polynomial:'\n}\n\n_polycalc \"$@\"\n", strings.Join(operations, " "))
	return b.String()
}

func fishCompletion(operations []string) string {
	var b strings.Builder
	b.WriteString("# Fish completion script for polycalc\n# Add this to ~/.config/fish/completions/polycalc.fish\n\ncomplete -c polycalc -f\n")
	fmt.Fprintf(&b, "complete -c polycalc -n '__fish_is_first_arg' -xa '%s'\n", strings.Join(operations, " "))
	for _, f := range completionFlags {
		line := "complete -c polycalc -o " + f.name
		if f.short != "" {
			line += " -o " + f.short
		}
		line += fmt.Sprintf(" -d '%s'", f.desc)
		switch {
		case f.file:
			line += " -rF"
		case f.values != nil:
			line += fmt.Sprintf(" -xa '%s'", strings.Join(valuesFor(f, operations), " "))
		}
		b.WriteString(line + "\n")
	}
	return b.String()
}

func powerShellCompletion(operations []string) string {
	quote := func(vs []string) string {
		q := make([]string, len(vs))
		for i, v := range vs {
			q[i] = "'" + v + "'"
		}
		return strings.Join(q, ", ")
	}

	var options, values strings.Builder
	for _, f := range completionFlags {
		fmt.Fprintf(&options, "        @{Name = '-%s'; Description = '%s' }\n", f.name, f.desc)
		if f.short != "" {
			fmt.Fprintf(&options, "        @{Name = '-%s'; Description = '%s' }\n", f.short, f.desc)
		}
		if vs := valuesFor(f, operations); vs != nil && !f.file {
			fmt.Fprintf(&values, "        '-%s' = @(%s)\n", f.name, quote(vs))
		}
	}

	return fmt.Sprintf(`# PowerShell completion script for polycalc
# Add this to your $PROFILE

Register-ArgumentCompleter -CommandName 'polycalc' -Native -ScriptBlock {
    param($wordToComplete, $commandAst, $cursorPosition)

    $operations = @(%s)
    $options = @(
%s    )
    $values = @{
%s    }

    $elements = $commandAst.CommandElements
    $prevElement = if ($elements.Count -gt 2) { $elements[-2].ToString() } else { '' }

    if ($values.ContainsKey($prevElement)) {
        $values[$prevElement] | Where-Object { $_ -like "$wordToComplete*" } | ForEach-Object {
            [System.Management.Automation.CompletionResult]::new($_, $_, 'ParameterValue', $_)
        }
        return
    }
    if ($wordToComplete -like '-*') {
        $options | Where-Object { $_.Name -like "$wordToComplete*" } | ForEach-Object {
            [System.Management.Automation.CompletionResult]::new($_.Name, $_.Name, 'ParameterName', $_.Description)
        }
        return
    }
    $operations | Where-Object { $_ -like "$wordToComplete*" } | ForEach-Object {
        [System.Management.Automation.CompletionResult]::new($_, $_, 'ParameterValue', $_)
    }
}
`, quote(operations), options.String(), values.String())
}
