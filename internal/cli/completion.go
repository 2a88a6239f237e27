package cli

import (
	"fmt"
	"io"
	"strings"
)

// FlagCompletion describes a CLI flag for shell completion generation.
// Every shell script is generated from flagRegistry, so adding a flag only
// requires appending to it.
type FlagCompletion struct {
	Long      string   // long flag name without "--" (e.g., "help")
	Short     string   // short flag without "-" (e.g., "h")
	Help      string   // description text
	Values    []string // suggested completion values (nil = boolean/no suggestions)
	ValueName string   // label for the value in zsh (e.g., "number", "duration")
	IsFile    bool     // true if the flag takes a file path
}

// flagRegistry is the central list of all CLI flags for completion generation.
var flagRegistry = []FlagCompletion{
	{Long: "help", Short: "h", Help: "Show help message"},
	{Long: "version", Short: "V", Help: "Show version information"},
	{Long: "expr", Short: "e", Help: "Expression to evaluate", ValueName: "expression"},
	{Long: "input", Short: "i", Help: "File of expressions, one per line", IsFile: true, ValueName: "file"},
	{Long: "output", Short: "o", Help: "Also write results to a file", IsFile: true, ValueName: "file"},
	{Long: "repl", Help: "Start the interactive calculator"},
	{Long: "quiet", Short: "q", Help: "Print bare results only"},
	{Long: "decimal", Help: "Decimal places shown next to results", Values: []string{"0", "2", "4", "6", "10"}, ValueName: "places"},
	{Long: "workers", Help: "Maximum concurrent evaluations", Values: []string{"1", "2", "4", "8"}, ValueName: "number"},
	{Long: "timeout", Help: "Maximum duration of the run", Values: []string{"10s", "30s", "1m", "5m"}, ValueName: "duration"},
	{Long: "metrics-addr", Help: "Serve Prometheus metrics on this address", ValueName: "address"},
	{Long: "log-level", Help: "Log level", Values: []string{"debug", "info", "warn", "error"}, ValueName: "level"},
	{Long: "no-color", Help: "Disable colored output"},
	{Long: "config", Help: "TOML configuration file", IsFile: true, ValueName: "file"},
	{Long: "completion", Help: "Generate completion script", Values: []string{"bash", "zsh", "fish", "powershell"}, ValueName: "shell"},
}

// GenerateCompletion writes a completion script for shell to out.
// Accepted shells are bash, zsh, fish and powershell (or ps).
func GenerateCompletion(out io.Writer, shell string) error {
	var err error
	switch strings.ToLower(shell) {
	case "bash":
		err = generateBashCompletion(out)
	case "zsh":
		err = generateZshCompletion(out)
	case "fish":
		err = generateFishCompletion(out)
	case "powershell", "ps":
		err = generatePowerShellCompletion(out)
	default:
		return fmt.Errorf("unsupported shell: %s (accepted values: bash, zsh, fish, powershell)", shell)
	}
	if err != nil {
		return fmt.Errorf("completion %s generation failed: %w", shell, err)
	}
	return nil
}

// flagNames returns every spelling of f ("--long", "-s").
func flagNames(f FlagCompletion) []string {
	var names []string
	if f.Long != "" {
		names = append(names, "--"+f.Long)
	}
	if f.Short != "" {
		names = append(names, "-"+f.Short)
	}
	return names
}

func generateBashCompletion(out io.Writer) error {
	var opts []string
	var cases []string
	var filePatterns []string
	for _, f := range flagRegistry {
		names := flagNames(f)
		opts = append(opts, names...)
		switch {
		case f.IsFile:
			filePatterns = append(filePatterns, names...)
		case len(f.Values) > 0:
			cases = append(cases, fmt.Sprintf("        %s)\n            COMPREPLY=( $(compgen -W \"%s\" -- \"${cur}\") )\n            return 0\n            ;;",
				strings.Join(names, "|"), strings.Join(f.Values, " ")))
		}
	}
	if len(filePatterns) > 0 {
		cases = append(cases, fmt.Sprintf("        %s)\n            COMPREPLY=( $(compgen -f -- \"${cur}\") )\n            return 0\n            ;;",
			strings.Join(filePatterns, "|")))
	}

	_, err := fmt.Fprintf(out, `# Bash completion script for fraccalc
# Add this to your ~/.bashrc or /etc/bash_completion.d/

_fraccalc() {
    local cur prev opts
    COMPREPLY=()
    cur="${COMP_WORDS[COMP_CWORD]}"
    prev="${COMP_WORDS[COMP_CWORD-1]}"
    opts="%s"

    case "${prev}" in
%s
    esac

    if [[ ${cur} == -* ]]; then
        COMPREPLY=( $(compgen -W "${opts}" -- "${cur}") )
        return 0
    fi
}

complete -F _fraccalc fraccalc
`, strings.Join(opts, " "), strings.Join(cases, "\n"))
	return err
}

// zshArgEntry formats a single FlagCompletion as a zsh _arguments entry.
func zshArgEntry(f FlagCompletion) string {
	valueSuffix := ""
	switch {
	case f.IsFile:
		valueSuffix = fmt.Sprintf(":%s:_files", f.ValueName)
	case len(f.Values) > 0:
		valueSuffix = fmt.Sprintf(":%s:(%s)", f.ValueName, strings.Join(f.Values, " "))
	case f.ValueName != "":
		valueSuffix = fmt.Sprintf(":%s:", f.ValueName)
	}

	if f.Long != "" && f.Short != "" {
		return fmt.Sprintf("        '(-%s --%s)'{-%s,--%s}'[%s]%s'",
			f.Short, f.Long, f.Short, f.Long, f.Help, valueSuffix)
	}
	return fmt.Sprintf("        '--%s[%s]%s'", f.Long, f.Help, valueSuffix)
}

func generateZshCompletion(out io.Writer) error {
	args := make([]string, 0, len(flagRegistry))
	for _, f := range flagRegistry {
		args = append(args, zshArgEntry(f))
	}
	_, err := fmt.Fprintf(out, `#compdef fraccalc

# Zsh completion script for fraccalc
# Add this to your ~/.zshrc or place in $fpath

_fraccalc() {
    _arguments -s \
%s \
        '*:expression:'
}

_fraccalc "$@"
`, strings.Join(args, " \\\n"))
	return err
}

// fishCompleteLine formats a single FlagCompletion as a fish complete command.
func fishCompleteLine(f FlagCompletion) string {
	parts := []string{"complete -c fraccalc"}
	if f.Short != "" {
		parts = append(parts, "-s "+f.Short)
	}
	if f.Long != "" {
		parts = append(parts, "-l "+f.Long)
	}
	parts = append(parts, fmt.Sprintf("-d '%s'", f.Help))

	switch {
	case f.IsFile:
		parts = append(parts, "-rF")
	case len(f.Values) > 0:
		parts = append(parts, fmt.Sprintf("-xa '%s'", strings.Join(f.Values, " ")))
	case f.ValueName != "":
		parts = append(parts, "-x")
	}
	return strings.Join(parts, " ")
}

func generateFishCompletion(out io.Writer) error {
	lines := []string{
		"# Fish completion script for fraccalc",
		"# Add this to ~/.config/fish/completions/fraccalc.fish",
		"",
		"complete -c fraccalc -f",
	}
	for _, f := range flagRegistry {
		lines = append(lines, fishCompleteLine(f))
	}
	_, err := fmt.Fprintln(out, strings.Join(lines, "\n"))
	return err
}

func generatePowerShellCompletion(out io.Writer) error {
	var optionEntries, switchEntries []string
	for _, f := range flagRegistry {
		for _, name := range flagNames(f) {
			optionEntries = append(optionEntries, fmt.Sprintf(
				"        @{Name = '%s'; Description = '%s' }", name, f.Help))
		}
		if len(f.Values) == 0 || f.IsFile {
			continue
		}
		quoted := make([]string, len(f.Values))
		for i, v := range f.Values {
			quoted[i] = fmt.Sprintf("'%s'", v)
		}
		switchEntries = append(switchEntries, fmt.Sprintf(`        '--%s' {
            @(%s) | Where-Object { $_ -like "$wordToComplete*" } | ForEach-Object {
                [System.Management.Automation.CompletionResult]::new($_, $_, 'ParameterValue', $_)
            }
            return
        }`, f.Long, strings.Join(quoted, ", ")))
	}

	_, err := fmt.Fprintf(out, `# PowerShell completion script for fraccalc
# Add this to your $PROFILE

Register-ArgumentCompleter -CommandName 'fraccalc' -Native -ScriptBlock {
    param($wordToComplete, $commandAst, $cursorPosition)

    $options = @(
%s
    )

    $elements = $commandAst.CommandElements
    $prevElement = if ($elements.Count -gt 2) { $elements[-2].ToString() } else { '' }

    switch ($prevElement) {
%s
    }

    $options | Where-Object { $_.Name -like "$wordToComplete*" } | ForEach-Object {
        [System.Management.Automation.CompletionResult]::new($_.Name, $_.Name, 'ParameterName', $_.Description)
    }
}
`, strings.Join(optionEntries, "\n"), strings.Join(switchEntries, "\n"))
	return err
}
