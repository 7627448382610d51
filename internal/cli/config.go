package cli

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ytcrawl/ytcrawl/pkg/config"
)

// configCommand creates the config management command.
func (c *CLI) configCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage persisted crawl defaults",
		Long: `Manage the persisted option mapping in ` + "`~/.config/ytcrawl/config.toml`" + `.

Stored values act as defaults for the search command; explicitly given
flags still win. Values are validated against the option schema before
they are written.`,
	}

	cmd.AddCommand(c.configGetCommand())
	cmd.AddCommand(c.configSetCommand())
	cmd.AddCommand(c.configUnsetCommand())
	cmd.AddCommand(c.configClearCommand())

	return cmd
}

// configGetCommand creates the "config get" subcommand.
// Without an argument it lists every option.
func (c *CLI) configGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:               "get [option]",
		Short:             "Show one or all persisted options",
		Args:              cobra.MaximumNArgs(1),
		ValidArgsFunction: completeOptionNames,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, _, err := loadConfig()
			if err != nil {
				return err
			}

			if len(args) == 1 {
				value, err := config.Get(&opts, args[0])
				if err != nil {
					return err
				}
				fmt.Println(formatValue(value))
				return nil
			}

			for _, name := range config.Names() {
				value, err := config.Get(&opts, name)
				if err != nil {
					return err
				}
				printKeyValue(name, formatValue(value))
			}
			return nil
		},
	}
}

// configSetCommand creates the "config set" subcommand.
func (c *CLI) configSetCommand() *cobra.Command {
	return &cobra.Command{
		Use:               "set <option> <value>",
		Short:             "Set a persisted option",
		Args:              cobra.ExactArgs(2),
		ValidArgsFunction: completeOptionNames,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, path, err := loadConfig()
			if err != nil {
				return err
			}
			if err := config.Set(&opts, args[0], args[1]); err != nil {
				return err
			}
			if err := config.Save(opts, path); err != nil {
				return err
			}
			printSuccess("Set %s", args[0])
			return nil
		},
	}
}

// configUnsetCommand creates the "config unset" subcommand.
func (c *CLI) configUnsetCommand() *cobra.Command {
	return &cobra.Command{
		Use:               "unset <option>",
		Short:             "Reset a persisted option to its default",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeOptionNames,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, path, err := loadConfig()
			if err != nil {
				return err
			}
			if err := config.Unset(&opts, args[0]); err != nil {
				return err
			}
			if err := config.Save(opts, path); err != nil {
				return err
			}
			printSuccess("Reset %s to its default", args[0])
			return nil
		},
	}
}

// configClearCommand creates the "config clear" subcommand.
// It asks for confirmation before resetting everything.
func (c *CLI) configClearCommand() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Reset all persisted options to their defaults",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes && !confirm(cmd, "Reset all options to their defaults?") {
				printWarning("Aborted")
				return nil
			}

			path, err := config.DefaultPath()
			if err != nil {
				return err
			}
			if err := config.Save(config.Defaults(), path); err != nil {
				return err
			}
			printSuccess("Cleared all options")
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	return cmd
}

// completeOptionNames offers option names for shell completion, annotated
// with their declared kinds.
func completeOptionNames(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) != 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	names := config.Names()
	comps := make([]string, 0, len(names))
	for _, name := range names {
		kind, err := config.KindOf(name)
		if err != nil {
			continue
		}
		comps = append(comps, fmt.Sprintf("%s\t%s", name, kind))
	}
	return comps, cobra.ShellCompDirectiveNoFileComp
}

// confirm prompts on the command's input stream and accepts y/yes.
func confirm(cmd *cobra.Command, question string) bool {
	fmt.Fprintf(cmd.OutOrStdout(), "%s [y/N] ", question)
	answer, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil {
		return false
	}
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}

// formatValue renders an option value for display.
func formatValue(v any) string {
	switch v := v.(type) {
	case []int:
		parts := make([]string, len(v))
		for i, n := range v {
			parts[i] = strconv.Itoa(n)
		}
		return strings.Join(parts, ",")
	default:
		return fmt.Sprintf("%v", v)
	}
}
