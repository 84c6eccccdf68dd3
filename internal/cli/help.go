package cli

import (
	"fmt"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/lipgloss"
)

// Custom help styles
var (
	helpTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor).
			MarginBottom(1)

	helpDescStyle = lipgloss.NewStyle().
			Foreground(accentColor).
			Italic(true).
			MarginBottom(1)

	helpSectionStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(accentColor).
				MarginTop(1)

	helpFlagStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00AA00")).
			Bold(true)

	helpArgStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00AAAA")).
			Bold(true)

	helpDefaultStyle = lipgloss.NewStyle().
				Foreground(mutedColor).
				Italic(true)
)

// StyledHelpPrinter renders kong help with Lipgloss styling. With a selected
// command it shows that command's arguments and flags; otherwise it lists the
// commands.
func StyledHelpPrinter(options kong.HelpOptions) func(options kong.HelpOptions, ctx *kong.Context) error {
	return func(options kong.HelpOptions, ctx *kong.Context) error {
		var sb strings.Builder

		node := ctx.Model.Node
		if selected := ctx.Selected(); selected != nil {
			node = selected
		}

		sb.WriteString(helpTitleStyle.Render("Filterbox"))
		sb.WriteString("\n")
		desc := node.Help
		if desc == "" {
			desc = "Audio filter workbench: .fcf presets, Butterworth design, spectra"
		}
		sb.WriteString(helpDescStyle.Render(desc))
		sb.WriteString("\n")

		// Usage
		sb.WriteString(helpSectionStyle.Render("Usage:"))
		sb.WriteString("\n  ")
		if node == ctx.Model.Node {
			sb.WriteString(fmt.Sprintf("%s <command> [flags]", ctx.Model.Name))
		} else {
			sb.WriteString(fmt.Sprintf("%s %s [flags]", ctx.Model.Name, node.Name))
			for _, arg := range getArguments(node) {
				sb.WriteString(" ")
				sb.WriteString(arg.name)
			}
		}
		sb.WriteString("\n")

		if cmds := getCommands(node); len(cmds) > 0 {
			sb.WriteString("\n")
			sb.WriteString(helpSectionStyle.Render("Commands:"))
			sb.WriteString("\n")
			for _, c := range cmds {
				sb.WriteString("  ")
				sb.WriteString(helpArgStyle.Render(fmt.Sprintf("%-10s", c.name)))
				if c.help != "" {
					sb.WriteString("  ")
					sb.WriteString(c.help)
				}
				sb.WriteString("\n")
			}
		}

		if args := getArguments(node); len(args) > 0 {
			sb.WriteString("\n")
			sb.WriteString(helpSectionStyle.Render("Arguments:"))
			sb.WriteString("\n")
			for _, arg := range args {
				sb.WriteString("  ")
				sb.WriteString(helpArgStyle.Render(arg.name))
				if arg.help != "" {
					sb.WriteString("  ")
					sb.WriteString(arg.help)
				}
				sb.WriteString("\n")
			}
		}

		flags := getFlags(ctx.Model.Node)
		if node != ctx.Model.Node {
			flags = append(flags, getFlags(node)[1:]...)
		}
		sb.WriteString("\n")
		sb.WriteString(helpSectionStyle.Render("Flags:"))
		sb.WriteString("\n")
		for _, flag := range flags {
			sb.WriteString("  ")
			sb.WriteString(helpFlagStyle.Render(flag.flags))
			if flag.help != "" {
				sb.WriteString("  ")
				sb.WriteString(flag.help)
			}
			if flag.defaultVal != "" {
				sb.WriteString(" ")
				sb.WriteString(helpDefaultStyle.Render("(default: " + flag.defaultVal + ")"))
			}
			sb.WriteString("\n")
		}

		sb.WriteString("\n")
		fmt.Fprint(ctx.Stdout, sb.String())
		return nil
	}
}

type command struct {
	name string
	help string
}

type argument struct {
	name string
	help string
}

type flag struct {
	flags      string
	help       string
	defaultVal string
}

func getCommands(node *kong.Node) []command {
	var cmds []command
	for _, child := range node.Children {
		if child.Hidden || child.Type != kong.CommandNode {
			continue
		}
		cmds = append(cmds, command{name: child.Name, help: child.Help})
	}
	return cmds
}

func getArguments(node *kong.Node) []argument {
	var args []argument
	for _, arg := range node.Positional {
		args = append(args, argument{name: arg.Summary(), help: arg.Help})
	}
	return args
}

// getFlags always starts with the help flag.
func getFlags(node *kong.Node) []flag {
	flags := []flag{{
		flags: "-h, --help",
		help:  "Show context-sensitive help.",
	}}

	for _, f := range node.Flags {
		if f.Name == "help" || f.Hidden {
			continue
		}

		var flagStr string
		if f.Short != 0 {
			flagStr = fmt.Sprintf("-%c, --%s", f.Short, f.Name)
		} else {
			flagStr = fmt.Sprintf("--%s", f.Name)
		}

		if !f.IsBool() && f.PlaceHolder != "" {
			flagStr += "=" + strings.ToUpper(f.PlaceHolder)
		}

		defaultVal := f.Default
		if f.IsBool() {
			defaultVal = ""
		}
		flags = append(flags, flag{
			flags:      flagStr,
			help:       f.Help,
			defaultVal: defaultVal,
		})
	}

	return flags
}
