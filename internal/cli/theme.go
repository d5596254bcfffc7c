package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sandeepkv93/focusd/internal/app"
	"github.com/sandeepkv93/focusd/internal/model"
)

func addTheme(topLevel *cobra.Command, env Env, ro *rootOptions) {
	cmd := &cobra.Command{
		Use:   "theme [toggle|light|dark]",
		Short: "Show or change the colour theme.",
		Example: `
focusd theme
focusd theme toggle
focusd theme dark
`,
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{"toggle", string(model.ThemeLight), string(model.ThemeDark)},
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, env, ro, func(a *app.App) error {
				if len(args) == 1 {
					switch arg := args[0]; arg {
					case "toggle":
						a.Theme.Toggle()
					default:
						theme, ok := model.ParseTheme(arg)
						if !ok {
							return fmt.Errorf("unknown theme %q: use toggle, light or dark", arg)
						}
						a.Theme.Set(theme)
					}
				}
				theme := a.Theme.Theme()
				if ro.output.JSON {
					return ro.output.writeJSON(env.Out, map[string]string{"theme": string(theme)})
				}
				_, _ = fmt.Fprintln(env.Out, a.Translator.T("status.theme", bold(string(theme))))
				return nil
			})
		},
	}
	topLevel.AddCommand(cmd)
}
