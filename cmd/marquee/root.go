package main

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/dkoosis/marquee/internal/config"
	"github.com/dkoosis/marquee/pkg/marquee"
)

func newRootCmd(stdin io.Reader, stdout io.Writer) *cobra.Command {
	var flags config.CliFlags

	root := &cobra.Command{
		Use:   "marquee",
		Short: "Marquee is an interactive scrolling-text console",
		Long: `Marquee scrolls a line of text across the terminal while accepting
commands: help, start_marquee, stop_marquee, set_text, set_speed and exit.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			f := cmd.Flags()
			flags.TextSet = f.Changed("text")
			flags.SpeedSet = f.Changed("speed")
			flags.WidthSet = f.Changed("width")
			flags.PlainSet = f.Changed("plain")
			flags.NoColorSet = f.Changed("no-color")
			flags.DebugSet = f.Changed("debug")

			cfg, err := config.ResolveConfig(flags)
			if err != nil {
				return err
			}
			return console(cmd.Context(), cfg, stdin, stdout)
		},
	}

	f := root.Flags()
	f.StringVar(&flags.Text, "text", marquee.DefaultText, "Initial marquee text")
	f.IntVar(&flags.Speed, "speed", marquee.DefaultSpeed, "Milliseconds between animation steps")
	f.IntVar(&flags.Width, "width", 0, "Fixed viewport width (0 follows the terminal)")
	f.BoolVar(&flags.Plain, "plain", false, "Use the plain line renderer instead of the full-screen UI")
	f.BoolVar(&flags.NoColor, "no-color", false, "Disable colors")
	f.BoolVar(&flags.Debug, "debug", false, "Log debug events (requires --log-file)")
	f.StringVar(&flags.LogFile, "log-file", "", "Append logs to this file")
	f.StringVar(&flags.MetricsFile, "metrics-file", "", "Write counters to this file on exit")

	root.AddCommand(newVersionCmd())
	return root
}
