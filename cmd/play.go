package cmd

import (
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/glp360/riskscore/internal/app"
	"github.com/glp360/riskscore/internal/report"
	"github.com/glp360/riskscore/internal/submit"
	"github.com/glp360/riskscore/internal/wizard"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Take the risk score test in the terminal",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func init() {
	for _, c := range []*cobra.Command{rootCmd, playCmd} {
		c.Flags().Bool("skip-intro", false, "Start directly on the first question")
		c.Flags().String("style", "", "Result page style: dark, light, notty or a glamour style file (default: auto)")
	}
}

// runApp builds dependencies and launches the TUI.
func runApp(cmd *cobra.Command) error {
	rt, err := newRuntime(nil)
	if err != nil {
		return err
	}
	defer rt.close()

	style, _ := cmd.Flags().GetString("style")
	skipIntro, _ := cmd.Flags().GetBool("skip-intro")

	renderer, err := report.NewRenderer(style, report.DefaultWordWrap)
	if err != nil {
		// The result page falls back to plain text.
		logger.Warn("markdown renderer unavailable", zap.Error(err))
	}

	return app.Run(app.Options{
		Engine:      rt.engine,
		Rules:       rt.rules,
		Renderer:    renderer,
		SkipWelcome: skipIntro,
		Submit: func(w *wizard.Wizard) error {
			r, _ := w.Result()
			payload := submit.BuildPayload(rt.engine.Catalog(), w.Answers(), w.Contact(), r, time.Now())
			id, err := rt.dispatcher.Submit(payload)
			if err != nil {
				logger.Error("failed to dispatch submission", zap.Error(err))
				return err
			}
			logger.Info("submission dispatched", zap.String("submission_id", id))
			return nil
		},
	})
}
