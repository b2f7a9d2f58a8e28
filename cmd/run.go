package cmd

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"quizpilot/internal/bank"
	"quizpilot/internal/browser"
	"quizpilot/internal/logg"
	"quizpilot/internal/quiz"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Play one quiz session and record it",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSession(cmd)
	},
}

func init() {
	f := runCmd.Flags()

	f.String("url", "", "Quiz application base URL (overrides QUIZPILOT_URL)")
	f.String("mode", string(browser.ModeAutomatic), `Session setup mode: "auto" or "direct"`)
	f.String("game-id", "", "Game path segment for direct mode")
	f.String("game-name", "", "Game card to start in automatic mode (empty: first play button)")
	f.Bool("timer", false, "Enable the lobby timer control")
	f.Int("timer-seconds", 30, "Timer duration in seconds")
	f.String("bank-url", "", "Remote answer bank endpoint (overrides QUIZPILOT_BANK_URL; empty: built-in bank)")
	f.String("video-dir", "recordings", "Directory for the session recording")
	f.Bool("headed", false, "Run the browser with a visible window")
	f.Int("max-questions", quiz.DefaultMaxQuestions, "Hard cap on questions per session")
	f.Bool("debug", false, "Verbose logging")

	// Timing flag defaults resolve from QUIZPILOT_* env vars, so the
	// precedence is flag > env > default.
	tm := quiz.TimingFromEnv()
	f.Duration("answer-delay", tm.AnswerDelay, "Pause between resolving and clicking an option")
	f.Duration("question-timeout", tm.QuestionTimeout, "How long to wait for options to render")
	f.Duration("stabilization-delay", tm.StabilizationDelay, "Pause after clicking before transition detection")
	f.Duration("transition-timeout", tm.TransitionTimeout, "How long to watch for the next question")
	f.Duration("close-delay", tm.CloseDelay, "Grace pause before teardown, kept on the recording")
}

func runSession(cmd *cobra.Command) error {
	debug, _ := cmd.Flags().GetBool("debug")

	log, err := logg.New(debug)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	b, err := loadBank(ctx, cmd, log)
	if err != nil {
		log.Error("🛑 Answer bank load failed, quiz will not start", zap.Error(err))
		return err
	}

	timing := timingFromFlags(cmd)

	session, err := browser.Launch(browserConfigFromFlags(cmd), log)
	if err != nil {
		log.Error("🛑 Browser launch failed", zap.Error(err))
		return err
	}
	// Teardown always runs so the video artifact is finalized, whatever
	// the loop outcome.
	defer func() {
		if err := session.Close(); err != nil {
			log.Warn("Browser teardown reported an error", zap.Error(err))
		}
	}()

	if err := session.Setup(ctx); err != nil {
		log.Error("🛑 Session setup failed", zap.Error(err))
		_ = session.CaptureDiagnostic(ctx, "setup")
		return err
	}

	maxQuestions, _ := cmd.Flags().GetInt("max-questions")
	result := quiz.NewController(session, b, timing, maxQuestions, log).Run(ctx)

	// Keep the final state on the recording before teardown.
	gracePause(ctx, timing.CloseDelay)

	if path, err := session.VideoPath(); err != nil {
		log.Warn("Could not resolve video path", zap.Error(err))
	} else {
		result.VideoPath = path
	}

	log.Info("🏆 Session finished",
		zap.String(logg.Reason, string(result.Reason)),
		zap.Int("answered", result.QuestionsAnswered),
		zap.String("video", result.VideoPath))

	// A loop-level error was already logged and diagnosed; it aborts the
	// session but not the process exit status.
	return nil
}

// loadBank resolves the bank source: --bank-url flag, then the
// QUIZPILOT_BANK_URL env var, then the built-in static bank.
func loadBank(ctx context.Context, cmd *cobra.Command, log *zap.Logger) (bank.Bank, error) {
	url, _ := cmd.Flags().GetString("bank-url")
	if url == "" {
		url = os.Getenv("QUIZPILOT_BANK_URL")
	}

	var b bank.Bank
	if url == "" {
		b = bank.Default()
		log.Info("📚 Using built-in answer bank", zap.Int("entries", b.Len()))
	} else {
		var err error
		b, err = bank.FetchRemote(ctx, &http.Client{Timeout: 15 * time.Second}, url)
		if err != nil {
			return bank.Bank{}, err
		}
		log.Info("📚 Answer bank fetched", zap.String(logg.URL, url), zap.Int("entries", b.Len()))
	}

	if b.Len() == 0 {
		log.Warn("⚠️  Answer bank is empty, every answer will be random")
	}
	return b, nil
}

func timingFromFlags(cmd *cobra.Command) quiz.Timing {
	get := func(name string) time.Duration {
		d, _ := cmd.Flags().GetDuration(name)
		return d
	}
	return quiz.Timing{
		AnswerDelay:        get("answer-delay"),
		QuestionTimeout:    get("question-timeout"),
		StabilizationDelay: get("stabilization-delay"),
		TransitionTimeout:  get("transition-timeout"),
		CloseDelay:         get("close-delay"),
	}
}

func browserConfigFromFlags(cmd *cobra.Command) browser.Config {
	f := cmd.Flags()
	cfg := browser.DefaultConfig()

	if v, _ := f.GetString("url"); v != "" {
		cfg.BaseURL = v
	} else if v := os.Getenv("QUIZPILOT_URL"); v != "" {
		cfg.BaseURL = v
	}
	if v, _ := f.GetString("mode"); v != "" {
		cfg.Mode = browser.Mode(v)
	}
	cfg.GameID, _ = f.GetString("game-id")
	cfg.GameName, _ = f.GetString("game-name")
	cfg.TimerEnabled, _ = f.GetBool("timer")
	cfg.TimerSeconds, _ = f.GetInt("timer-seconds")
	cfg.VideoDir, _ = f.GetString("video-dir")

	headed, _ := f.GetBool("headed")
	cfg.Headless = !headed

	return cfg
}

func gracePause(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	select {
	case <-ctx.Done():
	case <-time.After(d):
	}
}
