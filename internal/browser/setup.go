package browser

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/playwright-community/playwright-go"
	"go.uber.org/zap"

	"quizpilot/internal/logg"
)

// Lobby and quiz surface selectors. The quiz container, counter, question
// and option markers are the stability-sensitive part of the contract with
// the target application: a change there breaks extraction, not resolution.
const (
	selQuizContainer   = "#quiz-container"
	selQuestionCounter = ".question-counter"
	selQuestionText    = ".question-text"
	selOption          = ".option"
	selOptionLabel     = ".option-label"
	scoreMarker        = "Score:"

	selTimerToggle  = "#timer-toggle"
	selTimerSeconds = "#timer-seconds"
	selPlayButton   = `button:has-text("Play")`
)

const setupTimeoutMs = 15000

// SetupError reports a fatal session-setup failure (navigation, game
// start control not found, quiz container never appearing).
type SetupError struct {
	Stage string
	Err   error
}

func (e *SetupError) Error() string {
	return fmt.Sprintf("session setup failed at %s: %v", e.Stage, e.Err)
}

func (e *SetupError) Unwrap() error { return e.Err }

// Setup brings the page to the quiz-started state. Whatever the mode, the
// post-condition is the same: the quiz container is present and the first
// question's options are about to render.
func (s *Session) Setup(ctx context.Context) error {
	switch s.cfg.Mode {
	case ModeDirect:
		return s.setupDirect(ctx)
	default:
		return s.setupAutomatic(ctx)
	}
}

func (s *Session) setupDirect(ctx context.Context) error {
	url := strings.TrimRight(s.cfg.BaseURL, "/") + "/game/" + s.cfg.GameID
	s.log.Info("🧭 Navigating directly to game", zap.String(logg.URL, url))

	if _, err := s.page.Goto(url, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateDomcontentloaded,
		Timeout:   playwright.Float(setupTimeoutMs),
	}); err != nil {
		return &SetupError{Stage: "navigation", Err: err}
	}
	return s.awaitQuizContainer()
}

func (s *Session) setupAutomatic(ctx context.Context) error {
	s.log.Info("🧭 Navigating to lobby", zap.String(logg.URL, s.cfg.BaseURL))

	if _, err := s.page.Goto(s.cfg.BaseURL, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateDomcontentloaded,
		Timeout:   playwright.Float(setupTimeoutMs),
	}); err != nil {
		return &SetupError{Stage: "navigation", Err: err}
	}

	if s.cfg.TimerEnabled {
		s.configureTimer()
	}

	if err := s.startGame(); err != nil {
		return err
	}
	return s.awaitQuizContainer()
}

// configureTimer enables the lobby timer control and fills its duration.
// A missing control is non-fatal: the game runs with its defaults.
func (s *Session) configureTimer() {
	toggle := s.page.Locator(selTimerToggle)
	if visible, err := toggle.IsVisible(); err != nil || !visible {
		s.log.Warn("⏱️  Timer control not found, keeping game defaults",
			zap.String(logg.Selector, selTimerToggle))
		return
	}
	if err := toggle.Check(); err != nil {
		s.log.Warn("⏱️  Could not enable timer, keeping game defaults", zap.Error(err))
		return
	}

	seconds := s.page.Locator(selTimerSeconds)
	if visible, err := seconds.IsVisible(); err != nil || !visible {
		s.log.Warn("⏱️  Timer enabled but seconds input missing, keeping default duration")
		return
	}
	if err := seconds.Fill(strconv.Itoa(s.cfg.TimerSeconds)); err != nil {
		s.log.Warn("⏱️  Could not set timer duration", zap.Error(err))
		return
	}
	s.log.Info("⏱️  Timer configured", zap.Int("seconds", s.cfg.TimerSeconds))
}

// startGame clicks the configured game card, or the first generic play
// control when no name is given. No start control is fatal.
func (s *Session) startGame() error {
	sel := selPlayButton
	if s.cfg.GameName != "" {
		sel = fmt.Sprintf(`.game-card:has-text(%q) button`, s.cfg.GameName)
	}
	s.log.Info("🎮 Starting game", zap.String(logg.Selector, sel))

	if err := s.page.Locator(sel).First().Click(playwright.LocatorClickOptions{
		Timeout: playwright.Float(setupTimeoutMs),
	}); err != nil {
		return &SetupError{Stage: "game start", Err: err}
	}
	return nil
}

func (s *Session) awaitQuizContainer() error {
	if err := s.page.Locator(selQuizContainer).WaitFor(playwright.LocatorWaitForOptions{
		State:   playwright.WaitForSelectorStateVisible,
		Timeout: playwright.Float(setupTimeoutMs),
	}); err != nil {
		return &SetupError{Stage: "quiz container", Err: err}
	}
	s.log.Info("🟢 Quiz container ready")
	return nil
}
