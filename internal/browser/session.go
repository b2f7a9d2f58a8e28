// Package browser drives the quiz page through Playwright: one Chromium
// context per session, recorded to video, with screenshot diagnostics on
// failure. It implements the quiz.Page contract over the live DOM.
package browser

import (
	"github.com/google/uuid"
	"github.com/playwright-community/playwright-go"
	"go.uber.org/zap"

	"quizpilot/internal/logg"
)

// Session owns the browser process, context and page for one quiz run.
type Session struct {
	ID  string
	cfg Config
	log *zap.Logger

	pw      *playwright.Playwright
	browser playwright.Browser
	context playwright.BrowserContext
	page    playwright.Page
}

// Launch starts Playwright, launches Chromium and opens a recording
// context. The caller must Close the session regardless of outcome so the
// video artifact is finalized.
func Launch(cfg Config, log *zap.Logger) (*Session, error) {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Session{ID: uuid.NewString(), cfg: cfg}
	s.log = log.With(zap.String(logg.Session, s.ID))

	s.log.Info("🚀 Launching browser", zap.Bool("headless", cfg.Headless))

	pw, err := playwright.Run()
	if err != nil {
		return nil, &SetupError{Stage: "playwright", Err: err}
	}
	s.pw = pw

	browser, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(cfg.Headless),
	})
	if err != nil {
		_ = pw.Stop()
		return nil, &SetupError{Stage: "browser", Err: err}
	}
	s.browser = browser

	context, err := browser.NewContext(playwright.BrowserNewContextOptions{
		Viewport: &playwright.Size{Width: 1280, Height: 720},
		RecordVideo: &playwright.RecordVideo{
			Dir:  cfg.VideoDir,
			Size: &playwright.Size{Width: 1280, Height: 720},
		},
	})
	if err != nil {
		_ = browser.Close()
		_ = pw.Stop()
		return nil, &SetupError{Stage: "context", Err: err}
	}
	s.context = context

	page, err := context.NewPage()
	if err != nil {
		_ = context.Close()
		_ = browser.Close()
		_ = pw.Stop()
		return nil, &SetupError{Stage: "page", Err: err}
	}
	s.page = page

	s.log.Info("🎬 Recording session", zap.String("dir", cfg.VideoDir))
	return s, nil
}

// VideoPath resolves the recording's path. Call before Close; the file is
// finalized when the context closes.
func (s *Session) VideoPath() (string, error) {
	video := s.page.Video()
	if video == nil {
		return "", nil
	}
	return video.Path()
}

// Close tears the session down: context first (finalizing the video),
// then browser, then the Playwright driver. Always safe to call; partial
// failures are logged and teardown continues.
func (s *Session) Close() error {
	s.log.Info("👋 Closing browser session")

	if s.context != nil {
		if err := s.context.Close(); err != nil {
			s.log.Warn("Failed to close context", zap.Error(err))
		}
	}
	if s.browser != nil {
		if err := s.browser.Close(); err != nil {
			s.log.Warn("Failed to close browser", zap.Error(err))
		}
	}
	if s.pw != nil {
		return s.pw.Stop()
	}
	return nil
}
