package browser

// Mode selects how session setup reaches the quiz-started state.
type Mode string

const (
	// ModeAutomatic navigates the lobby: optional timer configuration,
	// then a game-start control matched by name or a generic play button.
	ModeAutomatic Mode = "auto"
	// ModeDirect navigates straight to a known game path.
	ModeDirect Mode = "direct"
)

// Config holds everything one browser session needs. Immutable once the
// session launches.
type Config struct {
	// BaseURL is the quiz application root, e.g. http://localhost:3000.
	BaseURL string

	Mode Mode

	// GameID is the path segment for ModeDirect.
	GameID string

	// GameName selects a specific game card in ModeAutomatic; empty means
	// the first generic play control.
	GameName string

	// TimerEnabled toggles the lobby timer control; TimerSeconds fills its
	// duration. A missing timer control is non-fatal, defaults stay.
	TimerEnabled bool
	TimerSeconds int

	Headless bool

	// VideoDir is where the context writes the session recording. The
	// recording facility names the file.
	VideoDir string
}

// DefaultConfig returns a config for a local quiz instance.
func DefaultConfig() Config {
	return Config{
		BaseURL:      "http://localhost:3000",
		Mode:         ModeAutomatic,
		TimerSeconds: 30,
		Headless:     true,
		VideoDir:     "recordings",
	}
}
