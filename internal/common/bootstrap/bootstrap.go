package bootstrap

import (
	"fmt"
	"net/http"
	"os"

	"github.com/AlibekovAA/profile-cards/internal/common/config"
	"github.com/AlibekovAA/profile-cards/internal/common/logger"
	"github.com/AlibekovAA/profile-cards/internal/profile/fetch"
	"github.com/AlibekovAA/profile-cards/internal/profile/render"
)

type ProfilesApp struct {
	Log        *logger.Logger
	Config     config.ProfilesConfig
	Controller *fetch.Controller
	Renderer   render.Renderer
}

func NewProfilesApp() (*ProfilesApp, error) {
	log, err := initializeLogger("profiles")
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	cfg, err := config.LoadProfilesConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	return NewProfilesAppWith(log, cfg, nil), nil
}

// NewProfilesAppWith wires the app from an existing logger and config. A nil
// client means http.Client{} with no client-side timeout.
func NewProfilesAppWith(log *logger.Logger, cfg config.ProfilesConfig, client *http.Client) *ProfilesApp {
	source := fetch.NewHTTPSource(fetch.HTTPSourceConfig{
		Endpoint:         cfg.UsersEndpoint,
		Timeout:          cfg.FetchTimeout,
		MaxResponseBytes: cfg.MaxResponseBytes,
		Client:           client,
	})

	return &ProfilesApp{
		Log:        log,
		Config:     cfg,
		Controller: fetch.NewController(source, log),
		Renderer:   render.NewRenderer(cfg.AvatarBaseURL, cfg.AvatarStyle),
	}
}

func initializeLogger(serviceName string) (*logger.Logger, error) {
	return logger.New(os.Getenv("LOG_DIR"), serviceName, os.Getenv("LOG_LEVEL"))
}
