package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"

	"github.com/AlibekovAA/profile-cards/internal/common/constants"
	commonerrors "github.com/AlibekovAA/profile-cards/internal/common/errors"
)

type ProfilesConfig struct {
	HTTPPort          string        `validate:"required,numeric"`
	UsersEndpoint     string        `validate:"required,url"`
	AvatarBaseURL     string        `validate:"required,url"`
	AvatarStyle       string        `validate:"required,excludesall=/?#"`
	FetchTimeout      time.Duration `validate:"gte=0"`
	MaxResponseBytes  int64         `validate:"gt=0"`
	RequestTimeout    time.Duration `validate:"gt=0"`
	RateLimitRPS      float64       `validate:"gt=0"`
	RateLimitBurst    int           `validate:"gt=0"`
	TrustProxyHeaders bool
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// LoadProfilesConfig reads the environment, after merging an optional .env
// file (ENV_FILE, default ".env"). Variables already set win over the file.
// A value that does not parse is an error, never a silent default.
func LoadProfilesConfig() (ProfilesConfig, error) {
	if err := loadEnvFile(getEnv("ENV_FILE", ".env")); err != nil {
		return ProfilesConfig{}, err
	}

	var env envReader
	cfg := ProfilesConfig{
		HTTPPort:          getEnv("PROFILES_HTTP_PORT", constants.DefaultProfilesHTTPPort),
		UsersEndpoint:     getEnv("PROFILES_USERS_ENDPOINT", constants.DefaultUsersEndpoint),
		AvatarBaseURL:     getEnv("PROFILES_AVATAR_BASE_URL", constants.DefaultAvatarBaseURL),
		AvatarStyle:       getEnv("PROFILES_AVATAR_STYLE", constants.DefaultAvatarStyle),
		FetchTimeout:      env.durationVar("PROFILES_FETCH_TIMEOUT", constants.DefaultFetchTimeout),
		MaxResponseBytes:  env.int64Var("PROFILES_MAX_RESPONSE_BYTES", constants.DefaultMaxResponseBytes),
		RequestTimeout:    env.durationVar("PROFILES_REQUEST_TIMEOUT", constants.DefaultProfilesRequestTimeout),
		RateLimitRPS:      env.floatVar("PROFILES_RATE_LIMIT_RPS", constants.DefaultRateLimitRequestsPerSecond),
		RateLimitBurst:    env.intVar("PROFILES_RATE_LIMIT_BURST", constants.DefaultRateLimitBurst),
		TrustProxyHeaders: env.boolVar("PROFILES_TRUST_PROXY_HEADERS", false),
	}
	if err := env.err(); err != nil {
		return ProfilesConfig{}, commonerrors.ErrInvalidConfig.WithCause(err)
	}

	if err := cfg.Validate(); err != nil {
		return ProfilesConfig{}, err
	}
	return cfg, nil
}

func (c ProfilesConfig) Validate() error {
	if err := validate.Struct(c); err != nil {
		return commonerrors.ErrInvalidConfig.WithCause(err)
	}
	return nil
}

func loadEnvFile(path string) error {
	err := godotenv.Load(path)
	if err == nil || errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return fmt.Errorf("failed to load env file %s: %w", path, err)
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

// envReader parses typed variables and remembers every failure.
type envReader struct {
	errs []error
}

func (r *envReader) err() error {
	return errors.Join(r.errs...)
}

func (r *envReader) lookup(key string) (string, bool) {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return "", false
	}
	return v, true
}

func (r *envReader) fail(key, value string, err error) {
	r.errs = append(r.errs, fmt.Errorf("%s=%q: %w", key, value, err))
}

func (r *envReader) durationVar(key string, fallback time.Duration) time.Duration {
	v, ok := r.lookup(key)
	if !ok {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		r.fail(key, v, err)
		return fallback
	}
	return d
}

func (r *envReader) intVar(key string, fallback int) int {
	v, ok := r.lookup(key)
	if !ok {
		return fallback
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		r.fail(key, v, err)
		return fallback
	}
	return i
}

func (r *envReader) int64Var(key string, fallback int64) int64 {
	v, ok := r.lookup(key)
	if !ok {
		return fallback
	}
	i, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		r.fail(key, v, err)
		return fallback
	}
	return i
}

func (r *envReader) floatVar(key string, fallback float64) float64 {
	v, ok := r.lookup(key)
	if !ok {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		r.fail(key, v, err)
		return fallback
	}
	return f
}

func (r *envReader) boolVar(key string, fallback bool) bool {
	v, ok := r.lookup(key)
	if !ok {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		r.fail(key, v, err)
		return fallback
	}
	return b
}
