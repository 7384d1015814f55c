package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Store drivers understood by the application.
const (
	DriverSheets = "sheets"
	DriverSQL    = "sql"
	DriverCSV    = "csv"
	DriverMemory = "memory"
)

// Config captures the runtime configuration for the application.
type Config struct {
	Server  ServerConfig
	Store   StoreConfig
	Logging LoggingConfig
	Auth    AuthConfig
	Export  ExportConfig
}

// ServerConfig configures the HTTP server runtime behavior.
type ServerConfig struct {
	Addr string
}

// StoreConfig selects and configures the tabular store backing the knowledge base.
type StoreConfig struct {
	Driver   string
	Sheets   SheetsConfig
	Database DatabaseConfig
	CSVDir   string
}

// SheetsConfig identifies the spreadsheet and the service account used to reach it.
type SheetsConfig struct {
	SpreadsheetID      string
	ServiceAccountJSON string
}

// DatabaseConfig contains the database connection settings.
type DatabaseConfig struct {
	URL             string
	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
	UseMock         bool
}

// LoggingConfig controls the global logger.
type LoggingConfig struct {
	Level string
}

// AuthConfig groups session and editor access settings.
type AuthConfig struct {
	Session SessionConfig
	// EditorPasswordHash is a bcrypt hash. When set, the data-entry forms
	// require signing in with the matching password.
	EditorPasswordHash string
}

// SessionConfig controls cookie sessions.
type SessionConfig struct {
	Lifetime     time.Duration
	CookieName   string
	CookieDomain string
	CookieSecure bool
}

// ExportConfig configures where table snapshots are written.
type ExportConfig struct {
	Destination string
	S3Region    string
	S3Endpoint  string
	S3PathStyle bool
}

// Load inspects the environment and the optional secrets file and builds a
// Config value. Missing or malformed store credentials are reported as errors
// so callers can refuse to start.
func Load() (Config, error) {
	return LoadWith(nil)
}

// LoadWith is Load with a hook that may adjust the environment-derived values
// (for example from command-line flags) before validation.
func LoadWith(override func(*Config)) (Config, error) {
	cfg := Config{}

	cfg.Server = ServerConfig{
		Addr: firstNonEmpty(
			os.Getenv("SERVER_ADDR"),
			os.Getenv("ADDR"),
			":8080",
		),
	}

	cfg.Store = StoreConfig{
		Driver: strings.ToLower(firstNonEmpty(os.Getenv("KB_STORE_DRIVER"), DriverSheets)),
		Sheets: SheetsConfig{
			SpreadsheetID: strings.TrimSpace(os.Getenv("KB_SPREADSHEET_ID")),
		},
		Database: DatabaseConfig{
			URL: firstNonEmpty(
				os.Getenv("DATABASE_URL"),
				os.Getenv("DB_URL"),
				"",
			),
			MaxIdleConns:    parseIntWithDefault(os.Getenv("DATABASE_MAX_IDLE_CONNS"), 0),
			MaxOpenConns:    parseIntWithDefault(os.Getenv("DATABASE_MAX_OPEN_CONNS"), 0),
			ConnMaxLifetime: parseDurationWithDefault(os.Getenv("DATABASE_CONN_MAX_LIFETIME"), 0),
			ConnMaxIdleTime: parseDurationWithDefault(os.Getenv("DATABASE_CONN_MAX_IDLE_TIME"), 0),
			UseMock:         parseBoolWithDefault(os.Getenv("DATABASE_USE_MOCK"), false),
		},
		CSVDir: firstNonEmpty(os.Getenv("KB_CSV_DIR"), "data"),
	}

	saJSON, err := serviceAccountFromEnv()
	if err != nil {
		return Config{}, err
	}
	cfg.Store.Sheets.ServiceAccountJSON = saJSON

	if path := strings.TrimSpace(os.Getenv("KB_SECRETS_FILE")); path != "" {
		secrets, err := LoadSecretsFile(path)
		if err != nil {
			return Config{}, err
		}
		secrets.apply(&cfg.Store.Sheets)
	}

	cfg.Logging = LoggingConfig{
		Level: firstNonEmpty(os.Getenv("LOG_LEVEL"), "info"),
	}

	cfg.Auth = AuthConfig{
		Session: SessionConfig{
			Lifetime:     parseDurationWithDefault(os.Getenv("SESSION_LIFETIME"), 12*time.Hour),
			CookieName:   firstNonEmpty(os.Getenv("SESSION_COOKIE_NAME"), "formulakb_session"),
			CookieDomain: strings.TrimSpace(os.Getenv("SESSION_COOKIE_DOMAIN")),
			CookieSecure: parseBoolWithDefault(os.Getenv("SESSION_COOKIE_SECURE"), true),
		},
		EditorPasswordHash: strings.TrimSpace(os.Getenv("KB_EDITOR_PASSWORD_HASH")),
	}

	cfg.Export = ExportConfig{
		Destination: strings.TrimSpace(os.Getenv("KB_EXPORT_DEST")),
		S3Region:    strings.TrimSpace(os.Getenv("KB_EXPORT_S3_REGION")),
		S3Endpoint:  strings.TrimSpace(os.Getenv("KB_EXPORT_S3_ENDPOINT")),
		S3PathStyle: parseBoolWithDefault(os.Getenv("KB_EXPORT_S3_PATH_STYLE"), false),
	}

	if override != nil {
		override(&cfg)
		cfg.Store.Driver = strings.ToLower(strings.TrimSpace(cfg.Store.Driver))
	}

	if strings.TrimSpace(cfg.Server.Addr) == "" {
		return Config{}, fmt.Errorf("server address must not be empty")
	}

	if err := cfg.Store.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Validate reports configuration problems that make the store unusable.
func (s StoreConfig) Validate() error {
	switch s.Driver {
	case DriverSheets:
		return s.Sheets.Validate()
	case DriverSQL:
		if s.Database.UseMock {
			return nil
		}
		if strings.TrimSpace(s.Database.URL) == "" {
			return errors.New("sql store requires DATABASE_URL")
		}
		return nil
	case DriverCSV:
		if strings.TrimSpace(s.CSVDir) == "" {
			return errors.New("csv store requires KB_CSV_DIR")
		}
		return nil
	case DriverMemory:
		return nil
	default:
		return fmt.Errorf("unknown store driver: %s", s.Driver)
	}
}

// Validate checks the spreadsheet identifier and service account credentials.
func (s SheetsConfig) Validate() error {
	id := strings.TrimSpace(s.SpreadsheetID)
	if id == "" {
		return errors.New("spreadsheet id is missing: set KB_SPREADSHEET_ID or gsheets.spreadsheet_id")
	}
	if strings.Contains(id, "/") {
		return errors.New("use only the spreadsheet id (the string between /d/ and /edit), not the whole URL")
	}
	if strings.TrimSpace(s.ServiceAccountJSON) == "" {
		return errors.New("service account credentials are missing: set KB_SERVICE_ACCOUNT_JSON, KB_SERVICE_ACCOUNT_FILE or gsheets.service_account")
	}
	var probe map[string]any
	if err := json.Unmarshal([]byte(s.ServiceAccountJSON), &probe); err != nil {
		return fmt.Errorf("service account JSON malformed: %w", err)
	}
	return nil
}

// ServiceAccountEmail extracts client_email from the credentials, if present.
func (s SheetsConfig) ServiceAccountEmail() string {
	var probe struct {
		ClientEmail string `json:"client_email"`
	}
	if err := json.Unmarshal([]byte(s.ServiceAccountJSON), &probe); err != nil {
		return ""
	}
	return probe.ClientEmail
}

func serviceAccountFromEnv() (string, error) {
	if inline := strings.TrimSpace(os.Getenv("KB_SERVICE_ACCOUNT_JSON")); inline != "" {
		return inline, nil
	}
	path := firstNonEmpty(
		os.Getenv("KB_SERVICE_ACCOUNT_FILE"),
		os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"),
	)
	if strings.TrimSpace(path) == "" {
		return "", nil
	}
	data, err := os.ReadFile(strings.TrimSpace(path))
	if err != nil {
		return "", fmt.Errorf("read service account file: %w", err)
	}
	return string(data), nil
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if strings.TrimSpace(value) != "" {
			return value
		}
	}
	return ""
}

func parseIntWithDefault(value string, def int) int {
	value = strings.TrimSpace(value)
	if value == "" {
		return def
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return def
	}
	return parsed
}

func parseDurationWithDefault(value string, def time.Duration) time.Duration {
	value = strings.TrimSpace(value)
	if value == "" {
		return def
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return def
	}
	return parsed
}

func parseBoolWithDefault(value string, def bool) bool {
	value = strings.TrimSpace(value)
	if value == "" {
		return def
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return def
	}
	return parsed
}
