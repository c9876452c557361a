package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/fx"
)

// Config holds application configuration.
type Config struct {
	AppName     string
	AppVersion  string
	Environment string

	ListenAddr string

	DataDir   string
	DBPath    string
	ExportDir string

	// InvoiceStartNumber seeds the invoice counter when no draft exists yet.
	InvoiceStartNumber int64

	Capture CaptureConfig
	Seller  SellerProfile

	LogLevel  string
	LogFormat string
}

// CaptureConfig controls the headless capture step of the export pipeline.
type CaptureConfig struct {
	// ViewURL is the address of the rendered invoice view the capturer
	// screenshots. It must point back at this process.
	ViewURL       string
	ViewportWidth int64
	// Scale is the pixel-density multiplier applied during capture.
	Scale          float64
	TimeoutSeconds int
}

// Timeout returns the capture deadline as a duration.
func (c CaptureConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// SellerProfile is the fixed letterhead printed on every invoice.
type SellerProfile struct {
	Name         string
	AddressLine1 string
	AddressLine2 string
	Phone        string
	Email        string
	GSTIN        string
	Terms        string
}

var Module = fx.Module("config",
	fx.Provide(Load),
)

// Load loads configuration from environment variables and .env file.
func Load() Config {
	_ = godotenv.Load()

	dataDir := getenv("BILLING_DATA_DIR", "./data")

	cfg := Config{
		AppName:     getenv("APP_SERVICE", "billing"),
		AppVersion:  getenv("APP_VERSION", "0.1.0"),
		Environment: getenv("ENVIRONMENT", "development"),

		ListenAddr: getenv("LISTEN_ADDR", ":8080"),

		DataDir:   dataDir,
		DBPath:    getenv("BILLING_DB_PATH", filepath.Join(dataDir, "billing.db")),
		ExportDir: getenv("BILLING_EXPORT_DIR", filepath.Join(dataDir, "exports")),

		InvoiceStartNumber: getenvInt64("INVOICE_START_NUMBER", 428),

		Capture: CaptureConfig{
			ViewURL:        getenv("CAPTURE_VIEW_URL", "http://127.0.0.1:8080/invoice/view"),
			ViewportWidth:  getenvInt64("CAPTURE_VIEWPORT_WIDTH", 900),
			Scale:          getenvFloat("CAPTURE_SCALE", 2),
			TimeoutSeconds: int(getenvInt64("CAPTURE_TIMEOUT_SECONDS", 30)),
		},

		Seller: SellerProfile{
			Name:         getenv("SELLER_NAME", "Dhruv Enterprises"),
			AddressLine1: getenv("SELLER_ADDRESS_LINE1", "120 I, Bangalow Street, Neikarapatti (Po),"),
			AddressLine2: getenv("SELLER_ADDRESS_LINE2", "Palani(Tk), Dindigul (Dt), Tamil Nadu."),
			Phone:        getenv("SELLER_PHONE", "8778489020"),
			Email:        getenv("SELLER_EMAIL", "dhruvvinayak1421@gmail.com"),
			GSTIN:        getenv("SELLER_GSTIN", "33EMUPK6767C1ZL"),
			Terms:        getenv("SELLER_TERMS", "Subject to 'Dindigul' Jurisdiction"),
		},

		LogLevel:  getenv("LOG_LEVEL", "info"),
		LogFormat: getenv("LOG_FORMAT", "json"),
	}

	return cfg
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt64(key string, def int64) int64 {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	parsed, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return def
	}
	return parsed
}

func getenvFloat(key string, def float64) float64 {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil || parsed <= 0 {
		return def
	}
	return parsed
}
