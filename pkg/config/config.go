package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
// Se construye una sola vez en main y se inyecta explícitamente a cada componente.
type Config struct {
	App      AppConfig
	DB       DBConfig
	JWT      JWTConfig
	HTTP     HTTPConfig
	SAP      SAPConfig
	Printer  PrinterConfig
	SMTP     SMTPConfig
	Workflow WorkflowConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env  string // development, staging, production
	Name string
}

// DBConfig configuración de la base de datos que expone los procedimientos almacenados.
// Si DatabaseURL no está vacío, se usa como connection string completo.
type DBConfig struct {
	DatabaseURL string
	Host        string
	Port        int
	User        string
	Password    string
	DBName      string
	SSLMode     string
	Schema      string // esquema donde viven los procedimientos (ej. "wms")
}

// ConnectionString devuelve el DSN a usar: DATABASE_URL si está definido, si no el construido con DSN().
func (c DBConfig) ConnectionString() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return c.DSN()
}

// DSN devuelve el connection string con URL encoding para caracteres especiales.
func (c DBConfig) DSN() string {
	u := &url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:     "/" + c.DBName,
		RawQuery: fmt.Sprintf("sslmode=%s", c.SSLMode),
	}
	return u.String()
}

// JWTConfig configuración de JWT.
type JWTConfig struct {
	Secret     string
	Expiration int // minutos
	Issuer     string
}

// HTTPConfig configuración del servidor HTTP.
type HTTPConfig struct {
	Host string
	Port int
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// SAPConnection descriptor de logon SAP que el middleware espera en ConnectionParams.
// Es opaco para esta capa: solo se reenvía.
type SAPConnection struct {
	AppServerHost string `json:"AppServerHost"`
	SystemNumber  string `json:"SystemNumber"`
	SystemID      string `json:"SystemID"`
	Client        string `json:"Client"`
	User          string `json:"User"`
	Password      string `json:"Password"`
	Language      string `json:"Language"`
	PoolSize      int    `json:"PoolSize"`
}

// SAPTimeouts timeouts por operación. No están unificados a propósito: la recepción
// de órdenes puede tardar minutos en SAP, las consultas no.
type SAPTimeouts struct {
	PutAway       time.Duration
	Picking       time.Duration
	Inward        time.Duration
	Scrapping     time.Duration
	Resorting     time.Duration
	StockTransfer time.Duration
	Lookup        time.Duration
}

// SAPConfig configuración del middleware conector SAP.
type SAPConfig struct {
	MiddlewareURL string
	Connection    SAPConnection
	BatchSize     int // máximo de ítems por llamada a goods-movement
	Timeouts      SAPTimeouts
}

// PrinterConfig configuración de impresoras de etiquetas (socket crudo).
type PrinterConfig struct {
	Port         int
	DialTimeout  time.Duration
	WriteTimeout time.Duration
	TemplateDir  string
	ChunkSize    int // etiquetas procesadas en paralelo por tanda
}

// SMTPConfig configuración del transporte de correo (aprobaciones de desecho).
type SMTPConfig struct {
	Host           string
	Port           int
	User           string
	Password       string
	From           string
	ScrapApprovers []string
}

// Enabled indica si hay transporte SMTP configurado.
func (c SMTPConfig) Enabled() bool {
	return c.Host != "" && len(c.ScrapApprovers) > 0
}

// WorkflowConfig ajustes del flujo de movimientos.
type WorkflowConfig struct {
	CommitChunkSize int // llamadas concurrentes a procedimientos de confirmación
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, DB_HOST, SAP_CONNECTOR_MIDDLEWARE_URL, etc.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.SetConfigName("config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := &Config{
		App: AppConfig{
			Env:  getString(v, "APP_ENV", "development"),
			Name: getString(v, "APP_NAME", "wms-sap-api"),
		},
		DB: DBConfig{
			DatabaseURL: getString(v, "DATABASE_URL", ""),
			Host:        getString(v, "DB_HOST", "localhost"),
			Port:        getInt(v, "DB_PORT", 5432),
			User:        getString(v, "DB_USER", "postgres"),
			Password:    getString(v, "DB_PASSWORD", ""),
			DBName:      getString(v, "DB_NAME", "wms"),
			SSLMode:     getString(v, "DB_SSLMODE", "disable"),
			Schema:      getString(v, "DB_SCHEMA", "wms"),
		},
		JWT: JWTConfig{
			Secret:     getString(v, "JWT_SECRET", ""),
			Expiration: getInt(v, "JWT_EXPIRATION_MINUTES", 480),
			Issuer:     getString(v, "JWT_ISSUER", "wms-sap-api"),
		},
		HTTP: HTTPConfig{
			Host: getString(v, "HTTP_HOST", "0.0.0.0"),
			Port: getInt(v, "HTTP_PORT", 8080),
		},
		SAP: SAPConfig{
			MiddlewareURL: strings.TrimRight(getString(v, "SAP_CONNECTOR_MIDDLEWARE_URL", "http://localhost:5000"), "/"),
			Connection: SAPConnection{
				AppServerHost: getString(v, "SAP_APP_SERVER_HOST", ""),
				SystemNumber:  getString(v, "SAP_SYSTEM_NUMBER", "00"),
				SystemID:      getString(v, "SAP_SYSTEM_ID", ""),
				Client:        getString(v, "SAP_CLIENT", "100"),
				User:          getString(v, "SAP_USER", ""),
				Password:      getString(v, "SAP_PASSWORD", ""),
				Language:      getString(v, "SAP_LANGUAGE", "EN"),
				PoolSize:      getInt(v, "SAP_POOL_SIZE", 5),
			},
			BatchSize: getInt(v, "SAP_BATCH_SIZE", 50),
			Timeouts: SAPTimeouts{
				PutAway:       getDuration(v, "SAP_TIMEOUT_PUTAWAY", 30*time.Second),
				Picking:       getDuration(v, "SAP_TIMEOUT_PICKING", 60*time.Second),
				Inward:        getDuration(v, "SAP_TIMEOUT_INWARD", 300*time.Second),
				Scrapping:     getDuration(v, "SAP_TIMEOUT_SCRAPPING", 30*time.Second),
				Resorting:     getDuration(v, "SAP_TIMEOUT_RESORTING", 30*time.Second),
				StockTransfer: getDuration(v, "SAP_TIMEOUT_STOCK_TRANSFER", 30*time.Second),
				Lookup:        getDuration(v, "SAP_TIMEOUT_LOOKUP", 120*time.Second),
			},
		},
		Printer: PrinterConfig{
			Port:         getInt(v, "PRINTER_PORT", 9100),
			DialTimeout:  getDuration(v, "PRINTER_DIAL_TIMEOUT", 3*time.Second),
			WriteTimeout: getDuration(v, "PRINTER_WRITE_TIMEOUT", 5*time.Second),
			TemplateDir:  getString(v, "PRINTER_TEMPLATE_DIR", "./templates/prn"),
			ChunkSize:    getInt(v, "PRINTER_CHUNK_SIZE", 50),
		},
		SMTP: SMTPConfig{
			Host:           getString(v, "SMTP_HOST", ""),
			Port:           getInt(v, "SMTP_PORT", 587),
			User:           getString(v, "SMTP_USER", ""),
			Password:       getString(v, "SMTP_PASSWORD", ""),
			From:           getString(v, "SMTP_FROM", "wms@localhost"),
			ScrapApprovers: getList(v, "SMTP_SCRAP_APPROVERS"),
		},
		Workflow: WorkflowConfig{
			CommitChunkSize: getInt(v, "WORKFLOW_COMMIT_CHUNK_SIZE", 50),
		},
	}

	if cfg.SAP.BatchSize <= 0 || cfg.SAP.BatchSize > 50 {
		cfg.SAP.BatchSize = 50
	}
	if cfg.JWT.Secret == "" && cfg.App.Env == "production" {
		return nil, fmt.Errorf("JWT_SECRET es obligatorio en producción")
	}

	return cfg, nil
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if v.IsSet(key) {
		switch v.Get(key).(type) {
		case string:
			n, err := strconv.Atoi(strings.TrimSpace(v.GetString(key)))
			if err != nil {
				return def
			}
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}

// getDuration acepta "30s", "5m" o un número entero de segundos.
func getDuration(v *viper.Viper, key string, def time.Duration) time.Duration {
	if !v.IsSet(key) {
		return def
	}
	raw := strings.TrimSpace(v.GetString(key))
	if n, err := strconv.Atoi(raw); err == nil {
		return time.Duration(n) * time.Second
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return def
	}
	return d
}

// getList lee una lista separada por comas.
func getList(v *viper.Viper, key string) []string {
	if !v.IsSet(key) {
		return nil
	}
	var out []string
	for _, p := range strings.Split(v.GetString(key), ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
