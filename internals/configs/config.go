package configs

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

var (
	SupabaseJWTSecret string
	App               *AppConfig
)

// AppConfig is the typed view of the environment. Values come from the
// process env (optionally seeded from .env) through viper.
type AppConfig struct {
	Port string

	DBUser     string
	DBPassword string
	DBHost     string
	DBPort     string
	DBName     string
	DBSSLMode  string
	// LISTEN/NOTIFY does not survive a transaction pooler, so realtime
	// dials the database directly when this port is set.
	DBDirectPort string

	SupabaseURL       string
	SupabaseAnonKey   string
	SupabaseJWTSecret string

	MediaProvider      string // cloudinary | oss
	CloudinaryURL      string
	CloudinaryFolder   string
	ReaperSchedule     string
	ReaperGrace        time.Duration
	ReaperDryRun       bool
	RealtimeChannel    string
	RealtimeLookupMax  int
	CorsOrigins        []string
	RateLimitPerMinute int
}

// =======================
// ENV LOADER
// =======================
func LoadEnv() {
	if os.Getenv("RAILWAY_ENVIRONMENT") == "" {
		if err := godotenv.Load(); err != nil {
			log.Println("⚠️ .env introuvable, utilisation des variables système")
		} else {
			log.Println("✅ .env chargé")
		}
	} else {
		log.Println("🚀 Railway détecté, utilisation des variables système")
	}

	App = Load(viper.New())
	SupabaseJWTSecret = App.SupabaseJWTSecret

	if SupabaseJWTSecret == "" {
		log.Println("❌ SUPABASE_JWT_SECRET non défini!")
	} else {
		log.Println("✅ SUPABASE_JWT_SECRET chargé.")
	}
	if App.SupabaseURL == "" {
		log.Println("⚠️ SUPABASE_URL non défini, inscription parent désactivée")
	}
}

// Load reads the configuration from v. Tests pass a fresh viper with Set
// calls instead of touching the process env.
func Load(v *viper.Viper) *AppConfig {
	v.AutomaticEnv()
	v.SetDefault("PORT", "3000")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_SSLMODE", "require")
	v.SetDefault("MEDIA_PROVIDER", "cloudinary")
	v.SetDefault("CLOUDINARY_FOLDER", "eleves")
	v.SetDefault("REAPER_SCHEDULE", "15 2 * * *")
	v.SetDefault("REAPER_GRACE", "24h")
	v.SetDefault("REAPER_DRY_RUN", false)
	v.SetDefault("REALTIME_CHANNEL", "table_changes")
	v.SetDefault("REALTIME_LOOKUP_MAX", 3)
	v.SetDefault("CORS_ORIGINS", "http://localhost:3000,http://localhost:5173")
	v.SetDefault("RATE_LIMIT_PER_MINUTE", 100)

	return &AppConfig{
		Port:               v.GetString("PORT"),
		DBUser:             v.GetString("DB_USER"),
		DBPassword:         v.GetString("DB_PASSWORD"),
		DBHost:             v.GetString("DB_HOST"),
		DBPort:             v.GetString("DB_PORT"),
		DBName:             v.GetString("DB_NAME"),
		DBSSLMode:          v.GetString("DB_SSLMODE"),
		DBDirectPort:       v.GetString("DB_DIRECT_PORT"),
		SupabaseURL:        strings.TrimRight(v.GetString("SUPABASE_URL"), "/"),
		SupabaseAnonKey:    v.GetString("SUPABASE_ANON_KEY"),
		SupabaseJWTSecret:  v.GetString("SUPABASE_JWT_SECRET"),
		MediaProvider:      strings.ToLower(v.GetString("MEDIA_PROVIDER")),
		CloudinaryURL:      v.GetString("CLOUDINARY_URL"),
		CloudinaryFolder:   v.GetString("CLOUDINARY_FOLDER"),
		ReaperSchedule:     v.GetString("REAPER_SCHEDULE"),
		ReaperGrace:        v.GetDuration("REAPER_GRACE"),
		ReaperDryRun:       v.GetBool("REAPER_DRY_RUN"),
		RealtimeChannel:    v.GetString("REALTIME_CHANNEL"),
		RealtimeLookupMax:  v.GetInt("REALTIME_LOOKUP_MAX"),
		CorsOrigins:        splitList(v.GetString("CORS_ORIGINS")),
		RateLimitPerMinute: v.GetInt("RATE_LIMIT_PER_MINUTE"),
	}
}

// DSN builds the pooled connection string used by gorm.
func (c *AppConfig) DSN() string {
	return c.dsn(c.DBPort)
}

// DirectDSN is the session-mode connection used by the realtime listener.
func (c *AppConfig) DirectDSN() string {
	if c.DBDirectPort == "" {
		return c.DSN()
	}
	return c.dsn(c.DBDirectPort)
}

func (c *AppConfig) dsn(port string) string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&application_name=ecole",
		c.DBUser, c.DBPassword, c.DBHost, port, c.DBName, c.DBSSLMode,
	)
}

func GetEnv(key string, defaultValue ...string) string {
	value, exists := os.LookupEnv(key)
	if !exists && len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return value
}

func splitList(s string) []string {
	out := make([]string, 0, 4)
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
