package config

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds settings for the web server. It is built once by Load and
// treated as read-only afterwards.
type Config struct {
	SupabaseURL     string
	SupabaseAnonKey string
	GCPProjectID    string

	HTTPPort  string
	LogLevel  string
	Preflight bool // check GCPProjectID against Firestore at startup

	Static StaticConfig
}

// StaticConfig controls the SPA asset routes.
type StaticConfig struct {
	Enabled bool
	Dir     string // asset root
	Index   string // fallback document, relative to Dir
}

// Load builds a Config with priority:
// 1. Command-line flags
// 2. Environment variables (including those from the .env file)
// 3. Defaults
//
// apiOnly forces static serving off regardless of flags or environment.
func Load(args []string, apiOnly bool) (*Config, error) {
	fset := flag.NewFlagSet("server", flag.ContinueOnError)
	envFile := fset.String("env-file", ".env", "path to a dotenv file")
	port := fset.String("port", "", "HTTP server port")
	staticDir := fset.String("static-dir", "", "directory holding the frontend assets")
	static := fset.Bool("static", true, "serve frontend assets with SPA fallback")
	if err := fset.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	// variables already in the environment win over the file
	if err := godotenv.Load(*envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load env file %s: %w", *envFile, err)
	}

	v := viper.New()
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	setDefaults(v)

	// only flags given explicitly override the environment
	fset.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "port":
			v.Set("port", *port)
		case "static-dir":
			v.Set("static_dir", *staticDir)
		case "static":
			v.Set("serve_static", *static)
		}
	})

	cfg := &Config{
		SupabaseURL:     v.GetString("supabase_url"),
		SupabaseAnonKey: v.GetString("supabase_anon_key"),
		GCPProjectID:    v.GetString("gcp_project_id"),
		HTTPPort:        v.GetString("port"),
		LogLevel:        v.GetString("log_level"),
		Preflight:       v.GetBool("firestore_preflight"),
		Static: StaticConfig{
			Enabled: v.GetBool("serve_static") && !apiOnly,
			Dir:     v.GetString("static_dir"),
			Index:   v.GetString("static_index"),
		},
	}
	if cfg.HTTPPort == "" {
		return nil, errors.New("port must not be empty")
	}
	if cfg.Static.Enabled && cfg.Static.Index == "" {
		return nil, errors.New("static index must not be empty")
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("supabase_url", "")
	v.SetDefault("supabase_anon_key", "")
	v.SetDefault("gcp_project_id", "")
	v.SetDefault("port", "8080")
	v.SetDefault("log_level", "info")
	v.SetDefault("firestore_preflight", false)
	v.SetDefault("serve_static", true)
	v.SetDefault("static_dir", "frontend/public")
	v.SetDefault("static_index", "index.html")
}
