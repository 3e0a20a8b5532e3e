// Package config loads the environment-variable configuration recognized by
// the engine. This is a headless service with no local state to register,
// so configuration is sourced from the environment via viper rather than a
// JSON registry file.
package config

import (
	"strings"

	"github.com/spf13/viper"
)

// Config holds the environment variables recognized by the engine, except
// OWNER, which the source-detect activity reads directly.
type Config struct {
	TemporalURL string
	LogLevel    string
	Registry    string
	GitUser     string
	GitEmail    string
	GitUsername string
	GitPassword string

	// GitOpsURL and GitOpsRevision configure the GitOps repository a
	// webhook-triggered push_to_deploy run mutates. A forge push payload
	// only carries the source repository's coordinates, so the ingress
	// server needs a configured GitOps target to build a full
	// PushToDeployInput rather than inventing a second webhook body schema.
	GitOpsURL      string
	GitOpsRevision string
	// Namespace and Cluster fill in the GitOps layout coordinates
	// (apps/{namespace}/{app}/{cluster}.yaml) that a forge webhook payload
	// has no field for; App is always the pushed repository's name.
	Namespace string
	Cluster   string

	// IngressAddr is the ingress server's listen address, local to
	// cmd/golden-server.
	IngressAddr string
	// MetricsAddr is the worker's internal listen address for /metrics.
	MetricsAddr string
	// TaskQueue is the Temporal task queue workflows and activities are
	// registered and dispatched on.
	TaskQueue string
}

// Load reads configuration from the environment (and an optional config
// file if GOLDEN_CONFIG_FILE is set), applying package defaults first.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("temporal_url", "http://localhost:7233")
	v.SetDefault("log_level", "info")
	v.SetDefault("registry", "http://localhost:5000")
	v.SetDefault("git_user", "Platform Engine")
	v.SetDefault("git_email", "platform@example.com")
	v.SetDefault("git_username", "git")
	v.SetDefault("git_password", "password")
	v.SetDefault("gitops_url", "")
	v.SetDefault("gitops_revision", "main")
	v.SetDefault("namespace", "default")
	v.SetDefault("cluster", "prod")
	v.SetDefault("ingress_addr", ":8080")
	v.SetDefault("metrics_addr", ":9090")
	v.SetDefault("task_queue", "main")

	if path := v.GetString("golden_config_file"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, err
		}
	}

	return &Config{
		TemporalURL:    v.GetString("temporal_url"),
		LogLevel:       v.GetString("log_level"),
		Registry:       v.GetString("registry"),
		GitUser:        v.GetString("git_user"),
		GitEmail:       v.GetString("git_email"),
		GitUsername:    v.GetString("git_username"),
		GitPassword:    v.GetString("git_password"),
		GitOpsURL:      v.GetString("gitops_url"),
		GitOpsRevision: v.GetString("gitops_revision"),
		Namespace:      v.GetString("namespace"),
		Cluster:        v.GetString("cluster"),
		IngressAddr:    v.GetString("ingress_addr"),
		MetricsAddr:    v.GetString("metrics_addr"),
		TaskQueue:      v.GetString("task_queue"),
	}, nil
}
