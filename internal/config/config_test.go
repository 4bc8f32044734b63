package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/at-ishikawa/quickexplain/internal/testutil"
)

func defaultConfig(apiKey string) *Config {
	return &Config{
		Server: ServerConfig{
			Port: 8000,
			CORS: CORSConfig{AllowedOrigins: []string{"*"}},
		},
		OpenRouter: OpenRouterConfig{
			APIKey:         apiKey,
			BaseURL:        DefaultOpenRouterBaseURL,
			Model:          DefaultModel,
			Referer:        "http://localhost",
			Title:          "QuickExplain Extension",
			TimeoutSeconds: 20,
			Temperature:    0.3,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

func TestConfigLoader_Load(t *testing.T) {
	tests := []struct {
		name              string
		configContent     string
		dotEnv            map[string]string
		env               map[string]string
		wantErr           bool
		want              *Config
		wantErrorContains []string
	}{
		{
			name: "defaults with API key from environment",
			env:  map[string]string{"OPENROUTER_API_KEY": "sk-test"},
			want: defaultConfig("sk-test"),
		},
		{
			name:   "API key from dotenv file",
			dotEnv: map[string]string{"OPENROUTER_API_KEY": "sk-from-dotenv"},
			want:   defaultConfig("sk-from-dotenv"),
		},
		{
			name:   "environment wins over dotenv file",
			dotEnv: map[string]string{"OPENROUTER_API_KEY": "sk-from-dotenv"},
			env:    map[string]string{"OPENROUTER_API_KEY": "sk-from-env"},
			want:   defaultConfig("sk-from-env"),
		},
		{
			name: "valid config file with custom values",
			configContent: `server:
  port: 9000
  cors:
    allowed_origins:
      - chrome-extension://abcdef
openrouter:
  model: mistralai/mistral-7b-instruct
  referer: https://example.com
  title: Test Title
  timeout_seconds: 5
  temperature: 0.1
log:
  level: DEBUG
  format: json
  debug_payloads: true
`,
			env: map[string]string{"OPENROUTER_API_KEY": "sk-test"},
			want: &Config{
				Server: ServerConfig{
					Port: 9000,
					CORS: CORSConfig{AllowedOrigins: []string{"chrome-extension://abcdef"}},
				},
				OpenRouter: OpenRouterConfig{
					APIKey:         "sk-test",
					BaseURL:        DefaultOpenRouterBaseURL,
					Model:          "mistralai/mistral-7b-instruct",
					Referer:        "https://example.com",
					Title:          "Test Title",
					TimeoutSeconds: 5,
					Temperature:    0.1,
				},
				Log: LogConfig{
					Level:         "debug",
					Format:        "json",
					DebugPayloads: true,
				},
			},
		},
		{
			name: "environment variables override config file",
			configContent: `openrouter:
  model: from-file
`,
			env: map[string]string{
				"OPENROUTER_API_KEY": "sk-test",
				"OPENROUTER_MODEL":   "from-env",
				"QUICKEXPLAIN_PORT":  "9100",
				"LOG_DEBUG_PAYLOADS": "true",
			},
			want: func() *Config {
				cfg := defaultConfig("sk-test")
				cfg.OpenRouter.Model = "from-env"
				cfg.Server.Port = 9100
				cfg.Log.DebugPayloads = true
				return cfg
			}(),
		},
		{
			name: "warning is accepted as a log level",
			env: map[string]string{
				"OPENROUTER_API_KEY": "sk-test",
				"LOG_LEVEL":          "WARNING",
			},
			want: func() *Config {
				cfg := defaultConfig("sk-test")
				cfg.Log.Level = "warning"
				return cfg
			}(),
		},
		{
			name:    "missing API key",
			wantErr: true,
			wantErrorContains: []string{
				"invalid configuration",
				"openrouter.api_key is a required field",
				"OPENROUTER_API_KEY",
			},
		},
		{
			name: "invalid values",
			configContent: `server:
  port: 0
openrouter:
  base_url: not a url
  timeout_seconds: 0
log:
  format: xml
`,
			env:     map[string]string{"OPENROUTER_API_KEY": "sk-test"},
			wantErr: true,
			wantErrorContains: []string{
				"port",
				"base_url",
				"timeout_seconds",
				"format",
			},
		},
		{
			name: "invalid YAML format",
			configContent: `server:
  port: 9000
  invalid yaml format here [[[
`,
			env:     map[string]string{"OPENROUTER_API_KEY": "sk-test"},
			wantErr: true,
			wantErrorContains: []string{
				"configuration file found but could not be read",
				"Please check the file format and permissions",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := testutil.IsolateConfig(t)
			for key, value := range tt.env {
				t.Setenv(key, value)
			}
			if tt.dotEnv != nil {
				testutil.SetupTestDotEnv(t, dir, tt.dotEnv)
			}
			var configFile string
			if tt.configContent != "" {
				configFile = testutil.SetupTestConfig(t, dir, tt.configContent)
			}

			loader, err := NewConfigLoader(configFile, "")
			require.NoError(t, err)
			got, err := loader.Load()
			if tt.wantErr {
				require.Error(t, err)
				for _, want := range tt.wantErrorContains {
					assert.Contains(t, err.Error(), want)
				}
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestConfigLoader_Load_ExplicitEnvFile(t *testing.T) {
	dir := testutil.IsolateConfig(t)
	envFile := filepath.Join(dir, "relay.env")
	require.NoError(t, os.WriteFile(envFile, []byte("OPENROUTER_API_KEY=sk-explicit\nOPENROUTER_MODEL=some/model\n"), 0600))

	loader, err := NewConfigLoader("", envFile)
	require.NoError(t, err)
	got, err := loader.Load()
	require.NoError(t, err)
	assert.Equal(t, "sk-explicit", got.OpenRouter.APIKey)
	assert.Equal(t, "some/model", got.OpenRouter.Model)
}

func TestLoadDotEnv(t *testing.T) {
	t.Run("missing file is not an error", func(t *testing.T) {
		testutil.IsolateConfig(t)
		assert.NoError(t, LoadDotEnv(""))
		assert.NoError(t, LoadDotEnv("does-not-exist.env"))
	})

	t.Run("unreadable content is an error", func(t *testing.T) {
		dir := testutil.IsolateConfig(t)
		path := filepath.Join(dir, "broken.env")
		require.NoError(t, os.WriteFile(path, []byte("OPENROUTER_API_KEY='unterminated\n"), 0600))
		assert.Error(t, LoadDotEnv(path))
	})
}

func TestOpenRouterConfig_Timeout(t *testing.T) {
	assert.Equal(t, 20*time.Second, OpenRouterConfig{TimeoutSeconds: 20}.Timeout())
}

func TestConfig_Redacted(t *testing.T) {
	tests := []struct {
		name   string
		apiKey string
		want   string
	}{
		{name: "long key keeps a prefix", apiKey: "sk-or-v1-0123456789", want: "sk-o********"},
		{name: "short key is fully masked", apiKey: "short", want: "********"},
		{name: "empty key stays empty", apiKey: "", want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultConfig(tt.apiKey)
			got := cfg.Redacted()
			assert.Equal(t, tt.want, got.OpenRouter.APIKey)
			assert.Equal(t, tt.apiKey, cfg.OpenRouter.APIKey)
		})
	}
}
