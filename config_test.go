package marquee

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Addr != ":8080" {
		t.Errorf("Addr = %q, want :8080", cfg.Addr)
	}
	if cfg.Static.Prefix != "/" {
		t.Errorf("Static.Prefix = %q, want /", cfg.Static.Prefix)
	}
	if cfg.Metrics.Path != "/metrics" {
		t.Errorf("Metrics.Path = %q, want /metrics", cfg.Metrics.Path)
	}
	if cfg.ShutdownTimeout != 30*time.Second {
		t.Errorf("ShutdownTimeout = %v, want 30s", cfg.ShutdownTimeout)
	}
	if cfg.DevMode {
		t.Error("DevMode should default to false")
	}
}

func TestFillDefaults(t *testing.T) {
	var cfg Config
	fillDefaults(&cfg)

	if cfg.Addr != ":8080" {
		t.Errorf("Addr = %q", cfg.Addr)
	}
	if cfg.Logger == nil {
		t.Error("Logger not defaulted")
	}
	if len(cfg.Security.CSRFSecret) == 0 {
		t.Error("CSRF secret should be minted outside dev mode")
	}
}

func TestFillDefaultsDevModeSkipsSecret(t *testing.T) {
	cfg := Config{DevMode: true}
	fillDefaults(&cfg)
	if len(cfg.Security.CSRFSecret) != 0 {
		t.Error("dev mode should leave the CSRF secret empty")
	}
}

func TestFillDefaultsKeepsExplicitValues(t *testing.T) {
	cfg := Config{
		Addr:            ":3000",
		Static:          StaticConfig{Prefix: "/assets/"},
		Security:        SecurityConfig{CSRFSecret: []byte("fixed")},
		ShutdownTimeout: time.Second,
	}
	fillDefaults(&cfg)

	if cfg.Addr != ":3000" {
		t.Errorf("Addr = %q", cfg.Addr)
	}
	if cfg.Static.Prefix != "/assets/" {
		t.Errorf("Static.Prefix = %q", cfg.Static.Prefix)
	}
	if string(cfg.Security.CSRFSecret) != "fixed" {
		t.Error("explicit CSRF secret replaced")
	}
	if cfg.ShutdownTimeout != time.Second {
		t.Errorf("ShutdownTimeout = %v", cfg.ShutdownTimeout)
	}
}

func TestBuildServerConfig(t *testing.T) {
	cfg := Config{
		Addr: ":9090",
		Session: SessionConfig{
			ReadTimeout:       5 * time.Second,
			IdleTimeout:       time.Minute,
			HeartbeatInterval: 2 * time.Second,
			MaxSessions:       7,
		},
		Security: SecurityConfig{
			CSRFSecret:     []byte("secret"),
			TrustedProxies: []string{"10.0.0.0/8"},
		},
	}
	fillDefaults(&cfg)
	serverCfg := buildServerConfig(cfg)

	if serverCfg.Address != ":9090" {
		t.Errorf("Address = %q", serverCfg.Address)
	}
	if serverCfg.MaxSessions != 7 {
		t.Errorf("MaxSessions = %d", serverCfg.MaxSessions)
	}
	if serverCfg.Session.ReadTimeout != 5*time.Second {
		t.Errorf("ReadTimeout = %v", serverCfg.Session.ReadTimeout)
	}
	if serverCfg.Session.IdleTimeout != time.Minute {
		t.Errorf("IdleTimeout = %v", serverCfg.Session.IdleTimeout)
	}
	if serverCfg.Session.HeartbeatInterval != 2*time.Second {
		t.Errorf("HeartbeatInterval = %v", serverCfg.Session.HeartbeatInterval)
	}
	// Zero timeouts keep the server defaults.
	if serverCfg.Session.WriteTimeout != 10*time.Second {
		t.Errorf("WriteTimeout = %v, want server default", serverCfg.Session.WriteTimeout)
	}
	if string(serverCfg.CSRFSecret) != "secret" {
		t.Error("CSRF secret not carried over")
	}
	if len(serverCfg.TrustedProxies) != 1 || serverCfg.TrustedProxies[0] != "10.0.0.0/8" {
		t.Errorf("TrustedProxies = %v", serverCfg.TrustedProxies)
	}
}

func TestBuildServerConfigOrigins(t *testing.T) {
	request := func(origin, host string) *http.Request {
		r := httptest.NewRequest(http.MethodGet, "http://"+host+"/", nil)
		if origin != "" {
			r.Header.Set("Origin", origin)
		}
		return r
	}

	tests := []struct {
		name   string
		cfg    Config
		origin string
		host   string
		want   bool
	}{
		{"same origin by default", Config{}, "http://example.com", "example.com", true},
		{"cross origin by default", Config{}, "http://evil.test", "example.com", false},
		{"no origin header", Config{}, "", "example.com", true},
		{
			"allowed origin",
			Config{Security: SecurityConfig{AllowedOrigins: []string{"https://app.example.com"}}},
			"https://app.example.com", "api.example.com", true,
		},
		{
			"unlisted origin",
			Config{Security: SecurityConfig{AllowedOrigins: []string{"https://app.example.com"}}},
			"https://evil.test", "api.example.com", false,
		},
		{
			"same origin still allowed with list",
			Config{Security: SecurityConfig{AllowedOrigins: []string{"https://app.example.com"}}},
			"http://api.example.com", "api.example.com", true,
		},
		{"dev mode allows anything", Config{DevMode: true}, "http://evil.test", "example.com", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := tt.cfg
			fillDefaults(&cfg)
			check := buildServerConfig(cfg).CheckOrigin
			if got := check(request(tt.origin, tt.host)); got != tt.want {
				t.Errorf("CheckOrigin = %v, want %v", got, tt.want)
			}
		})
	}
}
