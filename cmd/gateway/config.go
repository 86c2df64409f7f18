package main

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/velais/sprintgate/pkg/tenant"
)

// appConfig carries the gateway-level settings; component configs
// (httpserver, boards) are loaded separately by type.
type appConfig struct {
	Env             string        `env:"APP_ENV" envDefault:"development"`
	AppDomain       string        `env:"APP_DOMAIN,required"`
	JWKSURL         string        `env:"JWKS_URL,required"`
	CronSecret      string        `env:"CRON_SECRET"`
	CacheTTL        time.Duration `env:"CACHE_TTL" envDefault:"10m"`
	CacheMaxEntries int           `env:"CACHE_MAX_ENTRIES" envDefault:"500"`
	Tenants         tenantList    `env:"TENANTS,required"`
}

// tenantList parses the TENANTS environment variable: a JSON array of
// tenant entries, e.g.
//
//	[{"slug":"acme","org_id":"org_123","display_name":"Acme",
//	  "project":"Acme Project","team":"Acme Team"}]
type tenantList []tenant.Tenant

func (l *tenantList) UnmarshalText(b []byte) error {
	var entries []tenant.Tenant
	if err := json.Unmarshal(b, &entries); err != nil {
		return fmt.Errorf("TENANTS must be a JSON array of tenant entries: %w", err)
	}
	*l = entries
	return nil
}

// normalize lowercases the configured domain once so host matching can stay
// case-sensitive everywhere else.
func (c *appConfig) normalize() {
	c.AppDomain = strings.ToLower(c.AppDomain)
}
