package app

import (
	"strings"
	"time"

	"github.com/fundrazor/fundrazor-backend/internal/pkg/logger"
	"github.com/fundrazor/fundrazor-backend/internal/types"
	"github.com/fundrazor/fundrazor-backend/internal/utils"
)

type Config struct {
	ServiceName      string
	Environment      string
	Version          string
	JWTSecretKey     string
	AccessTokenTTL   time.Duration
	DefaultOwnerRole string
	DashboardTTL     time.Duration
	AllowOrigins     []string
	Port             string
}

func LoadConfig(log *logger.Logger) Config {
	serviceName := utils.GetEnv("SERVICE_NAME", "fundrazor-backend", log)
	environment := utils.GetEnv("APP_ENV", "development", log)
	version := utils.GetEnv("APP_VERSION", "", log)
	jwtSecretKey := utils.GetEnv("JWT_SECRET_KEY", "defaultsecret", log)
	accessTokenTTLSeconds := utils.GetEnvAsInt("ACCESS_TOKEN_TTL", 3600, log)
	defaultOwnerRole := utils.GetEnv("DEFAULT_OWNER_ROLE", types.RoleMGO, log)
	dashboardTTLSeconds := utils.GetEnvAsInt("DASHBOARD_CACHE_TTL", 60, log)
	allowOrigins := utils.GetEnv("CORS_ALLOW_ORIGINS", "", log)
	port := utils.GetEnv("PORT", "8080", log)

	var origins []string
	for _, origin := range strings.Split(allowOrigins, ",") {
		if o := strings.TrimSpace(origin); o != "" {
			origins = append(origins, o)
		}
	}

	return Config{
		ServiceName:      serviceName,
		Environment:      environment,
		Version:          version,
		JWTSecretKey:     jwtSecretKey,
		AccessTokenTTL:   time.Duration(accessTokenTTLSeconds) * time.Second,
		DefaultOwnerRole: defaultOwnerRole,
		DashboardTTL:     time.Duration(dashboardTTLSeconds) * time.Second,
		AllowOrigins:     origins,
		Port:             port,
	}
}
