package config

import "time"

// AuthConfig controls the bearer-token placeholder in front of /api/v1
type AuthConfig struct {
	Enabled bool
	JWT     JWTConfig
}

type JWTConfig struct {
	SecretKey      string
	AccessTokenTTL time.Duration
	Issuer         string
	Audience       []string
}

func loadAuthConfig() AuthConfig {
	return AuthConfig{
		Enabled: getEnvBool("AUTH_ENABLED", false),
		JWT: JWTConfig{
			SecretKey:      getEnv("JWT_SECRET_KEY", ""),
			AccessTokenTTL: getEnvDuration("JWT_ACCESS_TOKEN_TTL", 15*time.Minute),
			Issuer:         getEnv("JWT_ISSUER", "agent-mem"),
			Audience:       getEnvStringSlice("JWT_AUDIENCE", []string{"agent-mem-api"}),
		},
	}
}
