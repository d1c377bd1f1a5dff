package config

type ServerConfig struct {
	Port        int
	Environment string
	LogLevel    string
	BaseURL     string
	CORSOrigins []string
	BodyLimitMB int
}

func loadServerConfig() ServerConfig {
	return ServerConfig{
		Port:        getEnvInt("SERVER_PORT", 5000),
		Environment: getEnv("ENVIRONMENT", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		BaseURL:     getEnv("BASE_URL", "http://localhost:5000"),
		CORSOrigins: getEnvStringSlice("CORS_ORIGINS", []string{"*"}),
		BodyLimitMB: getEnvInt("BODY_LIMIT_MB", 10),
	}
}
