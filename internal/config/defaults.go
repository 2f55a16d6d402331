package config

func Defaults() *Config {
	return &Config{
		General: GeneralConfig{
			Currency: "$",
			LogLevel: "info",
		},
		Database: DatabaseConfig{
			Path: "~/.lifedash/lifedash.db",
		},
		Provider: ProviderConfig{
			APIBase:        "http://localhost:8080",
			TimeoutSeconds: 120,
		},
		Assistant: AssistantConfig{
			HistoryTurns:       2,
			ProposalMaxTokens:  2048,
			SummaryMaxTokens:   512,
			Temperature:        0.0,
			SummaryTemperature: 0.2,
		},
		Telegram: TelegramConfig{
			Enabled: false,
		},
	}
}
