package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/syncroom/server/internal/app"
)

type configVar[T any] struct {
	envKey       string
	flagKey      string
	defaultValue T
}

var (
	port = configVar[int]{
		envKey:       "SERVER_PORT",
		flagKey:      "port",
		defaultValue: 80,
	}
	host = configVar[string]{
		envKey:       "SERVER_HOST",
		flagKey:      "host",
		defaultValue: "0.0.0.0",
	}
	logLevel = configVar[string]{
		envKey:       "SERVER_LOG_LEVEL",
		flagKey:      "log-level",
		defaultValue: "INFO",
	}
	queueLimit = configVar[int]{
		envKey:       "SERVER_QUEUE_LIMIT",
		flagKey:      "queue-limit",
		defaultValue: 25,
	}
	chatMessageLimit = configVar[int]{
		envKey:       "SERVER_CHAT_MESSAGE_LIMIT",
		flagKey:      "chat-message-limit",
		defaultValue: 500,
	}
	syncInterval = configVar[int]{
		envKey:       "SERVER_SYNC_INTERVAL",
		flagKey:      "sync-interval",
		defaultValue: 2,
	}
	fallbackDuration = configVar[int]{
		envKey:       "SERVER_FALLBACK_DURATION",
		flagKey:      "fallback-duration",
		defaultValue: 240,
	}
	redisPort = configVar[int]{
		envKey:       "REDIS_PORT",
		flagKey:      "redis-port",
		defaultValue: 6379,
	}
	redisHost = configVar[string]{
		envKey:       "REDIS_HOST",
		flagKey:      "redis-host",
		defaultValue: "localhost",
	}
	redisPassword = configVar[string]{
		envKey:       "REDIS_PASSWORD",
		flagKey:      "redis-password",
		defaultValue: "",
	}
)

func loadAppConfig() *app.AppConfig {
	pflag.Int(port.flagKey, port.defaultValue, "Server port")
	pflag.String(host.flagKey, host.defaultValue, "Server host")
	pflag.String(logLevel.flagKey, logLevel.defaultValue, "Logging level")
	pflag.Int(queueLimit.flagKey, queueLimit.defaultValue, "Maximum number of videos in the queue")
	pflag.Int(chatMessageLimit.flagKey, chatMessageLimit.defaultValue, "Maximum chat message length")
	pflag.Int(syncInterval.flagKey, syncInterval.defaultValue, "Playback reconciliation interval in seconds")
	pflag.Int(fallbackDuration.flagKey, fallbackDuration.defaultValue, "Fallback duration in seconds for unknown-length media")
	pflag.Int(redisPort.flagKey, redisPort.defaultValue, "Redis port")
	pflag.String(redisHost.flagKey, redisHost.defaultValue, "Redis host")
	pflag.String(redisPassword.flagKey, redisPassword.defaultValue, "Redis password")
	pflag.Parse()

	viper.BindPFlags(pflag.CommandLine)

	viper.BindEnv(port.flagKey, port.envKey)
	viper.BindEnv(host.flagKey, host.envKey)
	viper.BindEnv(logLevel.flagKey, logLevel.envKey)
	viper.BindEnv(queueLimit.flagKey, queueLimit.envKey)
	viper.BindEnv(chatMessageLimit.flagKey, chatMessageLimit.envKey)
	viper.BindEnv(syncInterval.flagKey, syncInterval.envKey)
	viper.BindEnv(fallbackDuration.flagKey, fallbackDuration.envKey)
	viper.BindEnv(redisPort.flagKey, redisPort.envKey)
	viper.BindEnv(redisHost.flagKey, redisHost.envKey)
	viper.BindEnv(redisPassword.flagKey, redisPassword.envKey)

	viper.SetDefault(port.flagKey, port.defaultValue)
	viper.SetDefault(host.flagKey, host.defaultValue)
	viper.SetDefault(logLevel.flagKey, logLevel.defaultValue)
	viper.SetDefault(queueLimit.flagKey, queueLimit.defaultValue)
	viper.SetDefault(chatMessageLimit.flagKey, chatMessageLimit.defaultValue)
	viper.SetDefault(syncInterval.flagKey, syncInterval.defaultValue)
	viper.SetDefault(fallbackDuration.flagKey, fallbackDuration.defaultValue)
	viper.SetDefault(redisPort.flagKey, redisPort.defaultValue)
	viper.SetDefault(redisHost.flagKey, redisHost.defaultValue)
	viper.SetDefault(redisPassword.flagKey, redisPassword.defaultValue)

	config := &app.AppConfig{
		Host:             viper.GetString(host.flagKey),
		Port:             viper.GetInt(port.flagKey),
		LogLevel:         viper.GetString(logLevel.flagKey),
		QueueLimit:       viper.GetInt(queueLimit.flagKey),
		ChatMessageLimit: viper.GetInt(chatMessageLimit.flagKey),
		SyncIntervalSec:  viper.GetInt(syncInterval.flagKey),
		FallbackDurSec:   viper.GetInt(fallbackDuration.flagKey),
		RedisPort:        viper.GetInt(redisPort.flagKey),
		RedisHost:        viper.GetString(redisHost.flagKey),
		RedisPassword:    viper.GetString(redisPassword.flagKey),
	}

	return config
}

func main() {
	ctx := context.Background()

	appConfig := loadAppConfig()

	jsonConfig, _ := json.MarshalIndent(appConfig, "", "  ")
	fmt.Printf("starting app with config: %s\n", jsonConfig)

	log.Fatal(app.Run(ctx, appConfig))
}
