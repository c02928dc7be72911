package config

import (
	"log"

	"github.com/spf13/viper"
)

type Config struct {
	Database struct {
		Host     string `mapstructure:"host"`
		Port     string `mapstructure:"port"`
		User     string `mapstructure:"user"`
		Password string `mapstructure:"password"`
		Name     string `mapstructure:"name"`
	} `mapstructure:"database"`
	Redis struct {
		Host     string `mapstructure:"host"`
		Port     string `mapstructure:"port"`
		Password string `mapstructure:"password"`
	} `mapstructure:"redis"`
	Server struct {
		Port          string `mapstructure:"port"`
		AllowedOrigin string `mapstructure:"allowed_origin"`
	} `mapstructure:"server"`
	JWT struct {
		SecretKey       string `mapstructure:"secret_key"`
		AccessTTLHours  int    `mapstructure:"access_ttl_hours"`
		RefreshTTLHours int    `mapstructure:"refresh_ttl_hours"`
	} `mapstructure:"jwt"`
	Storage struct {
		UploadDir string `mapstructure:"upload_dir"`
	} `mapstructure:"storage"`
}

var AppConfig Config

func LoadConfig(path string) {
	viper.AddConfigPath(path)
	viper.SetConfigName("config")
	viper.SetConfigType("yml")

	viper.SetDefault("server.port", "8080")
	viper.SetDefault("server.allowed_origin", "*")
	viper.SetDefault("jwt.access_ttl_hours", 1)
	viper.SetDefault("jwt.refresh_ttl_hours", 168)
	viper.SetDefault("storage.upload_dir", "uploads")

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		log.Fatalf("Error reading config file, %s", err)
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Unable to decode into struct, %v", err)
	}
}
