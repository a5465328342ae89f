package config

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
)

type Config struct {
	Database DatabaseConfig
	RabbitMQ RabbitMQConfig
	Redis    RedisConfig
	HTTP     HTTPConfig
	Admin    AdminConfig
	Payment  PaymentConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
}

type RabbitMQConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	VHost    string
}

type RedisConfig struct {
	Host string
	Port int
}

type HTTPConfig struct {
	StorefrontPort int
	AdminPort      int
}

type AdminConfig struct {
	Username      string
	Password      string
	TokenTTLHours int
}

type PaymentConfig struct {
	MerchantVPA  string
	MerchantName string
}

// Load reads the simple two-level YAML config format used across the
// project (sections with flat key: value pairs, no nesting beyond that).
func Load(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open config file: %w", err)
	}
	defer file.Close()

	cfg := &Config{}
	cfg.Database.Port = 5432
	cfg.RabbitMQ.Port = 5672
	cfg.RabbitMQ.VHost = "/"
	cfg.Redis.Port = 6379
	cfg.HTTP.StorefrontPort = 3000
	cfg.HTTP.AdminPort = 3001
	cfg.Admin.TokenTTLHours = 24
	cfg.Payment.MerchantName = "ChickKart"

	scanner := bufio.NewScanner(file)
	var section string
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if strings.HasSuffix(line, ":") && !strings.Contains(line, " ") {
			section = strings.TrimSuffix(line, ":")
			continue
		}
		parts := strings.SplitN(line, ":", 2)
		if len(parts) != 2 {
			continue
		}
		key := strings.TrimSpace(parts[0])
		value := strings.Trim(strings.TrimSpace(parts[1]), `"'`)

		switch section {
		case "database":
			switch key {
			case "host":
				cfg.Database.Host = value
			case "port":
				cfg.Database.Port = atoi(value, 5432)
			case "user":
				cfg.Database.User = value
			case "password":
				cfg.Database.Password = value
			case "database":
				cfg.Database.Database = value
			}
		case "rabbitmq":
			switch key {
			case "host":
				cfg.RabbitMQ.Host = value
			case "port":
				cfg.RabbitMQ.Port = atoi(value, 5672)
			case "user":
				cfg.RabbitMQ.User = value
			case "password":
				cfg.RabbitMQ.Password = value
			case "vhost":
				if value != "" {
					cfg.RabbitMQ.VHost = value
				}
			}
		case "redis":
			switch key {
			case "host":
				cfg.Redis.Host = value
			case "port":
				cfg.Redis.Port = atoi(value, 6379)
			}
		case "http":
			switch key {
			case "storefront_port":
				cfg.HTTP.StorefrontPort = atoi(value, 3000)
			case "admin_port":
				cfg.HTTP.AdminPort = atoi(value, 3001)
			}
		case "admin":
			switch key {
			case "username":
				cfg.Admin.Username = value
			case "password":
				cfg.Admin.Password = value
			case "token_ttl_hours":
				cfg.Admin.TokenTTLHours = atoi(value, 24)
			}
		case "payment":
			switch key {
			case "merchant_vpa":
				cfg.Payment.MerchantVPA = value
			case "merchant_name":
				if value != "" {
					cfg.Payment.MerchantName = value
				}
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading config: %w", err)
	}

	if cfg.Database.Host == "" || cfg.Database.User == "" || cfg.Database.Database == "" {
		return nil, fmt.Errorf("database config incomplete")
	}
	if cfg.RabbitMQ.Host == "" || cfg.RabbitMQ.User == "" {
		return nil, fmt.Errorf("rabbitmq config incomplete")
	}
	if cfg.Redis.Host == "" {
		return nil, fmt.Errorf("redis config incomplete")
	}
	return cfg, nil
}

func atoi(s string, def int) int {
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}
