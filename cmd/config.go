// Copyright 2025 The ChapaUY Authors
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config holds the settings shared by every command. Values come from, in
// decreasing precedence: flags, GEOCODER_* environment variables and the
// config file.
type Config struct {
	ServiceRoot string        `mapstructure:"service-root"`
	ClientID    string        `mapstructure:"client-id"`
	SigningKey  string        `mapstructure:"signing-key"`
	Sensor      bool          `mapstructure:"sensor"`
	Timeout     time.Duration `mapstructure:"timeout"`
	UserAgent   string        `mapstructure:"user-agent"`
	Trace       bool          `mapstructure:"trace"`
	TraceBody   bool          `mapstructure:"trace-body"`
	Verbose     bool          `mapstructure:"verbose"`
}

func bindFlags(v *viper.Viper, fs *pflag.FlagSet) {
	// flag definitions are static, binding cannot fail
	_ = v.BindPFlags(fs)

	v.SetEnvPrefix("GEOCODER")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
}

func loadConfig(v *viper.Viper) (*Config, error) {
	if file := v.GetString("config"); file != "" {
		v.SetConfigFile(file)

		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	} else {
		v.SetConfigName(".geocoder")
		v.SetConfigType("yaml")
		v.AddConfigPath("$HOME")
		v.AddConfigPath(".")

		if err := v.ReadInConfig(); err != nil {
			// defaults and flags are enough without a config file
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}
