// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"net/url"
	"os"
	"strconv"

	"github.com/hybridfuel/hybridfuel/pkg/errors"
	sdk "github.com/hybridfuel/hybridfuel/pkg/sdk/go"
	"github.com/hybridfuel/hybridfuel/telemetry"
	"github.com/pelletier/go-toml"
	"github.com/spf13/cobra"
)

const (
	filePermission    = 0o644
	defaultConfigPath = "./config.toml"
)

var (
	errReadConfig  = errors.New("failed to read config file")
	errWriteConfig = errors.New("failed to write config file")
	errUnknownKey  = errors.New("unknown config key")
	errInvalidURL  = errors.New("service url must be an absolute http or https url")
	errInvalidInt  = errors.New("value must be a positive integer")

	// ConfigPath is where the CLI keeps its settings.
	ConfigPath = ""
)

type serviceSettings struct {
	URL             string `toml:"url"             json:"url"`
	TLSVerification bool   `toml:"tls_verification" json:"tls_verification"`
}

type readingsSettings struct {
	Limit int    `toml:"limit" json:"limit,omitempty"`
	Back  int    `toml:"back"  json:"back,omitempty"`
	Mode  string `toml:"mode"  json:"mode,omitempty"`
}

// settings is the on-disk layout of the CLI config file. Zero values mean
// "not set" and leave the flag defaults alone.
type settings struct {
	Service   serviceSettings  `toml:"service"    json:"service"`
	Readings  readingsSettings `toml:"readings"   json:"readings"`
	RawOutput bool             `toml:"raw_output" json:"raw_output"`
}

func configPath() string {
	if ConfigPath == "" {
		return defaultConfigPath
	}
	return ConfigPath
}

func loadSettings(path string) (settings, error) {
	var s settings
	buf, err := os.ReadFile(path)
	if err != nil {
		return s, errors.Wrap(errReadConfig, err)
	}
	if err := toml.Unmarshal(buf, &s); err != nil {
		return settings{}, errors.Wrap(errReadConfig, err)
	}
	return s, nil
}

func storeSettings(path string, s settings) error {
	buf, err := toml.Marshal(s)
	if err != nil {
		return errors.Wrap(errWriteConfig, err)
	}
	if err := os.WriteFile(path, buf, filePermission); err != nil {
		return errors.Wrap(errWriteConfig, err)
	}
	return nil
}

// ParseConfig applies the config file to conf and the query defaults. A
// missing file is created holding the service address from conf.
func ParseConfig(conf sdk.Config) (sdk.Config, error) {
	path := configPath()

	switch _, err := os.Stat(path); {
	case os.IsNotExist(err):
		var s settings
		s.Service.URL = conf.URL
		s.Service.TLSVerification = conf.TLSVerification
		if err := storeSettings(path, s); err != nil {
			return conf, err
		}
	case err != nil:
		return conf, errors.Wrap(errReadConfig, err)
	}

	s, err := loadSettings(path)
	if err != nil {
		return conf, err
	}

	if s.Service.URL != "" {
		conf.URL = s.Service.URL
	}
	conf.TLSVerification = s.Service.TLSVerification
	if s.Readings.Limit > 0 {
		Limit = s.Readings.Limit
	}
	if s.Readings.Back > 0 {
		Back = s.Readings.Back
	}
	if s.Readings.Mode != "" {
		Mode = s.Readings.Mode
	}
	if s.RawOutput {
		RawOutput = true
	}

	return conf, nil
}

// NewConfigCmd returns the command that shows or edits the config file.
func NewConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config [<key> <value>]",
		Short: "CLI local config",
		Long: "Show the local config, or store a value so it need not be passed as a flag.\n" +
			"Keys: service_url, tls_verification, limit, back, mode, raw_output",
		Run: func(cmd *cobra.Command, args []string) {
			switch len(args) {
			case 0:
				s, err := loadSettings(configPath())
				if err != nil {
					logErrorCmd(*cmd, err)
					return
				}
				logJSONCmd(*cmd, s)
			case 2:
				if err := setConfigValue(configPath(), args[0], args[1]); err != nil {
					logErrorCmd(*cmd, err)
					return
				}
				logOKCmd(*cmd)
			default:
				logUsageCmd(*cmd, cmd.Use)
			}
		},
	}
}

func setConfigValue(path, key, value string) error {
	s, err := loadSettings(path)
	if err != nil {
		return err
	}

	switch key {
	case "service_url":
		u, err := url.Parse(value)
		if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
			return errInvalidURL
		}
		s.Service.URL = value
	case "tls_verification":
		v, err := strconv.ParseBool(value)
		if err != nil {
			return err
		}
		s.Service.TLSVerification = v
	case "limit", "back":
		n, err := strconv.Atoi(value)
		if err != nil || n <= 0 {
			return errInvalidInt
		}
		if key == "limit" {
			s.Readings.Limit = n
		} else {
			s.Readings.Back = n
		}
	case "mode":
		m, err := telemetry.ParseImportMode(value)
		if err != nil {
			return err
		}
		s.Readings.Mode = string(m)
	case "raw_output":
		v, err := strconv.ParseBool(value)
		if err != nil {
			return err
		}
		s.RawOutput = v
	default:
		return errors.Wrap(errUnknownKey, errors.New(key))
	}

	return storeSettings(path, s)
}
