// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package config

import (
	"encoding/json"
	"io/ioutil"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

// Mutate
func (c *config) Modify(newValues ...NodeConfigKeyValue) {
	for _, kv := range newValues {
		c.kv[kv.Key] = kv.Value
	}
}

func modifyFromJson(cfg mutableNodeConfig, source string) error {
	var data map[string]interface{}
	if err := json.Unmarshal([]byte(source), &data); err != nil {
		return err
	}

	return populateConfig(cfg, data)
}

func modifyFromYaml(cfg mutableNodeConfig, source string) error {
	var data map[string]interface{}
	if err := yaml.Unmarshal([]byte(source), &data); err != nil {
		return err
	}

	return populateConfig(cfg, data)
}

func convertKeyName(key string) string {
	return strings.ToUpper(strings.Replace(key, "-", "_", -1))
}

func populateConfig(cfg mutableNodeConfig, data map[string]interface{}) error {
	for key, value := range data {
		switch v := value.(type) {
		case bool:
			cfg.SetBool(convertKeyName(key), v)
		case float64:
			if v < 0 || v > math.MaxUint32 || v != math.Trunc(v) {
				return errors.Errorf("could not decode value for config key %s: %v is not a uint32", key, v)
			}
			cfg.SetUint32(convertKeyName(key), uint32(v))
		case int:
			if v < 0 || int64(v) > math.MaxUint32 {
				return errors.Errorf("could not decode value for config key %s: %d is not a uint32", key, v)
			}
			cfg.SetUint32(convertKeyName(key), uint32(v))
		case string:
			if duration, decodeError := time.ParseDuration(v); decodeError != nil {
				cfg.SetString(convertKeyName(key), v)
			} else {
				cfg.SetDuration(convertKeyName(key), duration)
			}
		default:
			return errors.Errorf("could not decode value for config key %s: unsupported type %T", key, value)
		}
	}

	return nil
}

type FilesPaths []string

// GetNodeConfigFromFiles starts from the production preset and applies each file in order,
// later files overriding earlier ones. Files ending with .yaml or .yml are read as YAML, all others as JSON.
func GetNodeConfigFromFiles(configFiles FilesPaths) (NodeConfig, error) {
	cfg := defaultProductionConfig()

	for _, configFile := range configFiles {
		if _, err := os.Stat(configFile); os.IsNotExist(err) {
			return nil, errors.Errorf("could not open config file: %s", err)
		}

		contents, err := ioutil.ReadFile(configFile)
		if err != nil {
			return nil, err
		}

		switch strings.ToLower(filepath.Ext(configFile)) {
		case ".yaml", ".yml":
			err = modifyFromYaml(cfg, string(contents))
		default:
			err = modifyFromJson(cfg, string(contents))
		}

		if err != nil {
			return nil, errors.Wrapf(err, "failed parsing config file %s", configFile)
		}
	}

	return cfg, nil
}
