// Copyright (c) 2024-present CBT Digital, Inc. All Rights Reserved.
// See License.txt for license information.

package server

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/pkg/errors"
)

// Route maps a submission tag to its target repository and project board.
// The table is built once at startup and never mutated.
type Route struct {
	Tag       string
	Repo      string
	ProjectID string
}

type Config struct {
	ListenAddress     string
	MetricsServerPort string

	Org               string
	GithubTokenSecret string
	SNSTopicARN       string

	Routes []*Route

	AWSCredentials struct {
		Id     string
		Secret string
		Token  string
	}
	AWSRegion string

	LogSettings struct {
		EnableConsole bool
		ConsoleJson   bool
		ConsoleLevel  string
		EnableFile    bool
		FileJson      bool
		FileLevel     string
		FileLocation  string
	}
}

func findConfigFile(fileName string) string {
	if _, err := os.Stat("./config/" + fileName); err == nil {
		fileName, _ = filepath.Abs("./config/" + fileName)
	} else if _, err := os.Stat("../config/" + fileName); err == nil {
		fileName, _ = filepath.Abs("../config/" + fileName)
	} else if _, err := os.Stat(fileName); err == nil {
		fileName, _ = filepath.Abs(fileName)
	}

	return fileName
}

func GetConfig(fileName string) (*Config, error) {
	fileName = findConfigFile(fileName)

	file, err := os.Open(fileName)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to open config file %s", fileName)
	}
	defer file.Close()

	config := &Config{}
	if err := json.NewDecoder(file).Decode(config); err != nil {
		return nil, errors.Wrapf(err, "unable to decode config file %s", fileName)
	}

	if err := config.IsValid(); err != nil {
		return nil, err
	}

	return config, nil
}

func (config *Config) IsValid() error {
	if config.ListenAddress == "" {
		return errors.New("ListenAddress is not set")
	}
	if config.Org == "" {
		return errors.New("Org is not set")
	}
	if config.GithubTokenSecret == "" {
		return errors.New("GithubTokenSecret is not set")
	}
	if config.SNSTopicARN == "" {
		return errors.New("SNSTopicARN is not set")
	}
	if len(config.Routes) == 0 {
		return errors.New("no routes are configured")
	}
	for _, route := range config.Routes {
		if route.Tag == "" || route.Repo == "" || route.ProjectID == "" {
			return errors.Errorf("route %q is missing a tag, repo or project id", route.Tag)
		}
	}

	return nil
}

// GetRoute looks up the routing target for an already normalized tag. The
// target triple is opaque configuration: its existence on the tracker side is
// not verified here.
func (config *Config) GetRoute(tag string) (*Route, bool) {
	for _, route := range config.Routes {
		if route.Tag == tag {
			return route, true
		}
	}

	return nil, false
}

func (config *Config) GetAwsConfig() *aws.Config {
	var creds *credentials.Credentials
	if config.AWSCredentials.Id != "" {
		creds = credentials.NewStaticCredentials(
			config.AWSCredentials.Id,
			config.AWSCredentials.Secret,
			config.AWSCredentials.Token,
		)
	}

	return &aws.Config{
		Credentials: creds,
		Region:      aws.String(config.AWSRegion),
	}
}
