package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/jinzhu/configor"
)

const (
	defaultIndexDocument = "index.html"
	defaultErrorDocument = "error.html"
	envPrefix            = "S3UPLOAD"
)

type AppConfig struct {
	Provider ProviderConfig `yaml:"provider" json:"provider"`
	Upload   SyncConfig     `yaml:"upload" json:"upload"`
	Notify   NotifyConfig   `yaml:"notify" json:"notify"`
}

type ProviderConfig struct {
	Region    string `yaml:"region" json:"region" default:"us-east-1"`
	Profile   string `yaml:"profile" json:"profile"`
	Endpoint  string `yaml:"endpoint" json:"endpoint"`
	PathStyle bool   `yaml:"pathStyle" json:"pathStyle"`
	Partition string `yaml:"partition" json:"partition" default:"aws"`
}

type NotifyConfig struct {
	Topic   string `yaml:"topic" json:"topic"`
	Region  string `yaml:"region" json:"region"`
	Profile string `yaml:"profile" json:"profile"`
}

// SyncConfig is one deployment: a bucket and the folders uploaded into it, in order.
type SyncConfig struct {
	Bucket    BucketSpec     `yaml:"bucket" json:"bucket"`
	Resources []ResourceSpec `yaml:"resources" json:"resources"`
}

type BucketSpec struct {
	Name    string         `yaml:"name" json:"name"`
	Website *WebsiteConfig `yaml:"website" json:"website"`
}

type WebsiteConfig struct {
	IndexDocument string `yaml:"index" json:"index"`
	ErrorDocument string `yaml:"error" json:"error"`
}

// withDefaults fills unset documents with index.html / error.html.
func (w WebsiteConfig) withDefaults() WebsiteConfig {
	if w.IndexDocument == "" {
		w.IndexDocument = defaultIndexDocument
	}
	if w.ErrorDocument == "" {
		w.ErrorDocument = defaultErrorDocument
	}
	return w
}

type ResourceSpec struct {
	Name            string `yaml:"name" json:"name"`
	SourceDir       string `yaml:"source" json:"source"`
	DestPrefix      string `yaml:"dest" json:"dest"`
	VersionFileName string `yaml:"versionFileName" json:"versionFileName"`
}

// LoadConfig reads one or more config files with configor. Later files override
// earlier ones, and S3UPLOAD_* environment variables override both.
func LoadConfig(files ...string) (AppConfig, error) {
	var appConfig AppConfig
	// configor only prints a warning for a missing file
	for _, file := range files {
		if _, statErr := os.Stat(file); statErr != nil {
			return appConfig, &ConfigurationError{Reason: fmt.Sprintf("config file %s: %s", file, statErr)}
		}
	}
	loader := configor.New(&configor.Config{ENVPrefix: envPrefix, Silent: true})
	if loadErr := loader.Load(&appConfig, files...); loadErr != nil {
		return appConfig, &ConfigurationError{Reason: fmt.Sprintf("loading %s: %s", strings.Join(files, ","), loadErr)}
	}
	if appConfig.Provider.Partition == "" {
		appConfig.Provider.Partition = "aws"
	}

	return appConfig, nil
}

// Validate checks that the sync config names a bucket and at least one complete resource.
func (sc SyncConfig) Validate() error {
	if strings.TrimSpace(sc.Bucket.Name) == "" {
		return &ConfigurationError{Field: "bucket.name", Reason: "bucket name is required"}
	}
	if len(sc.Resources) == 0 {
		return &ConfigurationError{Field: "resources", Reason: "at least one resource is required"}
	}
	for i, resource := range sc.Resources {
		field := fmt.Sprintf("resources[%d]", i)
		switch {
		case strings.TrimSpace(resource.Name) == "":
			return &ConfigurationError{Field: field + ".name", Reason: "resource name is required"}
		case strings.TrimSpace(resource.SourceDir) == "":
			return &ConfigurationError{Field: field + ".source", Reason: fmt.Sprintf("resource %s has no source folder", resource.Name)}
		case strings.TrimSpace(resource.DestPrefix) == "":
			return &ConfigurationError{Field: field + ".dest", Reason: fmt.Sprintf("resource %s has no destination prefix", resource.Name)}
		}
	}

	return nil
}

func (c AppConfig) ConfigStringArray() []string {
	configStrArr := make([]string, 0)
	configStrArr = append(configStrArr, fmt.Sprintf("  - Region: %s", c.Provider.Region))
	configStrArr = append(configStrArr, fmt.Sprintf("  - Profile: %s", c.Provider.Profile))
	if c.Provider.Endpoint != "" {
		configStrArr = append(configStrArr, fmt.Sprintf("  - Endpoint: %s", c.Provider.Endpoint))
	}
	if c.Notify.Topic != "" {
		configStrArr = append(configStrArr, fmt.Sprintf("  - SNSTopic: %s", c.Notify.Topic))
	}

	configStrArr = append(configStrArr, fmt.Sprintf("Bucket: %s", c.Upload.Bucket.Name))
	if c.Upload.Bucket.Website != nil {
		website := c.Upload.Bucket.Website.withDefaults()
		configStrArr = append(configStrArr, fmt.Sprintf("  - Website: index=%s error=%s", website.IndexDocument, website.ErrorDocument))
	}

	configStrArr = append(configStrArr, "Resources To Upload:")
	for _, resource := range c.Upload.Resources {
		configStrArr = append(configStrArr, fmt.Sprintf("%+v", resource))
	}

	return configStrArr
}
