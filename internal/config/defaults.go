package config

import "time"

const (
	defaultOutputDirectory    = "."
	defaultExtension          = ".md"
	defaultMaterialsDirectory = "md_materials"
	defaultCodeLanguage       = "go"
	defaultPreviewAddr        = "127.0.0.1:8088"
	defaultDebounce           = 300 * time.Millisecond
)

// Default returns a configuration with every default applied.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() {
	if c.Output.Directory == "" {
		c.Output.Directory = defaultOutputDirectory
	}
	if c.Output.Extension == "" {
		c.Output.Extension = defaultExtension
	}
	if c.Materials.Directory == "" {
		c.Materials.Directory = defaultMaterialsDirectory
	}
	if c.Code.Language == "" {
		c.Code.Language = defaultCodeLanguage
	}
	if c.Preview.Addr == "" {
		c.Preview.Addr = defaultPreviewAddr
	}
	if c.Watch.Debounce == 0 {
		c.Watch.Debounce = defaultDebounce
	}
}
