package config

import "time"

// Config holds pdfzip configuration.
// Stored at: ~/.pdfzip/config.yaml
type Config struct {
	Search   SearchCfg   `mapstructure:"search" yaml:"search"`
	Renderer RendererCfg `mapstructure:"renderer" yaml:"renderer"`
	Convert  ConvertCfg  `mapstructure:"convert" yaml:"convert"`
	Defaults DefaultsCfg `mapstructure:"defaults" yaml:"defaults"`
}

// SearchCfg tunes the target-size DPI search.
type SearchCfg struct {
	// Tolerance is the acceptable relative deviation from the target size.
	Tolerance float64 `mapstructure:"tolerance" yaml:"tolerance"`
	// MaxIterations caps the number of bisection trials.
	MaxIterations int `mapstructure:"max_iterations" yaml:"max_iterations"`
	// MinDPI and MaxDPI bound the search domain.
	MinDPI float64 `mapstructure:"min_dpi" yaml:"min_dpi"`
	MaxDPI float64 `mapstructure:"max_dpi" yaml:"max_dpi"`
	// TrialTimeout bounds one render+build trial. Zero disables the deadline.
	TrialTimeout time.Duration `mapstructure:"trial_timeout" yaml:"trial_timeout"`
}

// RendererCfg selects and tunes the page rasterizer.
type RendererCfg struct {
	// Backend is "fitz" (in-process MuPDF) or "poppler" (pdftoppm).
	Backend string `mapstructure:"backend" yaml:"backend"`
}

// ConvertCfg tunes the PPTX to PDF conversion chain.
type ConvertCfg struct {
	// ToolTimeout bounds each external converter invocation.
	ToolTimeout time.Duration `mapstructure:"tool_timeout" yaml:"tool_timeout"`
	// SofficePath overrides the LibreOffice binary (default: found on PATH).
	SofficePath string `mapstructure:"soffice_path" yaml:"soffice_path"`
	// UnoconvPath overrides the unoconv binary (default: found on PATH).
	UnoconvPath string `mapstructure:"unoconv_path" yaml:"unoconv_path"`
	// DisableAutomation skips the native OS automation strategy.
	DisableAutomation bool `mapstructure:"disable_automation" yaml:"disable_automation"`
}

// DefaultsCfg specifies default operation parameters.
type DefaultsCfg struct {
	// DPI used by manual compression and PDF-to-deck conversion.
	DPI int `mapstructure:"dpi" yaml:"dpi"`
	// TargetSizeMB used by auto-compression when no target is given.
	TargetSizeMB float64 `mapstructure:"target_size_mb" yaml:"target_size_mb"`
}

// DefaultConfig returns configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Search: SearchCfg{
			Tolerance:     0.05,
			MaxIterations: 7,
			MinDPI:        30,
			MaxDPI:        300,
			TrialTimeout:  5 * time.Minute,
		},
		Renderer: RendererCfg{
			Backend: "fitz",
		},
		Convert: ConvertCfg{
			ToolTimeout: 60 * time.Second,
		},
		Defaults: DefaultsCfg{
			DPI:          150,
			TargetSizeMB: 5.0,
		},
	}
}
