package main

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/viper"
)

type LogConf struct {
	Level  string `mapstructure:"level" validate:"omitempty,oneof=trace debug info warn error fatal panic disabled"`
	Format string `mapstructure:"format" validate:"omitempty,oneof=console json"`
}

type SiteConf struct {
	// Absolute site URL without trailing slash; entry URIs are appended to it.
	SiteRoot        string `mapstructure:"siteRoot" validate:"required,url"`
	SiteTitle       string `mapstructure:"siteTitle" validate:"required"`
	Author          string `mapstructure:"author" validate:"required"`
	HomeTitle       string `mapstructure:"homeTitle"`
	HomeDescription string `mapstructure:"homeDescription"`
	// Defaults to Author when empty.
	FeedSubtitle string `mapstructure:"feedSubtitle"`

	Catalog        string `mapstructure:"catalog" validate:"required"`
	HtdocsDir      string `mapstructure:"htdocs" validate:"required"`
	TemplateDir    string `mapstructure:"templateDir"`
	StaticFilesDir string `mapstructure:"staticFilesDir"`
	Markup         string `mapstructure:"markup" validate:"oneof=blackfriday goldmark"`

	HomeLatest   int `mapstructure:"homeLatest" validate:"min=0"`
	HomeFeatured int `mapstructure:"homeFeatured" validate:"min=0"`
	FeedEntries  int `mapstructure:"feedEntries" validate:"min=1"`
	MaxNearby    int `mapstructure:"maxNearby" validate:"min=0"`

	// Private runs render entries only: no archives, home page or feed.
	Private bool `mapstructure:"private"`

	Log LogConf `mapstructure:"log"`
}

const (
	defaultAuthor   = "Olivier Thereaux"
	defaultConfName = "otcms"
	envPrefix       = "OTCMS"
)

var catalogExts = []string{".yaml", ".yml", ".json"}

func setDefaults(v *viper.Viper) {
	v.SetDefault("siteRoot", "https://olivier.thereaux.net")
	v.SetDefault("siteTitle", "2 Neurones and 1 Camera")
	v.SetDefault("author", defaultAuthor)
	v.SetDefault("homeTitle", "2 Neurones &amp; 1 Camera - by @olivierthereaux")
	v.SetDefault("feedSubtitle", "")
	v.SetDefault("homeDescription", "Travelogue, street photography, a bit of poetry, and the simple pleasure of telling stories. Around the world, from Europe to Japan, from Paris to London via Tokyo and Montreal")
	v.SetDefault("catalog", "")
	v.SetDefault("htdocs", "")
	v.SetDefault("templateDir", "")
	v.SetDefault("staticFilesDir", "")
	v.SetDefault("private", false)
	v.SetDefault("markup", markupBlackfriday)
	v.SetDefault("homeLatest", 4)
	v.SetDefault("homeFeatured", 4)
	v.SetDefault("feedEntries", 20)
	v.SetDefault("maxNearby", 5)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", logFormatConsole)
}

// confOverrides are command line values. They win over the config file and
// are relative to the working directory.
type confOverrides struct {
	catalog string
	htdocs  string
	private bool
}

// readConf loads the configuration from defaults, the config file (confFile,
// or otcms.yaml in cwd when it exists) and OTCMS_* environment variables,
// then applies the command line overrides. Without a catalog setting, the
// catalog is searched for from cwd upwards; htdocs defaults to the catalog's
// directory.
func readConf(fs afero.Fs, cwd, confFile string, o confOverrides) (*SiteConf, error) {
	v := viper.New()
	v.SetFs(fs)
	setDefaults(v)

	if confFile != "" {
		v.SetConfigFile(normalizePath(confFile, cwd))
	} else {
		v.SetConfigName(defaultConfName)
		v.SetConfigType("yaml")
		v.AddConfigPath(cwd)
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	baseDir := cwd
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if confFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	} else {
		baseDir = filepath.Dir(v.ConfigFileUsed())
	}

	conf := SiteConf{}
	if err := v.Unmarshal(&conf); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}

	if o.private {
		conf.Private = true
	}

	// Normalize relative paths because the executable can be called from anywhere
	switch {
	case o.catalog != "":
		conf.Catalog = normalizePath(o.catalog, cwd)
	case conf.Catalog != "":
		conf.Catalog = normalizePath(conf.Catalog, baseDir)
	default:
		found, err := discoverCatalog(fs, cwd, conf.Private)
		if err != nil {
			return nil, err
		}
		conf.Catalog = found
	}

	switch {
	case o.htdocs != "":
		conf.HtdocsDir = normalizePath(o.htdocs, cwd)
	case conf.HtdocsDir != "":
		conf.HtdocsDir = normalizePath(conf.HtdocsDir, baseDir)
	default:
		conf.HtdocsDir = filepath.Dir(conf.Catalog)
	}

	if conf.TemplateDir != "" {
		conf.TemplateDir = normalizePath(conf.TemplateDir, baseDir)
	}
	if conf.StaticFilesDir != "" {
		conf.StaticFilesDir = normalizePath(conf.StaticFilesDir, baseDir)
	}

	if err := validateStruct(conf); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	if ok, _ := afero.Exists(fs, conf.Catalog); !ok {
		return nil, fmt.Errorf("could not find catalog file %v", conf.Catalog)
	}
	if ok, _ := afero.DirExists(fs, conf.HtdocsDir); !ok {
		return nil, fmt.Errorf("%w: htdocs root %v", ErrMissingDir, conf.HtdocsDir)
	}

	return &conf, nil
}

// discoverCatalog looks for catalog.yaml (private.yaml for private runs, or
// the .yml/.json variants) in dir and then in each parent directory.
func discoverCatalog(fs afero.Fs, dir string, private bool) (string, error) {
	base := "catalog"
	if private {
		base = "private"
	}

	for current := dir; ; {
		for _, ext := range catalogExts {
			candidate := filepath.Join(current, base+ext)
			if ok, _ := afero.Exists(fs, candidate); ok {
				return candidate, nil
			}
		}
		parent := filepath.Dir(current)
		if parent == current {
			return "", fmt.Errorf("could not find default catalog file %v in %v or its parents", base+catalogExts[0], dir)
		}
		current = parent
	}
}

func normalizePath(path, baseDir string) string {
	if !filepath.IsAbs(path) {
		return filepath.Join(baseDir, path)
	}
	return path
}
