package dsmgr

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/kaleido-io/docstore/pkg/docstore"
	"github.com/kaleido-io/docstore/pkg/events"
	homedir "github.com/mitchellh/go-homedir"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Env variables are DOCSTORE_ + the upper-cased key, with '.' -> '_'
const envPrefix = "docstore"

var envKeyReplacer = strings.NewReplacer(".", "_")

type Manager struct {
	Config docstore.Config
	Client *docstore.Client
	Logger docstore.Logger
	Cfg    *viper.Viper
}

// NewManager loads configuration and builds the shared client. Recognized
// options:
//   "config-file": path to a config file, overriding the search path
//   "logger": a docstore.Logger to use instead of a fresh logrus logger
func NewManager(userCfg map[string]interface{}) (*Manager, error) {
	var err error
	mgr := &Manager{}

	if cfgPathRaw, ok := userCfg["config-file"]; ok {
		if cfgPath, ok := cfgPathRaw.(string); ok {
			err = mgr.initConfig(&cfgPath)
		} else {
			return nil, errors.New("option 'config-file' must be of type string")
		}
	} else {
		err = mgr.initConfig(nil)
	}
	if err != nil {
		return nil, err
	}

	if loggerRaw, ok := userCfg["logger"]; ok {
		if logger, ok := loggerRaw.(docstore.Logger); ok {
			mgr.Logger = logger
		} else {
			return nil, errors.New("option 'logger' must satisfy docstore.Logger")
		}
	} else {
		mgr.Logger = logrus.New()
	}

	mgr.Config = docstore.Config{
		DocumentsEndpoint: mgr.Cfg.GetString("api.documents"),
		TransfersEndpoint: mgr.Cfg.GetString("api.transfers"),
		SocketEndpoint:    mgr.Cfg.GetString("api.socket"),
		User:              mgr.Cfg.GetString("credentials.user"),
		Password:          mgr.Cfg.GetString("credentials.password"),
		FromDestination:   mgr.Cfg.GetString("transfer.from"),
		ToDestination:     mgr.Cfg.GetString("transfer.to"),
	}

	mgr.Client = docstore.NewClient(
		mgr.Config,
		mgr.Logger.WithField("module", "client"),
		mgr.Cfg.GetDuration("timeout"))

	return mgr, nil
}

// Require checks that the named config keys are set. Samples call this with
// just the settings they use.
func (self *Manager) Require(keys ...string) error {
	for _, key := range keys {
		if self.Cfg.GetString(key) == "" {
			return errors.Errorf("missing configuration value %q", key)
		}
	}
	return nil
}

// Subscriber returns an event subscriber for the configured socket endpoint.
func (self *Manager) Subscriber() *events.Subscriber {
	return events.NewSubscriber(
		self.Config.SocketEndpoint,
		self.Config.User,
		self.Config.Password,
		self.Logger.WithField("module", "events"))
}

func (self *Manager) initConfig(cfgPath *string) error {
	// This is a private viper context (so as not to conflict with any
	// importer's usage).
	self.Cfg = viper.New()

	// No timeout unless asked for: a hung request blocks like any other
	self.Cfg.SetDefault("timeout", time.Duration(0))

	self.Cfg.SetEnvPrefix(envPrefix)
	for _, key := range []string{
		"api.documents",
		"api.transfers",
		"api.socket",
		"credentials.user",
		"credentials.password",
		"transfer.from",
		"transfer.to",
	} {
		if err := self.Cfg.BindEnv(key); err != nil {
			return errors.Wrap(err, "Failed to bind environment for "+key)
		}
	}
	self.Cfg.SetEnvKeyReplacer(envKeyReplacer)

	if cfgPath != nil {
		// Use config file from the flag. It must exist.
		self.Cfg.SetConfigFile(*cfgPath)
		if err := self.Cfg.ReadInConfig(); err != nil {
			return errors.Wrap(err, "Failed to load config")
		}
		return nil
	}

	// default search path for config is ./configs/docstore.* then
	// ~/.docstore/docstore.* (* can be json, yaml, etc)
	self.Cfg.AddConfigPath("./configs")
	if home, err := homedir.Dir(); err == nil {
		self.Cfg.AddConfigPath(filepath.Join(home, ".docstore"))
	}
	self.Cfg.SetConfigName("docstore")

	// Settings may come entirely from the environment
	if err := self.Cfg.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return errors.Wrap(err, "Failed to load config")
		}
	}
	return nil
}
