package bootstrap

import "github.com/kbukum/ledger/config"

// Config is what NewApp needs from a service configuration. A struct that
// embeds config.ServiceConfig gets GetServiceConfig for free and supplies its
// own ApplyDefaults and Validate for the sections it adds:
//
//	type Config struct {
//	    config.ServiceConfig `mapstructure:",squash"`
//	    Auth auth.Config     `mapstructure:"auth"`
//	}
type Config interface {
	GetServiceConfig() *config.ServiceConfig
	ApplyDefaults()
	Validate() error
}
