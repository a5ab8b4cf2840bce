package main

import (
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"github.com/wiless/alamouti/sweep"
)

// ReadAppConfig overlays the values of the "stbcsim" config file (json, yaml or toml) found in
// indir on setting. A missing file leaves setting untouched.
func ReadAppConfig(setting *sweep.Setting) error {
	viper.AddConfigPath(indir)
	viper.SetConfigName("stbcsim")

	// Set all the default values
	{
		viper.SetDefault("bits", setting.Bits)
		viper.SetDefault("start", setting.StartDb)
		viper.SetDefault("end", setting.EndDb)
		viper.SetDefault("step", setting.StepDb)
		viper.SetDefault("nrx", setting.NRx)
		viper.SetDefault("seed", setting.Seed)
		viper.SetDefault("workers", setting.Workers)
		viper.SetDefault("batch", setting.BatchSize)
	}

	err := viper.ReadInConfig()
	if err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			log.Debugf("ReadAppConfig: no stbcsim config in %s, using defaults", indir)
			return nil
		}
		return err
	}
	log.WithField("file", viper.ConfigFileUsed()).Info("ReadAppConfig: loaded")
	return setting.Decode(viper.AllSettings())
}
