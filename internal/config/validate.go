package config

import "errors"

func ValidateForRun(cfg *Config) error {
	if err := cfg.Redis.Validate(); err != nil {
		return err
	}
	if cfg.Database == nil || cfg.Database.SQLitePath == "" {
		return errors.New("SQLITE_PATH must not be empty")
	}
	if cfg.Holiday == nil || cfg.Holiday.CountryCode == "" {
		return errors.New("HOLIDAY_COUNTRY_CODE must not be empty")
	}
	return nil
}
