package config

import (
	"fmt"

	"github.com/spf13/viper"
)

const (
	envSpreadsheetID  = "SPREADSHEET_ID"
	envServiceAccount = "GOOGLE_SERVICE_ACCOUNT_JSON"
)

// Secrets holds credentials read from the environment, never from the
// YAML config file.
type Secrets struct {
	SpreadsheetID      string
	ServiceAccountJSON string
}

// LoadSecrets reads credentials from a .env file (if present) and the
// process environment. Values are not validated here; required fields
// depend on the storage driver, see Secrets.ValidateFor.
func LoadSecrets() *Secrets {
	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()

	// The .env file is optional; environment variables alone are fine.
	_ = v.ReadInConfig()
	_ = v.BindEnv(envSpreadsheetID)
	_ = v.BindEnv(envServiceAccount)

	return &Secrets{
		SpreadsheetID:      v.GetString(envSpreadsheetID),
		ServiceAccountJSON: v.GetString(envServiceAccount),
	}
}

// ValidateFor checks that the secrets required by the given storage
// driver are present. Called before any network activity.
func (s *Secrets) ValidateFor(driver string) error {
	if driver != DriverSheets {
		return nil
	}
	if s.SpreadsheetID == "" {
		return fmt.Errorf("%s environment variable is required", envSpreadsheetID)
	}
	if s.ServiceAccountJSON == "" {
		return fmt.Errorf("%s environment variable is required", envServiceAccount)
	}
	return nil
}
