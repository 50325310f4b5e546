// Package creds loads exchange credentials from YAML files and the process
// environment, so API keys stay out of source code.
package creds

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"multex/pkg/core"
)

// Load reads a single credential set from a YAML file:
//
//	key: shadow
//	secret: cGFuZGE=
//	passphrase: pass123
func Load(path string) (*core.Credentials, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, core.NewConfigError("", fmt.Sprintf("read credentials file: %v", err))
	}

	var creds core.Credentials
	if err := yaml.Unmarshal(data, &creds); err != nil {
		return nil, core.NewConfigError("", fmt.Sprintf("parse credentials file %s: %v", path, err))
	}
	if err := creds.Validate(); err != nil {
		return nil, err
	}
	return &creds, nil
}

// LoadAll reads a multi-exchange credentials file keyed by exchange
// identifier:
//
//	kraken:
//	  key: shadow
//	  secret: cGFuZGE=
//	bitstamp:
//	  key: other
//	  secret: pair
//	  user_id: "1234"
func LoadAll(path string) (map[string]*core.Credentials, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, core.NewConfigError("", fmt.Sprintf("read credentials file: %v", err))
	}

	var all map[string]*core.Credentials
	if err := yaml.Unmarshal(data, &all); err != nil {
		return nil, core.NewConfigError("", fmt.Sprintf("parse credentials file %s: %v", path, err))
	}
	for exchange, creds := range all {
		if err := creds.Validate(); err != nil {
			if e, ok := err.(*core.Error); ok {
				e.Exchange = exchange
			}
			return nil, err
		}
	}
	return all, nil
}

// FromEnv assembles credentials from <PREFIX>_KEY, <PREFIX>_SECRET,
// <PREFIX>_USER_ID, <PREFIX>_PASSPHRASE and <PREFIX>_CLIENT_ID. A .env file
// in the working directory is loaded first when present.
//
// A variable that is set but empty is rejected: it almost always means a
// broken deployment rather than an intentionally public-only setup. Leaving
// the variable unset is fine.
func FromEnv(prefix string) (*core.Credentials, error) {
	// Missing .env is not an error; the variables may come from the real
	// environment.
	_ = godotenv.Load()

	creds := &core.Credentials{}
	for _, f := range []struct {
		suffix string
		target *string
	}{
		{"KEY", &creds.Key},
		{"SECRET", &creds.Secret},
	} {
		name := prefix + "_" + f.suffix
		value, set := os.LookupEnv(name)
		if set && value == "" {
			return nil, core.NewConfigError("", name+" is set but empty; unset it instead")
		}
		*f.target = value
	}

	for _, f := range []struct {
		suffix string
		target **string
	}{
		{"USER_ID", &creds.UserID},
		{"PASSPHRASE", &creds.Passphrase},
		{"CLIENT_ID", &creds.ClientID},
	} {
		name := prefix + "_" + f.suffix
		if value, set := os.LookupEnv(name); set {
			if value == "" {
				return nil, core.NewConfigError("", name+" is set but empty; unset it instead")
			}
			v := value
			*f.target = &v
		}
	}

	return creds, nil
}
