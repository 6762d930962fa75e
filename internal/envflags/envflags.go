// Package envflags lets environment variables (optionally loaded from a .env file) provide
// default values for command-line flags.
//
// The flag "num_matches" is set from the variable MAZEGO_NUM_MATCHES, and so on: the prefix is
// Prefix, and the flag name is upper-cased. Values given in the command line take precedence.
package envflags

import (
	"flag"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"
	"os"
	"strings"
)

// Prefix of the environment variables used as flag defaults.
const Prefix = "MAZEGO_"

// EnvName returns the name of the environment variable associated with the flag name.
func EnvName(flagName string) string {
	return Prefix + strings.ToUpper(strings.ReplaceAll(flagName, "-", "_"))
}

// LoadDotEnv loads the given .env files (or ".env" if none is given) into the environment.
// Variables already set are not overwritten. Missing files are not an error.
func LoadDotEnv(fileNames ...string) error {
	if len(fileNames) == 0 {
		fileNames = []string{".env"}
	}
	for _, fileName := range fileNames {
		if _, err := os.Stat(fileName); errors.Is(err, os.ErrNotExist) {
			klog.V(1).Infof("No %s file, skipping", fileName)
			continue
		}
		if err := godotenv.Load(fileName); err != nil {
			return errors.Wrapf(err, "failed to load environment from %q", fileName)
		}
	}
	return nil
}

// SetDefaults sets every flag of fs that has a corresponding environment variable to the
// variable's value. It must be called before fs.Parse, so the command line can still override them.
func SetDefaults(fs *flag.FlagSet) error {
	var err error
	fs.VisitAll(func(f *flag.Flag) {
		if err != nil {
			return
		}
		envName := EnvName(f.Name)
		value, found := os.LookupEnv(envName)
		if !found {
			return
		}
		if setErr := fs.Set(f.Name, value); setErr != nil {
			err = errors.Wrapf(setErr, "invalid value %q in %s for flag -%s", value, envName, f.Name)
			return
		}
		f.DefValue = value
		klog.V(1).Infof("Flag -%s=%q set from %s", f.Name, value, envName)
	})
	return err
}

// Parse loads the .env file, sets the flags defaults from the environment, and parses the
// command line of flag.CommandLine.
func Parse() error {
	if err := LoadDotEnv(); err != nil {
		return err
	}
	if err := SetDefaults(flag.CommandLine); err != nil {
		return err
	}
	flag.Parse()
	return nil
}
