package env

import (
	"log"
	"os"
	"runtime"

	"github.com/joho/godotenv"
)

// Env list
const (
	DevelopmentEnv = "development"
	StagingEnv     = "staging"
	ProductionEnv  = "production"
	LocalEnv       = "local"
)

// Env related var
var (
	Name      = "APPS_ENV"
	goVersion string
)

func init() {
	// env package will read .env file when application is started
	err := SetFromEnvFile(".env")
	if err != nil && !os.IsNotExist(err) {
		log.Printf("failed to set env file: %v\n", err)
	}
	goVersion = runtime.Version()
}

// SetFromEnvFile read env file and set the environment variables
func SetFromEnvFile(filepath string) error {
	if _, err := os.Stat(filepath); err != nil {
		return err
	}

	vars, err := godotenv.Read(filepath)
	if err != nil {
		return err
	}

	// unlike godotenv.Load, values from the file win over the process environment
	for key, value := range vars {
		if err = os.Setenv(key, value); err != nil {
			return err
		}
	}
	return nil
}

// Get returns the value of key, or fallback when it is unset or empty
func Get(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

// ServiceEnv return service environment, default to development
func ServiceEnv() string {
	e := os.Getenv(Name)
	if e == "" {
		e = DevelopmentEnv
	}
	return e
}

// GoVersion to return current build go version
func GoVersion() string {
	return goVersion
}

// IsDevelopment return true when env is "development"
func IsDevelopment() bool {
	return ServiceEnv() == DevelopmentEnv
}

// IsStaging return true when env is "staging"
func IsStaging() bool {
	return ServiceEnv() == StagingEnv
}

// IsProduction return true when env is "production"
func IsProduction() bool {
	return ServiceEnv() == ProductionEnv
}

// IsLocal return true when env is "local"
func IsLocal() bool {
	return ServiceEnv() == LocalEnv
}
