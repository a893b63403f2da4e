// Package config loads fpipe library settings from YAML files and the
// environment. Embedding applications can tune logging and resolver
// behavior through config.yml, .env files, or FPIPE_* variables without
// touching code.
package config
