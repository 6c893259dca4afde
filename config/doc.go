// Package config loads haveup configuration and profile definitions.
//
// The package handles the YAML configuration file, environment variables and
// CLI flags, merging them with viper and validating the result with
// go-playground/validator.
//
// # Configuration Precedence
//
// Values are loaded in this order (later sources override earlier ones):
//
//  1. Default values
//  2. Configuration file(s): --config, else HAVEUP_CONFIG, else ~/.haveup/config.yaml
//  3. Environment variables (HAVEUP_ prefix)
//  4. CLI flags
//
// # Usage
//
//	cfg, err := config.Load(nil, cmd.Flags())
//	if err != nil {
//	    return err
//	}
//	store, err := cfg.Store()
//
// # Environment Variables
//
// Config keys map to environment variables with the HAVEUP_ prefix:
//   - class → HAVEUP_CLASS
//   - log.level → HAVEUP_LOG_LEVEL
//   - digest.mode → HAVEUP_DIGEST_MODE
//
// # Profiles
//
// The "default" mapping is the DEFAULT section every profile falls back to.
// "profiles" is an ordered list; each entry names itself with a "name" key
// and the order decides which profile a name prefix selects.
//
//	default:
//	  publicurl: https://files.example.com
//	  uploadurl: me@example.com:/srv/files
//	profiles:
//	  - name: images
//	    subdir: img
//	    checksum: [md5, sha256]
package config
