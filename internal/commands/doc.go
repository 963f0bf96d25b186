// Package commands provides the command-line interface for the listcrypt tool.
//
// It implements commands for:
//   - encrypting and decrypting files
//   - verifying that files decrypt under a key
//   - encrypting and decrypting single values
//
// The package handles command-line parsing, configuration validation,
// and environment variable binding through cobra and viper.
package commands
