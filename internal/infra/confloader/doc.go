// Package confloader provides configuration loading for KeyWire.
//
// This package implements a flexible configuration loader that supports
// multiple sources using koanf as the underlying library.
//
// Features:
//
//   - Multiple Sources: YAML files, environment variables, maps
//   - Watch Support: Reload callbacks on config file changes
//   - Type Safety: Unmarshaling into koanf-tagged structs
//   - Defaults: Pre-populated target structs keep values for unset keys
//
// Priority (highest to lowest):
//
//  1. Environment variables (KEYWIRE_*)
//  2. Configuration file
//  3. Default values
package confloader
