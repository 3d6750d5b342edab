// Package denvar resolves per-environment variables from a structured file.
//
// # Source Layout
//
// A source document maps environment names to flat variable maps. The
// reserved "common" key applies to every environment:
//
//	{
//	    "common":      {"APP_NAME": "demo"},
//	    "development": {"DB_HOST": "localhost"},
//	    "production":  {"DB_HOST": "db.internal"}
//	}
//
// # Precedence
//
// Variables are merged into a Space in this order, and the first write wins:
//
//  1. Values already present in the Space
//  2. The common layer
//  3. The selected environment layer
//
// A key defined by both file layers therefore keeps its common value.
//
// # Prefix-encoded Variables
//
// Extract recovers configuration from variables such as
// npm_config_C_S3_USER (common group) and npm_config_dev_DB_USER (group
// "dev"), returning S3_USER and DB_USER. Group tokens are case-sensitive.
package denvar
