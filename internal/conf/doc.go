// Package conf implements layered settings for the denvar tool itself.
//
// # Usage
//
// The global Configuration variable is loaded at package initialization:
//
//	import "github.com/denvar-go/denvar/internal/conf"
//
//	func main() {
//	    fmt.Println(conf.Configuration.HerokuCommand)
//	}
//
// For custom loading (e.g., testing), use ConfigSource:
//
//	cs := &conf.ConfigSource{
//	    Path:      "/custom/path/config.toml",
//	    DropInDir: "/custom/path/config.toml.d",
//	    EnvPrefix: "DENVAR_",
//	}
//	config, err := cs.Read()
//
// # Load Order
//
// Settings are applied in four layers, later layers winning:
//
//  1. In-memory defaults
//  2. Main config file: /etc/denvar/config.toml
//  3. Drop-in files: /etc/denvar/config.toml.d/*.toml, in lexicographic order
//  4. Environment variables: DENVAR_LOG_LEVEL, DENVAR_SOURCE, DENVAR_HEROKU_COMMAND
//
// These settings only tune the tool. The environment files denvar resolves
// are handled by package denvar.
package conf
