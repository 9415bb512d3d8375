// Package config provides the settings for the confpiler command line.
// Every setting can come from a CONFPILER_* environment variable; flags
// given on the command line take precedence.
//
// # Configuration Loading
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// # Environment Variables
//
//	CONFPILER_SEPARATOR        Separator for nested keys (default: "__")
//	CONFPILER_ARRAY_SEPARATOR  Separator for array elements (default: ",")
//	CONFPILER_PREFIX           Prefix for every generated key
//	CONFPILER_DEFAULT          Base config name in directories (default: "default")
//	CONFPILER_ENV              Environment config to layer on top of the default
//	CONFPILER_STRICT           Treat warnings as errors (true/false)
//	CONFPILER_OUTPUT           Output format: dotenv|json|yaml
//	CONFPILER_OUTPUT_FILE      Write the output to this file instead of stdout
//	CONFPILER_NO_SORT          Do not sort dotenv output (true/false)
//	CONFPILER_RAW              Do not quote dotenv values (true/false)
//	CONFPILER_NO_COLOR         Disable colored output (true/false)
//	CONFPILER_VERBOSE          Verbosity level (number of 'v's, or a number)
//	CONFPILER_WORKERS          Concurrent checks for check --all-envs (default: CPU cores)
//	CONFPILER_RATE_LIMIT       Checks started per second, 0 for unlimited
//
// # Example Usage
//
//	export CONFPILER_PREFIX=app
//	export CONFPILER_ENV=production
//	confpiler build conf/
package config
