/*
Package discovery turns the paths given on the command line into an ordered
list of config source identifiers.

A file path is used as-is. A directory contributes its default source and,
when an environment is selected and present, the source for that
environment:

	conf/
	    default.yaml
	    production.toml
	    staging.json

	d := discovery.NewDiscoverer(fs, log)
	sources, err := d.Resolve([]string{"conf", "local.yaml"}, discovery.Options{
		Default:     "default",
		Environment: "production",
	})
	// sources == []string{"conf/default", "conf/production", "local.yaml"}

Identifiers for directory entries carry no extension, the source loader
resolves it.
*/
package discovery
