// Package config loads resolverctl and test harness configuration.
//
// A configuration file is JSON or YAML (detected by extension) and sets the
// search paths, logging and the fixtures to load on start:
//
//	version: "1"
//	searchPaths: ["/apps/", "/libs/"]
//	logging:
//	  level: debug
//	  format: json
//	fixtures:
//	  - path: testdata/content/**/*.yaml
//	    root: /content
//
// Use Load to read a file and Config.Options to turn it into factory options:
//
//	cfg, err := config.Load("resolver.yaml")
//	if err != nil {
//	    return err
//	}
//	f := resolver.New(cfg.Options(logger)...)
package config
