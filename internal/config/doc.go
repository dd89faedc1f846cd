// Package config provides configuration parsing for smallie.
//
// The configuration is stored in smallie.json next to the binary's working
// directory. Every field is optional; New returns the defaults and a loaded
// file only overrides what it sets.
//
// # Configuration File Structure
//
//	{
//	  "name": "todo",
//	  "live": {
//	    "host": "0.0.0.0",
//	    "port": 7070,
//	    "writeTimeout": "10s",
//	    "allowedOrigins": ["https://example.com"],
//	    "maxSessions": 1000
//	  },
//	  "snapshot": {
//	    "driver": "s3",
//	    "bucket": "pages",
//	    "prefix": "todo/",
//	    "region": "eu-west-1"
//	  },
//	  "metrics": {"enabled": true, "namespace": "smallie"},
//	  "tracing": {"enabled": false},
//	  "log": {"level": "debug", "format": "json"}
//	}
//
// # Usage
//
//	cfg, found, err := config.LoadOrDefault(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := cfg.Validate(); err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Println("Listening on", cfg.Address())
package config
