// Package config loads the client configuration and persists key bindings.
//
// The client configuration is a TOML file with three sections:
//
//	[log]
//	level = "info"            # debug, info, warn, error
//	file = "keyroute.log"     # empty for standard error
//	format = "console"        # console or json
//
//	[input]
//	strategy = "remap"        # remap: synthesize characters from keys
//	                          # chars: platform delivers characters
//	debug_events = false      # trace every key event at debug level
//	queue_capacity = 8192
//
//	[bindings]
//	file = "config.cfg"       # persisted `bind` lines
//	script = ""               # optional Lua binding script
//	watch = true              # re-execute the file when it changes
//	defaults = true           # seed default bindings if the file is absent
//
// A missing configuration file yields Default. KEYROUTE_* environment
// variables override file values.
//
// Binding files use the interpreter's line syntax and are executed through
// the same bind command a user types, so anything accepted at the console
// is accepted in the file.
package config
