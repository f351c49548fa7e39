// Package config loads dotrepeat settings.
//
// Settings come from, in increasing precedence:
//
//  1. Built-in defaults (Default)
//  2. A TOML or YAML file, chosen by extension
//  3. DOTREPEAT_* environment variables
//
// A Config answers the boolean settings consulted by the insert controller
// through Bool, so it can be passed directly as a host's Settings.
//
// Watcher reloads a configuration file whenever it changes on disk:
//
//	w := config.NewWatcher(path)
//	err := w.Run(ctx, func(cfg *config.Config, err error) {
//	    if err == nil {
//	        apply(cfg)
//	    }
//	})
package config
