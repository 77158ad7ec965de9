// Package bootstrap runs a service's lifecycle: validated config, logger,
// component registry, configure callbacks, signal wait and graceful stop.
//
//	app, err := bootstrap.NewApp(&cfg)
//	app.RegisterComponent(dbComponent)
//	app.RegisterComponent(serverComponent)
//	if err := app.Run(ctx); err != nil {
//	    log.Fatal(err)
//	}
package bootstrap
