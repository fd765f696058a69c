// Gridiron - College Football Statistics API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gridiron

/*
Package supervisor runs Gridiron's long-lived services under a suture v4
supervisor tree.

	RootSupervisor ("gridiron")
	├── DataSupervisor ("data-layer")
	│   └── response-cache-sweeper (memory cache backend only)
	└── APISupervisor ("api-layer")
	    └── HTTPServerService

A service that returns an error is restarted with backoff. Supervisor
events are logged through sutureslog, which writes to the slog bridge
in the logging package.

Usage:

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	if err != nil {
	    return err
	}
	tree.AddAPIService(services.NewHTTPServerService(server, 10*time.Second))
	err = tree.Serve(ctx)
*/
package supervisor
