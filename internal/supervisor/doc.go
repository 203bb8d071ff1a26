// Hotpick - Trending Board Game Suggestions
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hotpick

/*
Package supervisor runs hotpick's long-lived services under a suture v4
supervisor tree.

# Layout

	RootSupervisor ("hotpick")
	├── RefreshSupervisor ("refresh-layer")
	│   └── HotRefreshService (cron, warm-up on start)
	└── FrontendSupervisor ("frontend-layer")
	    ├── HTTPServerService
	    └── TelegramService (when a bot token is configured)

Crashed services are restarted with suture's backoff. Supervisor events
are logged through sutureslog into the zerolog global logger (see
logging.NewSlogLogger).

# Usage

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	if err != nil {
	    return err
	}
	tree.AddRefreshService(refreshSvc)
	tree.AddFrontendService(httpSvc)
	return tree.Serve(ctx)

Service wrappers live in the services subpackage.
*/
package supervisor
