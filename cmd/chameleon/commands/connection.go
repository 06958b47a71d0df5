// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"time"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/chameleon/lib/config"
	"github.com/bureau-foundation/chameleon/lib/service"
)

// adminSocket is the shared --socket flag for commands that talk to
// the running service's admin socket.
type adminSocket struct {
	path string
}

func (a *adminSocket) addFlag(flagSet *pflag.FlagSet) {
	flagSet.StringVar(&a.path, "socket", config.DefaultAdminSocket, "admin socket path")
}

func (a *adminSocket) client() *service.Client {
	return service.NewClient(a.path)
}

// callContext returns a context with a timeout for admin socket
// calls. Every admin action is an in-memory lookup or a single file
// read, so 30 seconds is generous.
func callContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 30*time.Second)
}
