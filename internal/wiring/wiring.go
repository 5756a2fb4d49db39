// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/ledger/internal/adapters/config"
	_ "go.trai.ch/ledger/internal/adapters/fs"
	_ "go.trai.ch/ledger/internal/adapters/issues"
	_ "go.trai.ch/ledger/internal/adapters/logger"
	_ "go.trai.ch/ledger/internal/adapters/reports"
	_ "go.trai.ch/ledger/internal/adapters/telemetry/progrock"
	// Register app nodes.
	_ "go.trai.ch/ledger/internal/app"
)
