package issues

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/ledger/internal/adapters/logger"
	"go.trai.ch/ledger/internal/core/ports"
)

// NodeID is the unique identifier for the issue reporter Graft node.
const NodeID graft.ID = "adapter.issues"

func init() {
	graft.Register(graft.Node[ports.IssueReporter]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (ports.IssueReporter, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewCollector(log), nil
		},
	})
}
