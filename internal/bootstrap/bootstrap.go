package bootstrap

import (
	"context"
	"log/slog"

	"firebase.google.com/go/v4/auth"

	openaiclient "github.com/GregMSThompson/expense-backend/internal/client/openai"
	vertexclient "github.com/GregMSThompson/expense-backend/internal/client/vertex"
	"github.com/GregMSThompson/expense-backend/internal/config"
	"github.com/GregMSThompson/expense-backend/internal/store"
	"github.com/GregMSThompson/expense-backend/pkg/logger"
)

type Bootstrap struct {
	Log      *slog.Logger
	DB       *store.Conn
	Vertex   *vertexclient.Adapter
	OpenAI   *openaiclient.Adapter
	Firebase *auth.Client
}

func Run(cfg *config.Config) (*Bootstrap, error) {
	var err error
	applicationCtx := context.Background()
	bs := new(Bootstrap)

	bs.Log = logger.New(cfg.LogLevel, logger.NewCloudRunHandler)

	// A failed dial is logged, not fatal: the conn reconnects lazily and the
	// health endpoint reports not_configured in the meantime.
	bs.DB = store.NewConn(applicationCtx, bs.Log, cfg.ProjectID)

	bs.Vertex, err = vertexclient.NewAdapter(applicationCtx, bs.Log,
		cfg.ProjectID, cfg.Region, cfg.VertexModel, cfg.VertexVisionModel)
	if err != nil {
		return bs, err
	}

	bs.OpenAI = openaiclient.NewAdapter(cfg.OpenAIAPIKey, cfg.OpenAIModel)

	if cfg.AuthRequired {
		bs.Firebase, err = InitFirebase(applicationCtx)
		if err != nil {
			return bs, err
		}
	}

	return bs, nil
}

func (bs *Bootstrap) Close() {
	if bs.Vertex != nil {
		_ = bs.Vertex.Close()
	}
	if bs.DB != nil {
		if err := bs.DB.Close(); err != nil && bs.Log != nil {
			bs.Log.Error("firestore close failed", "error", err)
		}
	}
}
