package providers

import (
	"context"
	"os"

	clc "github.com/cloudwego/eino-ext/callbacks/cozeloop"
	"github.com/cloudwego/eino/callbacks"
	"github.com/coze-dev/cozeloop-go"
)

// SetupTracing installs the cozeloop callback handler for eino model calls
// when COZE_LOOP_API_TOKEN and COZELOOP_WORKSPACE_ID are set. It returns a
// cleanup function to flush and close the client; the cleanup is a no-op
// when tracing is disabled.
func SetupTracing(ctx context.Context) (func(), error) {
	token := os.Getenv("COZE_LOOP_API_TOKEN")
	workspace := os.Getenv("COZELOOP_WORKSPACE_ID")
	if token == "" || workspace == "" {
		return func() {}, nil
	}

	client, err := cozeloop.NewClient(
		cozeloop.WithAPIToken(token),
		cozeloop.WithWorkspaceID(workspace),
	)
	if err != nil {
		return nil, err
	}

	callbacks.AppendGlobalHandlers(clc.NewLoopHandler(client))
	return func() { client.Close(ctx) }, nil
}
