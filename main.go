package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/SaiNageswarS/bible-rag-custom-gpt/appconfig"
	"github.com/SaiNageswarS/bible-rag-custom-gpt/bible"
	"github.com/SaiNageswarS/bible-rag-custom-gpt/controller"
	mcpserver "github.com/SaiNageswarS/bible-rag-custom-gpt/mcp"
	"github.com/SaiNageswarS/go-api-boot/dotenv"
	"github.com/SaiNageswarS/go-api-boot/embed"
	"github.com/SaiNageswarS/go-api-boot/logger"
	"github.com/SaiNageswarS/go-api-boot/odm"
	"github.com/SaiNageswarS/go-api-boot/server"
	mcpSdk "github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"
)

func main() {
	dotenv.LoadEnv()

	if len(os.Args) > 1 && os.Args[1] == "mcp" {
		runMcpServer()
		return
	}

	boot, err := server.New().
		GRPCPort(":50051").
		HTTPPort(":8081").
		ProvideFunc(odm.ProvideMongoClient).
		ProvideFunc(embed.ProvideJinaAIEmbeddingClient).
		AddRestController(controller.ProvideChatController).
		AddRestController(controller.ProvideQueryController).
		AddRestController(controller.ProvideMetadataController).
		AddRestController(controller.ProvidePrivacyController).
		Build()

	if err != nil {
		logger.Fatal("Dependency Injection Failed", zap.Error(err))
	}

	ctx := getCancellableContext()
	boot.Serve(ctx)
}

// runMcpServer serves verse lookup over MCP stdio. Scripture search needs
// the Mongo-backed passage store and is only exposed by the HTTP deployment.
func runMcpServer() {
	cfg := appconfig.FromEnv()
	fetcher := bible.NewFetcher(bible.NewLookupClient(cfg.BibleAPIURL), bible.NewCache())

	srv, err := mcpserver.NewServer(fetcher, nil)
	if err != nil {
		logger.Fatal("Failed to build MCP server", zap.Error(err))
	}

	if err := srv.Run(getCancellableContext(), &mcpSdk.StdioTransport{}); err != nil {
		logger.Fatal("MCP server exited", zap.Error(err))
	}
}

func getCancellableContext() context.Context {
	ctx, cancel := context.WithCancel(context.Background())

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sig
		cancel()
	}()

	return ctx
}
