package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/mark3labs/mcp-go/server"

	"github.com/peterkuimelis/rpsx/internal/logger"
	rpsxmcp "github.com/peterkuimelis/rpsx/internal/mcp"
)

func main() {
	rounds := flag.Int("rounds", 0, "default match length for start_match (0 = 1000)")
	flag.Parse()

	// stdout carries the MCP protocol
	logger.Init(os.Stderr)

	tools := rpsxmcp.NewTools(*rounds, logger.Component("mcp"))

	s := server.NewMCPServer("rpsx", "1.0.0")
	rpsxmcp.RegisterTools(s, tools)

	if err := server.ServeStdio(s); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
