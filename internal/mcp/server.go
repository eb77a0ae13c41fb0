package mcp

import (
	"context"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"
)

type Server struct {
	content Content
	index   Searcher
	mcp     *sdk.Server
}

// NewServer registers the inspection tools. index may be nil, in which case
// search_content reports that no index is available.
func NewServer(content Content, index Searcher, version string) *Server {
	s := &Server{
		content: content,
		index:   index,
		mcp: sdk.NewServer(&sdk.Implementation{
			Name:    "painter",
			Version: version,
		}, nil),
	}
	s.registerTools()
	return s
}

func (s *Server) Run(ctx context.Context, transport sdk.Transport) error {
	return s.mcp.Run(ctx, transport)
}
