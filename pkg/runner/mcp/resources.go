package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"tableflip.dev/navigation/pkg/profile"
)

func registerResources(srv *server.MCPServer, svc *Service) {
	registerUsersResource(srv, svc)
	registerPhotosResource(srv)
	registerProfileTemplate(srv, svc)
}

func registerUsersResource(srv *server.MCPServer, svc *Service) {
	resource := mcp.NewResource(
		"navigation://users",
		"Users",
		mcp.WithResourceDescription("Every record in the user directory."),
		mcp.WithMIMEType("application/json"),
	)

	srv.AddResource(resource, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		all, err := svc.ListUsers(ctx)
		if err != nil {
			return nil, err
		}

		payload := map[string]any{
			"users": all,
			"count": len(all),
		}
		return encodeResourceJSON(request.Params.URI, payload)
	})
}

func registerPhotosResource(srv *server.MCPServer) {
	resource := mcp.NewResource(
		"navigation://photos",
		"Photos",
		mcp.WithResourceDescription("Names of the photos in the gallery opened from the profile."),
		mcp.WithMIMEType("application/json"),
	)

	srv.AddResource(resource, func(_ context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		names := profile.PhotoNames()
		return encodeResourceJSON(request.Params.URI, map[string]any{"photos": names, "count": len(names)})
	})
}

func registerProfileTemplate(srv *server.MCPServer, svc *Service) {
	template := mcp.NewResourceTemplate(
		"navigation://profiles/{login}",
		"Profile",
		mcp.WithTemplateDescription("Current profile state for a login, loaded on first read."),
		mcp.WithTemplateMIMEType("application/json"),
	)

	srv.AddResourceTemplate(template, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		login := templateArg(request.Params.Arguments["login"])
		if login == "" {
			return nil, fmt.Errorf("login is required")
		}

		dto, err := svc.Profile(ctx, login)
		if err != nil {
			return nil, err
		}
		return encodeResourceJSON(request.Params.URI, dto)
	})
}

// templateArg reads a URI template argument, which arrives as a string or
// a list of strings.
func templateArg(v any) string {
	switch v := v.(type) {
	case string:
		return v
	case []string:
		if len(v) > 0 {
			return v[0]
		}
	}
	return ""
}

func encodeResourceJSON(uri string, payload any) ([]mcp.ResourceContents, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
