package mcp

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

func registerTools(srv *server.MCPServer, svc *Service) {
	registerLoadProfileTool(srv, svc)
	registerGetProfileTool(srv, svc)
	registerGetPostTool(srv, svc)
	registerUpdateStatusTool(srv, svc)
	registerListUsersTool(srv, svc)
	registerCheckLoginTool(srv, svc)
	registerGuessWordTool(srv, svc)
}

func registerLoadProfileTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"load_profile",
		mcp.WithDescription("Load (or reload) the profile screen for a login and return the resulting state."),
		mcp.WithString("login",
			mcp.Required(),
			mcp.Description("Login whose profile should be shown."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		login, err := request.RequireString("login")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		dto, err := svc.LoadProfile(ctx, login)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerGetProfileTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"get_profile",
		mcp.WithDescription("Return the current profile state for a login without reloading it."),
		mcp.WithString("login",
			mcp.Required(),
			mcp.Description("Login whose profile should be returned."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		login, err := request.RequireString("login")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		dto, err := svc.Profile(ctx, login)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerGetPostTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"get_post",
		mcp.WithDescription("Fetch one post of a loaded profile by its row in the posts section."),
		mcp.WithString("login",
			mcp.Required(),
			mcp.Description("Login whose profile holds the post."),
		),
		mcp.WithNumber("row",
			mcp.Required(),
			mcp.Description("Zero-based row in the posts section."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args struct {
			Login string `json:"login"`
			Row   int    `json:"row"`
		}
		if err := request.BindArguments(&args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}

		dto, err := svc.GetPost(ctx, args.Login, args.Row)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerUpdateStatusTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"update_status",
		mcp.WithDescription("Change the status shown on a loaded profile."),
		mcp.WithString("login",
			mcp.Required(),
			mcp.Description("Login whose profile should change."),
		),
		mcp.WithString("status",
			mcp.Required(),
			mcp.Description("New status text."),
		),
		mcp.WithBoolean("persist",
			mcp.Description("Also store the status in the user directory."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args struct {
			Login   string `json:"login"`
			Status  string `json:"status"`
			Persist bool   `json:"persist"`
		}
		if err := request.BindArguments(&args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}

		dto, err := svc.UpdateStatus(ctx, args.Login, args.Status, args.Persist)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerListUsersTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"list_users",
		mcp.WithDescription("List the records in the user directory."),
	)

	srv.AddTool(tool, func(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		all, err := svc.ListUsers(ctx)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{"users": all, "count": len(all)})
	})
}

func registerCheckLoginTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"check_login",
		mcp.WithDescription("Validate a login and password pair."),
		mcp.WithString("login",
			mcp.Description("Login to check."),
		),
		mcp.WithString("password",
			mcp.Description("Password to check."),
		),
	)

	srv.AddTool(tool, func(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args struct {
			Login    string `json:"login"`
			Password string `json:"password"`
		}
		if err := request.BindArguments(&args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}
		return toJSONResult(svc.CheckLogin(args.Login, args.Password))
	})
}

func registerGuessWordTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"guess_word",
		mcp.WithDescription("Guess the secret word of the feed game."),
		mcp.WithString("word",
			mcp.Required(),
			mcp.Description("The guess."),
		),
	)

	srv.AddTool(tool, func(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		word, err := request.RequireString("word")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(svc.Guess(word))
	})
}

func toJSONResult(data any) (*mcp.CallToolResult, error) {
	result, err := mcp.NewToolResultJSON(data)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("marshal error: %v", err)), nil
	}
	return result, nil
}
