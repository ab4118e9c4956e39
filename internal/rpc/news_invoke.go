package rpc

import (
	"context"
	"encoding/json"

	"github.com/vmkteam/zenrpc/v2"
	"github.com/vmkteam/zenrpc/v2/smd"
)

// RPC holds the wire names of the news methods.
var RPC = struct {
	NewsService struct{ List, ByID string }
}{
	NewsService: struct{ List, ByID string }{
		List: "list",
		ByID: "byid",
	},
}

// SMD describes the news methods for the schema endpoint.
func (s *NewsService) SMD() smd.ServiceInfo {
	return smd.ServiceInfo{
		Methods: map[string]smd.Service{
			"List": {
				Description: `List returns live news newest first, without bodies.`,
				Parameters: []smd.JSONSchema{
					{
						Name:        "limit",
						Optional:    true,
						Description: `maximum number of items, all when omitted`,
						Type:        smd.Integer,
					},
				},
				Returns: smd.JSONSchema{
					Description: `list of news summaries`,
					Type:        smd.Array,
				},
				Errors: map[int]string{
					500: "internal server error",
				},
			},
			"ByID": {
				Description: `ByID returns a single live news item with body.`,
				Parameters: []smd.JSONSchema{
					{
						Name:        "id",
						Description: `news numeric ID`,
						Type:        smd.Integer,
					},
				},
				Returns: smd.JSONSchema{
					Description: `news with body`,
					Optional:    true,
					Type:        smd.Object,
					Properties: smd.PropertyList{
						{
							Name: "id",
							Type: smd.Integer,
						},
						{
							Name: "title",
							Type: smd.String,
						},
						{
							Name: "body",
							Type: smd.String,
						},
						{
							Name: "created",
							Type: smd.String,
						},
						{
							Name: "path",
							Type: smd.String,
						},
					},
				},
				Errors: map[int]string{
					400: "id must be positive",
					404: "news not found",
					500: "internal server error",
				},
			},
		},
	}
}

// Invoke decodes params for method and calls it.
func (s *NewsService) Invoke(ctx context.Context, method string, params json.RawMessage) zenrpc.Response {
	resp := zenrpc.Response{}
	var err error

	switch method {
	case RPC.NewsService.List:
		var args = struct {
			Limit *int `json:"limit"`
		}{}

		if zenrpc.IsArray(params) {
			if params, err = zenrpc.ConvertToObject([]string{"limit"}, params); err != nil {
				return zenrpc.NewResponseError(nil, zenrpc.InvalidParams, "", err.Error())
			}
		}

		if len(params) > 0 {
			if err := json.Unmarshal(params, &args); err != nil {
				return zenrpc.NewResponseError(nil, zenrpc.InvalidParams, "", err.Error())
			}
		}

		resp.Set(s.List(ctx, args.Limit))

	case RPC.NewsService.ByID:
		var args = struct {
			Id int `json:"id"`
		}{}

		if zenrpc.IsArray(params) {
			if params, err = zenrpc.ConvertToObject([]string{"id"}, params); err != nil {
				return zenrpc.NewResponseError(nil, zenrpc.InvalidParams, "", err.Error())
			}
		}

		if len(params) > 0 {
			if err := json.Unmarshal(params, &args); err != nil {
				return zenrpc.NewResponseError(nil, zenrpc.InvalidParams, "", err.Error())
			}
		}

		resp.Set(s.ByID(ctx, args.Id))

	default:
		resp = zenrpc.NewResponseError(nil, zenrpc.MethodNotFound, "", nil)
	}

	return resp
}
