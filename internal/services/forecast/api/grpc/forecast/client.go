package forecast

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// Client calls the forecast service with typed messages.
type Client struct {
	cc grpc.ClientConnInterface
}

// NewClient wraps a connection to a forecast service.
func NewClient(cc grpc.ClientConnInterface) *Client {
	return &Client{cc: cc}
}

// ForecastMines requests a forecast window.
func (c *Client) ForecastMines(ctx context.Context, in ForecastMinesRequest, opts ...grpc.CallOption) (ForecastMinesResponse, error) {
	var out ForecastMinesResponse
	err := invoke(ctx, c.cc, forecastMinesMethod, in, &out, opts...)
	return out, err
}

// GetForecast reads a cached forecast window.
func (c *Client) GetForecast(ctx context.Context, in GetForecastRequest, opts ...grpc.CallOption) (GetForecastResponse, error) {
	var out GetForecastResponse
	err := invoke(ctx, c.cc, getForecastMethod, in, &out, opts...)
	return out, err
}

// ListForecasts pages through cached windows.
func (c *Client) ListForecasts(ctx context.Context, in ListForecastsRequest, opts ...grpc.CallOption) (ListForecastsResponse, error) {
	var out ListForecastsResponse
	err := invoke(ctx, c.cc, listForecastsMethod, in, &out, opts...)
	return out, err
}

// InspectSeed requests the first raw draws of a seed.
func (c *Client) InspectSeed(ctx context.Context, in InspectSeedRequest, opts ...grpc.CallOption) (InspectSeedResponse, error) {
	var out InspectSeedResponse
	err := invoke(ctx, c.cc, inspectSeedMethod, in, &out, opts...)
	return out, err
}

func invoke(ctx context.Context, cc grpc.ClientConnInterface, method string, in, out any, opts ...grpc.CallOption) error {
	req, err := encodeMessage(in)
	if err != nil {
		return err
	}
	resp := new(structpb.Struct)
	if err := cc.Invoke(ctx, method, req, resp, opts...); err != nil {
		return err
	}
	return decodeMessage(resp, out, false)
}
