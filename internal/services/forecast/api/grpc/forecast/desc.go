// Package forecast exposes the mine forecast over gRPC.
//
// Messages travel as google.protobuf.Struct values so the service needs no
// generated code; the typed request and response structs in this package
// define the field names clients must send. Struct numbers are float64, so
// integer fields are limited to MaxExactInteger in magnitude.
package forecast

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// ServiceName is the fully-qualified gRPC service name, also used for health.
const ServiceName = "valleycast.forecast.v1.ForecastService"

const (
	forecastMinesMethod = "/" + ServiceName + "/ForecastMines"
	getForecastMethod   = "/" + ServiceName + "/GetForecast"
	listForecastsMethod = "/" + ServiceName + "/ListForecasts"
	inspectSeedMethod   = "/" + ServiceName + "/InspectSeed"
)

// ForecastServiceServer is the server API for the forecast service.
type ForecastServiceServer interface {
	ForecastMines(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetForecast(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ListForecasts(context.Context, *structpb.Struct) (*structpb.Struct, error)
	InspectSeed(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

// RegisterForecastServiceServer registers srv on s.
func RegisterForecastServiceServer(s grpc.ServiceRegistrar, srv ForecastServiceServer) {
	s.RegisterService(&ForecastServiceDesc, srv)
}

// ForecastServiceDesc describes the forecast service for grpc.ServiceRegistrar.
var ForecastServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*ForecastServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "ForecastMines", Handler: unaryHandler(forecastMinesMethod, ForecastServiceServer.ForecastMines)},
		{MethodName: "GetForecast", Handler: unaryHandler(getForecastMethod, ForecastServiceServer.GetForecast)},
		{MethodName: "ListForecasts", Handler: unaryHandler(listForecastsMethod, ForecastServiceServer.ListForecasts)},
		{MethodName: "InspectSeed", Handler: unaryHandler(inspectSeedMethod, ForecastServiceServer.InspectSeed)},
	},
	Streams: []grpc.StreamDesc{},
}

type unaryMethod func(ForecastServiceServer, context.Context, *structpb.Struct) (*structpb.Struct, error)

func unaryHandler(fullMethod string, call unaryMethod) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(structpb.Struct)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(ForecastServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{
			Server:     srv,
			FullMethod: fullMethod,
		}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(ForecastServiceServer), ctx, req.(*structpb.Struct))
		}
		return interceptor(ctx, in, info, handler)
	}
}
