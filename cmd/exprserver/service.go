// The RPC surface here is hand-written against structpb messages rather
// than generated from a .proto file: the inbound expression, mapProperties
// and feature are already arbitrary JSON documents, so structpb.Struct/
// Value model the wire shape exactly without a schema compiler in the
// loop. grpc-go only requires its message type to implement proto.Message,
// which structpb.Struct already does — registering a grpc.ServiceDesc by
// hand is a supported, if less common, path.
package main

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// ExprServiceServer is the server-side contract of the hand-written
// mapexpr.ExprService/Evaluate RPC.
type ExprServiceServer interface {
	Evaluate(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

func exprServiceEvaluateHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ExprServiceServer).Evaluate(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/mapexpr.ExprService/Evaluate"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(ExprServiceServer).Evaluate(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

// exprServiceDesc is the grpc.ServiceDesc a generated _grpc.pb.go file
// would otherwise provide.
var exprServiceDesc = grpc.ServiceDesc{
	ServiceName: "mapexpr.ExprService",
	HandlerType: (*ExprServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Evaluate", Handler: exprServiceEvaluateHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "mapexpr/exprserver.proto",
}
