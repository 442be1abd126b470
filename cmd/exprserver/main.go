// Command exprserver exposes compileExpression and evaluation as a gRPC
// service: a remote style-rendering pipeline sends a serialized expression
// plus (mapProperties, feature) and gets back the compiled type and the
// evaluated value, or the compile/evaluation diagnostics. This sits
// alongside the in-process pkg/expr interface, not in place of it.
package main

import (
	"context"
	"flag"
	"log"
	"net"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/cartoexpr/mapexpr/internal/rpcvalue"
	"github.com/cartoexpr/mapexpr/pkg/expr"
)

type server struct{}

func (server) Evaluate(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	fields := req.GetFields()

	expression := rpcvalue.FromStructValue(fields["expression"])
	compiled := expr.Compile(expression)

	if compiled.Result != "success" {
		errs := make([]interface{}, len(compiled.Errors))
		for i, d := range compiled.Errors {
			errs[i] = map[string]interface{}{"key": d.Key, "error": d.Error}
		}
		return structpb.NewStruct(map[string]interface{}{
			"result": "error",
			"errors": errs,
		})
	}

	mapProperties := rpcvalue.MapPropertiesFromStruct(fields["mapProperties"].GetStructValue())
	feature := rpcvalue.FeatureFromStruct(fields["feature"].GetStructValue())

	value, err := compiled.Function(mapProperties, feature)
	if err != nil {
		return structpb.NewStruct(map[string]interface{}{
			"result": "error",
			"errors": []interface{}{map[string]interface{}{"key": "", "error": err.Error()}},
		})
	}

	valueOut, err := rpcvalue.ToStructValue(value)
	if err != nil {
		return nil, err
	}

	out, err := structpb.NewStruct(map[string]interface{}{
		"result":            "success",
		"type":              compiled.Type.String(),
		"isFeatureConstant": compiled.IsFeatureConstant,
		"isZoomConstant":    compiled.IsZoomConstant,
	})
	if err != nil {
		return nil, err
	}
	out.Fields["value"] = valueOut
	return out, nil
}

func main() {
	addr := flag.String("addr", ":7443", "listen address")
	flag.Parse()

	lis, err := net.Listen("tcp", *addr)
	if err != nil {
		log.Fatalf("exprserver: %v", err)
	}

	s := grpc.NewServer()
	s.RegisterService(&exprServiceDesc, server{})

	log.Printf("exprserver: listening on %s", *addr)
	if err := s.Serve(lis); err != nil {
		log.Fatalf("exprserver: %v", err)
	}
}
