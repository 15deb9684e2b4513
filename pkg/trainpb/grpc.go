package trainpb

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Full method names of the MLTrainingService, as they appear on the wire and
// in interceptor info.
const (
	MLTrainingService_SubmitTrainingJob_FullMethodName = "/mltrain.v1.MLTrainingService/SubmitTrainingJob"
	MLTrainingService_GetTrainingJob_FullMethodName    = "/mltrain.v1.MLTrainingService/GetTrainingJob"
	MLTrainingService_ListTrainingJobs_FullMethodName  = "/mltrain.v1.MLTrainingService/ListTrainingJobs"
	MLTrainingService_CancelTrainingJob_FullMethodName = "/mltrain.v1.MLTrainingService/CancelTrainingJob"
)

// MLTrainingServiceClient is the client API for the MLTrainingService.
//
// All four calls are unary. Implementations must be safe for concurrent use.
type MLTrainingServiceClient interface {
	SubmitTrainingJob(ctx context.Context, in *SubmitTrainingJobRequest, opts ...grpc.CallOption) (*SubmitTrainingJobResponse, error)
	GetTrainingJob(ctx context.Context, in *GetTrainingJobRequest, opts ...grpc.CallOption) (*GetTrainingJobResponse, error)
	ListTrainingJobs(ctx context.Context, in *ListTrainingJobsRequest, opts ...grpc.CallOption) (*ListTrainingJobsResponse, error)
	CancelTrainingJob(ctx context.Context, in *CancelTrainingJobRequest, opts ...grpc.CallOption) (*CancelTrainingJobResponse, error)
}

type mlTrainingServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewMLTrainingServiceClient returns a stub that issues MLTrainingService
// calls over the given connection using this package's codec.
func NewMLTrainingServiceClient(cc grpc.ClientConnInterface) MLTrainingServiceClient {
	return &mlTrainingServiceClient{cc: cc}
}

func (c *mlTrainingServiceClient) SubmitTrainingJob(ctx context.Context, in *SubmitTrainingJobRequest, opts ...grpc.CallOption) (*SubmitTrainingJobResponse, error) {
	out := new(SubmitTrainingJobResponse)
	err := c.invoke(ctx, MLTrainingService_SubmitTrainingJob_FullMethodName, in, out, opts)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *mlTrainingServiceClient) GetTrainingJob(ctx context.Context, in *GetTrainingJobRequest, opts ...grpc.CallOption) (*GetTrainingJobResponse, error) {
	out := new(GetTrainingJobResponse)
	err := c.invoke(ctx, MLTrainingService_GetTrainingJob_FullMethodName, in, out, opts)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *mlTrainingServiceClient) ListTrainingJobs(ctx context.Context, in *ListTrainingJobsRequest, opts ...grpc.CallOption) (*ListTrainingJobsResponse, error) {
	out := new(ListTrainingJobsResponse)
	err := c.invoke(ctx, MLTrainingService_ListTrainingJobs_FullMethodName, in, out, opts)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *mlTrainingServiceClient) CancelTrainingJob(ctx context.Context, in *CancelTrainingJobRequest, opts ...grpc.CallOption) (*CancelTrainingJobResponse, error) {
	out := new(CancelTrainingJobResponse)
	err := c.invoke(ctx, MLTrainingService_CancelTrainingJob_FullMethodName, in, out, opts)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// invoke issues a unary call with the package codec selected. Caller-supplied
// options come last so they can override the content subtype if needed.
func (c *mlTrainingServiceClient) invoke(ctx context.Context, method string, in, out any, opts []grpc.CallOption) error {
	callOpts := append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	return c.cc.Invoke(ctx, method, in, out, callOpts...)
}

// MLTrainingServiceServer is the server API for the MLTrainingService.
type MLTrainingServiceServer interface {
	SubmitTrainingJob(ctx context.Context, req *SubmitTrainingJobRequest) (*SubmitTrainingJobResponse, error)
	GetTrainingJob(ctx context.Context, req *GetTrainingJobRequest) (*GetTrainingJobResponse, error)
	ListTrainingJobs(ctx context.Context, req *ListTrainingJobsRequest) (*ListTrainingJobsResponse, error)
	CancelTrainingJob(ctx context.Context, req *CancelTrainingJobRequest) (*CancelTrainingJobResponse, error)
}

// UnimplementedMLTrainingServiceServer returns Unimplemented for every call.
// Embed it in partial implementations, such as test fakes.
type UnimplementedMLTrainingServiceServer struct{}

func (UnimplementedMLTrainingServiceServer) SubmitTrainingJob(context.Context, *SubmitTrainingJobRequest) (*SubmitTrainingJobResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method SubmitTrainingJob not implemented")
}

func (UnimplementedMLTrainingServiceServer) GetTrainingJob(context.Context, *GetTrainingJobRequest) (*GetTrainingJobResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetTrainingJob not implemented")
}

func (UnimplementedMLTrainingServiceServer) ListTrainingJobs(context.Context, *ListTrainingJobsRequest) (*ListTrainingJobsResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ListTrainingJobs not implemented")
}

func (UnimplementedMLTrainingServiceServer) CancelTrainingJob(context.Context, *CancelTrainingJobRequest) (*CancelTrainingJobResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method CancelTrainingJob not implemented")
}

// RegisterMLTrainingServiceServer registers the service implementation with
// the gRPC server.
func RegisterMLTrainingServiceServer(s grpc.ServiceRegistrar, srv MLTrainingServiceServer) {
	s.RegisterService(&MLTrainingService_ServiceDesc, srv)
}

func _MLTrainingService_SubmitTrainingJob_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(SubmitTrainingJobRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(MLTrainingServiceServer).SubmitTrainingJob(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: MLTrainingService_SubmitTrainingJob_FullMethodName}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(MLTrainingServiceServer).SubmitTrainingJob(ctx, req.(*SubmitTrainingJobRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _MLTrainingService_GetTrainingJob_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(GetTrainingJobRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(MLTrainingServiceServer).GetTrainingJob(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: MLTrainingService_GetTrainingJob_FullMethodName}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(MLTrainingServiceServer).GetTrainingJob(ctx, req.(*GetTrainingJobRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _MLTrainingService_ListTrainingJobs_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(ListTrainingJobsRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(MLTrainingServiceServer).ListTrainingJobs(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: MLTrainingService_ListTrainingJobs_FullMethodName}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(MLTrainingServiceServer).ListTrainingJobs(ctx, req.(*ListTrainingJobsRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _MLTrainingService_CancelTrainingJob_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(CancelTrainingJobRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(MLTrainingServiceServer).CancelTrainingJob(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: MLTrainingService_CancelTrainingJob_FullMethodName}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(MLTrainingServiceServer).CancelTrainingJob(ctx, req.(*CancelTrainingJobRequest))
	}
	return interceptor(ctx, in, info, handler)
}

// MLTrainingService_ServiceDesc is the grpc.ServiceDesc for the
// MLTrainingService. Use RegisterMLTrainingServiceServer instead of accessing
// it directly.
var MLTrainingService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: "mltrain.v1.MLTrainingService",
	HandlerType: (*MLTrainingServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "SubmitTrainingJob", Handler: _MLTrainingService_SubmitTrainingJob_Handler},
		{MethodName: "GetTrainingJob", Handler: _MLTrainingService_GetTrainingJob_Handler},
		{MethodName: "ListTrainingJobs", Handler: _MLTrainingService_ListTrainingJobs_Handler},
		{MethodName: "CancelTrainingJob", Handler: _MLTrainingService_CancelTrainingJob_Handler},
	},
	Streams: []grpc.StreamDesc{},
}
