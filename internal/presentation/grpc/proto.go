package grpc

// proto.go defines the gRPC server interface derived from vigilant/scan/v1/scan.proto.
// This file serves as a stand-in for buf-generated code. Once `buf generate` is run,
// replace this file with the import from github.com/Geeth0476/Vigilant-Backend/api/gen/go/vigilant/scan/v1.

import (
	"context"

	grpclib "google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// ScanServiceServer is the server API for ScanService.
type ScanServiceServer interface {
	StartScan(context.Context, *StartScanRequest) (*StartScanResponse, error)
	UpdateProgress(context.Context, *UpdateProgressRequest) (*UpdateProgressResponse, error)
	CompleteScan(context.Context, *CompleteScanRequest) (*CompleteScanResponse, error)
	GetScanStatus(context.Context, *GetScanStatusRequest) (*GetScanStatusResponse, error)
	GetLatestScan(context.Context, *DeviceRequest) (*GetScanStatusResponse, error)
	GetActiveScan(context.Context, *DeviceRequest) (*GetScanStatusResponse, error)
	GetDashboard(context.Context, *DeviceRequest) (*GetDashboardResponse, error)
	mustEmbedUnimplementedScanServiceServer()
}

// UnimplementedScanServiceServer provides forward-compatible default implementations.
type UnimplementedScanServiceServer struct{}

func (UnimplementedScanServiceServer) StartScan(context.Context, *StartScanRequest) (*StartScanResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method StartScan not implemented")
}
func (UnimplementedScanServiceServer) UpdateProgress(context.Context, *UpdateProgressRequest) (*UpdateProgressResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method UpdateProgress not implemented")
}
func (UnimplementedScanServiceServer) CompleteScan(context.Context, *CompleteScanRequest) (*CompleteScanResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method CompleteScan not implemented")
}
func (UnimplementedScanServiceServer) GetScanStatus(context.Context, *GetScanStatusRequest) (*GetScanStatusResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetScanStatus not implemented")
}
func (UnimplementedScanServiceServer) GetLatestScan(context.Context, *DeviceRequest) (*GetScanStatusResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetLatestScan not implemented")
}
func (UnimplementedScanServiceServer) GetActiveScan(context.Context, *DeviceRequest) (*GetScanStatusResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetActiveScan not implemented")
}
func (UnimplementedScanServiceServer) GetDashboard(context.Context, *DeviceRequest) (*GetDashboardResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetDashboard not implemented")
}
func (UnimplementedScanServiceServer) mustEmbedUnimplementedScanServiceServer() {}

// RegisterScanServiceServer registers the ScanServiceServer with the gRPC server.
func RegisterScanServiceServer(s *grpclib.Server, srv ScanServiceServer) {
	s.RegisterService(&_ScanService_serviceDesc, srv)
}

var _ScanService_serviceDesc = grpclib.ServiceDesc{
	ServiceName: "vigilant.scan.v1.ScanService",
	HandlerType: (*ScanServiceServer)(nil),
	Methods: []grpclib.MethodDesc{
		{MethodName: "StartScan", Handler: _ScanService_StartScan_Handler},
		{MethodName: "UpdateProgress", Handler: _ScanService_UpdateProgress_Handler},
		{MethodName: "CompleteScan", Handler: _ScanService_CompleteScan_Handler},
		{MethodName: "GetScanStatus", Handler: _ScanService_GetScanStatus_Handler},
		{MethodName: "GetLatestScan", Handler: _ScanService_GetLatestScan_Handler},
		{MethodName: "GetActiveScan", Handler: _ScanService_GetActiveScan_Handler},
		{MethodName: "GetDashboard", Handler: _ScanService_GetDashboard_Handler},
	},
	Streams: []grpclib.StreamDesc{},
}

func _ScanService_StartScan_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(StartScanRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ScanServiceServer).StartScan(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/vigilant.scan.v1.ScanService/StartScan",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(ScanServiceServer).StartScan(ctx, req.(*StartScanRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _ScanService_UpdateProgress_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(UpdateProgressRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ScanServiceServer).UpdateProgress(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/vigilant.scan.v1.ScanService/UpdateProgress",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(ScanServiceServer).UpdateProgress(ctx, req.(*UpdateProgressRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _ScanService_CompleteScan_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(CompleteScanRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ScanServiceServer).CompleteScan(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/vigilant.scan.v1.ScanService/CompleteScan",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(ScanServiceServer).CompleteScan(ctx, req.(*CompleteScanRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _ScanService_GetScanStatus_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(GetScanStatusRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ScanServiceServer).GetScanStatus(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/vigilant.scan.v1.ScanService/GetScanStatus",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(ScanServiceServer).GetScanStatus(ctx, req.(*GetScanStatusRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _ScanService_GetLatestScan_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(DeviceRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ScanServiceServer).GetLatestScan(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/vigilant.scan.v1.ScanService/GetLatestScan",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(ScanServiceServer).GetLatestScan(ctx, req.(*DeviceRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _ScanService_GetActiveScan_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(DeviceRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ScanServiceServer).GetActiveScan(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/vigilant.scan.v1.ScanService/GetActiveScan",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(ScanServiceServer).GetActiveScan(ctx, req.(*DeviceRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _ScanService_GetDashboard_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(DeviceRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ScanServiceServer).GetDashboard(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/vigilant.scan.v1.ScanService/GetDashboard",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(ScanServiceServer).GetDashboard(ctx, req.(*DeviceRequest))
	}
	return interceptor(ctx, in, info, handler)
}
