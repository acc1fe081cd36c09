package grpc

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	grpclib "google.golang.org/grpc"
)

func TestScanServiceMethodHandlers(t *testing.T) {
	t.Run("every registered method routes through the interceptor", func(t *testing.T) {
		f := buildTestHandler()

		for _, desc := range _ScanService_serviceDesc.Methods {
			called := false
			interceptor := func(ctx context.Context, req interface{}, info *grpclib.UnaryServerInfo, handler grpclib.UnaryHandler) (interface{}, error) {
				called = true
				assert.Equal(t, "/vigilant.scan.v1.ScanService/"+desc.MethodName, info.FullMethod)
				assert.Same(t, f.handler, info.Server)
				return nil, nil
			}

			_, err := desc.Handler(f.handler, context.Background(), func(interface{}) error { return nil }, interceptor)
			require.NoError(t, err, desc.MethodName)
			assert.True(t, called, "interceptor skipped for %s", desc.MethodName)
		}
	})

	t.Run("claims injected by the interceptor reach the method", func(t *testing.T) {
		f := buildTestHandler()
		userID := uuid.New()

		started, err := f.handler.StartScan(contextWithUser(userID), &StartScanRequest{DeviceUuid: "device-123"})
		require.NoError(t, err)

		dec := func(v interface{}) error {
			*(v.(*GetScanStatusRequest)) = GetScanStatusRequest{ScanId: started.Scan.ScanId}
			return nil
		}
		interceptor := func(ctx context.Context, req interface{}, info *grpclib.UnaryServerInfo, handler grpclib.UnaryHandler) (interface{}, error) {
			return handler(contextWithUser(userID), req)
		}

		resp, err := _ScanService_GetScanStatus_Handler(f.handler, context.Background(), dec, interceptor)
		require.NoError(t, err)

		out, ok := resp.(*GetScanStatusResponse)
		require.True(t, ok)
		assert.Equal(t, started.Scan.ScanId, out.Scan.ScanId)
	})

	t.Run("nil interceptor calls the method directly", func(t *testing.T) {
		f := buildTestHandler()
		userID := uuid.New()

		started, err := f.handler.StartScan(contextWithUser(userID), &StartScanRequest{DeviceUuid: "device-123"})
		require.NoError(t, err)

		dec := func(v interface{}) error {
			*(v.(*GetScanStatusRequest)) = GetScanStatusRequest{ScanId: started.Scan.ScanId}
			return nil
		}

		resp, err := _ScanService_GetScanStatus_Handler(f.handler, contextWithUser(userID), dec, nil)
		require.NoError(t, err)

		out, ok := resp.(*GetScanStatusResponse)
		require.True(t, ok)
		assert.Equal(t, "RUNNING", out.Scan.Status)
	})
}
