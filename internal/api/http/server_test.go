package http

import (
	"bytes"
	"context"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	apiconfig "github.com/weisyn/zkattest/internal/config/api"
	logimpl "github.com/weisyn/zkattest/internal/core/infrastructure/log"
	"github.com/weisyn/zkattest/pkg/types"
)

// stubManager 只实现验证路径的证明门面
type stubManager struct {
	ready  map[types.CircuitFamily]bool
	result types.VerifyResult

	lastFamily types.CircuitFamily
	lastProof  []byte
}

func (m *stubManager) Prove(context.Context, types.CircuitFamily, []byte, []byte) ([]byte, error) {
	return nil, nil
}

func (m *stubManager) Verify(family types.CircuitFamily, proof, commitment []byte) bool {
	return m.Check(family, proof, commitment).OK()
}

func (m *stubManager) Check(family types.CircuitFamily, proof, _ []byte) types.VerifyResult {
	m.lastFamily, m.lastProof = family, proof
	return m.result
}

func (m *stubManager) Commit(types.CircuitFamily, []byte) ([]byte, error) { return nil, nil }

func (m *stubManager) Attest(context.Context, types.CircuitFamily, []byte) (*types.Attestation, error) {
	return nil, nil
}

func (m *stubManager) Ready(family types.CircuitFamily) bool { return m.ready[family] }

func allReady() map[types.CircuitFamily]bool {
	ready := map[types.CircuitFamily]bool{}
	for _, f := range types.AllCircuitFamilies() {
		ready[f] = true
	}
	return ready
}

func newTestServer(manager *stubManager) *Server {
	options := apiconfig.New(nil).GetOptions().HTTP
	return NewServer(&options, logimpl.NewNop(), manager)
}

func do(t *testing.T, s *Server, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func TestVerifyEndpoint(t *testing.T) {
	manager := &stubManager{ready: allReady(), result: types.VerifyValid}
	s := newTestServer(manager)

	rec := do(t, s, http.MethodPost, "/api/v1/attestation/verify", map[string]string{
		"family":     "policy-action",
		"commitment": "0x" + hex.EncodeToString(make([]byte, 32)),
		"proof":      "aabb",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotEmpty(t, rec.Header().Get("X-Request-ID"))

	var resp struct {
		Success bool
		Data    struct {
			Valid  bool   `json:"valid"`
			Result string `json:"result"`
		}
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.True(t, resp.Success)
	require.True(t, resp.Data.Valid)
	require.Equal(t, "valid", resp.Data.Result)
	require.Equal(t, types.PolicyAction, manager.lastFamily)
	require.Equal(t, []byte{0xAA, 0xBB}, manager.lastProof)

	// 验证失败仍然是 200
	manager.result = types.VerifyMalformed
	rec = do(t, s, http.MethodPost, "/api/v1/attestation/verify", map[string]string{
		"family": "policy-action", "commitment": "00", "proof": "00",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"valid":false`)
}

func TestVerifyEndpointBadRequest(t *testing.T) {
	s := newTestServer(&stubManager{ready: allReady(), result: types.VerifyValid})

	cases := map[string]interface{}{
		"缺少字段":     map[string]string{"family": "policy-action"},
		"未知电路族":    map[string]string{"family": "nope", "commitment": "00", "proof": "00"},
		"非法十六进制承诺": map[string]string{"family": "policy-action", "commitment": "zz", "proof": "00"},
		"非法十六进制证明": map[string]string{"family": "policy-action", "commitment": "00", "proof": "zz"},
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			rec := do(t, s, http.MethodPost, "/api/v1/attestation/verify", body)
			require.Equal(t, http.StatusBadRequest, rec.Code)
			require.Contains(t, rec.Body.String(), `"success":false`)
		})
	}
}

func TestHealthEndpoints(t *testing.T) {
	manager := &stubManager{ready: map[types.CircuitFamily]bool{types.GenesisPath: true}}
	s := newTestServer(manager)

	require.Equal(t, http.StatusOK, do(t, s, http.MethodGet, "/health/live", nil).Code)

	rec := do(t, s, http.MethodGet, "/health/ready", nil)
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	require.Contains(t, rec.Body.String(), "data-integrity")

	manager.ready = allReady()
	require.Equal(t, http.StatusOK, do(t, s, http.MethodGet, "/health/ready", nil).Code)
}

func TestFamiliesAndMetrics(t *testing.T) {
	s := newTestServer(&stubManager{ready: allReady()})

	rec := do(t, s, http.MethodGet, "/api/v1/attestation/families", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"name":"data-integrity"`)
	require.Contains(t, rec.Body.String(), `"public_inputs":256`)

	rec = do(t, s, http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "wes_api_requests_total")
}

func TestServerStartStop(t *testing.T) {
	options := apiconfig.New(nil).GetOptions().HTTP
	options.Port = 0
	s := NewServer(&options, logimpl.NewNop(), &stubManager{ready: allReady()})

	require.Empty(t, s.Addr())
	require.NoError(t, s.Start())
	addr := s.Addr()
	require.NotEmpty(t, addr)

	resp, err := http.Get("http://" + addr + "/health/live")
	require.NoError(t, err)
	_ = resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	require.NoError(t, s.Stop(context.Background()))
}
