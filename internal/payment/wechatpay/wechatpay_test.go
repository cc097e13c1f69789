package wechatpay

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/json"
	"encoding/pem"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/delicute/delicute-api/internal/constants"
)

func testConfigMap(overrides map[string]interface{}) map[string]interface{} {
	base := map[string]interface{}{
		"appid":                "wx1234567890",
		"mchid":                "1900000109",
		"merchant_serial_no":   "ABC123456789",
		"merchant_private_key": buildTestPrivateKey(),
		"api_v3_key":           "12345678901234567890123456789012",
		"notify_url":           "https://example.com/api/v1/payments/wechat/callback",
	}
	for key, value := range overrides {
		base[key] = value
	}
	return base
}

func TestParseAndValidateConfig(t *testing.T) {
	cfg, err := ParseConfig(testConfigMap(nil))
	if err != nil {
		t.Fatalf("parse config failed: %v", err)
	}
	if cfg.BaseURL != defaultBaseURL {
		t.Fatalf("base url should fallback to default, got: %s", cfg.BaseURL)
	}
	if err := ValidateConfig(cfg); err != nil {
		t.Fatalf("validate config failed: %v", err)
	}
}

func TestValidateConfigInvalidAPIV3KeyLength(t *testing.T) {
	cfg, err := ParseConfig(testConfigMap(map[string]interface{}{
		"api_v3_key": "short-key",
	}))
	if err != nil {
		t.Fatalf("parse config failed: %v", err)
	}
	if err := ValidateConfig(cfg); err == nil {
		t.Fatalf("expected invalid api_v3_key length error")
	}
}

func TestCreateNativePaymentSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Fatalf("unexpected method: %s", r.Method)
		}
		if r.URL.Path != "/v3/pay/transactions/native" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		var payload map[string]interface{}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Fatalf("decode body failed: %v", err)
		}
		if payload["out_trade_no"] != "ORDER-1001" {
			t.Fatalf("unexpected out_trade_no: %v", payload["out_trade_no"])
		}
		if payload["attach"] != "1001" {
			t.Fatalf("unexpected attach: %v", payload["attach"])
		}
		amount, ok := payload["amount"].(map[string]interface{})
		if !ok {
			t.Fatalf("amount payload missing")
		}
		if amount["total"] != float64(1050) {
			t.Fatalf("unexpected amount total: %v", amount["total"])
		}
		if amount["currency"] != "CNY" {
			t.Fatalf("unexpected amount currency: %v", amount["currency"])
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"code_url":"weixin://wxpay/bizpayurl?pr=mocked"}`))
	}))
	defer server.Close()

	cfg, err := ParseConfig(testConfigMap(map[string]interface{}{
		"base_url": server.URL,
	}))
	if err != nil {
		t.Fatalf("parse config failed: %v", err)
	}

	result, err := CreateNativePayment(context.Background(), cfg, CreateInput{
		OrderNo:     "ORDER-1001",
		PaymentID:   1001,
		Amount:      "10.50",
		Description: "测试订单",
		ClientIP:    "127.0.0.1",
	})
	if err != nil {
		t.Fatalf("create payment failed: %v", err)
	}
	if result.CodeURL != "weixin://wxpay/bizpayurl?pr=mocked" {
		t.Fatalf("unexpected code url: %s", result.CodeURL)
	}
}

func TestCreateNativePaymentResponseInvalid(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"code":"INVALID_REQUEST"}`))
	}))
	defer server.Close()

	cfg, err := ParseConfig(testConfigMap(map[string]interface{}{
		"base_url": server.URL,
	}))
	if err != nil {
		t.Fatalf("parse config failed: %v", err)
	}

	_, err = CreateNativePayment(context.Background(), cfg, CreateInput{
		OrderNo:     "ORDER-1003",
		PaymentID:   1003,
		Amount:      "2.00",
		Description: "测试订单",
		ClientIP:    "127.0.0.1",
	})
	if !errors.Is(err, ErrResponseInvalid) {
		t.Fatalf("expected ErrResponseInvalid, got: %v", err)
	}
}

func TestQueryOrderByOutTradeNoSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Fatalf("unexpected method: %s", r.Method)
		}
		if r.URL.Path != "/v3/pay/transactions/out-trade-no/ORDER-2001" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		if r.URL.Query().Get("mchid") != "1900000109" {
			t.Fatalf("unexpected mchid: %s", r.URL.Query().Get("mchid"))
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"out_trade_no":"ORDER-2001",
			"transaction_id":"4200002001202602100000001",
			"trade_state":"SUCCESS",
			"success_time":"2026-02-10T10:00:00+08:00",
			"amount":{"total":1234,"currency":"CNY"},
			"attach":"1001"
		}`))
	}))
	defer server.Close()

	cfg, err := ParseConfig(testConfigMap(map[string]interface{}{
		"base_url": server.URL,
	}))
	if err != nil {
		t.Fatalf("parse config failed: %v", err)
	}
	result, err := QueryOrderByOutTradeNo(context.Background(), cfg, "ORDER-2001")
	if err != nil {
		t.Fatalf("query order failed: %v", err)
	}
	if result.Status != constants.PaymentStatusPaid {
		t.Fatalf("unexpected status: %s", result.Status)
	}
	if result.Amount != "12.34" {
		t.Fatalf("unexpected amount: %s", result.Amount)
	}
	if result.TransactionID == "" {
		t.Fatalf("expected transaction id")
	}
}

func TestParsePaymentIDFromAttach(t *testing.T) {
	if paymentID, ok := ParsePaymentIDFromAttach("1001"); !ok || paymentID != 1001 {
		t.Fatalf("expected payment id 1001, got %d %v", paymentID, ok)
	}
	if _, ok := ParsePaymentIDFromAttach("invalid"); ok {
		t.Fatalf("expected invalid attach return false")
	}
}

func TestToPaymentStatus(t *testing.T) {
	if status, ok := ToPaymentStatus("SUCCESS"); !ok || status != constants.PaymentStatusPaid {
		t.Fatalf("unexpected status mapping: %s %v", status, ok)
	}
	if status, ok := ToPaymentStatus("NOTPAY"); !ok || status != constants.PaymentStatusPending {
		t.Fatalf("unexpected status mapping: %s %v", status, ok)
	}
	if status, ok := ToPaymentStatus("PAYERROR"); !ok || status != constants.PaymentStatusFailed {
		t.Fatalf("unexpected status mapping: %s %v", status, ok)
	}
	if _, ok := ToPaymentStatus("UNKNOWN"); ok {
		t.Fatalf("expected unknown state to be unsupported")
	}
}

func buildTestPrivateKey() string {
	privateKey, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		panic(err)
	}
	privateKeyDER, err := x509.MarshalPKCS8PrivateKey(privateKey)
	if err != nil {
		panic(err)
	}
	return string(pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: privateKeyDER}))
}
