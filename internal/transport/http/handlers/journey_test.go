package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"salon/internal/app/server"
	"salon/internal/platform/config"
	"salon/internal/platform/db"
)

type envelope struct {
	Data  json.RawMessage `json:"data"`
	Error any             `json:"error"`
}

func testConfig(dbURL string) config.Config {
	return config.Config{
		DatabaseURL:       dbURL,
		JWTSecret:         "test-secret",
		Environment:       "test",
		SeedAdminEmail:    "admin@test.local",
		SeedAdminPassword: "ChangeMe123!",
		RunMigrations:     true,
		RunSeed:           true,
		MaxBodyBytes:      1048576,
		ReceiptPrefix:     "SLN",
	}
}

func TestBookingAndBillingJourney(t *testing.T) {
	dbURL := os.Getenv("TEST_DATABASE_URL")
	if dbURL == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	cfg := testConfig(dbURL)
	ctx := context.Background()

	pool, err := db.Connect(ctx, cfg)
	if err != nil {
		t.Fatalf("failed to connect: %v", err)
	}
	defer pool.Close()

	if err := db.Migrate(ctx, pool, "../../../../migrations"); err != nil {
		t.Fatalf("migrations failed: %v", err)
	}
	if err := db.Seed(ctx, pool, cfg); err != nil {
		t.Fatalf("seed failed: %v", err)
	}

	ts := httptest.NewServer(server.New(cfg, pool))
	defer ts.Close()

	client := ts.Client()
	token := login(t, client, ts.URL, cfg.SeedAdminEmail, cfg.SeedAdminPassword)

	stylistID := createStaff(t, client, ts.URL, token)
	clientID := createClient(t, client, ts.URL, token)
	serviceID := createService(t, client, ts.URL, token)

	commitSchedule(t, client, ts.URL, token, stylistID)

	week := getJSON(t, client, ts.URL+"/api/v1/schedule/week?weekStart=2026-01-05", token)
	if len(week.Data) == 0 {
		t.Fatal("expected week schedule payload")
	}

	// 2026-01-12 is a Monday, inside the committed monday shift.
	apptID := createAppointment(t, client, ts.URL, token, map[string]any{
		"clientId":  clientID,
		"stylistId": stylistID,
		"serviceId": serviceID,
		"date":      "2026-01-12",
		"startTime": "10:00",
	})

	// Overlapping booking for the same stylist must be rejected.
	postJSONStatus(t, client, ts.URL+"/api/v1/appointments", token, map[string]any{
		"clientId":  clientID,
		"stylistId": stylistID,
		"serviceId": serviceID,
		"date":      "2026-01-12",
		"startTime": "10:15",
	}, http.StatusConflict)

	// Approved leave blocks bookings on the leave days.
	leaveID := createLeaveRequest(t, client, ts.URL, token, stylistID)
	status := decideLeave(t, client, ts.URL, token, leaveID, "approve")
	if status != "approved" {
		t.Fatalf("expected leave status approved, got %s", status)
	}
	postJSONStatus(t, client, ts.URL+"/api/v1/appointments", token, map[string]any{
		"clientId":  clientID,
		"stylistId": stylistID,
		"serviceId": serviceID,
		"date":      "2026-01-19",
		"startTime": "10:00",
	}, http.StatusConflict)

	completeAppointment(t, client, ts.URL, token, apptID)

	billID := createBill(t, client, ts.URL, token, clientID, apptID)
	receiptNumber := payBill(t, client, ts.URL, token, billID)
	if receiptNumber == "" {
		t.Fatal("expected a receipt number after payment")
	}

	rows := checkReceipts(t, client, ts.URL, token, []string{receiptNumber, "SLN-DOESNOTEXIST"})
	if len(rows) != 2 {
		t.Fatalf("expected 2 reconciliation rows, got %d", len(rows))
	}
	if found, _ := rows[0]["found"].(bool); !found {
		t.Fatalf("expected receipt %s to be found", receiptNumber)
	}
	if found, _ := rows[1]["found"].(bool); found {
		t.Fatal("expected unknown receipt to be missing")
	}
}

func TestScheduleCommitRejectsLeaveConflicts(t *testing.T) {
	dbURL := os.Getenv("TEST_DATABASE_URL")
	if dbURL == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	cfg := testConfig(dbURL)
	ctx := context.Background()

	pool, err := db.Connect(ctx, cfg)
	if err != nil {
		t.Fatalf("failed to connect: %v", err)
	}
	defer pool.Close()

	if err := db.Migrate(ctx, pool, "../../../../migrations"); err != nil {
		t.Fatalf("migrations failed: %v", err)
	}
	if err := db.Seed(ctx, pool, cfg); err != nil {
		t.Fatalf("seed failed: %v", err)
	}

	ts := httptest.NewServer(server.New(cfg, pool))
	defer ts.Close()

	client := ts.Client()
	token := login(t, client, ts.URL, cfg.SeedAdminEmail, cfg.SeedAdminPassword)

	stylistID := createStaff(t, client, ts.URL, token)

	// Pending leave covering the whole commit week.
	postJSON(t, client, ts.URL+"/api/v1/leave/requests", token, map[string]any{
		"employeeId": stylistID,
		"startDate":  "2026-03-01",
		"endDate":    "2026-03-31",
		"type":       "vacation",
	})

	resp := postJSONStatus(t, client, ts.URL+"/api/v1/schedule/commit", token, map[string]any{
		"startDate": "2026-03-02",
		"shifts": map[string]any{
			stylistID: map[string]any{
				"monday": map[string]string{"start": "09:00", "end": "17:00"},
			},
		},
	}, http.StatusConflict)
	if resp.Error == nil {
		t.Fatal("expected a schedule_conflict error payload")
	}
}

func login(t *testing.T, client *http.Client, baseURL, email, password string) string {
	t.Helper()
	resp := postJSON(t, client, baseURL+"/api/v1/auth/login", "", map[string]any{
		"email":    email,
		"password": password,
	})
	var payload map[string]any
	if err := json.Unmarshal(resp.Data, &payload); err != nil {
		t.Fatalf("failed to decode login response: %v", err)
	}
	token, _ := payload["token"].(string)
	if token == "" {
		t.Fatal("expected token")
	}
	return token
}

func createStaff(t *testing.T, client *http.Client, baseURL, token string) string {
	t.Helper()
	resp := postJSON(t, client, baseURL+"/api/v1/staff", token, map[string]any{
		"firstName": "Journey",
		"lastName":  fmt.Sprintf("Stylist%d", time.Now().UnixNano()),
		"role":      "stylist",
	})
	return extractID(t, resp, "staff")
}

func createClient(t *testing.T, client *http.Client, baseURL, token string) string {
	t.Helper()
	resp := postJSON(t, client, baseURL+"/api/v1/clients", token, map[string]any{
		"firstName": "Casey",
		"lastName":  fmt.Sprintf("Client%d", time.Now().UnixNano()),
		"phone":     "555-0100",
	})
	return extractID(t, resp, "client")
}

func createService(t *testing.T, client *http.Client, baseURL, token string) string {
	t.Helper()
	resp := postJSON(t, client, baseURL+"/api/v1/services", token, map[string]any{
		"name":            fmt.Sprintf("Cut %d", time.Now().UnixNano()),
		"durationMinutes": 30,
		"price":           45,
	})
	return extractID(t, resp, "service")
}

func commitSchedule(t *testing.T, client *http.Client, baseURL, token, stylistID string) {
	t.Helper()
	postJSON(t, client, baseURL+"/api/v1/schedule/commit", token, map[string]any{
		"startDate": "2026-01-01",
		"shifts": map[string]any{
			stylistID: map[string]any{
				"monday":    map[string]string{"start": "09:00", "end": "17:00"},
				"tuesday":   map[string]string{"start": "09:00", "end": "17:00"},
				"wednesday": map[string]string{"start": "09:00", "end": "17:00"},
			},
		},
	})
}

func createAppointment(t *testing.T, client *http.Client, baseURL, token string, body map[string]any) string {
	t.Helper()
	resp := postJSON(t, client, baseURL+"/api/v1/appointments", token, body)
	return extractID(t, resp, "appointment")
}

func completeAppointment(t *testing.T, client *http.Client, baseURL, token, apptID string) {
	t.Helper()
	resp := postJSON(t, client, baseURL+"/api/v1/appointments/"+apptID+"/complete", token, map[string]any{})
	var payload map[string]any
	if err := json.Unmarshal(resp.Data, &payload); err != nil {
		t.Fatalf("failed to decode appointment response: %v", err)
	}
	if status, _ := payload["status"].(string); status != "completed" {
		t.Fatalf("expected appointment status completed, got %v", payload["status"])
	}
}

func createLeaveRequest(t *testing.T, client *http.Client, baseURL, token, staffID string) string {
	t.Helper()
	resp := postJSON(t, client, baseURL+"/api/v1/leave/requests", token, map[string]any{
		"employeeId": staffID,
		"startDate":  "2026-01-19",
		"endDate":    "2026-01-20",
		"type":       "vacation",
		"reason":     "Rest",
	})
	return extractID(t, resp, "leave request")
}

func decideLeave(t *testing.T, client *http.Client, baseURL, token, requestID, action string) string {
	t.Helper()
	resp := postJSON(t, client, baseURL+"/api/v1/leave/requests/"+requestID+"/"+action, token, map[string]any{})
	var payload map[string]any
	if err := json.Unmarshal(resp.Data, &payload); err != nil {
		t.Fatalf("failed to decode leave decision response: %v", err)
	}
	status, _ := payload["status"].(string)
	return status
}

func createBill(t *testing.T, client *http.Client, baseURL, token, clientID, apptID string) string {
	t.Helper()
	resp := postJSON(t, client, baseURL+"/api/v1/bills", token, map[string]any{
		"clientId":      clientID,
		"appointmentId": apptID,
		"items": []map[string]any{
			{"description": "Haircut", "quantity": 1, "unitPrice": 45},
		},
		"taxRate": 0.08,
	})
	return extractID(t, resp, "bill")
}

func payBill(t *testing.T, client *http.Client, baseURL, token, billID string) string {
	t.Helper()
	resp := postJSON(t, client, baseURL+"/api/v1/bills/"+billID+"/pay", token, map[string]any{
		"paymentMethod": "cash",
	})
	var payload struct {
		Bill map[string]any `json:"bill"`
	}
	if err := json.Unmarshal(resp.Data, &payload); err != nil {
		t.Fatalf("failed to decode payment response: %v", err)
	}
	number, _ := payload.Bill["receiptNumber"].(string)
	return number
}

func checkReceipts(t *testing.T, client *http.Client, baseURL, token string, numbers []string) []map[string]any {
	t.Helper()
	resp := postJSON(t, client, baseURL+"/api/v1/bills/receipt-check", token, map[string]any{
		"receiptNumbers": numbers,
	})
	var rows []map[string]any
	if err := json.Unmarshal(resp.Data, &rows); err != nil {
		t.Fatalf("failed to decode receipt check response: %v", err)
	}
	return rows
}

func extractID(t *testing.T, resp envelope, what string) string {
	t.Helper()
	var payload map[string]any
	if err := json.Unmarshal(resp.Data, &payload); err != nil {
		t.Fatalf("failed to decode %s response: %v", what, err)
	}
	id, _ := payload["id"].(string)
	if id == "" {
		t.Fatalf("expected %s id", what)
	}
	return id
}

func postJSON(t *testing.T, client *http.Client, url, token string, body any) envelope {
	t.Helper()
	resp := doRequest(t, client, http.MethodPost, url, token, body)
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(resp.Body)
		t.Fatalf("POST %s returned %d: %s", url, resp.StatusCode, raw)
	}
	return decodeEnvelope(t, resp.Body)
}

func postJSONStatus(t *testing.T, client *http.Client, url, token string, body any, want int) envelope {
	t.Helper()
	resp := doRequest(t, client, http.MethodPost, url, token, body)
	defer resp.Body.Close()
	if resp.StatusCode != want {
		raw, _ := io.ReadAll(resp.Body)
		t.Fatalf("POST %s returned %d, want %d: %s", url, resp.StatusCode, want, raw)
	}
	return decodeEnvelope(t, resp.Body)
}

func getJSON(t *testing.T, client *http.Client, url, token string) envelope {
	t.Helper()
	resp := doRequest(t, client, http.MethodGet, url, token, nil)
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(resp.Body)
		t.Fatalf("GET %s returned %d: %s", url, resp.StatusCode, raw)
	}
	return decodeEnvelope(t, resp.Body)
}

func doRequest(t *testing.T, client *http.Client, method, url, token string, body any) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal body: %v", err)
		}
		reader = bytes.NewBuffer(raw)
	}
	req, err := http.NewRequest(method, url, reader)
	if err != nil {
		t.Fatalf("failed to create request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	return resp
}

func decodeEnvelope(t *testing.T, body io.Reader) envelope {
	t.Helper()
	var env envelope
	if err := json.NewDecoder(body).Decode(&env); err != nil {
		t.Fatalf("failed to decode response envelope: %v", err)
	}
	return env
}
