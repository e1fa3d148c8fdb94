//go:build integration

package integration_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"testing"
	"time"
)

func baseURL() string {
	if v := os.Getenv("ERGO_TEST_BASE_URL"); strings.TrimSpace(v) != "" {
		return strings.TrimRight(v, "/")
	}
	return "http://127.0.0.1:18080"
}

func TestSurveyFlowIntegration(t *testing.T) {
	client := &http.Client{Timeout: 5 * time.Second}
	base := baseURL()

	userEmail := fmt.Sprintf("integration_%d@example.com", time.Now().UnixNano())
	password := "Secret123!"

	var registerResp struct {
		Token  string `json:"token"`
		UserID string `json:"user_id"`
	}
	doPost(t, client, base+"/api/auth/register", "", map[string]string{
		"email":    userEmail,
		"password": password,
	}, &registerResp)
	if registerResp.Token == "" || registerResp.UserID == "" {
		t.Fatalf("unexpected register response: %+v", registerResp)
	}

	var loginResp struct {
		Token string `json:"token"`
	}
	doPost(t, client, base+"/api/auth/login", "", map[string]string{
		"email":    userEmail,
		"password": password,
	}, &loginResp)
	token := loginResp.Token
	if token == "" {
		t.Fatalf("login did not return token")
	}

	taskName := fmt.Sprintf("Lift cartons %d", time.Now().UnixNano())
	var submitResp struct {
		Record struct {
			ID        string  `json:"id"`
			TaskName  string  `json:"task_name"`
			RiskScore float64 `json:"risk_score"`
			RiskTier  string  `json:"risk_tier"`
		} `json:"record"`
		Recommendations []string `json:"recommendations"`
	}
	doPost(t, client, base+"/api/surveys", "", map[string]any{
		"tool":             "lifting",
		"task_name":        taskName,
		"duration_min":     10,
		"frequency_per_hr": 30,
		"posture":          "bending",
		"load_kg":          12,
		"lift_height":      "knee",
	}, &submitResp)
	if submitResp.Record.ID == "" || submitResp.Record.RiskTier == "" {
		t.Fatalf("unexpected submit response: %+v", submitResp)
	}
	if len(submitResp.Recommendations) == 0 {
		t.Fatalf("submit returned no recommendations")
	}

	var thresholdsResp struct {
		High    int `json:"high"`
		MedHigh int `json:"med_high"`
		Med     int `json:"med"`
	}
	doGet(t, client, base+"/api/thresholds", &thresholdsResp)
	if thresholdsResp.High == 0 {
		t.Fatalf("unexpected thresholds response: %+v", thresholdsResp)
	}

	var trendResp struct {
		TotalRecords int `json:"total_records"`
	}
	doGet(t, client, base+"/api/trend?tool=lifting", &trendResp)
	if trendResp.TotalRecords == 0 {
		t.Fatalf("trend reported no records after submit")
	}

	resp, err := client.Get(base + "/api/export")
	if err != nil {
		t.Fatalf("export request failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		t.Fatalf("export status %d body %s", resp.StatusCode, string(body))
	}
	csvData, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read export data: %v", err)
	}
	if !strings.Contains(string(csvData), taskName) {
		t.Fatalf("export csv did not contain submitted task; csv=%s", string(csvData))
	}
}

func doPost(t *testing.T, client *http.Client, url, token string, body any, out any) {
	t.Helper()
	payload, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal body: %v", err)
	}
	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if strings.TrimSpace(token) != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("http post %s failed: %v", url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		bodyBytes, _ := io.ReadAll(resp.Body)
		t.Fatalf("unexpected status %d for %s: %s", resp.StatusCode, url, string(bodyBytes))
	}
	if out != nil {
		decoder := json.NewDecoder(resp.Body)
		if err := decoder.Decode(out); err != nil && err != io.EOF {
			t.Fatalf("decode response from %s: %v", url, err)
		}
	}
}

func doGet(t *testing.T, client *http.Client, url string, out any) {
	t.Helper()
	resp, err := client.Get(url)
	if err != nil {
		t.Fatalf("http get %s failed: %v", url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		t.Fatalf("unexpected status %d for %s: %s", resp.StatusCode, url, string(bodyBytes))
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		t.Fatalf("decode response from %s: %v", url, err)
	}
}
