//go:build e2e
// +build e2e

package e2e

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"os"
	"testing"
	"time"

	"github.com/vibast-solutions/ms-go-bridal/app/types"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

const (
	defaultHTTPBase = "http://localhost:38080"
	defaultGRPCAddr = "localhost:39090"
)

type httpClient struct {
	baseURL string
	client  *http.Client
}

// newHTTPClient keeps its own cookie jar, so each client is one browser
// session.
func newHTTPClient(t *testing.T, baseURL string) *httpClient {
	t.Helper()
	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("cookie jar failed: %v", err)
	}
	return &httpClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 10 * time.Second, Jar: jar},
	}
}

func (c *httpClient) doJSON(t *testing.T, method, path string, body any) (*http.Response, []byte) {
	return c.doJSONWithAPIKey(t, method, path, body, "")
}

func (c *httpClient) doJSONWithAPIKey(t *testing.T, method, path string, body any, apiKey string) (*http.Response, []byte) {
	t.Helper()

	var reqBody *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("json marshal failed: %v", err)
		}
		reqBody = bytes.NewReader(data)
	} else {
		reqBody = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, c.baseURL+path, reqBody)
	if err != nil {
		t.Fatalf("new request failed: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if apiKey != "" {
		req.Header.Set("X-API-Key", apiKey)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		t.Fatalf("http request failed: %v", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read response failed: %v", err)
	}

	return resp, bodyBytes
}

func decode(t *testing.T, body []byte, v any) {
	t.Helper()
	if err := json.Unmarshal(body, v); err != nil {
		t.Fatalf("json unmarshal failed: %v body=%s", err, string(body))
	}
}

func waitForHTTP(baseURL string, timeout time.Duration) error {
	deadline := time.Now().Add(timeout)
	client := &http.Client{Timeout: 2 * time.Second}
	for time.Now().Before(deadline) {
		resp, err := client.Get(baseURL + "/health")
		if err == nil {
			resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return nil
			}
		}
		time.Sleep(500 * time.Millisecond)
	}
	return fmt.Errorf("http service not ready at %s", baseURL)
}

func waitForGRPC(addr string, timeout time.Duration) error {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		conn, err := net.DialTimeout("tcp", addr, 2*time.Second)
		if err == nil {
			_ = conn.Close()
			return nil
		}
		time.Sleep(500 * time.Millisecond)
	}
	return fmt.Errorf("grpc service not ready at %s", addr)
}

func dialBridalGRPC(t *testing.T, addr string) *grpc.ClientConn {
	t.Helper()
	conn, err := grpc.NewClient(addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		t.Fatalf("grpc dial failed: %v", err)
	}
	return conn
}

func grpcContextWithAPIKey(apiKey string) context.Context {
	if apiKey == "" {
		return context.Background()
	}
	return metadata.AppendToOutgoingContext(context.Background(), "x-api-key", apiKey)
}

type planPayload struct {
	ID         string   `json:"id"`
	Title      string   `json:"title"`
	Price      int64    `json:"price"`
	WorldViews []string `json:"world_views"`
}

type planListPayload struct {
	Plans []planPayload `json:"plans"`
	Count int           `json:"count"`
}

func planIDs(list planListPayload) map[string]bool {
	ids := make(map[string]bool, len(list.Plans))
	for _, p := range list.Plans {
		ids[p.ID] = true
	}
	return ids
}

func TestBridalE2E(t *testing.T) {
	httpBase := os.Getenv("BRIDAL_HTTP_URL")
	if httpBase == "" {
		httpBase = defaultHTTPBase
	}
	grpcAddr := os.Getenv("BRIDAL_GRPC_ADDR")
	if grpcAddr == "" {
		grpcAddr = defaultGRPCAddr
	}

	if err := waitForHTTP(httpBase, 30*time.Second); err != nil {
		t.Fatalf("http not ready: %v", err)
	}
	if err := waitForGRPC(grpcAddr, 30*time.Second); err != nil {
		t.Fatalf("grpc not ready: %v", err)
	}

	provider := newHTTPClient(t, httpBase)
	visitor := newHTTPClient(t, httpBase)
	anonymous := newHTTPClient(t, httpBase)

	conn := dialBridalGRPC(t, grpcAddr)
	defer conn.Close()
	grpcClient := types.NewPlanCatalogClient(conn)

	suffix := time.Now().UnixNano()
	state := struct {
		gardenPlanID string
		beachPlanID  string
		marker       string
	}{
		marker: fmt.Sprintf("e2e%d", suffix),
	}

	t.Run("ProviderSignup", func(t *testing.T) {
		resp, body := provider.doJSON(t, http.MethodPost, "/provider/signup", map[string]any{
			"email":    fmt.Sprintf("vendor-%d@example.com", suffix),
			"password": "secret-pass",
			"name":     "Garden Studio",
		})
		if resp.StatusCode != http.StatusCreated {
			t.Fatalf("expected 201, got %d body=%s", resp.StatusCode, string(body))
		}
	})

	t.Run("ProviderRoutesRequireSession", func(t *testing.T) {
		resp, _ := anonymous.doJSON(t, http.MethodGet, "/provider/plans", nil)
		if resp.StatusCode != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", resp.StatusCode)
		}
	})

	t.Run("ProviderCreatesPlans", func(t *testing.T) {
		resp, body := provider.doJSON(t, http.MethodPost, "/provider/plans", map[string]any{
			"title":          "Garden ceremony " + state.marker,
			"price":          250000,
			"scale":          "ふたりのみ",
			"world_views":    []string{"ガーデン", "フラワー", "ガーデン"},
			"location":       "東京",
			"purpose":        "結婚式（挙式）",
			"date_range":     "2026 April - June",
			"summary_points": []string{"送迎付き", "", "桜フォトスポットあり"},
			"cta_type":       "email",
			"cta_value":      "hello@example.com",
		})
		if resp.StatusCode != http.StatusCreated {
			t.Fatalf("expected 201, got %d body=%s", resp.StatusCode, string(body))
		}
		var created struct {
			Plan planPayload `json:"plan"`
		}
		decode(t, body, &created)
		state.gardenPlanID = created.Plan.ID
		if len(created.Plan.WorldViews) != 2 {
			t.Fatalf("expected world views to collapse to a set, got %v", created.Plan.WorldViews)
		}

		resp, body = provider.doJSON(t, http.MethodPost, "/provider/plans", map[string]any{
			"title":       "Beach photo " + state.marker,
			"price":       450000,
			"scale":       "10〜30名（少人数）",
			"world_views": []string{"海"},
			"location":    "沖縄",
			"purpose":     "前撮り",
		})
		if resp.StatusCode != http.StatusCreated {
			t.Fatalf("expected 201, got %d body=%s", resp.StatusCode, string(body))
		}
		decode(t, body, &created)
		state.beachPlanID = created.Plan.ID
	})

	t.Run("SearchByPriceTier", func(t *testing.T) {
		resp, body := anonymous.doJSON(t, http.MethodGet, "/plans?price=3&query="+state.marker, nil)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("expected 200, got %d body=%s", resp.StatusCode, string(body))
		}
		var list planListPayload
		decode(t, body, &list)
		ids := planIDs(list)
		if !ids[state.gardenPlanID] || ids[state.beachPlanID] {
			t.Fatalf("tier 3 should keep only the garden plan, got %v", ids)
		}
	})

	t.Run("SearchByWorldViewAndLegacyAlias", func(t *testing.T) {
		for _, param := range []string{"worldview", "world_view"} {
			query := url.Values{}
			query.Set(param, "海")
			query.Set("query", state.marker)
			resp, body := anonymous.doJSON(t, http.MethodGet, "/plans?"+query.Encode(), nil)
			if resp.StatusCode != http.StatusOK {
				t.Fatalf("expected 200, got %d body=%s", resp.StatusCode, string(body))
			}
			var list planListPayload
			decode(t, body, &list)
			ids := planIDs(list)
			if !ids[state.beachPlanID] || ids[state.gardenPlanID] {
				t.Fatalf("%s=海 should keep only the beach plan, got %v", param, ids)
			}
		}
	})

	t.Run("SearchTextMatchesSummaryPoint", func(t *testing.T) {
		query := url.Values{}
		query.Set("query", "桜フォト")
		query.Set("location", "東京")
		resp, body := anonymous.doJSON(t, http.MethodGet, "/plans?"+query.Encode(), nil)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("expected 200, got %d body=%s", resp.StatusCode, string(body))
		}
		var list planListPayload
		decode(t, body, &list)
		if !planIDs(list)[state.gardenPlanID] {
			t.Fatalf("expected garden plan to match its summary point")
		}
	})

	t.Run("SearchSortsByPriceDesc", func(t *testing.T) {
		resp, body := anonymous.doJSON(t, http.MethodGet, "/plans?sort=price_desc&query="+state.marker, nil)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("expected 200, got %d body=%s", resp.StatusCode, string(body))
		}
		var list planListPayload
		decode(t, body, &list)
		if len(list.Plans) != 2 || list.Plans[0].ID != state.beachPlanID {
			t.Fatalf("expected beach plan first, got %+v", list.Plans)
		}
	})

	t.Run("VisitorFavoritesPlan", func(t *testing.T) {
		resp, body := visitor.doJSON(t, http.MethodPost, "/users/signup", map[string]any{
			"email":    fmt.Sprintf("couple-%d@example.com", suffix),
			"password": "secret-pass",
			"name":     "Couple",
		})
		if resp.StatusCode != http.StatusCreated {
			t.Fatalf("expected 201, got %d body=%s", resp.StatusCode, string(body))
		}

		for i := 0; i < 2; i++ {
			resp, body = visitor.doJSON(t, http.MethodPut, "/favorites/"+state.gardenPlanID, nil)
			if resp.StatusCode != http.StatusOK {
				t.Fatalf("expected 200 on favorite #%d, got %d body=%s", i+1, resp.StatusCode, string(body))
			}
		}

		resp, body = visitor.doJSON(t, http.MethodGet, "/favorites", nil)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("expected 200, got %d body=%s", resp.StatusCode, string(body))
		}
		var list planListPayload
		decode(t, body, &list)
		if list.Count != 1 || list.Plans[0].ID != state.gardenPlanID {
			t.Fatalf("expected one favorite, got %+v", list)
		}

		resp, body = visitor.doJSON(t, http.MethodGet, "/plans/"+state.gardenPlanID, nil)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("expected 200, got %d body=%s", resp.StatusCode, string(body))
		}
		var detail struct {
			Favorite *bool `json:"favorite"`
		}
		decode(t, body, &detail)
		if detail.Favorite == nil || !*detail.Favorite {
			t.Fatalf("expected plan detail to report the favorite")
		}
	})

	t.Run("InquiryReachesProvider", func(t *testing.T) {
		resp, body := visitor.doJSON(t, http.MethodPost, "/plans/"+state.gardenPlanID+"/inquiries", map[string]any{
			"name":    "Couple",
			"email":   "couple@example.com",
			"message": "Is June available?",
		})
		if resp.StatusCode != http.StatusCreated {
			t.Fatalf("expected 201, got %d body=%s", resp.StatusCode, string(body))
		}

		resp, body = provider.doJSON(t, http.MethodGet, "/provider/inquiries", nil)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("expected 200, got %d body=%s", resp.StatusCode, string(body))
		}
		var payload struct {
			Inquiries []struct {
				PlanID string `json:"plan_id"`
			} `json:"inquiries"`
		}
		decode(t, body, &payload)
		if len(payload.Inquiries) == 0 || payload.Inquiries[0].PlanID != state.gardenPlanID {
			t.Fatalf("expected the inquiry in the provider inbox, got %s", string(body))
		}
	})

	t.Run("InternalSweepRequiresAPIKey", func(t *testing.T) {
		resp, _ := anonymous.doJSON(t, http.MethodPost, "/internal/maintenance/orphan-sweep", nil)
		if resp.StatusCode != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", resp.StatusCode)
		}
		resp, _ = anonymous.doJSONWithAPIKey(t, http.MethodPost, "/internal/maintenance/orphan-sweep", nil, bridalNoAccessAPIKey())
		if resp.StatusCode != http.StatusForbidden {
			t.Fatalf("expected 403, got %d", resp.StatusCode)
		}
		resp, body := anonymous.doJSONWithAPIKey(t, http.MethodPost, "/internal/maintenance/orphan-sweep", nil, bridalCallerAPIKey())
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("expected 200, got %d body=%s", resp.StatusCode, string(body))
		}
	})

	t.Run("GRPCRequiresAPIKey", func(t *testing.T) {
		in, _ := structpb.NewStruct(map[string]any{"id": state.gardenPlanID})
		_, err := grpcClient.GetPlan(context.Background(), in)
		if status.Code(err) != codes.Unauthenticated {
			t.Fatalf("expected Unauthenticated, got %v", err)
		}
		_, err = grpcClient.GetPlan(grpcContextWithAPIKey(bridalNoAccessAPIKey()), in)
		if status.Code(err) != codes.PermissionDenied {
			t.Fatalf("expected PermissionDenied, got %v", err)
		}
	})

	t.Run("GRPCGetAndSearch", func(t *testing.T) {
		ctx := grpcContextWithAPIKey(bridalCallerAPIKey())

		in, _ := structpb.NewStruct(map[string]any{"id": state.gardenPlanID})
		res, err := grpcClient.GetPlan(ctx, in)
		if err != nil {
			t.Fatalf("grpc get failed: %v", err)
		}
		plan := res.GetFields()["plan"].GetStructValue()
		if plan.GetFields()["id"].GetStringValue() != state.gardenPlanID {
			t.Fatalf("unexpected grpc plan: %v", res)
		}

		in, _ = structpb.NewStruct(map[string]any{"price": "9", "query": state.marker})
		res, err = grpcClient.SearchPlans(ctx, in)
		if err != nil {
			t.Fatalf("grpc search failed: %v", err)
		}
		if res.GetFields()["count"].GetNumberValue() != 0 {
			t.Fatalf("expected no plans above 4,000,000, got %v", res)
		}
	})

	t.Run("ProviderDeletesPlan", func(t *testing.T) {
		for _, id := range []string{state.gardenPlanID, state.beachPlanID} {
			resp, body := provider.doJSON(t, http.MethodDelete, "/provider/plans/"+id, nil)
			if resp.StatusCode != http.StatusOK {
				t.Fatalf("expected 200, got %d body=%s", resp.StatusCode, string(body))
			}
		}

		resp, _ := anonymous.doJSON(t, http.MethodGet, "/plans/"+state.gardenPlanID, nil)
		if resp.StatusCode != http.StatusNotFound {
			t.Fatalf("expected 404 after delete, got %d", resp.StatusCode)
		}
	})
}
