package ledger

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/numjklpp1/parts-management-pro/internal/models"
)

// ProxyStore talks to the serverless spreadsheet proxy:
//
//	GET  {base}/inventory?spreadsheetId={id}             -> { records: [...] }
//	GET  {base}/inventory?spreadsheetId={id}&type=tasks  -> { tasks: [...] }
//	POST {base}/inventory  { spreadsheetId, record }     -> append one record
//	POST {base}/inventory?type=tasks { spreadsheetId, tasks } -> replace tasks
//
// There is no batch endpoint; AppendBatch is N sequential POSTs.
type ProxyStore struct {
	BaseURL       string
	SpreadsheetID string
	Client        *http.Client
}

func NewProxyStore(baseURL, spreadsheetID string) *ProxyStore {
	return &ProxyStore{
		BaseURL:       strings.TrimRight(baseURL, "/"),
		SpreadsheetID: spreadsheetID,
		Client:        &http.Client{Timeout: 30 * time.Second},
	}
}

// flexInt tolerates sheet cells that come back as JSON strings instead
// of numbers; anything unparseable coerces to zero.
type flexInt int

func (f *flexInt) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		*f = 0
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		*f = 0
		return nil
	}
	*f = flexInt(n)
	return nil
}

type proxyRecord struct {
	ID            string  `json:"id"`
	Timestamp     string  `json:"timestamp"`
	Category      string  `json:"category"`
	Name          string  `json:"name"`
	Specification string  `json:"specification"`
	Quantity      flexInt `json:"quantity"`
	Note          string  `json:"note"`
}

func (p proxyRecord) toModel() models.PartRecord {
	return models.PartRecord{
		ID:            p.ID,
		Timestamp:     p.Timestamp,
		Category:      models.PartCategory(p.Category),
		Name:          p.Name,
		Specification: p.Specification,
		Quantity:      int(p.Quantity),
		Note:          p.Note,
	}
}

func (s *ProxyStore) inventoryURL(taskType bool) string {
	q := url.Values{}
	q.Set("spreadsheetId", s.SpreadsheetID)
	if taskType {
		q.Set("type", "tasks")
	}
	return s.BaseURL + "/inventory?" + q.Encode()
}

// proxyError extracts the proxy's { message } body so the user sees the
// store's own error text, falling back to the HTTP status.
func proxyError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Message != "" {
		return fmt.Errorf("ledger proxy: %s", payload.Message)
	}
	return fmt.Errorf("ledger proxy: HTTP %d", resp.StatusCode)
}

func (s *ProxyStore) FetchRecords(ctx context.Context) ([]models.PartRecord, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.inventoryURL(false), nil)
	if err != nil {
		return nil, err
	}
	resp, err := s.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch records: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, proxyError(resp)
	}

	var payload struct {
		Records []proxyRecord `json:"records"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode records: %w", err)
	}
	records := make([]models.PartRecord, len(payload.Records))
	for i, r := range payload.Records {
		records[i] = r.toModel()
	}
	return records, nil
}

func (s *ProxyStore) AppendRecord(ctx context.Context, record models.PartRecord) error {
	body, err := json.Marshal(map[string]any{
		"spreadsheetId": s.SpreadsheetID,
		"record":        record,
	})
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.BaseURL+"/inventory", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.Client.Do(req)
	if err != nil {
		return fmt.Errorf("append record: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return proxyError(resp)
	}
	return nil
}

func (s *ProxyStore) AppendBatch(ctx context.Context, batch []models.PartRecord) error {
	return appendSequential(ctx, s, batch)
}

func (s *ProxyStore) FetchTasks(ctx context.Context) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.inventoryURL(true), nil)
	if err != nil {
		return nil, err
	}
	resp, err := s.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch tasks: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, proxyError(resp)
	}

	var payload struct {
		Tasks []string `json:"tasks"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode tasks: %w", err)
	}
	return payload.Tasks, nil
}

func (s *ProxyStore) ReplaceTasks(ctx context.Context, tokens []string) error {
	if tokens == nil {
		tokens = []string{}
	}
	body, err := json.Marshal(map[string]any{
		"spreadsheetId": s.SpreadsheetID,
		"tasks":         tokens,
	})
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.BaseURL+"/inventory?type=tasks", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.Client.Do(req)
	if err != nil {
		return fmt.Errorf("replace tasks: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return proxyError(resp)
	}
	return nil
}

func (s *ProxyStore) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.inventoryURL(false), nil)
	if err != nil {
		return err
	}
	resp, err := s.Client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return proxyError(resp)
	}
	return nil
}
