package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/numjklpp1/parts-management-pro/internal/models"
)

// Advisor is the language-model provider behind the advisory panels.
// Both calls are advisory only: they decorate the UI and never sit on
// the ledger's critical path.
type Advisor interface {
	AnalyzeInventory(ctx context.Context, records []models.PartRecord) (string, error)
	SuggestDescription(ctx context.Context, category models.PartCategory, name string) (string, error)
}

// Placeholder texts returned when the provider fails; the pipeline
// must keep working without it.
const (
	analysisUnavailable   = "分析資料時發生錯誤。"
	suggestionUnavailable = "暫時無法取得 AI 建議。"
)

// AdvisoryService converts provider failures into placeholder text so
// callers never see an advisory error as a pipeline error.
type AdvisoryService struct {
	advisor Advisor
}

func NewAdvisoryService(advisor Advisor) *AdvisoryService {
	return &AdvisoryService{advisor: advisor}
}

func (s *AdvisoryService) Analyze(ctx context.Context, records []models.PartRecord) string {
	text, err := s.advisor.AnalyzeInventory(ctx, records)
	if err != nil {
		log.Printf("[Advisory] analysis failed: %v", err)
		return analysisUnavailable
	}
	return text
}

func (s *AdvisoryService) Suggest(ctx context.Context, category models.PartCategory, name string) string {
	text, err := s.advisor.SuggestDescription(ctx, category, name)
	if err != nil {
		log.Printf("[Advisory] suggestion failed: %v", err)
		return suggestionUnavailable
	}
	return text
}

// GeminiAdvisor calls the hosted Gemini REST API.
type GeminiAdvisor struct {
	APIKey        string
	AnalysisModel string
	SuggestModel  string
	BaseURL       string
	Client        *http.Client
}

func NewGeminiAdvisor(apiKey string) *GeminiAdvisor {
	return &GeminiAdvisor{
		APIKey:        apiKey,
		AnalysisModel: "gemini-3-pro-preview",
		SuggestModel:  "gemini-3-flash-preview",
		BaseURL:       "https://generativelanguage.googleapis.com/v1beta",
		Client:        &http.Client{Timeout: 60 * time.Second},
	}
}

func (g *GeminiAdvisor) AnalyzeInventory(ctx context.Context, records []models.PartRecord) (string, error) {
	lines := make([]string, 0, len(records))
	for _, r := range records {
		lines = append(lines, fmt.Sprintf("%s: %s %s (%d)", r.Category, r.Name, r.Specification, r.Quantity))
	}
	prompt := fmt.Sprintf(
		"以下是目前的零件庫存摘要：%s。請針對庫存多樣性、可能的缺損風險或管理優化提出三點建議。",
		strings.Join(lines, ", "))
	return g.generate(ctx, g.AnalysisModel, prompt)
}

func (g *GeminiAdvisor) SuggestDescription(ctx context.Context, category models.PartCategory, name string) (string, error) {
	prompt := fmt.Sprintf(
		"身為零件管理專家，針對分類「%s」中的零件「%s」，提供一段專業的技術規格描述建議（30字以內），以及兩個常見的檢核重點。",
		category, name)
	return g.generate(ctx, g.SuggestModel, prompt)
}

func (g *GeminiAdvisor) generate(ctx context.Context, model, prompt string) (string, error) {
	body, err := json.Marshal(map[string]any{
		"contents": []map[string]any{
			{"parts": []map[string]string{{"text": prompt}}},
		},
	})
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", g.BaseURL, model, g.APIKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.Client.Do(req)
	if err != nil {
		return "", fmt.Errorf("gemini request: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return "", fmt.Errorf("gemini HTTP %d: %s", resp.StatusCode, payload)
	}

	var out struct {
		Candidates []struct {
			Content struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"content"`
		} `json:"candidates"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("gemini decode: %w", err)
	}
	if len(out.Candidates) == 0 || len(out.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("gemini returned no candidates")
	}
	return out.Candidates[0].Content.Parts[0].Text, nil
}

// MockAdvisor stands in when no API key is configured, so the advisory
// panels render deterministic text instead of erroring.
type MockAdvisor struct{}

func NewMockAdvisor() *MockAdvisor {
	return &MockAdvisor{}
}

func (m *MockAdvisor) AnalyzeInventory(ctx context.Context, records []models.PartRecord) (string, error) {
	return fmt.Sprintf("（離線模式）目前共 %d 筆庫存紀錄。", len(records)), nil
}

func (m *MockAdvisor) SuggestDescription(ctx context.Context, category models.PartCategory, name string) (string, error) {
	return fmt.Sprintf("（離線模式）%s / %s：請人工填寫規格描述。", category, name), nil
}
