package assistant

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/invopop/jsonschema"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/packages/param"
	"github.com/openai/openai-go/responses"
	"github.com/openai/openai-go/shared"
	"github.com/openai/openai-go/shared/constant"

	"github.com/kmutua/metertrack/internal/report"
)

// Summarizer provides the aggregates an answer is grounded on. Satisfied
// by *report.Service.
type Summarizer interface {
	Summarize(ctx context.Context, r report.DateRange) (*report.Summary, error)
}

// Answer is the structured reply the model is constrained to produce.
type Answer struct {
	Text    string   `json:"text" jsonschema_description:"The answer, grounded only in the supplied figures"`
	Figures []Figure `json:"figures" jsonschema_description:"The specific numbers the answer relies on"`
}

type Figure struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Service answers free-form questions about stock, sales and agents. The
// model only ever sees pre-computed aggregates, never raw customer rows.
type Service struct {
	client  *openai.Client
	reports Summarizer
}

func NewService(apiKey string, reports Summarizer) *Service {
	client := openai.NewClient(option.WithAPIKey(apiKey))
	return &Service{client: &client, reports: reports}
}

func (s *Service) Ask(ctx context.Context, question string, r report.DateRange) (*Answer, error) {
	if strings.TrimSpace(question) == "" {
		return nil, fmt.Errorf("empty question")
	}

	summary, err := s.reports.Summarize(ctx, r)
	if err != nil {
		return nil, fmt.Errorf("building report context: %w", err)
	}

	schemaStruct := generateSchema()
	schemaJSON, err := json.Marshal(schemaStruct)
	if err != nil {
		return nil, fmt.Errorf("marshaling schema: %w", err)
	}

	var schemaMap map[string]any
	if err := json.Unmarshal(schemaJSON, &schemaMap); err != nil {
		return nil, fmt.Errorf("unmarshaling schema to map: %w", err)
	}

	params := responses.ResponseNewParams{
		Model: shared.ResponsesModel(shared.ChatModelGPT4o),
		Input: responses.ResponseNewParamsInputUnion{
			OfString: param.NewOpt(Prompt(summary, question)),
		},
		Text: responses.ResponseTextConfigParam{
			Format: responses.ResponseFormatTextConfigUnionParam{
				OfJSONSchema: &responses.ResponseFormatTextJSONSchemaConfigParam{
					Type:        constant.JSONSchema("json_schema"),
					Name:        "inventory_answer",
					Strict:      param.NewOpt(true),
					Schema:      schemaMap,
					Description: param.NewOpt("An answer about meter stock, sales and agents"),
				},
			},
		},
	}

	resp, err := s.client.Responses.New(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("openai responses error: %w", err)
	}

	content := resp.OutputText()
	if content == "" {
		return nil, fmt.Errorf("empty response content")
	}

	var answer Answer
	if err := json.Unmarshal([]byte(content), &answer); err != nil {
		return nil, fmt.Errorf("parsing completion: %w", err)
	}

	return &answer, nil
}

// Prompt renders the aggregates and the question into the model input.
func Prompt(summary *report.Summary, question string) string {
	var sb strings.Builder

	sb.WriteString(`You are the reporting assistant for a prepaid electricity meter shop.
Answer using ONLY the figures below. If the figures cannot answer the
question, say so. Amounts are in KES.

`)

	sb.WriteString("Stock remaining by type:\n")
	writeCounts(&sb, summary.Remaining)

	sb.WriteString("Held by agents by type:\n")
	writeCounts(&sb, summary.WithAgents)

	sb.WriteString("Sales by type:\n")

	for _, k := range sortedKeys(summary.Earnings) {
		e := summary.Earnings[k]
		fmt.Fprintf(&sb, "  %s: %d units, KES %s\n", k, e.Units, e.Revenue.StringFixed(2))
	}

	sb.WriteString("Units by customer type:\n")
	writeCounts(&sb, summary.CustomerTypes)

	sb.WriteString("Units by county:\n")
	writeCounts(&sb, summary.Counties)

	sb.WriteString("Faulty returns by status:\n")
	writeCounts(&sb, summary.FaultsByStatus)

	fmt.Fprintf(&sb, "Total sold: %d units, KES %s\n", summary.TotalUnitsSold, summary.TotalRevenue.StringFixed(2))
	fmt.Fprintf(&sb, "\nQuestion: %s", question)

	return sb.String()
}

func writeCounts(sb *strings.Builder, counts map[string]int) {
	for _, k := range sortedKeys(counts) {
		fmt.Fprintf(sb, "  %s: %d\n", k, counts[k])
	}
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	return keys
}

func generateSchema() any {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}

	var v Answer

	return reflector.Reflect(v)
}
