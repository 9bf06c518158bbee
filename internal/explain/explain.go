// Package explain turns the engine's machine-readable reason codes into
// learner-facing prose for the feedback step. The Gemini-backed coach is
// optional; without an API key callers fall back to the static messages.
package explain

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"strings"
	"text/template"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/structquest/structquest/internal/models"
)

//go:embed prompts/explain_rejection.txt
var explainRejectionPrompt string

type Coach struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

func NewCoach(ctx context.Context, apiKey string) (*Coach, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, err
	}
	model := client.GenerativeModel("gemini-2.5-flash")
	return &Coach{client: client, model: model}, nil
}

func (c *Coach) Close() {
	c.client.Close()
}

// ExplainRejection asks the model to phrase a rejection for the learner.
func (c *Coach) ExplainRejection(ctx context.Context, t models.StructureType, op models.Operation, reason models.Reason) (string, error) {
	tmpl, err := template.New("explain_rejection").Parse(explainRejectionPrompt)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	data := struct {
		Structure string
		Operation string
		Reason    string
	}{
		Structure: string(t),
		Operation: DescribeOperation(op),
		Reason:    string(reason),
	}
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}

	resp, err := c.model.GenerateContent(ctx, genai.Text(buf.String()))
	if err != nil {
		return "", err
	}
	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no content returned from Gemini")
	}
	part := resp.Candidates[0].Content.Parts[0]
	text, ok := part.(genai.Text)
	if !ok {
		return "", fmt.Errorf("unexpected response type from Gemini")
	}
	return strings.TrimSpace(string(text)), nil
}

// Fallback is the offline phrasing of a reason code.
func Fallback(reason models.Reason) string {
	switch reason {
	case models.ReasonEmptyStructure:
		return "The structure is empty, so there is nothing to remove. Add elements first."
	case models.ReasonOutOfRange:
		return "That position does not exist in the list. Positions run from 0 to the current length."
	case models.ReasonDuplicate:
		return "That value or edge is already present, and this structure does not allow duplicates."
	case models.ReasonInvalidTarget:
		return "The target of that operation does not exist here. Rotations also need the matching child to pivot on."
	case models.ReasonUnknownNode:
		return "Both edge endpoints must already be nodes of the graph. Add the missing node first."
	case models.ReasonHasIncidentEdges:
		return "That node still has edges attached. Remove its edges before removing the node."
	case models.ReasonForbidden:
		return "This puzzle does not allow that operation. Check the allowed operation list."
	}
	return "That operation is not legal in the current state."
}

// DescribeOperation renders an operation the way the learner typed it.
func DescribeOperation(op models.Operation) string {
	switch op.Kind {
	case models.OpPush, models.OpEnqueue, models.OpTreeInsert, models.OpTreeDelete,
		models.OpRotateLeft, models.OpRotateRight, models.OpAddNode, models.OpRemoveNode:
		return fmt.Sprintf("%s %d", op.Kind, op.Value)
	case models.OpInsertAt:
		return fmt.Sprintf("%s %d %d", op.Kind, op.Position, op.Value)
	case models.OpDeleteAt:
		return fmt.Sprintf("%s %d", op.Kind, op.Position)
	case models.OpAddEdge, models.OpRemoveEdge:
		return fmt.Sprintf("%s %d %d", op.Kind, op.A, op.B)
	}
	return string(op.Kind)
}
