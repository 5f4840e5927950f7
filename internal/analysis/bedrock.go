package analysis

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"slices"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"

	apperrors "omoide-api/internal/errors"
)

const filenamePrompt = `この画像を分析して、適切な日本語のファイル名を生成してください。

要件:
- 画像の内容を正確に表現
- 日本語で自然な表現
- ファイル名として適切（特殊文字を避ける）
- 20文字以内
- 拡張子は含めない

画像の内容に基づいて、ファイル名のみを回答してください。`

const tagPromptHeader = `この画像を分析して、以下のタグリストから適切なタグを選択してください。

利用可能なタグ:
%s

要件:
- 画像の内容に最も関連するタグのみを選択
- 最大5個まで選択
- 選択したタグのみを改行区切りで回答
- 画像に関係のないタグは選択しない

画像の内容に基づいて、適切なタグを選択してください。`

// Nova messages-v1 request/response shapes.
type novaImageSource struct {
	Bytes string `json:"bytes"`
}

type novaImage struct {
	Format string          `json:"format"`
	Source novaImageSource `json:"source"`
}

type novaContent struct {
	Text  string     `json:"text,omitempty"`
	Image *novaImage `json:"image,omitempty"`
}

type novaMessage struct {
	Role    string        `json:"role"`
	Content []novaContent `json:"content"`
}

type novaInferenceConfig struct {
	MaxTokens   int     `json:"maxTokens"`
	Temperature float64 `json:"temperature"`
	TopP        float64 `json:"topP"`
}

type novaRequest struct {
	Messages        []novaMessage       `json:"messages"`
	InferenceConfig novaInferenceConfig `json:"inferenceConfig"`
}

type novaResponse struct {
	Output struct {
		Message struct {
			Content []struct {
				Text string `json:"text"`
			} `json:"content"`
		} `json:"message"`
	} `json:"output"`
}

// BedrockAnalyzer talks to an Amazon Bedrock multimodal model.
type BedrockAnalyzer struct {
	client  *bedrockruntime.Client
	modelID string
}

// NewBedrockAnalyzer builds a Bedrock client from the default AWS
// credential chain for the given region.
func NewBedrockAnalyzer(ctx context.Context, region, modelID string) (*BedrockAnalyzer, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return &BedrockAnalyzer{
		client:  bedrockruntime.NewFromConfig(cfg),
		modelID: modelID,
	}, nil
}

// GenerateFilename asks the model for a short descriptive Japanese name
// for the image. The result is sanitized for filename use; it may be empty
// if the model answers with nothing usable.
func (a *BedrockAnalyzer) GenerateFilename(ctx context.Context, imageData []byte, mimeType string) (string, error) {
	text, err := a.invoke(ctx, filenamePrompt, imageData, mimeType, novaInferenceConfig{
		MaxTokens:   100,
		Temperature: 0.3,
		TopP:        0.9,
	})
	if err != nil {
		return "", err
	}

	return SanitizeFilename(text), nil
}

// GenerateTags asks the model to pick the fitting subset of candidates.
// Answers outside the candidate list are discarded; at most five survive.
func (a *BedrockAnalyzer) GenerateTags(ctx context.Context, imageData []byte, mimeType string, candidates []string) ([]string, error) {
	if len(candidates) == 0 {
		return []string{}, nil
	}

	var list strings.Builder
	for _, tag := range candidates {
		fmt.Fprintf(&list, "- %s\n", tag)
	}

	text, err := a.invoke(ctx, fmt.Sprintf(tagPromptHeader, list.String()), imageData, mimeType, novaInferenceConfig{
		MaxTokens:   200,
		Temperature: 0.1,
		TopP:        0.9,
	})
	if err != nil {
		return nil, err
	}

	selected := make([]string, 0, 5)
	for _, line := range strings.Split(text, "\n") {
		tag := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(line), "- "))
		if tag == "" || !slices.Contains(candidates, tag) || slices.Contains(selected, tag) {
			continue
		}
		selected = append(selected, tag)
		if len(selected) == 5 {
			break
		}
	}
	return selected, nil
}

func (a *BedrockAnalyzer) invoke(ctx context.Context, prompt string, imageData []byte, mimeType string, inference novaInferenceConfig) (string, error) {
	// Nova expects the bare format name ("jpeg", "png"), not the MIME type.
	format := mimeType
	if i := strings.Index(mimeType, "/"); i >= 0 {
		format = mimeType[i+1:]
	}

	payload, err := json.Marshal(novaRequest{
		Messages: []novaMessage{{
			Role: "user",
			Content: []novaContent{
				{Text: prompt},
				{Image: &novaImage{
					Format: format,
					Source: novaImageSource{Bytes: base64.StdEncoding.EncodeToString(imageData)},
				}},
			},
		}},
		InferenceConfig: inference,
	})
	if err != nil {
		return "", fmt.Errorf("%w: encode request: %v", apperrors.ErrCollaborator, err)
	}

	out, err := a.client.InvokeModel(ctx, &bedrockruntime.InvokeModelInput{
		ModelId:     aws.String(a.modelID),
		ContentType: aws.String("application/json"),
		Body:        payload,
	})
	if err != nil {
		return "", fmt.Errorf("%w: invoke model: %v", apperrors.ErrCollaborator, err)
	}

	var resp novaResponse
	if err := json.Unmarshal(out.Body, &resp); err != nil {
		return "", fmt.Errorf("%w: parse response: %v", apperrors.ErrCollaborator, err)
	}
	if len(resp.Output.Message.Content) == 0 {
		return "", fmt.Errorf("%w: empty response", apperrors.ErrCollaborator)
	}

	return strings.TrimSpace(resp.Output.Message.Content[0].Text), nil
}
