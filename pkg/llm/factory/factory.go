package factory

import (
	"fmt"

	"smartnotes-be/pkg/llm"
	"smartnotes-be/pkg/llm/huggingface"
	"smartnotes-be/pkg/llm/ollama"
	"smartnotes-be/pkg/llm/openai"
)

// Settings selects and configures the text-model backends.
type Settings struct {
	LLMProvider         string
	LLMModel            string
	OllamaBaseURL       string
	HuggingFaceKey      string
	OpenAIKey           string
	SummarizerProvider  string
	SummarizationModel  string
	ClassificationModel string
	// SummaryChatModel overrides LLMModel for summaries in "llm" mode.
	SummaryChatModel string
}

func NewLLMProvider(s Settings) (llm.LLMProvider, error) {
	switch s.LLMProvider {
	case "ollama":
		return ollama.NewOllamaProvider(s.OllamaBaseURL, s.LLMModel), nil
	case "huggingface":
		return huggingface.NewHuggingFaceProvider(s.HuggingFaceKey, "", s.LLMModel), nil
	case "openai":
		return openai.NewOpenAIProvider(s.OpenAIKey, "", s.LLMModel), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", s.LLMProvider)
	}
}

// NewSummarizer returns the HF summarization model by default, or a prompt
// over the configured chat model when SummarizerProvider is "llm".
func NewSummarizer(s Settings) (llm.Summarizer, error) {
	switch s.SummarizerProvider {
	case "", "huggingface":
		client := huggingface.NewInferenceClient(s.HuggingFaceKey, s.SummarizationModel, s.ClassificationModel)
		return llm.SummarizerWithMetrics("huggingface", client), nil
	case "llm":
		provider, err := NewLLMProvider(s)
		if err != nil {
			return nil, err
		}
		var opts []llm.Option
		if s.SummaryChatModel != "" {
			opts = append(opts, llm.WithModel(s.SummaryChatModel))
		}
		return llm.SummarizerWithMetrics(s.LLMProvider, llm.NewChatSummarizer(provider, opts...)), nil
	default:
		return nil, fmt.Errorf("unsupported summarizer provider: %s", s.SummarizerProvider)
	}
}

func NewClassifier(s Settings) llm.Classifier {
	client := huggingface.NewInferenceClient(s.HuggingFaceKey, s.SummarizationModel, s.ClassificationModel)
	return llm.ClassifierWithMetrics("huggingface", client)
}
