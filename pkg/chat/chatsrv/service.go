package chatsrv

import (
	"context"
	"fmt"
	"strings"

	"github.com/aidul23/agent-mem/pkg/ai/llm"
	"github.com/aidul23/agent-mem/pkg/chat"
	"github.com/aidul23/agent-mem/pkg/kernel"
	"github.com/aidul23/agent-mem/pkg/logx"
	"github.com/aidul23/agent-mem/pkg/memory"
	"github.com/aidul23/agent-mem/pkg/profile/profilesrv"
)

// Recall limits per knowledge source in enterprise mode
const (
	companyRecallLimit    = 5
	userRecallLimit       = 3
	productRecallLimit    = 5
	departmentRecallLimit = 5
)

// ChatService answers user turns with memory-augmented prompts. Simple mode
// uses only the user's personal bank. Enterprise mode also pulls the
// company, product and department knowledge bases.
type ChatService struct {
	client     *llm.Client
	manager    *memory.Manager
	profiles   *profilesrv.ProfileService
	enterprise bool
}

func NewChatService(client *llm.Client, manager *memory.Manager, profiles *profilesrv.ProfileService, enterprise bool) *ChatService {
	return &ChatService{
		client:     client,
		manager:    manager,
		profiles:   profiles,
		enterprise: enterprise,
	}
}

func (s *ChatService) Chat(ctx context.Context, req chat.Request) (*chat.Reply, error) {
	if strings.TrimSpace(req.Message) == "" {
		return nil, chat.ErrMessageRequired()
	}

	p, err := s.profiles.GetOrCreate(ctx, req.UserID)
	if err != nil {
		return nil, err
	}

	var answer string
	if s.enterprise {
		answer, err = s.enterpriseTurn(ctx, p.UserID, p.AllowMemory, req)
	} else {
		answer, err = s.simpleTurn(ctx, p.UserID, p.AllowMemory, req.Message)
	}
	if err != nil {
		return nil, err
	}

	return &chat.Reply{Reply: answer, MemoryEnabled: p.AllowMemory}, nil
}

func (s *ChatService) simpleTurn(ctx context.Context, userID kernel.UserID, allow bool, message string) (string, error) {
	bank := s.manager.PersonalMemory(userID, allow)

	recalled := bank.Recall(ctx, message, 0)
	answer, err := s.complete(ctx, simpleSystemPrompt(recalled.Records), message)
	if err != nil {
		return "", err
	}

	bank.Retain(ctx, fmt.Sprintf("User said: %s\nAssistant answered: %s", message, answer), "chat_turn")
	return answer, nil
}

func (s *ChatService) enterpriseTurn(ctx context.Context, userID kernel.UserID, allow bool, req chat.Request) (string, error) {
	userBank := s.manager.UserMemory(userID, allow)

	var ec enterpriseContext
	ec.company = s.manager.CompanyKB().RecallWithPriority(ctx, req.Message, priority(companyRecallLimit)).Records
	ec.user = userBank.RecallWithPriority(ctx, req.Message, priority(userRecallLimit)).Records
	if req.ProductID != "" {
		ec.product = s.manager.ProductKB(req.ProductID).RecallWithPriority(ctx, req.Message, priority(productRecallLimit)).Records
	}
	if req.Department != "" {
		ec.department = s.manager.DepartmentKB(req.Department).RecallWithPriority(ctx, req.Message, priority(departmentRecallLimit)).Records
	}

	prompt := enterpriseSystemPrompt(s.manager.CompanyID().String(), ec)
	answer, err := s.complete(ctx, prompt, req.Message)
	if err != nil {
		return "", err
	}

	userBank.RetainWithMetadata(ctx, fmt.Sprintf("Q: %s\nA: %s", req.Message, answer), memory.RetainOptions{
		Context:    "user_interaction",
		Importance: memory.ImportanceNormal,
		Source:     "chat",
		Tags:       []string{"interaction", "user_query"},
	})
	return answer, nil
}

func (s *ChatService) complete(ctx context.Context, system, message string) (string, error) {
	resp, err := s.client.Chat(ctx, []llm.Message{
		llm.NewSystemMessage(system),
		llm.NewUserMessage(message),
	})
	if err != nil {
		logx.WithField("error", err.Error()).Error("Chat completion failed")
		return "", chat.ErrLLMFailed(err)
	}
	return resp.Message.Content, nil
}

func priority(limit int) memory.PriorityOptions {
	opts := memory.DefaultPriorityOptions()
	opts.Limit = limit
	return opts
}
