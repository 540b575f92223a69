// internal/domain/question/service.go
package question

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-client/internal/api"
)

// Question is a product question with its optional vendor answer
type Question struct {
	ID         uint       `json:"id"`
	ProductID  uint       `json:"product_id"`
	UserName   string     `json:"user_name,omitempty"`
	Body       string     `json:"body"`
	Answer     string     `json:"answer,omitempty"`
	AnsweredAt *time.Time `json:"answered_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}

// Service wraps the product Q&A endpoints
type Service struct {
	api    *api.Client
	logger *logrus.Logger
}

// NewService creates a new question service
func NewService(client *api.Client, logger *logrus.Logger) *Service {
	return &Service{
		api:    client,
		logger: logger,
	}
}

// ListForProduct retrieves the questions asked about a product
func (s *Service) ListForProduct(ctx context.Context, productID uint) ([]Question, error) {
	query := map[string]string{"product_id": fmt.Sprintf("%d", productID)}
	var questions []Question
	if err := s.api.Get(ctx, "/questions", query, &questions); err != nil {
		return nil, fmt.Errorf("failed to retrieve questions: %w", err)
	}
	return questions, nil
}

// Ask submits a question about a product
func (s *Service) Ask(ctx context.Context, productID uint, body string) (*Question, error) {
	if strings.TrimSpace(body) == "" {
		return nil, fmt.Errorf("question body is required")
	}

	payload := map[string]interface{}{
		"product_id": productID,
		"body":       body,
	}
	var q Question
	if err := s.api.Post(ctx, "/questions", payload, &q); err != nil {
		return nil, fmt.Errorf("failed to submit question: %w", err)
	}
	return &q, nil
}
