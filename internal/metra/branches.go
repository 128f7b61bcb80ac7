package metra

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"go.uber.org/zap"
)

type BranchService struct {
	client *Session
	logger *zap.Logger
}

// branchFilter is always sent in full: the backend does not treat a
// missing branch_name the same as an empty one.
type branchFilter struct {
	BranchName string `json:"branch_name"`
}

func (s *BranchService) List(ctx context.Context, search string) ([]Branch, error) {
	req, err := s.client.authRequest(ctx)
	if err != nil {
		return nil, err
	}
	body, err := s.client.do(req.SetBody(branchFilter{BranchName: search}), http.MethodPost, "branches")
	if err != nil {
		return nil, err
	}
	branches, err := decodeList[Branch](body)
	if err != nil {
		return nil, err
	}
	s.logger.Debug("branches listed", zap.Int("count", len(branches)), zap.String("search", search))
	return branches, nil
}

func (s *BranchService) GetByID(ctx context.Context, id int) (Branch, error) {
	req, err := s.client.authRequest(ctx)
	if err != nil {
		return Branch{}, err
	}
	body, err := s.client.do(req, http.MethodGet, fmt.Sprintf("branches/%d", id))
	if err != nil {
		return Branch{}, fmt.Errorf("branch %d: %w", id, err)
	}
	return decodeObject[Branch](body)
}

// IDByName lists with the name as filter and requires an exact
// case-insensitive match on the returned name, even though the server
// matches by substring.
func (s *BranchService) IDByName(ctx context.Context, name string) (int, bool, error) {
	branches, err := s.List(ctx, name)
	if err != nil {
		return 0, false, err
	}
	for _, branch := range branches {
		if strings.EqualFold(branch.Name, name) {
			return branch.ID, true, nil
		}
	}
	return 0, false, nil
}

func (s *BranchService) Create(ctx context.Context, request BranchRequest) error {
	if err := s.client.validateRequest(request); err != nil {
		return err
	}
	req, err := s.client.authRequest(ctx)
	if err != nil {
		return err
	}
	body, err := s.client.do(req.SetBody(request), http.MethodPost, "branch")
	if err != nil {
		return err
	}
	if err := decodeAck(body); err != nil {
		return err
	}
	s.logger.Info("branch created", zap.String("name", request.Name))
	return nil
}

func (s *BranchService) Update(ctx context.Context, id int, request BranchRequest) error {
	if err := s.client.validateRequest(request); err != nil {
		return err
	}
	req, err := s.client.authRequest(ctx)
	if err != nil {
		return err
	}
	body, err := s.client.do(req.SetBody(request), http.MethodPut, fmt.Sprintf("branch/%d", id))
	if err != nil {
		return fmt.Errorf("branch %d: %w", id, err)
	}
	if err := decodeAck(body); err != nil {
		return err
	}
	s.logger.Info("branch updated", zap.Int("id", id))
	return nil
}

func (s *BranchService) Delete(ctx context.Context, id int) error {
	req, err := s.client.authRequest(ctx)
	if err != nil {
		return err
	}
	body, err := s.client.do(req, http.MethodDelete, fmt.Sprintf("branch/delete/%d", id))
	if err != nil {
		return fmt.Errorf("branch %d: %w", id, err)
	}
	if err := decodeAck(body); err != nil {
		return err
	}
	s.logger.Info("branch deleted", zap.Int("id", id))
	return nil
}
