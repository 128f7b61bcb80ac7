package metra

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"go.uber.org/zap"
)

type ClientService struct {
	client       *Session
	logger       *zap.Logger
	imageBaseURL string
}

// clientFilter is always sent in full; client_name goes out as an empty
// string when unset.
type clientFilter struct {
	ClientName string `json:"client_name"`
	BranchID   *int   `json:"branch_id"`
}

// List returns one page of clients. This is the only paginated listing in
// the API.
func (s *ClientService) List(ctx context.Context, page int, search string, branchID *int) (*Paginated[Client], error) {
	if page < 1 {
		page = 1
	}
	req, err := s.client.authRequest(ctx)
	if err != nil {
		return nil, err
	}
	req.SetQueryParam("page", strconv.Itoa(page)).
		SetBody(clientFilter{ClientName: search, BranchID: branchID})
	body, err := s.client.do(req, http.MethodPost, "clients")
	if err != nil {
		return nil, err
	}
	result, err := decodePage[Client](body)
	if err != nil {
		return nil, err
	}
	s.logger.Debug("clients listed",
		zap.Int("page", result.CurrentPage),
		zap.Int("count", len(result.Data)),
		zap.Int("total", result.Total),
	)
	return result, nil
}

// Options returns the unpaginated dropdown list.
func (s *ClientService) Options(ctx context.Context, search string) ([]Client, error) {
	req, err := s.client.authRequest(ctx)
	if err != nil {
		return nil, err
	}
	body, err := s.client.do(req.SetBody(clientFilter{ClientName: search}), http.MethodPost, "/client/option/lists")
	if err != nil {
		return nil, err
	}
	return decodeList[Client](body)
}

func (s *ClientService) GetByID(ctx context.Context, id int) (Client, error) {
	req, err := s.client.authRequest(ctx)
	if err != nil {
		return Client{}, err
	}
	body, err := s.client.do(req, http.MethodGet, fmt.Sprintf("/client/%d", id))
	if err != nil {
		return Client{}, fmt.Errorf("client %d: %w", id, err)
	}
	return decodeObject[Client](body)
}

func (s *ClientService) Create(ctx context.Context, request ClientRequest) error {
	if err := s.client.validateRequest(request); err != nil {
		return err
	}
	req, err := s.client.authRequest(ctx)
	if err != nil {
		return err
	}
	body, err := s.client.do(req.SetBody(request), http.MethodPost, "/client")
	if err != nil {
		return err
	}
	if err := decodeAck(body); err != nil {
		return err
	}
	s.logger.Info("client created", zap.String("name", request.Name))
	return nil
}

func (s *ClientService) Update(ctx context.Context, id int, request ClientRequest) error {
	if err := s.client.validateRequest(request); err != nil {
		return err
	}
	req, err := s.client.authRequest(ctx)
	if err != nil {
		return err
	}
	body, err := s.client.do(req.SetBody(request), http.MethodPut, fmt.Sprintf("/client/%d", id))
	if err != nil {
		return fmt.Errorf("client %d: %w", id, err)
	}
	if err := decodeAck(body); err != nil {
		return err
	}
	s.logger.Info("client updated", zap.Int("id", id))
	return nil
}

func (s *ClientService) Delete(ctx context.Context, id int) error {
	req, err := s.client.authRequest(ctx)
	if err != nil {
		return err
	}
	body, err := s.client.do(req, http.MethodDelete, fmt.Sprintf("/client/delete/%d", id))
	if err != nil {
		return fmt.Errorf("client %d: %w", id, err)
	}
	if err := decodeAck(body); err != nil {
		return err
	}
	s.logger.Info("client deleted", zap.Int("id", id))
	return nil
}

type imageUploadResoult struct {
	ImagePath string `json:"image_path"`
}

// UploadImage stores a client or passport photo and returns the
// server-relative path.
func (s *ClientService) UploadImage(ctx context.Context, fileName string, content io.Reader) (string, error) {
	req, err := s.client.authRequest(ctx)
	if err != nil {
		return "", err
	}
	req.SetFileReader("file", fileName, content)
	body, err := s.client.do(req, http.MethodPost, "/client/image/store")
	if err != nil {
		return "", err
	}
	res, err := decodeObject[imageUploadResoult](body)
	if err != nil {
		return "", err
	}
	s.logger.Info("image uploaded", zap.String("path", res.ImagePath))
	return res.ImagePath, nil
}

func (s *ClientService) DeleteImage(ctx context.Context, imagePath string) error {
	req, err := s.client.authRequest(ctx)
	if err != nil {
		return err
	}
	body, err := s.client.do(req.SetQueryParam("file", imagePath), http.MethodDelete, "/client/image/delete")
	if err != nil {
		return err
	}
	return decodeAck(body)
}

// ImageURL resolves a server-relative image path against the storage base.
func (s *ClientService) ImageURL(imagePath string) string {
	if imagePath == "" {
		return ""
	}
	return s.imageBaseURL + imagePath
}
