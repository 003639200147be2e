package service

import (
	"bid-agent-be/internal/dto"
	"bid-agent-be/pkg/template"
)

type ITemplateService interface {
	List() *dto.TemplateListResponse
	GetByMethod(method string) (*dto.TemplateResponse, error)
}

type templateService struct {
	templates *template.Provider
}

func NewTemplateService(templates *template.Provider) ITemplateService {
	return &templateService{templates: templates}
}

func (s *templateService) List() *dto.TemplateListResponse {
	return &dto.TemplateListResponse{Methods: s.templates.List()}
}

func (s *templateService) GetByMethod(method string) (*dto.TemplateResponse, error) {
	doc, err := s.templates.SelectByMethod(method)
	if err != nil {
		return nil, err
	}
	return &dto.TemplateResponse{
		TemplateId:   doc.ID,
		Method:       doc.Method,
		Content:      doc.Content,
		Placeholders: doc.Placeholders,
	}, nil
}
